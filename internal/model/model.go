package model

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/google/uuid"
)

// ID is an optional identifier. The zero value is "none", which is what
// free spaces carry when they were not split off an identified space.
type ID struct {
	value string
	set   bool
}

// NoID returns the absent identifier.
func NoID() ID {
	return ID{}
}

// NewID returns an identifier holding s.
func NewID(s string) ID {
	return ID{value: s, set: true}
}

// Value returns the identifier string and whether one is present.
func (id ID) Value() (string, bool) {
	return id.value, id.set
}

// IsNone reports whether the identifier is absent.
func (id ID) IsNone() bool {
	return !id.set
}

func (id ID) String() string {
	if !id.set {
		return "none"
	}
	return id.value
}

// MarshalJSON encodes an absent ID as null.
func (id ID) MarshalJSON() ([]byte, error) {
	if !id.set {
		return []byte("null"), nil
	}
	return json.Marshal(id.value)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = NoID()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*id = NewID(s)
	return nil
}

// Item is a rectangle to be packed.
type Item struct {
	ID    ID      `json:"id"`
	Label string  `json:"label,omitempty"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
}

// NewItem creates an item with a short random ID.
func NewItem(label string, w, h float64) Item {
	return Item{
		ID:    NewID(uuid.New().String()[:8]),
		Label: label,
		W:     w,
		H:     h,
	}
}

// NewItemID creates an item with a caller supplied ID.
func NewItemID(id string, w, h float64) Item {
	return Item{ID: NewID(id), W: w, H: h}
}

// Area returns w*h.
func (it Item) Area() float64 {
	return it.W * it.H
}

// DisplayName returns the label, falling back to the ID.
func (it Item) DisplayName() string {
	if it.Label != "" {
		return it.Label
	}
	return it.ID.String()
}

// Space is an axis-aligned rectangle with its top-left corner at (X, Y).
type Space struct {
	ID ID      `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	W  float64 `json:"w"`
	H  float64 `json:"h"`
}

// Area returns the rectangle area.
func (s Space) Area() float64 {
	return s.W * s.H
}

// Right returns the x coordinate of the right edge.
func (s Space) Right() float64 {
	return s.X + s.W
}

// Bottom returns the y coordinate of the bottom edge.
func (s Space) Bottom() float64 {
	return s.Y + s.H
}

// Overlaps returns true if two rectangles share a region of positive area.
// Touching edges and degenerate rectangles do not count.
func (s Space) Overlaps(o Space) bool {
	return math.Min(s.Right(), o.Right()) > math.Max(s.X, o.X) &&
		math.Min(s.Bottom(), o.Bottom()) > math.Max(s.Y, o.Y)
}

// Contains returns true if o lies entirely within s.
func (s Space) Contains(o Space) bool {
	return o.X >= s.X && o.Y >= s.Y && o.Right() <= s.Right() && o.Bottom() <= s.Bottom()
}

// ClipTo trims s to a w x h box anchored at the origin. It returns false if
// nothing of positive area remains.
func (s Space) ClipTo(w, h float64) (Space, bool) {
	c := Space{ID: s.ID, X: s.X, Y: s.Y, W: math.Min(s.Right(), w) - s.X, H: math.Min(s.Bottom(), h) - s.Y}
	if c.W <= 0 || c.H <= 0 {
		return Space{}, false
	}
	return c, true
}

// Placement is the resting position of one item.
type Placement struct {
	Space
	Index int `json:"index"` // Position of the item in the caller's input
}

// Packing is the bounding rectangle of a packing and how well it is filled.
type Packing struct {
	W    float64 `json:"w"`
	H    float64 `json:"h"`
	Fill float64 `json:"fill"` // total item area / (W*H); 0 for degenerate packings
}

// Result holds the full output of a packing run.
type Result struct {
	Packing    Packing     `json:"packing"`
	Placements []Placement `json:"placements"` // In processing order (height descending)
	FreeSpaces []Space     `json:"free_spaces"`
	TotalArea  float64     `json:"total_area"`
}

// InInputOrder returns a copy of the placements ordered by input index.
func (r Result) InInputOrder() []Placement {
	out := make([]Placement, len(r.Placements))
	copy(out, r.Placements)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Index < out[j].Index
	})
	return out
}

// ByID maps item IDs to their placements. Placements without an ID are skipped.
func (r Result) ByID() map[string]Placement {
	m := make(map[string]Placement, len(r.Placements))
	for _, p := range r.Placements {
		if id, ok := p.ID.Value(); ok {
			m[id] = p
		}
	}
	return m
}

// BoundingArea returns W*H of the packing.
func (r Result) BoundingArea() float64 {
	return r.Packing.W * r.Packing.H
}

// Efficiency returns the fill as a percentage.
func (r Result) Efficiency() float64 {
	return r.Packing.Fill * 100.0
}

// Waste returns the bounding area not covered by items.
func (r Result) Waste() float64 {
	return r.BoundingArea() - r.TotalArea
}

// VisibleFreeSpaces returns the free spaces clipped to the packing bounds.
// The base space is unbounded below, so it never shows.
func (r Result) VisibleFreeSpaces() []Space {
	var out []Space
	for _, s := range r.FreeSpaces {
		if c, ok := s.ClipTo(r.Packing.W, r.Packing.H); ok {
			out = append(out, c)
		}
	}
	return out
}

// PackSettings holds the tunables of the shelf packer.
type PackSettings struct {
	TargetFill float64 `json:"target_fill"` // Divisor used to estimate the start width
	Tolerance  float64 `json:"tolerance"`   // Absolute tolerance for edge matching
}

func DefaultSettings() PackSettings {
	return PackSettings{
		TargetFill: 0.95,
		Tolerance:  1e-4,
	}
}

// Project ties items, settings and the last result together for save/load.
type Project struct {
	Name     string       `json:"name"`
	Items    []Item       `json:"items"`
	Settings PackSettings `json:"settings"`
	Result   *Result      `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Items:    []Item{},
		Settings: DefaultSettings(),
	}
}

// TotalItemArea returns the summed area of all project items.
func (p Project) TotalItemArea() float64 {
	var total float64
	for _, it := range p.Items {
		total += it.Area()
	}
	return total
}
