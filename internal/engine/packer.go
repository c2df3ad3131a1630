package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/AtlasPack/internal/model"
)

var (
	// ErrInvalidItem is returned for items with negative, NaN or unbounded
	// sizes, and for item sets whose heights sum past maxTotalHeight.
	ErrInvalidItem = errors.New("invalid item size")
	// ErrExhaustedFreeSpace is the panic value cause when no free space can
	// hold an item. The base space stays taller than any valid item, so this
	// is unreachable for input that passes ValidateItems.
	ErrExhaustedFreeSpace = errors.New("no free space fits item")
)

// maxTotalHeight bounds the summed item heights. Every placement into the
// base space lowers its height, which starts at math.MaxFloat64.
const maxTotalHeight = math.MaxFloat64 / 2

// Packer runs the shelf-splitting packing heuristic.
// A Packer only holds settings and may be shared between goroutines.
type Packer struct {
	Settings model.PackSettings
}

func New(settings model.PackSettings) *Packer {
	return &Packer{Settings: settings}
}

// Pack packs items with the default settings.
func Pack(items []model.Item) (model.Result, error) {
	return New(model.DefaultSettings()).Pack(items)
}

// ApproxEq reports whether a and b differ by less than the default tolerance.
func ApproxEq(a, b float64) bool {
	return approxEq(a, b, model.DefaultSettings().Tolerance)
}

func approxEq(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// Pack places every item into one bounding rectangle.
//
// Items are processed tallest first and each goes into the first free space
// that fits, scanning the newest spaces first. The returned placements are in
// that processing order; Placement.Index maps each back to its input position.
func (p *Packer) Pack(items []model.Item) (model.Result, error) {
	if err := ValidateItems(items); err != nil {
		return model.Result{}, err
	}

	targetFill := p.Settings.TargetFill
	if targetFill <= 0 {
		targetFill = model.DefaultSettings().TargetFill
	}
	tol := p.Settings.Tolerance
	if tol <= 0 {
		tol = model.DefaultSettings().Tolerance
	}

	boxes := make([]model.Placement, len(items))
	var area, maxWidth float64
	for i, it := range items {
		boxes[i] = model.Placement{
			Space: model.Space{ID: it.ID, W: it.W, H: it.H},
			Index: i,
		}
		area += it.W * it.H
		maxWidth = math.Max(maxWidth, it.W)
	}

	sort.SliceStable(boxes, func(i, j int) bool {
		return boxes[i].H > boxes[j].H
	})

	startWidth := math.Max(math.Ceil(math.Sqrt(area/targetFill)), maxWidth)

	fr := newFrontier(startWidth, tol)
	width, height := placeAll(fr, boxes)

	return model.Result{
		Packing: model.Packing{
			W:    width,
			H:    height,
			Fill: fill(area, width, height),
		},
		Placements: boxes,
		FreeSpaces: fr.spaces,
		TotalArea:  area,
	}, nil
}

// placeAll places boxes in order and returns the bounding width and height.
// It panics with ErrExhaustedFreeSpace if a box fits no free space.
func placeAll(fr *frontier, boxes []model.Placement) (width, height float64) {
	for i := range boxes {
		box := &boxes[i]
		if !fr.place(box) {
			panic(fmt.Errorf("%w: item %s (%gx%g) at input index %d",
				ErrExhaustedFreeSpace, box.ID, box.W, box.H, box.Index))
		}
		width = math.Max(width, box.Right())
		height = math.Max(height, box.Bottom())
	}
	return width, height
}

// fill returns area / (w*h), or 0 when the bounding box has no area.
func fill(area, w, h float64) float64 {
	bounds := w * h
	if bounds <= 0 {
		return 0
	}
	return area / bounds
}

// ValidateItems rejects sizes the packer cannot place.
func ValidateItems(items []model.Item) error {
	var heights float64
	for i, it := range items {
		if !validDim(it.W) || !validDim(it.H) {
			return fmt.Errorf("item %d (%s) is %gx%g: %w", i, it.ID, it.W, it.H, ErrInvalidItem)
		}
		heights += it.H
		if heights > maxTotalHeight {
			return fmt.Errorf("item %d (%s) raises the total height to %g: %w", i, it.ID, heights, ErrInvalidItem)
		}
	}
	return nil
}

// validDim rejects NaN, negatives and anything as large as the base space.
func validDim(v float64) bool {
	return v >= 0 && v < math.MaxFloat64
}
