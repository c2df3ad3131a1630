package model

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNoIDIsNone(t *testing.T) {
	id := NoID()
	if !id.IsNone() {
		t.Error("NoID should be none")
	}
	if _, ok := id.Value(); ok {
		t.Error("NoID should not carry a value")
	}
	if id.String() != "none" {
		t.Errorf("expected none, got %s", id.String())
	}
	var zero ID
	if zero != id {
		t.Error("zero ID should equal NoID")
	}
}

func TestNewIDHoldsValue(t *testing.T) {
	id := NewID("sprite-7")
	v, ok := id.Value()
	if !ok || v != "sprite-7" {
		t.Errorf("expected sprite-7, got %q (ok=%v)", v, ok)
	}
	// An empty string is still a present identifier.
	if NewID("").IsNone() {
		t.Error("empty string ID should be present")
	}
}

func TestIDJSON(t *testing.T) {
	data, err := json.Marshal([]ID{NoID(), NewID("a")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `[null,"a"]` {
		t.Errorf("unexpected JSON %s", data)
	}

	var ids []ID
	if err := json.Unmarshal(data, &ids); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !ids[0].IsNone() || ids[1] != NewID("a") {
		t.Errorf("unexpected decoded IDs %v", ids)
	}
}

func TestNewItemAssignsShortID(t *testing.T) {
	a := NewItem("tree", 32, 64)
	b := NewItem("tree", 32, 64)

	va, ok := a.ID.Value()
	if !ok || len(va) != 8 {
		t.Errorf("expected 8 character ID, got %q", va)
	}
	if a.ID == b.ID {
		t.Error("two new items should not share an ID")
	}
	if a.Area() != 2048 {
		t.Errorf("expected area 2048, got %f", a.Area())
	}
}

func TestItemDisplayName(t *testing.T) {
	if n := NewItemID("x1", 1, 1).DisplayName(); n != "x1" {
		t.Errorf("expected ID fallback, got %s", n)
	}
	if n := (Item{Label: "rock"}).DisplayName(); n != "rock" {
		t.Errorf("expected label, got %s", n)
	}
	if n := (Item{}).DisplayName(); n != "none" {
		t.Errorf("expected none, got %s", n)
	}
}

func TestSpaceOverlaps(t *testing.T) {
	a := Space{X: 0, Y: 0, W: 10, H: 10}
	tests := []struct {
		name string
		b    Space
		want bool
	}{
		{"inside", Space{X: 2, Y: 2, W: 2, H: 2}, true},
		{"partial", Space{X: 5, Y: 5, W: 10, H: 10}, true},
		{"touching right edge", Space{X: 10, Y: 0, W: 5, H: 5}, false},
		{"touching bottom edge", Space{X: 0, Y: 10, W: 5, H: 5}, false},
		{"far away", Space{X: 50, Y: 50, W: 1, H: 1}, false},
		{"zero width inside", Space{X: 5, Y: 5, W: 0, H: 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(a); got != tt.want {
				t.Errorf("Overlaps (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpaceContains(t *testing.T) {
	outer := Space{X: 0, Y: 0, W: 10, H: 10}
	if !outer.Contains(Space{X: 0, Y: 0, W: 10, H: 10}) {
		t.Error("space should contain itself")
	}
	if outer.Contains(Space{X: 5, Y: 5, W: 6, H: 1}) {
		t.Error("space should not contain a rect sticking out")
	}
	if outer.Right() != 10 || outer.Bottom() != 10 || outer.Area() != 100 {
		t.Error("unexpected edges or area")
	}
}

func TestResultInInputOrder(t *testing.T) {
	r := Result{
		Placements: []Placement{
			{Space: Space{ID: NewID("c"), W: 1, H: 3}, Index: 2},
			{Space: Space{ID: NewID("a"), W: 1, H: 2}, Index: 0},
			{Space: Space{ID: NoID(), W: 1, H: 1}, Index: 1},
		},
	}

	ordered := r.InInputOrder()
	for i, p := range ordered {
		if p.Index != i {
			t.Errorf("position %d holds index %d", i, p.Index)
		}
	}
	// The original slice is left in processing order.
	if r.Placements[0].Index != 2 {
		t.Error("InInputOrder must not reorder the result in place")
	}

	byID := r.ByID()
	if len(byID) != 2 {
		t.Fatalf("expected 2 identified placements, got %d", len(byID))
	}
	if byID["a"].Index != 0 || byID["c"].Index != 2 {
		t.Error("ByID returned the wrong placements")
	}
}

func TestResultStats(t *testing.T) {
	r := Result{
		Packing:   Packing{W: 10, H: 5, Fill: 0.8},
		TotalArea: 40,
	}
	if r.BoundingArea() != 50 {
		t.Errorf("expected bounding area 50, got %f", r.BoundingArea())
	}
	if r.Waste() != 10 {
		t.Errorf("expected waste 10, got %f", r.Waste())
	}
	if r.Efficiency() != 80 {
		t.Errorf("expected efficiency 80, got %f", r.Efficiency())
	}
}

func TestSpaceClipTo(t *testing.T) {
	c, ok := Space{X: 2, Y: 5, W: 3, H: 1}.ClipTo(4, 6)
	if !ok || c != (Space{X: 2, Y: 5, W: 2, H: 1}) {
		t.Errorf("expected {2 5 2 1}, got %+v (ok=%v)", c, ok)
	}
	if _, ok := (Space{X: 4, Y: 0, W: 1, H: 2}).ClipTo(4, 6); ok {
		t.Error("space on the right edge should clip away")
	}
}

func TestResultVisibleFreeSpaces(t *testing.T) {
	r := Result{
		Packing: Packing{W: 4, H: 6},
		FreeSpaces: []Space{
			{X: 0, Y: 6, W: 5, H: math.MaxFloat64},
			{X: 4, Y: 0, W: 1, H: 2},
			{X: 4, Y: 2, W: 1, H: 2},
			{X: 2, Y: 5, W: 3, H: 1},
			{X: 4, Y: 4, W: 1, H: 1},
		},
	}
	got := r.VisibleFreeSpaces()
	if len(got) != 1 || got[0] != (Space{X: 2, Y: 5, W: 2, H: 1}) {
		t.Errorf("expected only the clipped (2,5) space, got %+v", got)
	}
}

func TestNewProject(t *testing.T) {
	p := NewProject()
	if p.Name != "Untitled" {
		t.Errorf("expected Untitled, got %s", p.Name)
	}
	if p.Items == nil {
		t.Error("Items should not be nil")
	}
	if p.Settings != DefaultSettings() {
		t.Error("new project should use default settings")
	}
	p.Items = append(p.Items, NewItemID("a", 2, 3), NewItemID("b", 4, 1))
	if p.TotalItemArea() != 10 {
		t.Errorf("expected total area 10, got %f", p.TotalItemArea())
	}
}
