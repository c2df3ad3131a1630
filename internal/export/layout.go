// Package export writes packing results to PDF, label sheets, Excel, PNG and
// DXF files.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// ErrEmptyPacking is returned when there is nothing to draw.
var ErrEmptyPacking = errors.New("no placements to export")

// itemColor represents an RGB color for a placed item.
type itemColor struct {
	R, G, B int
}

// itemColors mirrors the color scheme used in the viewer's packing canvas.
var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// placedItem joins a placement with the item it came from.
type placedItem struct {
	model.Placement
	Item model.Item
}

// Name returns the display name of the placed item.
func (p placedItem) Name() string {
	return p.Item.DisplayName()
}

// placedItems pairs every placement with its input item. The result must
// come from packing exactly these items.
func placedItems(items []model.Item, result model.Result) ([]placedItem, error) {
	if len(result.Placements) == 0 {
		return nil, ErrEmptyPacking
	}
	if len(result.Placements) != len(items) {
		return nil, fmt.Errorf("result has %d placements for %d items", len(result.Placements), len(items))
	}
	out := make([]placedItem, len(result.Placements))
	for i, p := range result.Placements {
		if p.Index < 0 || p.Index >= len(items) {
			return nil, fmt.Errorf("placement %d refers to item %d of %d", i, p.Index, len(items))
		}
		out[i] = placedItem{Placement: p, Item: items[p.Index]}
	}
	return out, nil
}

// drawable reports whether the packing has a positive, finite area to scale.
func drawable(pk model.Packing) bool {
	return pk.W > 0 && pk.H > 0 && !math.IsInf(pk.W, 0) && !math.IsInf(pk.H, 0)
}
