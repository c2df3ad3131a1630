package export

import (
	"fmt"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"
)

// DXF layer names written by ExportDXF.
const (
	LayerBounds = "BOUNDS"
	LayerItems  = "ITEMS"
	LayerFree   = "FREE"
	LayerLabels = "LABELS"
)

// ExportDXF writes the packing as outlines for CAD or cutting tools. DXF has
// Y pointing up, so the layout is mirrored vertically to keep the first shelf
// at the top of the drawing.
func ExportDXF(path string, items []model.Item, result model.Result) error {
	placed, err := placedItems(items, result)
	if err != nil {
		return err
	}
	pk := result.Packing

	d := dxf.NewDrawing()
	layers := []struct {
		name string
		col  color.ColorNumber
	}{
		{LayerBounds, color.White},
		{LayerItems, color.Green},
		{LayerFree, color.Red},
		{LayerLabels, color.Cyan},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.col, table.LT_CONTINUOUS, false); err != nil {
			return fmt.Errorf("add layer %s: %w", l.name, err)
		}
	}

	flip := func(y float64) float64 { return pk.H - y }

	if err := d.ChangeLayer(LayerBounds); err != nil {
		return err
	}
	if err := dxfRect(d, 0, flip(0), pk.W, flip(pk.H)); err != nil {
		return err
	}

	if err := d.ChangeLayer(LayerFree); err != nil {
		return err
	}
	for _, s := range result.VisibleFreeSpaces() {
		if err := dxfRect(d, s.X, flip(s.Y), s.Right(), flip(s.Bottom())); err != nil {
			return err
		}
	}

	for _, p := range placed {
		if err := d.ChangeLayer(LayerItems); err != nil {
			return err
		}
		if err := dxfRect(d, p.X, flip(p.Y), p.Right(), flip(p.Bottom())); err != nil {
			return err
		}
		if p.W <= 0 || p.H <= 0 {
			continue
		}
		if err := d.ChangeLayer(LayerLabels); err != nil {
			return err
		}
		height := p.H / 4
		if p.W/8 < height {
			height = p.W / 8
		}
		if _, err := d.Text(p.Name(), p.X+height/2, flip(p.Bottom())+height/2, 0, height); err != nil {
			return fmt.Errorf("label %s: %w", p.Name(), err)
		}
	}

	return d.SaveAs(path)
}

// dxfRect draws a closed rectangle as four LINE entities.
func dxfRect(d *drawing.Drawing, x1, y1, x2, y2 float64) error {
	corners := [][2]float64{{x1, y1}, {x2, y1}, {x2, y2}, {x1, y2}}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return fmt.Errorf("draw line: %w", err)
		}
	}
	return nil
}
