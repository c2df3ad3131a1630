package export

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/piwi3910/AtlasPack/internal/model"
)

// maxPNGSide caps the rendered image so a huge packing cannot exhaust memory.
const maxPNGSide = 16384

// PNGOptions controls the raster preview.
type PNGOptions struct {
	Scale          float64 // pixels per packing unit; 0 means 1
	ShowFreeSpaces bool
	ShowLabels     bool
}

// ExportPNG renders a preview image of the packing: one filled rectangle per
// item on a transparent background, with optional free-space outlines.
func ExportPNG(path string, items []model.Item, result model.Result, opts PNGOptions) error {
	dc, err := renderPNG(items, result, opts)
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}

// renderPNG draws the preview into a new context.
func renderPNG(items []model.Item, result model.Result, opts PNGOptions) (*gg.Context, error) {
	placed, err := placedItems(items, result)
	if err != nil {
		return nil, err
	}
	pk := result.Packing
	if !drawable(pk) {
		return nil, fmt.Errorf("packing has no drawable area (%g x %g)", pk.W, pk.H)
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(pk.W * scale))
	h := int(math.Ceil(pk.H * scale))
	if w > maxPNGSide || h > maxPNGSide {
		return nil, fmt.Errorf("image would be %dx%d pixels, limit is %d; lower the scale", w, h, maxPNGSide)
	}

	dc := gg.NewContext(w, h)

	if opts.ShowFreeSpaces {
		dc.SetLineWidth(1)
		for _, s := range result.VisibleFreeSpaces() {
			dc.DrawRectangle(s.X*scale, s.Y*scale, s.W*scale, s.H*scale)
			dc.SetRGBA255(255, 200, 200, 96)
			dc.FillPreserve()
			dc.SetRGB255(200, 0, 0)
			dc.Stroke()
		}
	}

	for i, p := range placed {
		col := itemColors[i%len(itemColors)]
		x, y := p.X*scale, p.Y*scale
		pw, ph := p.W*scale, p.H*scale

		dc.DrawRectangle(x, y, pw, ph)
		dc.SetRGB255(col.R, col.G, col.B)
		dc.FillPreserve()
		dc.SetRGB255(30, 30, 30)
		dc.SetLineWidth(1)
		dc.Stroke()

		if opts.ShowLabels {
			label := p.Name()
			tw, th := dc.MeasureString(label)
			if tw < pw-4 && th < ph-4 {
				dc.SetRGB(0, 0, 0)
				dc.DrawStringAnchored(label, x+pw/2, y+ph/2, 0.5, 0.5)
			}
		}
	}

	return dc, nil
}
