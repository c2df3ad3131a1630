package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// Item colors, cycled by input index so an item keeps its color across repacks.
var itemColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 200},  // green
	{R: 33, G: 150, B: 243, A: 200}, // blue
	{R: 255, G: 152, B: 0, A: 200},  // orange
	{R: 156, G: 39, B: 176, A: 200}, // purple
	{R: 0, G: 188, B: 212, A: 200},  // cyan
	{R: 244, G: 67, B: 54, A: 200},  // red
	{R: 255, G: 235, B: 59, A: 200}, // yellow
	{R: 121, G: 85, B: 72, A: 200},  // brown
}

var (
	backgroundColor = color.NRGBA{R: 236, G: 236, B: 236, A: 255}
	freeSpaceColor  = color.NRGBA{R: 255, G: 50, B: 50, A: 70}
)

// ItemColor returns the fill color for the item at input index i.
func ItemColor(i int) color.NRGBA {
	if i < 0 {
		i = -i
	}
	return itemColors[i%len(itemColors)]
}

// PackingCanvas renders the placements of one packing scaled to fit a box.
type PackingCanvas struct {
	widget.BaseWidget
	items          []model.Item
	result         model.Result
	showFreeSpaces bool
	maxWidth       float32
	maxHeight      float32
}

// NewPackingCanvas creates a canvas for result, which must come from packing items.
func NewPackingCanvas(items []model.Item, result model.Result, maxW, maxH float32) *PackingCanvas {
	pc := &PackingCanvas{
		items:     items,
		result:    result,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

// SetShowFreeSpaces toggles the free-space overlay.
func (pc *PackingCanvas) SetShowFreeSpaces(show bool) {
	pc.showFreeSpaces = show
	pc.Refresh()
}

// Scale returns the factor that fits the packing into the canvas bounds, or
// 0 if the packing has no area.
func (pc *PackingCanvas) Scale() float32 {
	return FitScale(pc.result.Packing, pc.maxWidth, pc.maxHeight)
}

// FitScale returns the largest scale at which pk fits into maxW x maxH.
func FitScale(pk model.Packing, maxW, maxH float32) float32 {
	if pk.W <= 0 || pk.H <= 0 {
		return 0
	}
	scale := maxW / float32(pk.W)
	if s := maxH / float32(pk.H); s < scale {
		scale = s
	}
	return scale
}

func (pc *PackingCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newPackingCanvasRenderer(pc)
}

type packingCanvasRenderer struct {
	pc      *PackingCanvas
	objects []fyne.CanvasObject
}

func newPackingCanvasRenderer(pc *PackingCanvas) *packingCanvasRenderer {
	r := &packingCanvasRenderer{pc: pc}
	r.rebuild()
	return r
}

func (r *packingCanvasRenderer) rebuild() {
	r.objects = nil

	pk := r.pc.result.Packing
	scale := r.pc.Scale()
	if scale == 0 {
		return
	}
	canvasW := float32(pk.W) * scale
	canvasH := float32(pk.H) * scale

	bg := canvas.NewRectangle(backgroundColor)
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, bg)

	for _, p := range r.pc.result.Placements {
		r.drawPlacement(p, scale)
	}

	if r.pc.showFreeSpaces {
		for _, s := range r.pc.result.VisibleFreeSpaces() {
			zone := canvas.NewRectangle(freeSpaceColor)
			zone.StrokeColor = color.NRGBA{R: 200, G: 0, B: 0, A: 255}
			zone.StrokeWidth = 1
			zone.Resize(fyne.NewSize(float32(s.W)*scale, float32(s.H)*scale))
			zone.Move(fyne.NewPos(float32(s.X)*scale, float32(s.Y)*scale))
			r.objects = append(r.objects, zone)
		}
	}

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, border)
}

func (r *packingCanvasRenderer) drawPlacement(p model.Placement, scale float32) {
	pw := float32(p.W) * scale
	ph := float32(p.H) * scale
	px := float32(p.X) * scale
	py := float32(p.Y) * scale

	rect := canvas.NewRectangle(ItemColor(p.Index))
	rect.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	rect.StrokeWidth = 1
	rect.Resize(fyne.NewSize(pw, ph))
	rect.Move(fyne.NewPos(px, py))
	r.objects = append(r.objects, rect)

	// Label (only if big enough)
	if pw > 30 && ph > 16 {
		name := p.ID.String()
		if p.Index >= 0 && p.Index < len(r.pc.items) {
			name = r.pc.items[p.Index].DisplayName()
		}
		label := canvas.NewText(fmt.Sprintf("%s %gx%g", name, p.W, p.H), color.Black)
		label.TextSize = 10
		label.Move(fyne.NewPos(px+3, py+2))
		r.objects = append(r.objects, label)
	}
}

func (r *packingCanvasRenderer) Layout(size fyne.Size)        {}
func (r *packingCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *packingCanvasRenderer) Destroy()                     {}
func (r *packingCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *packingCanvasRenderer) MinSize() fyne.Size {
	pk := r.pc.result.Packing
	scale := r.pc.Scale()
	return fyne.NewSize(float32(pk.W)*scale, float32(pk.H)*scale)
}

// RenderPacking creates a scrollable view of a packed project with a summary
// line. showFree controls the free-space overlay.
func RenderPacking(p model.Project, showFree bool) fyne.CanvasObject {
	if p.Result == nil || len(p.Result.Placements) == 0 {
		return widget.NewLabel("No packing yet. Import items, then click Pack.")
	}
	r := *p.Result

	header := widget.NewLabel(fmt.Sprintf(
		"%s: %d items in %g × %g, %.1f%% fill, %d free spaces",
		p.Name, len(r.Placements), r.Packing.W, r.Packing.H, r.Efficiency(), len(r.FreeSpaces),
	))
	header.TextStyle = fyne.TextStyle{Bold: true}

	pc := NewPackingCanvas(p.Items, r, 900, 600)
	pc.showFreeSpaces = showFree

	summary := widget.NewLabel(fmt.Sprintf(
		"Item area %g, bounding area %g, wasted %g",
		r.TotalArea, r.BoundingArea(), r.Waste(),
	))

	return container.NewVScroll(container.NewVBox(header, pc, widget.NewSeparator(), summary))
}
