package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/AtlasPack/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	tableRowH    = 5.0
)

// PDFOptions controls optional parts of the layout page.
type PDFOptions struct {
	Title          string
	ShowFreeSpaces bool
}

// ExportPDF generates a PDF document for a packing. The first page shows the
// scaled layout, followed by a summary page and a placement table that
// continues over as many pages as needed.
func ExportPDF(path string, items []model.Item, result model.Result, opts PDFOptions) error {
	placed, err := placedItems(items, result)
	if err != nil {
		return err
	}
	if !drawable(result.Packing) {
		return fmt.Errorf("packing has no drawable area (%.0f x %.0f)", result.Packing.W, result.Packing.H)
	}
	if opts.Title == "" {
		opts.Title = "Packing"
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, placed, result, opts)

	pdf.AddPage()
	y := renderSummary(pdf, result, len(placed))
	renderPlacementTable(pdf, placed, y)

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws the packing on the current PDF page.
func renderLayoutPage(pdf *fpdf.Fpdf, placed []placedItem, result model.Result, opts PDFOptions) {
	pk := result.Packing

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (%.0f x %.0f)", opts.Title, pk.W, pk.H)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Items: %d | Item area: %.0f | Bounding area: %.0f | Fill: %.1f%%",
		len(placed), result.TotalArea, result.BoundingArea(), result.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scale := math.Min(drawWidth/pk.W, drawHeight/pk.H)
	canvasW := pk.W * scale
	canvasH := pk.H * scale

	// Center the drawing horizontally
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(240, 240, 240)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	if opts.ShowFreeSpaces {
		drawFreeSpaces(pdf, result.VisibleFreeSpaces(), scale, offsetX, offsetY)
	}

	for i, p := range placed {
		col := itemColors[i%len(itemColors)]
		pw := p.W * scale
		ph := p.H * scale
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Rect(px, py, pw, ph, "FD")

		// Label only if the rectangle is large enough
		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.Name()
			dims := fmt.Sprintf("%gx%g", p.W, p.H)
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, pk, offsetX, offsetY, canvasW, canvasH)
}

// drawFreeSpaces outlines the unused frontier rectangles with a hatch.
func drawFreeSpaces(pdf *fpdf.Fpdf, spaces []model.Space, scale, offsetX, offsetY float64) {
	for _, s := range spaces {
		zx := offsetX + s.X*scale
		zy := offsetY + s.Y*scale
		zw := s.W * scale
		zh := s.H * scale

		pdf.SetFillColor(255, 235, 235)
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.2)
		pdf.Rect(zx, zy, zw, zh, "FD")
		drawHatchPattern(pdf, zx, zy, zw, zh)
	}
}

// drawHatchPattern draws diagonal lines inside a rectangle.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.1)

	spacing := 3.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds width and height labels outside the packing rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, pk model.Packing, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%g", pk.W)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	// Height, rotated along the left edge
	heightLabel := fmt.Sprintf("%g", pk.H)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// renderSummary draws overall statistics and returns the y position below them.
func renderSummary(pdf *fpdf.Fpdf, result model.Result, itemCount int) float64 {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Packing Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Items Placed", fmt.Sprintf("%d", itemCount)},
		{"Bounding Box", fmt.Sprintf("%g x %g", result.Packing.W, result.Packing.H)},
		{"Fill", fmt.Sprintf("%.2f%%", result.Efficiency())},
		{"Item Area", fmt.Sprintf("%g", result.TotalArea)},
		{"Wasted Area", fmt.Sprintf("%g", result.Waste())},
		{"Free Spaces", fmt.Sprintf("%d", len(result.FreeSpaces))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	return y + 5
}

var (
	tableWidths  = []float64{20, 40, 70, 30, 30, 30, 30}
	tableHeaders = []string{"#", "ID", "Label", "X", "Y", "Width", "Height"}
)

// renderPlacementTable lists every placement in processing order, starting
// a new page whenever the current one is full.
func renderPlacementTable(pdf *fpdf.Fpdf, placed []placedItem, y float64) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Placements", "", 0, "L", false, 0, "")
	y += 9

	y = renderTableHeader(pdf, y)

	pdf.SetFont("Helvetica", "", 8)
	for i, p := range placed {
		if y+tableRowH > pageHeight-marginBottom {
			pdf.AddPage()
			y = renderTableHeader(pdf, marginTop)
			pdf.SetFont("Helvetica", "", 8)
		}

		rowData := []string{
			fmt.Sprintf("%d", p.Index),
			p.Item.ID.String(),
			p.Item.Label,
			fmt.Sprintf("%g", p.X),
			fmt.Sprintf("%g", p.Y),
			fmt.Sprintf("%g", p.W),
			fmt.Sprintf("%g", p.H),
		}

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos := marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(tableWidths[j], tableRowH, cell, "1", 0, "C", true, 0, "")
			xPos += tableWidths[j]
		}
		y += tableRowH
	}
}

func renderTableHeader(pdf *fpdf.Fpdf, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range tableHeaders {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(tableWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += tableWidths[i]
	}
	return y + 6
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
