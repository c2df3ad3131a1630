package export

import (
	"fmt"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names written by ExportXLSX.
const (
	SheetPlacements = "Placements"
	SheetFreeSpaces = "Free Spaces"
	SheetSummary    = "Summary"
)

// ExportXLSX writes the packing to an Excel workbook with one sheet of
// placements in input order, one of free spaces and a summary sheet.
// The placement columns can be read back by the importer.
func ExportXLSX(path string, items []model.Item, result model.Result) error {
	if _, err := placedItems(items, result); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetPlacements); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetFreeSpaces, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	rows := [][]interface{}{{"Index", "ID", "Label", "X", "Y", "Width", "Height"}}
	for _, p := range result.InInputOrder() {
		it := items[p.Index]
		rows = append(rows, []interface{}{p.Index, it.ID.String(), it.Label, p.X, p.Y, p.W, p.H})
	}
	if err := writeRows(f, SheetPlacements, rows, bold); err != nil {
		return err
	}

	rows = [][]interface{}{{"ID", "X", "Y", "Width", "Height"}}
	for _, s := range result.FreeSpaces {
		// Excel cannot hold MaxFloat64; the open base space is marked instead.
		var h interface{} = s.H
		if s.H > 1e300 {
			h = "unbounded"
		}
		rows = append(rows, []interface{}{s.ID.String(), s.X, s.Y, s.W, h})
	}
	if err := writeRows(f, SheetFreeSpaces, rows, bold); err != nil {
		return err
	}

	rows = [][]interface{}{
		{"Metric", "Value"},
		{"Items", len(result.Placements)},
		{"Width", result.Packing.W},
		{"Height", result.Packing.H},
		{"Fill", result.Packing.Fill},
		{"Item Area", result.TotalArea},
		{"Bounding Area", result.BoundingArea()},
		{"Free Spaces", len(result.FreeSpaces)},
	}
	if err := writeRows(f, SheetSummary, rows, bold); err != nil {
		return err
	}

	return f.SaveAs(path)
}

// writeRows fills a sheet from A1 and styles the first row as a header.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 14)
}
