package export

import (
	"github.com/xuri/excelize/v2"

	"comment-collector-go/internal/graph"
)

const xlsxSheet = "comments"

// WriteXLSXFile writes the comments into a single-sheet workbook with
// the same columns and ordering as the CSV export.
func WriteXLSXFile(path string, comments []graph.Comment) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	def := f.GetSheetName(0)
	if def != xlsxSheet {
		if err := f.SetSheetName(def, xlsxSheet); err != nil {
			return err
		}
	}

	header := graph.CSVHeader()
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return err
	}
	for i, c := range comments {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := c.CSVRow()
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
