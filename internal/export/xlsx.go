package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"offboard-checklist/internal/models"
)

var columnWidths = []float64{35, 55, 18, 14, 40}

func WriteXLSX(w io.Writer, d *models.TicketDetail) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	for i, row := range Rows(d) {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		vals := make([]any, len(row))
		for j, v := range row {
			vals[j] = v
		}
		if err := f.SetSheetRow(SheetName, cell, &vals); err != nil {
			return err
		}
	}
	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", "A1", bold); err != nil {
		return err
	}
	if err := f.SetRowStyle(SheetName, HeaderRows, HeaderRows, bold); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
