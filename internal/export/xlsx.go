package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet that holds exported rows.
const SheetName = "Reports"

// WriteXLSX renders rows into a single-sheet workbook. The first row is bold
// and frozen.
func WriteXLSX(w io.Writer, rows []Row) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if len(rows) > 0 {
		if err := styleHeader(f, len(rows[0])); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func styleHeader(f *excelize.File, cols int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", last, style); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "A", lastCol, 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
