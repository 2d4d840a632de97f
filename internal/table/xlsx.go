package table

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX loads one sheet of a workbook into a table. An empty sheet name
// selects the first sheet. The first row is the header.
func ReadXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q of %s: %w", sheet, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q of %s is empty", sheet, path)
	}

	t := New(rows[0]...)
	t.Format = FormatXLSX
	for _, rec := range rows[1:] {
		row := Row{}
		for i, col := range rows[0] {
			if i < len(rec) && rec[i] != "" {
				v := rec[i]
				row[col] = &v
			}
		}
		t.Append(row)
	}
	return t, nil
}

// WriteXLSX writes the table as a single-sheet workbook.
func WriteXLSX(t *Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	rec := make([]interface{}, len(t.Columns))
	for i, row := range t.Rows {
		for j, col := range t.Columns {
			if v := row[col]; v != nil {
				rec[j] = *v
			} else {
				rec[j] = nil
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}
