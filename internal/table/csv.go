package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ReadCSVRecords reads a CSV file as raw positional records. When the file is
// not valid UTF-8 and a fallback charmap is given, the bytes are re-decoded
// through it before parsing (legacy exports from the source system are often
// in an 8-bit codepage).
func ReadCSVRecords(path string, fallback *charmap.Charmap) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if !utf8.Valid(data) && fallback != nil {
		decoded, _, derr := transform.Bytes(fallback.NewDecoder(), data)
		if derr == nil && utf8.Valid(decoded) {
			data = decoded
		}
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

// ReadCSV loads a CSV file into a table. The first record is the header.
// Empty cells load as null, matching the coerce semantics of the rest of the
// pipeline.
func ReadCSV(path string, fallback *charmap.Charmap) (*Table, error) {
	records, err := ReadCSVRecords(path, fallback)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file, no header record", path)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := New(header...)
	t.Format = FormatCSV
	for _, rec := range records[1:] {
		row := Row{}
		for i, col := range header {
			if i < len(rec) && rec[i] != "" {
				v := rec[i]
				row[col] = &v
			}
		}
		t.Append(row)
	}
	return t, nil
}

// WriteCSV writes the table as UTF-8 CSV. Null cells render as empty fields.
func WriteCSV(t *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("writing header to %s: %w", path, err)
	}
	rec := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			if v := row[col]; v != nil {
				rec[i] = *v
			} else {
				rec[i] = ""
			}
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("writing row to %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}
