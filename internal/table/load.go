package table

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Options controls how a table is loaded.
type Options struct {
	// Sheet selects a named workbook sheet. Empty selects the first sheet.
	Sheet string
	// Fallback is the 8-bit codepage tried when CSV bytes are not UTF-8.
	Fallback *charmap.Charmap
}

// Load reads a table from CSV, XLSX or JSON based on the file extension.
func Load(path string, opts Options) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(path, opts.Fallback)
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, opts.Sheet)
	case ".json", ".ndjson", ".jsonl":
		return ReadJSON(path)
	default:
		return nil, fmt.Errorf("unsupported table format: %s", path)
	}
}

// Save writes the table back in the format family it was loaded from.
func Save(t *Table, path string) error {
	switch t.Format {
	case FormatXLSX:
		return WriteXLSX(t, path)
	case FormatJSON, FormatNDJSON:
		return WriteJSON(t, path, t.Format)
	default:
		return WriteCSV(t, path)
	}
}

// OutputPath derives the destination for a processed copy of src: the same
// base name with a suffix token appended, in dir. The directory is created on
// demand.
func OutputPath(src, suffix, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, name+suffix+ext), nil
}
