package table

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Writing fixture: %v", err)
	}
	return path
}

func TestReadCSV_NullsAndHeader(t *testing.T) {
	path := writeFile(t, "in.csv", []byte("A,B,C\n1,,3\n,,\n"))

	tbl, err := ReadCSV(path, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !reflect.DeepEqual(tbl.Columns, []string{"A", "B", "C"}) {
		t.Fatalf("Unexpected columns: %v", tbl.Columns)
	}
	if tbl.Format != FormatCSV {
		t.Errorf("Expected CSV format, got %v", tbl.Format)
	}
	if v := tbl.Get(0, "A"); v == nil || *v != "1" {
		t.Errorf("Expected cell '1', got %v", v)
	}
	// Empty fields load as null.
	if v := tbl.Get(0, "B"); v != nil {
		t.Errorf("Expected null for empty field, got %q", *v)
	}
	for _, col := range tbl.Columns {
		if v := tbl.Get(1, col); v != nil {
			t.Errorf("Expected all-null second row, got %s=%q", col, *v)
		}
	}
}

func TestReadCSV_StripsBOM(t *testing.T) {
	path := writeFile(t, "bom.csv", []byte("\ufeffA,B\n1,2\n"))

	tbl, err := ReadCSV(path, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if tbl.Columns[0] != "A" {
		t.Errorf("Expected BOM stripped from first header, got %q", tbl.Columns[0])
	}
}

func TestReadCSV_EncodingFallback(t *testing.T) {
	// 0xE9 is é in windows-1252 but not valid UTF-8 on its own.
	raw := []byte("NAME\nJos\xe9\n")
	path := writeFile(t, "legacy.csv", raw)

	tbl, err := ReadCSV(path, charmap.Windows1252)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if v := tbl.Get(0, "NAME"); v == nil || *v != "José" {
		t.Errorf("Expected decoded 'José', got %v", v)
	}

	// Without a fallback the bytes pass through undecoded but still parse.
	if _, err := ReadCSV(path, nil); err != nil {
		t.Errorf("Expected no-fallback read to still parse, got %v", err)
	}
}

func TestReadCSV_RaggedRecords(t *testing.T) {
	path := writeFile(t, "ragged.csv", []byte("A,B,C\n1\n1,2,3,4\n"))

	tbl, err := ReadCSV(path, nil)
	if err != nil {
		t.Fatalf("Expected ragged records to load, got %v", err)
	}
	if v := tbl.Get(0, "B"); v != nil {
		t.Errorf("Expected null for short record, got %q", *v)
	}
	if v := tbl.Get(1, "C"); v == nil || *v != "3" {
		t.Errorf("Expected long record truncated to schema, got %v", v)
	}
}

func TestReadCSV_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", nil)
	if _, err := ReadCSV(path, nil); err == nil {
		t.Error("Expected error for empty file")
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	tbl := New("A", "B")
	tbl.Append(Row{"A": Val("1")}) // B null

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSV(tbl, path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	back, err := ReadCSV(path, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if v := back.Get(0, "A"); v == nil || *v != "1" {
		t.Errorf("Expected 'A' to survive round trip, got %v", v)
	}
	if v := back.Get(0, "B"); v != nil {
		t.Errorf("Expected null cell to round-trip as null, got %q", *v)
	}
}
