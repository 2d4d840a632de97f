package table

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// ReadJSON loads a JSON file into a table. Both array-form ([{...},{...}])
// and line-delimited objects are accepted; the detected form is recorded so a
// save stays in the same form. JSON objects carry no column order, so columns
// are sorted for a deterministic schema.
func ReadJSON(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	var objects []map[string]json.RawMessage
	format := FormatJSON

	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &objects); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else {
		format = FormatNDJSON
		scanner := bufio.NewScanner(bytes.NewReader(trimmed))
		scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
		line := 0
		for scanner.Scan() {
			line++
			raw := bytes.TrimSpace(scanner.Bytes())
			if len(raw) == 0 {
				continue
			}
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(raw, &obj); err != nil {
				return nil, fmt.Errorf("parsing %s line %d: %w", path, line, err)
			}
			objects = append(objects, obj)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	seen := map[string]bool{}
	var columns []string
	for _, obj := range objects {
		for k := range obj {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)

	t := New(columns...)
	t.Format = format
	for _, obj := range objects {
		row := Row{}
		for k, raw := range obj {
			if v, ok := scalarString(raw); ok {
				row[k] = &v
			}
		}
		t.Append(row)
	}
	return t, nil
}

// scalarString renders a raw JSON scalar as a cell string. Nulls report false.
func scalarString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return "true", true
		}
		return "false", true
	}
	// Nested structures are kept verbatim.
	return string(raw), true
}

// WriteJSON writes the table in the requested JSON form. Null cells are
// emitted as JSON null, preserving the null vs empty-string distinction that
// CSV cannot represent.
func WriteJSON(t *Table, path string, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	objects := make([]map[string]*string, len(t.Rows))
	for i, row := range t.Rows {
		obj := make(map[string]*string, len(t.Columns))
		for _, col := range t.Columns {
			obj[col] = row[col]
		}
		objects[i] = obj
	}

	w := bufio.NewWriter(f)
	if format == FormatNDJSON {
		enc := json.NewEncoder(w)
		for _, obj := range objects {
			if err := enc.Encode(obj); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
		}
	} else {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(objects); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
