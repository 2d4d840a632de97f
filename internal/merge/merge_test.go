package merge

import (
	"reflect"
	"testing"

	"joflow/internal/table"
)

func newTable(columns []string, rows ...[]string) *table.Table {
	t := table.New(columns...)
	for _, rec := range rows {
		row := table.Row{}
		for i, col := range columns {
			if i < len(rec) && rec[i] != "" {
				row[col] = table.Val(rec[i])
			}
		}
		t.Append(row)
	}
	return t
}

func cell(t *table.Table, i int, col string) string {
	if v := t.Rows[i][col]; v != nil {
		return *v
	}
	return "<nil>"
}

func TestTables_LeftJoin(t *testing.T) {
	left := newTable([]string{"KEY", "NAME"},
		[]string{"1", "alpha"},
		[]string{"2", "beta"},
		[]string{"3", "gamma"},
	)
	right := newTable([]string{"KEY", "REGION"},
		[]string{"1", "NCR"},
		[]string{"3", "VISAYAS"},
	)

	out, err := Tables(left, right, "KEY", Left)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(out.Rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(out.Rows))
	}
	if got := cell(out, 0, "REGION"); got != "NCR" {
		t.Errorf("Row 0: expected REGION NCR, got %s", got)
	}
	// Unmatched left row keeps null right cells.
	if got := cell(out, 1, "REGION"); got != "<nil>" {
		t.Errorf("Row 1: expected null REGION, got %s", got)
	}
	if got := cell(out, 2, "REGION"); got != "VISAYAS" {
		t.Errorf("Row 2: expected REGION VISAYAS, got %s", got)
	}

	wantCols := []string{"KEY", "NAME", "REGION"}
	if !reflect.DeepEqual(out.Columns, wantCols) {
		t.Errorf("Expected columns %v, got %v", wantCols, out.Columns)
	}
}

func TestTables_InnerJoinDropsUnmatched(t *testing.T) {
	left := newTable([]string{"KEY"}, []string{"1"}, []string{"2"})
	right := newTable([]string{"KEY"}, []string{"2"})

	out, err := Tables(left, right, "KEY", Inner)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(out.Rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(out.Rows))
	}
	if got := cell(out, 0, "KEY"); got != "2" {
		t.Errorf("Expected surviving key 2, got %s", got)
	}
}

func TestTables_OverlapSuffixes(t *testing.T) {
	left := newTable([]string{"KEY", "STATUS"}, []string{"1", "open"})
	right := newTable([]string{"KEY", "STATUS"}, []string{"1", "closed"})

	out, err := Tables(left, right, "KEY", Left)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	wantCols := []string{"KEY", "STATUS_x", "STATUS_y"}
	if !reflect.DeepEqual(out.Columns, wantCols) {
		t.Fatalf("Expected columns %v, got %v", wantCols, out.Columns)
	}
	if got := cell(out, 0, "STATUS_x"); got != "open" {
		t.Errorf("Expected left STATUS_x 'open', got %s", got)
	}
	if got := cell(out, 0, "STATUS_y"); got != "closed" {
		t.Errorf("Expected right STATUS_y 'closed', got %s", got)
	}
}

func TestTables_DuplicateKeysExpand(t *testing.T) {
	left := newTable([]string{"KEY", "N"}, []string{"1", "a"}, []string{"1", "b"})
	right := newTable([]string{"KEY", "M"}, []string{"1", "x"}, []string{"1", "y"})

	out, err := Tables(left, right, "KEY", Inner)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(out.Rows) != 4 {
		t.Errorf("Expected pairwise expansion to 4 rows, got %d", len(out.Rows))
	}
}

func TestTables_NullKeysNeverMatch(t *testing.T) {
	left := newTable([]string{"KEY", "N"}, []string{"", "a"})
	right := newTable([]string{"KEY", "M"}, []string{"", "x"})

	out, err := Tables(left, right, "KEY", Left)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(out.Rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(out.Rows))
	}
	if got := cell(out, 0, "M"); got != "<nil>" {
		t.Errorf("Expected null-key row unmatched, got M=%s", got)
	}
}

func TestTables_MissingKeyColumn(t *testing.T) {
	left := newTable([]string{"KEY"}, []string{"1"})
	right := newTable([]string{"OTHER"}, []string{"1"})

	if _, err := Tables(left, right, "KEY", Left); err == nil {
		t.Error("Expected error for missing key column on right side")
	}
}

func TestParseHow(t *testing.T) {
	if h, err := ParseHow(""); err != nil || h != Left {
		t.Errorf("Expected empty mode to default to left, got %v/%v", h, err)
	}
	if _, err := ParseHow("outer"); err == nil {
		t.Error("Expected error for unsupported join mode")
	}
}
