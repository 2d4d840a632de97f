package enrich

import (
	"testing"
	"time"

	"joflow/internal/refmap"
	"joflow/internal/table"
)

func TestRun_EndToEnd(t *testing.T) {
	runDate := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	tbl := table.New(ColAcctNo, ColJoNo, ColDateCreated, ColPackageName, ColProvince)
	tbl.Append(table.Row{
		ColAcctNo:      table.Val("123"),
		ColJoNo:        table.Val("45"),
		ColDateCreated: table.Val("2024-01-01"),
		ColPackageName: table.Val("SKY FIBER"),
		ColProvince:    table.Val("METRO MANILA"),
	})
	tbl.Append(table.Row{}) // fully null row must survive the run

	ref := &refmap.Maps{
		Region:   map[string]string{"metro manila": "NCR"},
		Province: map[string]string{"metro manila": "MSP-NCR"},
	}

	res := Run(tbl, ref, runDate)

	if res.RunID == "" {
		t.Error("Expected a run ID")
	}
	if res.Rows != 2 {
		t.Errorf("Expected 2 rows in result, got %d", res.Rows)
	}

	expect := map[string]string{
		ColAlignedAcct:  "0000000000123",
		ColAlignedJoNo:  "00000045",
		ColCompositeKey: "0000000000123:00000045",
		ColJoCrYear:     "2024",
		ColJoToday:      "31",
		ColAgeing:       "30-60 D",
		ColAgeingCoarse: "30-60 D",
		ColSegment:      "SKYNCR",
		ColProduct:      "SKY",
		ColArea:         "NCR",
		ColMSP:          "MSP-NCR",
		ColRunDate:      "01-Feb",
	}
	for col, want := range expect {
		if v := tbl.Get(0, col); v == nil || *v != want {
			t.Errorf("Column %q: expected %q, got %q", col, want, strOrNil(v))
		}
	}

	// The null row keeps nulls but is neither dropped nor erroring.
	if len(tbl.Rows) != 2 {
		t.Fatalf("Expected the null row to survive, have %d rows", len(tbl.Rows))
	}
	for _, col := range []string{ColJoCrYear, ColJoToday, ColAgeing, ColAgeingCoarse, ColSegment, ColMSP} {
		if v := tbl.Get(1, col); v != nil {
			t.Errorf("Null row: expected null %q, got %q", col, *v)
		}
	}

	// Every required column must exist after the run.
	for _, col := range RequiredColumns(runDate) {
		if !tbl.HasColumn(col) {
			t.Errorf("Missing required column %q after run", col)
		}
	}
}

func TestRun_WithoutReferenceTable(t *testing.T) {
	runDate := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	tbl := table.New(ColAcctNo, ColProvince)
	tbl.Append(table.Row{ColAcctNo: table.Val("9"), ColProvince: table.Val("CEBU")})

	res := Run(tbl, nil, runDate)

	// Missing package-name column and missing reference table each warn.
	if len(res.Warnings) != 2 {
		t.Errorf("Expected 2 warnings, got %v", res.Warnings)
	}
	if v := tbl.Get(0, ColAlignedAcct); v == nil || *v != "0000000000009" {
		t.Errorf("Expected alignment to still run, got %q", strOrNil(v))
	}
}
