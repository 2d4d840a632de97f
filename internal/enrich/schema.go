package enrich

import (
	"time"

	"joflow/internal/table"
)

// NormalizeSchema ensures every required output column exists, adding absent
// ones with null cells. Purely additive and idempotent: running it twice
// yields the same schema and values.
func NormalizeSchema(t *table.Table, runDate time.Time) {
	for _, col := range RequiredColumns(runDate) {
		t.EnsureColumn(col)
	}
}
