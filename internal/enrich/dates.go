package enrich

import (
	"math"
	"strconv"
	"strings"
	"time"

	"joflow/internal/table"
)

// Layouts tried when coercing a date cell. Unparsable values become null, not
// errors; the source exports mix several formats depending on which system
// produced the file.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"02-Jan-2006",
	"02-Jan-06",
}

// parseDate coerce-parses a date cell. The ok result is false for null,
// blank and unparsable values alike.
func parseDate(v *string) (time.Time, bool) {
	if v == nil {
		return time.Time{}, false
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ComputeDates derives JOCRYEAR, JOTODAY and the snapshot date column. The
// snapshot is the closure date when present, otherwise the run date; JOTODAY
// is the whole-day distance from creation to snapshot. A missing or
// unparsable creation date degrades all three to null/today without error.
//
// The elapsed-day counts are also returned as typed values so the bucketizer
// does not have to re-parse them from cells.
func ComputeDates(t *table.Table, runDate time.Time) []*int {
	hasCreated := t.HasColumn(ColDateCreated)
	hasClosed := t.HasColumn(ColDateClosed)

	ages := make([]*int, len(t.Rows))
	for i := range t.Rows {
		snapshot := runDate
		if hasClosed {
			if ts, ok := parseDate(t.Get(i, ColDateClosed)); ok {
				snapshot = ts
			}
		}
		t.Set(i, ColDateAsOf, table.Val(snapshot.Format("2006-01-02")))

		if !hasCreated {
			continue
		}
		created, ok := parseDate(t.Get(i, ColDateCreated))
		if !ok {
			continue
		}

		t.Set(i, ColJoCrYear, table.Val(strconv.Itoa(created.Year())))

		days := int(math.Floor(snapshot.Sub(created).Hours() / 24))
		ages[i] = &days
		t.Set(i, ColJoToday, table.Val(strconv.Itoa(days)))
	}
	return ages
}
