package enrich

import (
	"strconv"
	"time"

	"joflow/internal/table"
)

// An ageing bucket covers day counts up to and including Max.
type bucket struct {
	Max   int
	Label string
}

var fineBuckets = []bucket{
	{1, "0-1 D"},
	{3, "2-3 D"},
	{5, "3-5 D"},
	{15, "5-15 D"},
	{30, "15-30 D"},
	{60, "30-60 D"},
}

var coarseBuckets = []bucket{
	{5, "0-5 D"},
	{15, "5-15 D"},
	{30, "15-30 D"},
	{60, "30-60 D"},
}

const overLabel = "> 60 D"

// bucketLabel assigns the first bucket whose threshold covers the day count.
// Thresholds ascend, so exactly one label applies.
func bucketLabel(days int, buckets []bucket) string {
	for _, b := range buckets {
		if days <= b.Max {
			return b.Label
		}
	}
	return overLabel
}

// BucketizeAgeing fills both ageing bucket columns from the elapsed-day
// counts computed by ComputeDates, plus the date-stamped hours column, the
// run-date column and the date-stamped duplicate of the coarse bucket. A null
// day count leaves every bucket column null; the run-date column is set on
// every row.
func BucketizeAgeing(t *table.Table, ages []*int, runDate time.Time) {
	hoursCol := AgedHoursColumn(runDate)
	dupCol := AgeingDupColumn(runDate)
	runStamp := runDate.Format("02-Jan")

	for i := range t.Rows {
		t.Set(i, ColRunDate, table.Val(runStamp))

		if i >= len(ages) || ages[i] == nil {
			continue
		}
		days := *ages[i]

		t.Set(i, ColAgeing, table.Val(bucketLabel(days, fineBuckets)))
		coarse := bucketLabel(days, coarseBuckets)
		t.Set(i, ColAgeingCoarse, table.Val(coarse))
		t.Set(i, dupCol, table.Val(coarse))
		t.Set(i, hoursCol, table.Val(strconv.Itoa(days*24)))
	}
}
