// Package enrich implements the record enrichment pipeline: a strictly
// sequential batch transform that normalizes the table schema, aligns the
// account/job identifiers, derives elapsed-day counts, classifies product
// segments, assigns ageing buckets and resolves region/MSP labels against
// the geographic reference table.
package enrich

import (
	"time"

	"joflow/internal/refmap"
	"joflow/internal/table"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Result summarizes one enrichment run.
type Result struct {
	RunID    string    `json:"runId"`
	Rows     int       `json:"rows"`
	RunDate  string    `json:"runDate"`
	Warnings []string  `json:"warnings,omitempty"`
	Started  time.Time `json:"started"`
	Elapsed  string    `json:"elapsed"`
}

// Run executes the pipeline over the table, mutating it in place. The table
// is exclusively owned by the run; callers must not mutate it concurrently.
// ref may be nil, which skips geo resolution with a warning. Recoverable
// conditions (absent columns, degraded lookups) are collected as warnings,
// never errors.
func Run(t *table.Table, ref *refmap.Maps, runDate time.Time) *Result {
	started := time.Now()
	res := &Result{
		RunID:   uuid.NewString(),
		Rows:    len(t.Rows),
		RunDate: runDate.Format("2006-01-02"),
		Started: started,
	}

	log.Info().Str("runId", res.RunID).Int("rows", res.Rows).Msg("Enrichment run starting")

	NormalizeSchema(t, runDate)
	AlignKeys(t)
	ages := ComputeDates(t, runDate)
	res.Warnings = append(res.Warnings, ClassifySegments(t)...)
	BucketizeAgeing(t, ages, runDate)
	res.Warnings = append(res.Warnings, ResolveGeo(t, ref)...)

	res.Elapsed = time.Since(started).String()
	for _, w := range res.Warnings {
		log.Warn().Str("runId", res.RunID).Msg(w)
	}
	log.Info().
		Str("runId", res.RunID).
		Int("rows", res.Rows).
		Str("elapsed", res.Elapsed).
		Msg("Enrichment run finished")

	return res
}
