// Package refmap loads the geographic reference table ("MAP"): a CSV with
// positionally-significant columns mapping province, municipality and
// barangay names to their region and MSP labels. The table is loaded once,
// turned into plain lookup maps, and treated as read-only; it is replaced
// wholesale only by an explicit reload.
package refmap

import (
	"fmt"
	"strings"
	"time"

	"joflow/internal/table"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/charmap"
)

// Reference table column positions. The file has no meaningful header names;
// consumers of the original exports rely on position only.
const (
	colProvince        = 0
	colRegion          = 2
	colBarangay        = 3
	colBarangayMSP     = 4
	colMunicipality    = 5
	colMunicipalityMSP = 6
	colProvinceMSP     = 7
)

// Minimum column counts per lookup. A narrower file disables only the lookups
// it cannot supply.
const (
	minRegionCols       = 3
	minBarangayCols     = 5
	minMunicipalityCols = 7
	minProvinceCols     = 8
)

// Maps holds the immutable lookup maps built from one reference table load.
// Any map may be nil when the source file was too narrow to build it.
type Maps struct {
	Region       map[string]string
	Barangay     map[string]string
	Municipality map[string]string
	Province     map[string]string

	Path     string
	LoadedAt time.Time
}

// MunicipalityKey builds the composite key for the municipality lookup.
// The source system lowercases without trimming here, unlike the
// province-only lookup; the asymmetry is preserved.
func MunicipalityKey(province, municipality string) string {
	return strings.ToLower(province) + "|" + strings.ToLower(municipality)
}

// Load reads the reference table and builds all lookup maps it can. Each map
// is built independently: a file too narrow for one lookup degrades that
// lookup only, with a warning.
func Load(path string, fallback *charmap.Charmap) (*Maps, error) {
	records, err := table.ReadCSVRecords(path, fallback)
	if err != nil {
		return nil, fmt.Errorf("loading reference table: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("reference table %s has no data rows", path)
	}

	rows := records[1:]
	m := &Maps{Path: path, LoadedAt: time.Now()}

	m.Region = buildMap(rows, colProvince, colRegion, minRegionCols, "region")
	m.Barangay = buildMap(rows, colBarangay, colBarangayMSP, minBarangayCols, "barangay")
	m.Municipality = buildCompositeMap(rows)
	m.Province = buildMap(rows, colProvince, colProvinceMSP, minProvinceCols, "province")

	log.Info().
		Str("path", path).
		Int("regions", len(m.Region)).
		Int("barangays", len(m.Barangay)).
		Int("municipalities", len(m.Municipality)).
		Int("provinces", len(m.Province)).
		Msg("Reference table loaded")

	return m, nil
}

// buildMap builds a key→value map from two columns. Keys are lowercased and
// trimmed; the first occurrence of a duplicate key wins.
func buildMap(rows [][]string, keyCol, valCol, minCols int, name string) map[string]string {
	out := make(map[string]string)
	short := 0
	for _, rec := range rows {
		if len(rec) < minCols {
			short++
			continue
		}
		key := strings.ToLower(strings.TrimSpace(rec[keyCol]))
		if key == "" {
			continue
		}
		if _, ok := out[key]; !ok {
			out[key] = rec[valCol]
		}
	}
	if len(out) == 0 {
		log.Warn().Str("lookup", name).Msg("Reference table too narrow, lookup disabled")
		return nil
	}
	if short > 0 {
		log.Warn().Str("lookup", name).Int("skipped", short).Msg("Short reference rows skipped")
	}
	return out
}

func buildCompositeMap(rows [][]string) map[string]string {
	out := make(map[string]string)
	for _, rec := range rows {
		if len(rec) < minMunicipalityCols {
			continue
		}
		key := MunicipalityKey(rec[colProvince], rec[colMunicipality])
		if key == "|" {
			continue
		}
		if _, ok := out[key]; !ok {
			out[key] = rec[colMunicipalityMSP]
		}
	}
	if len(out) == 0 {
		log.Warn().Str("lookup", "municipality").Msg("Reference table too narrow, lookup disabled")
		return nil
	}
	return out
}

// LookupRegion resolves a province name to its region. Nil-safe.
func (m *Maps) LookupRegion(province string) (string, bool) {
	if m == nil || m.Region == nil {
		return "", false
	}
	v, ok := m.Region[strings.ToLower(strings.TrimSpace(province))]
	return v, ok
}
