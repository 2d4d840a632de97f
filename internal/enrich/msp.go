package enrich

import (
	"strings"

	"joflow/internal/refmap"
	"joflow/internal/table"
)

// ResolveGeo fills the AREA and MSP columns from the reference maps.
//
// AREA is a single, non-cascading lookup of the province name; unresolved
// rows stay null. MSP runs a three-tier fallback cascade, each tier applied
// only to rows still unresolved after the prior one:
//
//  1. barangay tier, only for "Holy Spirit" rows inside Metro Manila
//  2. municipality tier, composite province|municipality key
//  3. province tier
//
// Rows with a blank province are never attempted. After all tiers, every
// attempted row still unresolved gets an empty string instead of null. AREA
// keeps null for unresolved rows; the source system is inconsistent here and
// downstream sheets distinguish the two, so the asymmetry stays.
//
// A map the reference table was too narrow to build disables that tier only.
func ResolveGeo(t *table.Table, ref *refmap.Maps) []string {
	if ref == nil {
		return []string{"reference table not loaded: region/MSP enrichment skipped"}
	}
	if !t.HasColumn(ColProvince) {
		return []string{"geo resolution skipped: PROVINCENAME column absent"}
	}

	var warnings []string
	if ref.Region == nil {
		warnings = append(warnings, "region lookup unavailable: AREA left null")
	}
	if ref.Barangay == nil {
		warnings = append(warnings, "barangay tier unavailable")
	}
	if ref.Municipality == nil {
		warnings = append(warnings, "municipality tier unavailable")
	}
	if ref.Province == nil {
		warnings = append(warnings, "province tier unavailable")
	}

	hasMunicipality := t.HasColumn(ColMunicipality)
	hasBarangay := t.HasColumn(ColBarangay)

	for i := range t.Rows {
		provCell := t.Get(i, ColProvince)
		if provCell == nil || strings.TrimSpace(*provCell) == "" {
			continue
		}
		prov := *provCell

		if area, ok := ref.LookupRegion(prov); ok {
			t.Set(i, ColArea, table.Val(area))
		}

		var msp *string

		// Tier 1: barangay, scoped to the one barangay the source system
		// special-cases.
		if ref.Barangay != nil && hasBarangay {
			if b := t.Get(i, ColBarangay); b != nil {
				brgy := strings.TrimSpace(*b)
				if strings.EqualFold(brgy, "Holy Spirit") &&
					strings.Contains(strings.ToLower(prov), "metro manila") {
					if v, ok := ref.Barangay[strings.ToLower(brgy)]; ok {
						msp = table.Val(v)
					}
				}
			}
		}

		// Tier 2: province|municipality composite key.
		if msp == nil && ref.Municipality != nil && hasMunicipality {
			if m := t.Get(i, ColMunicipality); m != nil {
				if v, ok := ref.Municipality[refmap.MunicipalityKey(prov, *m)]; ok {
					msp = table.Val(v)
				}
			}
		}

		// Tier 3: province only.
		if msp == nil && ref.Province != nil {
			if v, ok := ref.Province[strings.ToLower(strings.TrimSpace(prov))]; ok {
				msp = table.Val(v)
			}
		}

		// Attempted but unresolved rows get an empty string, not null.
		if msp == nil {
			msp = table.Val("")
		}
		t.Set(i, ColMSP, msp)
	}

	return warnings
}
