package enrich

import (
	"strings"

	"joflow/internal/table"
)

// Infrastructure brands whose presence in a package name marks a residential
// fiber subscription.
var infraBrands = []string{
	"FIBERHOME",
	"HUAWEI",
	"ZTE",
	"NOKIA",
	"ALCATEL",
	"ECI",
	"UBIQUITI",
	"GPON",
	"FTTH",
	"VDSL",
}

// ClassifySegments maps package names to SEGMENT/PRODUCT labels. The region
// side of the SKY rule reads the province column, which carries region-level
// names ("METRO MANILA") in the source exports. If either column is absent
// the classifier is skipped entirely and a warning is returned; this is
// non-fatal.
//
// The rules are ordered and first-match-wins: a name containing both "BIDA"
// and "SKY" classifies as BIDA. Rows with a null package name stay null.
func ClassifySegments(t *table.Table) []string {
	if !t.HasColumn(ColPackageName) || !t.HasColumn(ColProvince) {
		return []string{"segment classification skipped: PACKAGENAME or PROVINCENAME column absent"}
	}

	for i := range t.Rows {
		v := t.Get(i, ColPackageName)
		if v == nil {
			continue
		}
		name := strings.ToUpper(*v)

		region := ""
		if r := t.Get(i, ColProvince); r != nil {
			region = strings.ToUpper(*r)
		}

		segment, product := classify(name, region)
		if segment == "" {
			continue
		}
		t.Set(i, ColSegment, table.Val(segment))
		t.Set(i, ColProduct, table.Val(product))
	}
	return nil
}

// classify applies the ordered rule cascade. Order is significant; callers
// must not reorder the guards.
func classify(name, region string) (segment, product string) {
	switch {
	case strings.Contains(name, "BIDA"):
		return "BIDA", "BIDA"
	case strings.Contains(name, "S2S"):
		return "S2S", "S2S"
	case strings.Contains(name, "SKY") && strings.Contains(region, "METRO MANILA"):
		return "SKYNCR", "SKY"
	case strings.Contains(name, "SKY"):
		return "SKY REGIONAL", "SKY"
	case strings.Contains(name, "BIZ"):
		return "SME", "FIBER"
	case strings.Contains(name, "STREAMTECH"):
		return "Streamtech", "Streamtech"
	case containsAny(name, infraBrands):
		return "RES", "FIBER"
	}
	return "", ""
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
