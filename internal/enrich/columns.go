package enrich

import (
	"strings"
	"time"
)

// Source columns consumed by the pipeline. All are optional; a missing column
// degrades the derivation that depends on it, never the run.
const (
	ColAcctNo       = "ACCTNO"
	ColJoNo         = "JONO"
	ColDateCreated  = "DATEJOCREATED"
	ColDateClosed   = "DATEJOCLOSED"
	ColPackageName  = "PACKAGENAME"
	ColProvince     = "PROVINCENAME"
	ColMunicipality = "MUNICIPALITYNAME"
	ColBarangay     = "BARANGAYNAME"
)

// Derived columns. All are recomputed in full on every run.
const (
	ColAlignedAcct  = "ALIGNED ACCT"
	ColAlignedJoNo  = "ALIGNED JONO"
	ColCompositeKey = "ACCT+JONO"
	ColJoCrYear     = "JOCRYEAR"
	ColJoToday      = "JOTODAY"
	ColDateAsOf     = "DATE AS OF"
	ColSegment      = "SEGMENT"
	ColProduct      = "PRODUCT"
	ColAgeing       = "AGEING"
	ColAgeingCoarse = "AGEING (2)"
	ColRunDate      = "RUN DATE"
	ColArea         = "AREA"
	ColMSP          = "MSP"
)

// dateStamp renders a run date as the MMMDD token used in the date-stamped
// column names, e.g. "FEB01".
func dateStamp(runDate time.Time) string {
	return strings.ToUpper(runDate.Format("Jan02"))
}

// AgedHoursColumn is the date-stamped hours column name for a run date.
func AgedHoursColumn(runDate time.Time) string {
	return "AGED (HOURS) - " + dateStamp(runDate)
}

// AgeingDupColumn is the date-stamped duplicate of the coarse ageing bucket.
func AgeingDupColumn(runDate time.Time) string {
	return "AGEING (2) - " + dateStamp(runDate)
}

// RequiredColumns is the fixed set of output columns the schema normalizer
// guarantees, including the two names derived from the run date. Source
// columns are deliberately not part of the set: later stages test source
// presence to decide whether a derivation can run at all.
func RequiredColumns(runDate time.Time) []string {
	return []string{
		ColAlignedAcct,
		ColAlignedJoNo,
		ColCompositeKey,
		ColJoCrYear,
		ColJoToday,
		ColDateAsOf,
		ColSegment,
		ColProduct,
		ColAgeing,
		ColAgeingCoarse,
		AgedHoursColumn(runDate),
		ColRunDate,
		AgeingDupColumn(runDate),
		ColArea,
		ColMSP,
	}
}
