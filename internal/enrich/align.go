package enrich

import (
	"strings"

	"joflow/internal/table"
)

const (
	acctWidth = 13
	jonoWidth = 8
)

// AlignKeys normalizes the two identifier columns and derives the composite
// key. Identifiers are trimmed and left-padded with '0' to a fixed width; a
// source longer than the width is kept as-is. If the job-number column is
// absent the aligned job column stays null for every row.
//
// The composite key is built only when both aligned parts are present and the
// job value is truthy. An all-zero job number counts as falsy and suppresses
// the key; the source system behaves this way and downstream consumers may
// depend on it, so it is kept.
func AlignKeys(t *table.Table) {
	hasAcct := t.HasColumn(ColAcctNo)
	hasJono := t.HasColumn(ColJoNo)

	for i := range t.Rows {
		var acct, jono *string

		if hasAcct {
			if v := t.Get(i, ColAcctNo); v != nil {
				padded := pad(strings.TrimSpace(*v), acctWidth)
				acct = &padded
			}
		}
		if hasJono {
			if v := t.Get(i, ColJoNo); v != nil {
				padded := pad(strings.TrimSpace(*v), jonoWidth)
				jono = &padded
			}
		}

		t.Set(i, ColAlignedAcct, acct)
		t.Set(i, ColAlignedJoNo, jono)

		var composite *string
		if acct != nil && jono != nil && truthy(*jono) {
			key := *acct + ":" + *jono
			composite = &key
		}
		t.Set(i, ColCompositeKey, composite)
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// truthy reports whether a zero-padded identifier carries any value at all.
func truthy(s string) bool {
	return strings.Trim(s, "0") != ""
}
