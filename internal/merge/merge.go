// Package merge provides the relational join used to combine two loaded
// tables on a shared key column.
package merge

import (
	"fmt"

	"joflow/internal/table"
)

// How selects the join mode.
type How string

const (
	Inner How = "inner"
	Left  How = "left"
)

// ParseHow validates a join-mode string.
func ParseHow(s string) (How, error) {
	switch How(s) {
	case Inner, Left:
		return How(s), nil
	case "":
		return Left, nil
	default:
		return "", fmt.Errorf("unknown join mode %q (want inner or left)", s)
	}
}

// Tables joins left and right on the key column. Overlapping non-key columns
// are disambiguated with _x (left) and _y (right) suffixes. Rows with equal
// keys combine pairwise, so duplicate keys on both sides expand. A left join
// keeps unmatched left rows with null right cells; an inner join drops them.
// Rows with a null key never match.
func Tables(left, right *table.Table, on string, how How) (*table.Table, error) {
	if !left.HasColumn(on) {
		return nil, fmt.Errorf("left table has no column %q", on)
	}
	if !right.HasColumn(on) {
		return nil, fmt.Errorf("right table has no column %q", on)
	}

	overlap := map[string]bool{}
	for _, c := range right.Columns {
		if c != on && left.HasColumn(c) {
			overlap[c] = true
		}
	}

	leftName := func(c string) string {
		if overlap[c] {
			return c + "_x"
		}
		return c
	}
	rightName := func(c string) string {
		if overlap[c] {
			return c + "_y"
		}
		return c
	}

	out := table.New()
	out.Format = left.Format
	for _, c := range left.Columns {
		out.EnsureColumn(leftName(c))
	}
	for _, c := range right.Columns {
		if c != on {
			out.EnsureColumn(rightName(c))
		}
	}

	// Index right rows by key, preserving file order within a key.
	index := map[string][]table.Row{}
	for _, r := range right.Rows {
		if k := r[on]; k != nil {
			index[*k] = append(index[*k], r)
		}
	}

	for _, l := range left.Rows {
		var matches []table.Row
		if k := l[on]; k != nil {
			matches = index[*k]
		}

		if len(matches) == 0 {
			if how == Inner {
				continue
			}
			out.Append(combine(left, right, l, nil, on, leftName, rightName))
			continue
		}
		for _, r := range matches {
			out.Append(combine(left, right, l, r, on, leftName, rightName))
		}
	}
	return out, nil
}

func combine(left, right *table.Table, l, r table.Row, on string, leftName, rightName func(string) string) table.Row {
	row := table.Row{}
	for _, c := range left.Columns {
		row[leftName(c)] = l[c]
	}
	if r != nil {
		for _, c := range right.Columns {
			if c != on {
				row[rightName(c)] = r[c]
			}
		}
	}
	return row
}
