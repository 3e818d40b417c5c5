/*
daterange.go - Inclusive date-range narrowing

PURPOSE:
  Narrows any dated collection to an inclusive [From, To] range where either
  bound may be absent. Used by the report builders (pre-filter on creation
  time) and by dashboard month windows.

SEMANTICS:
  - Both bounds absent:  identity, input returned unchanged
  - Only From:           keep records with date >= From
  - Only To:             keep records with date <= To
  - From after To:       defined degenerate case, empty result (never panics)

SEE ALSO:
  - filter.go: Search and facet filters
  - insurance/report.go: Applies the range before aggregation
*/
package generic

import "time"

// Range is an inclusive date range. A nil bound is open on that side.
type Range struct {
	From *time.Time
	To   *time.Time
}

// IsOpen reports whether neither bound is set.
func (r Range) IsOpen() bool {
	return r.From == nil && r.To == nil
}

// Contains reports whether t falls within [From, To] inclusive,
// treating absent bounds as unbounded.
func (r Range) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// FilterRange returns the records whose date falls within r. A range with
// From after To yields an empty result; this is a caller error but a defined
// one, so views show "no data" instead of crashing.
func FilterRange[T any](items []T, r Range, date func(T) time.Time) []T {
	if r.IsOpen() {
		return items
	}

	var out []T
	for _, item := range items {
		if r.Contains(date(item)) {
			out = append(out, item)
		}
	}
	return out
}
