/*
Package generic provides the core collection engine for the admin console.

PURPOSE:
  This package contains domain-agnostic functions for narrowing and
  summarizing in-memory collections. Whether the records are policies,
  claims, or payments, the same engine handles free-text search, facet
  filtering, date-range narrowing, and grouped aggregation.

KEY CONCEPTS IN THIS FILE (filter.go):
  - Search: case-insensitive substring match over a record's searchable fields
  - Facet: exact-match filter over one enumerated field, with an "all" sentinel

DESIGN PRINCIPLES:
  1. Purity: every function returns a new slice; caller-owned input is
     never mutated or reordered
  2. Identity: empty search terms and the "all" sentinel return the input
     collection unchanged
  3. Composition: filters compose by conjunction and are order-independent

USAGE:
  active := generic.Facet(policies, "active", func(p Policy) string {
      return string(p.Status)
  })
  hits := generic.Search(active, "macbook", Policy.SearchFields)

SEE ALSO:
  - daterange.go: Inclusive date-range narrowing
  - aggregate.go: Grouped counts and sums
  - document.go: Report document structures
*/
package generic

import "strings"

// FacetAll is the sentinel facet value meaning "no filter".
const FacetAll = "all"

// =============================================================================
// SEARCH - Case-insensitive substring match
// =============================================================================

// Search returns the records whose searchable fields contain term as a
// case-insensitive substring. An empty or whitespace-only term returns the
// input unchanged. Matching is plain substring: no tokenization, no fuzz.
func Search[T any](items []T, term string, fields func(T) []string) []T {
	term = strings.TrimSpace(term)
	if term == "" {
		return items
	}
	needle := strings.ToLower(term)

	var out []T
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// =============================================================================
// FACET - Exact match on an enumerated field
// =============================================================================

// Facet returns the records whose key equals value exactly. The comparison is
// case-sensitive: enumerations are closed lowercase sets, so "Active" matches
// nothing while "active" matches normally. A value outside the enumeration is
// therefore NOT an error; it silently yields an empty result. Callers passing
// user input should validate it first or expect an emptied view.
//
// The FacetAll sentinel returns the input unchanged.
func Facet[T any](items []T, value string, key func(T) string) []T {
	if value == "" || value == FacetAll {
		return items
	}

	var out []T
	for _, item := range items {
		if key(item) == value {
			out = append(out, item)
		}
	}
	return out
}
