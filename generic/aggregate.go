/*
aggregate.go - Grouped counts and monetary sums

PURPOSE:
  Single-pass grouping of a collection by an arbitrary key, producing counts
  or decimal sums per key. Feeds dashboard tiles, chart legends, and the
  summary sections of generated reports.

KEY CONCEPTS:
  - Grouped: an insertion-ordered key/value mapping. Keys appear in order of
    first occurrence in the input, NOT sorted; table and legend consumers
    re-sort as they see fit.
  - CountBy / SumBy: never materialize a key with zero records. An absent key
    reads as the zero value via Get.
  - Total: whole-collection sum, decimal.Zero for empty input.

PRECISION:
  Monetary sums use decimal.Decimal throughout, so aggregation is exact and
  no rounding happens here. Rounding and currency formatting are presentation
  concerns applied at the render boundary.

SEE ALSO:
  - filter.go: Narrowing before aggregation
  - insurance/report.go: Summary sections built from these groupings
*/
package generic

import "github.com/shopspring/decimal"

// =============================================================================
// GROUPED - Insertion-ordered mapping
// =============================================================================

// Grouped maps keys to values, preserving the order in which keys were first
// seen. Plain Go maps randomize iteration order, which would shuffle report
// rows between runs.
type Grouped[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

func newGrouped[K comparable, V any]() *Grouped[K, V] {
	return &Grouped[K, V]{values: make(map[K]V)}
}

func (g *Grouped[K, V]) set(k K, v V) {
	if _, seen := g.values[k]; !seen {
		g.keys = append(g.keys, k)
	}
	g.values[k] = v
}

// Keys returns the distinct keys in first-occurrence order.
func (g *Grouped[K, V]) Keys() []K {
	out := make([]K, len(g.keys))
	copy(out, g.keys)
	return out
}

// Get returns the value for k and whether k is present.
// Absent keys return the zero value.
func (g *Grouped[K, V]) Get(k K) (V, bool) {
	v, ok := g.values[k]
	return v, ok
}

// Len returns the number of distinct keys.
func (g *Grouped[K, V]) Len() int {
	return len(g.keys)
}

// =============================================================================
// AGGREGATION
// =============================================================================

// CountBy groups items by key and counts the records sharing each key.
func CountBy[T any, K comparable](items []T, key func(T) K) *Grouped[K, int] {
	g := newGrouped[K, int]()
	for _, item := range items {
		k := key(item)
		n, _ := g.Get(k)
		g.set(k, n+1)
	}
	return g
}

// SumBy groups items by key and sums amount over the records sharing each
// key. Keys with no records are never materialized.
func SumBy[T any, K comparable](items []T, key func(T) K, amount func(T) decimal.Decimal) *Grouped[K, decimal.Decimal] {
	g := newGrouped[K, decimal.Decimal]()
	for _, item := range items {
		k := key(item)
		sum, _ := g.Get(k)
		g.set(k, sum.Add(amount(item)))
	}
	return g
}

// Total sums amount across the whole collection.
// The empty collection yields decimal.Zero, never a nil-ish value.
func Total[T any](items []T, amount func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(amount(item))
	}
	return total
}
