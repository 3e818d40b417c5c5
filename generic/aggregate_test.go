package generic_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/insuremojo/admin-engine/generic"
)

// =============================================================================
// COUNT / SUM TESTS
// =============================================================================

func TestCountBy_CountsPerKey(t *testing.T) {
	// GIVEN: 3 records with statuses [active, active, pending]
	// WHEN: Counting by status
	// THEN: {active: 2, pending: 1}

	counts := generic.CountBy(testRecords(), byStatus)

	if n, _ := counts.Get("active"); n != 2 {
		t.Errorf("active count = %d, want 2", n)
	}
	if n, _ := counts.Get("pending"); n != 1 {
		t.Errorf("pending count = %d, want 1", n)
	}
	if counts.Len() != 2 {
		t.Errorf("distinct keys = %d, want 2", counts.Len())
	}
}

func TestCountBy_SumOfCountsEqualsCollectionLength(t *testing.T) {
	items := testRecords()
	counts := generic.CountBy(items, byStatus)

	total := 0
	for _, k := range counts.Keys() {
		n, _ := counts.Get(k)
		total += n
	}
	if total != len(items) {
		t.Fatalf("counts sum to %d, want %d", total, len(items))
	}
}

func TestCountBy_KeysInFirstOccurrenceOrder(t *testing.T) {
	// GIVEN: Records whose statuses first appear as pending, active, expired
	// WHEN: Counting by status
	// THEN: Keys come back in that order, not sorted

	items := []record{
		{id: "1", status: "pending"},
		{id: "2", status: "active"},
		{id: "3", status: "pending"},
		{id: "4", status: "expired"},
	}

	keys := generic.CountBy(items, byStatus).Keys()
	want := []string{"pending", "active", "expired"}

	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}

func TestSumBy_SumsPerKey(t *testing.T) {
	// GIVEN: Premiums [100, 200, 50] with statuses [active, active, pending]
	// WHEN: Summing by status
	// THEN: {active: 300, pending: 50}

	sums := generic.SumBy(testRecords(), byStatus, amountOf)

	if sum, _ := sums.Get("active"); !sum.Equal(kes(300)) {
		t.Errorf("active sum = %s, want 300", sum)
	}
	if sum, _ := sums.Get("pending"); !sum.Equal(kes(50)) {
		t.Errorf("pending sum = %s, want 50", sum)
	}
}

func TestSumBy_AbsentKeyNotMaterialized(t *testing.T) {
	sums := generic.SumBy(testRecords(), byStatus, amountOf)

	if _, ok := sums.Get("cancelled"); ok {
		t.Fatal("key with zero records should not be materialized")
	}
	// Absent keys still read as the identity element.
	if sum, _ := sums.Get("cancelled"); !sum.Equal(decimal.Zero) {
		t.Fatalf("absent key sum = %s, want 0", sum)
	}
}

func TestTotal_WholeCollection(t *testing.T) {
	total := generic.Total(testRecords(), amountOf)
	if !total.Equal(kes(350)) {
		t.Fatalf("total = %s, want 350", total)
	}
}

func TestTotal_EmptyCollection_IsZero(t *testing.T) {
	total := generic.Total(nil, amountOf)
	if !total.Equal(decimal.Zero) {
		t.Fatalf("empty total = %s, want 0", total)
	}
}

func TestTotal_EqualsSumBySummedOverKeys(t *testing.T) {
	// GIVEN: Any collection
	// WHEN: Comparing Total against SumBy summed across all keys
	// THEN: They agree (aggregation consistency)

	items := testRecords()
	sums := generic.SumBy(items, byStatus, amountOf)

	acc := decimal.Zero
	for _, k := range sums.Keys() {
		sum, _ := sums.Get(k)
		acc = acc.Add(sum)
	}

	if total := generic.Total(items, amountOf); !total.Equal(acc) {
		t.Fatalf("Total = %s but SumBy keys sum to %s", total, acc)
	}
}

func TestGrouped_KeysReturnsCopy(t *testing.T) {
	counts := generic.CountBy(testRecords(), byStatus)

	keys := counts.Keys()
	keys[0] = "mutated"

	if counts.Keys()[0] == "mutated" {
		t.Fatal("Keys() should return a copy, not the internal slice")
	}
}
