package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insuremojo/admin-engine/generic"
	"github.com/insuremojo/admin-engine/insurance"
	"github.com/insuremojo/admin-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func kes(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testPolicy(id string) insurance.Policy {
	return insurance.Policy{
		ID: id, CustomerID: "cust-1", ItemName: "MacBook Pro",
		Category: insurance.CategoryComputer, Status: insurance.PolicyActive,
		Premium: decimal.NewFromFloat(4500.50), CoverageAmount: kes(250000),
		StartDate: date(2024, time.January, 1), EndDate: date(2025, time.January, 1),
		CreatedAt: date(2024, time.January, 1),
	}
}

// =============================================================================
// POLICY PERSISTENCE
// =============================================================================

func TestPolicyRoundTrip_DecimalExact(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved := testPolicy("pol-1")
	require.NoError(t, store.SavePolicy(ctx, saved))

	got, err := store.GetPolicy(ctx, "pol-1")
	require.NoError(t, err)

	assert.Equal(t, saved.ItemName, got.ItemName)
	assert.Equal(t, saved.Category, got.Category)
	assert.Equal(t, saved.Status, got.Status)
	// Monetary columns are stored as decimal strings, so fractions
	// survive the round trip exactly.
	assert.True(t, got.Premium.Equal(decimal.NewFromFloat(4500.50)), "premium %s", got.Premium)
	assert.True(t, got.CoverageAmount.Equal(kes(250000)))
	assert.True(t, got.StartDate.Equal(saved.StartDate))
}

func TestSavePolicy_RejectsInvalidRecord(t *testing.T) {
	store := newTestStore(t)

	bad := testPolicy("pol-bad")
	bad.Premium = kes(-10)

	err := store.SavePolicy(context.Background(), bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, generic.ErrInvalidRecord))

	var fe *generic.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "premium", fe.Field)
}

func TestGetPolicy_Missing_IsNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetPolicy(context.Background(), "nope")
	assert.True(t, generic.IsNotFound(err))
}

func TestUpdatePolicyStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePolicy(ctx, testPolicy("pol-1")))
	require.NoError(t, store.UpdatePolicyStatus(ctx, "pol-1", insurance.PolicyCancelled))

	got, err := store.GetPolicy(ctx, "pol-1")
	require.NoError(t, err)
	assert.Equal(t, insurance.PolicyCancelled, got.Status)
}

func TestUpdatePolicyStatus_UnknownStatusRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SavePolicy(ctx, testPolicy("pol-1")))

	err := store.UpdatePolicyStatus(ctx, "pol-1", "Active")
	var fe *generic.FieldError
	require.ErrorAs(t, err, &fe)

	// Status unchanged after the rejected update.
	got, err := store.GetPolicy(ctx, "pol-1")
	require.NoError(t, err)
	assert.Equal(t, insurance.PolicyActive, got.Status)
}

func TestUpdatePolicyStatus_Missing_IsNotFound(t *testing.T) {
	store := newTestStore(t)
	err := store.UpdatePolicyStatus(context.Background(), "nope", insurance.PolicyActive)
	assert.True(t, generic.IsNotFound(err))
}

func TestListPolicies_CreationOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := testPolicy("pol-older")
	older.CreatedAt = date(2024, time.January, 1)
	newer := testPolicy("pol-newer")
	newer.CreatedAt = date(2024, time.June, 1)

	// Save out of order; listing comes back in creation order.
	require.NoError(t, store.SavePolicy(ctx, newer))
	require.NoError(t, store.SavePolicy(ctx, older))

	got, err := store.ListPolicies(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "pol-older", got[0].ID)
	assert.Equal(t, "pol-newer", got[1].ID)
}

// =============================================================================
// CLAIMS
// =============================================================================

func TestClaimRoundTripAndStatusUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	claim := insurance.Claim{
		ID: "clm-1", PolicyID: "pol-1", CustomerID: "cust-1",
		Description: "cracked screen", Status: insurance.ClaimPending,
		ClaimAmount: kes(24000), IncidentDate: date(2024, time.February, 2),
		CreatedAt: date(2024, time.February, 3),
	}
	require.NoError(t, store.SaveClaim(ctx, claim))

	require.NoError(t, store.UpdateClaimStatus(ctx, "clm-1", insurance.ClaimApproved, "verified with repair shop"))

	got, err := store.GetClaim(ctx, "clm-1")
	require.NoError(t, err)
	assert.Equal(t, insurance.ClaimApproved, got.Status)
	assert.Equal(t, "verified with repair shop", got.ReviewNotes)
	assert.True(t, got.ClaimAmount.Equal(kes(24000)))
}

// =============================================================================
// PAYMENTS AND PER-CUSTOMER VIEWS
// =============================================================================

func TestPaymentsByCustomerAndPolicy(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	payments := []insurance.Payment{
		{ID: "pay-1", PolicyID: "pol-1", CustomerID: "cust-1", Amount: kes(100),
			Method: insurance.MethodMpesa, Status: insurance.PaymentPaid, CreatedAt: date(2024, time.January, 1)},
		{ID: "pay-2", PolicyID: "pol-1", CustomerID: "cust-1", Amount: kes(200),
			Method: insurance.MethodCard, Status: insurance.PaymentPaid, CreatedAt: date(2024, time.February, 1)},
		{ID: "pay-3", PolicyID: "pol-2", CustomerID: "cust-2", Amount: kes(300),
			Method: insurance.MethodMpesa, Status: insurance.PaymentPending, CreatedAt: date(2024, time.March, 1)},
	}
	for _, p := range payments {
		require.NoError(t, store.SavePayment(ctx, p))
	}

	byCustomer, err := store.ListPaymentsByCustomer(ctx, "cust-1")
	require.NoError(t, err)
	require.Len(t, byCustomer, 2)
	assert.Equal(t, "pay-1", byCustomer[0].ID)

	byPolicy, err := store.ListPaymentsByPolicy(ctx, "pol-2")
	require.NoError(t, err)
	require.Len(t, byPolicy, 1)
	assert.Equal(t, "pay-3", byPolicy[0].ID)
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

func TestNotifications_UnreadCountTracksReadFlag(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, n := range []insurance.Notification{
		{ID: "ntf-1", CustomerID: "cust-1", Kind: insurance.NotifyClaimUpdate,
			Title: "Claim received", Message: "m1", CreatedAt: date(2024, time.March, 1)},
		{ID: "ntf-2", CustomerID: "cust-1", Kind: insurance.NotifyPaymentDue,
			Title: "Payment due", Message: "m2", CreatedAt: date(2024, time.March, 2)},
		{ID: "ntf-3", CustomerID: "cust-2", Kind: insurance.NotifyGeneral,
			Title: "Welcome", Message: "m3", CreatedAt: date(2024, time.March, 3)},
	} {
		require.NoError(t, store.SaveNotification(ctx, n))
	}

	unread, err := store.UnreadNotificationCount(ctx, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	require.NoError(t, store.MarkNotificationRead(ctx, "ntf-1"))
	unread, err = store.UnreadNotificationCount(ctx, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	require.NoError(t, store.MarkAllNotificationsRead(ctx, "cust-1"))
	unread, err = store.UnreadNotificationCount(ctx, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, 0, unread)

	// Other customers are untouched.
	unread, err = store.UnreadNotificationCount(ctx, "cust-2")
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
}

func TestNotifications_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, n := range []insurance.Notification{
		{ID: "ntf-old", CustomerID: "cust-1", Kind: insurance.NotifyGeneral,
			Title: "t", CreatedAt: date(2024, time.January, 1)},
		{ID: "ntf-new", CustomerID: "cust-1", Kind: insurance.NotifyGeneral,
			Title: "t", CreatedAt: date(2024, time.June, 1)},
	} {
		require.NoError(t, store.SaveNotification(ctx, n))
	}

	got, err := store.ListNotifications(ctx, "cust-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ntf-new", got[0].ID)
}

// =============================================================================
// RESET
// =============================================================================

func TestReset_ClearsAllTables(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePolicy(ctx, testPolicy("pol-1")))
	require.NoError(t, store.SaveCustomer(ctx, insurance.Customer{
		ID: "cust-1", Name: "Wanjiku Kamau", Email: "w@example.com", Phone: "+254700000000",
	}))

	require.NoError(t, store.Reset(ctx))

	policies, err := store.ListPolicies(ctx)
	require.NoError(t, err)
	assert.Empty(t, policies)

	customers, err := store.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)
}
