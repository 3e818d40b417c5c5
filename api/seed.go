/*
seed.go - Demo data loader

PURPOSE:
  Populates the database with a realistic demo dataset so the console has
  something to show: customers, policies across several categories and
  statuses, claims in various review states, payments over multiple methods,
  and a few notifications.

HOW IT WORKS:
 1. Reset database (clear all data)
 2. Insert customers
 3. Insert policies, claims, payments referencing them
 4. Insert notifications

USAGE VIA API:

	POST /api/seed

NOTE:

	Seeding resets the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: LoadSeedData handler
*/
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insuremojo/admin-engine/insurance"
)

// LoadSeedData resets the database and loads the demo dataset.
func (h *Handler) LoadSeedData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	if err := h.seedDemoData(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load seed data", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (h *Handler) seedDemoData(ctx context.Context) error {
	now := h.now()
	day := func(daysAgo int) time.Time { return now.AddDate(0, 0, -daysAgo) }
	kes := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

	customers := []insurance.Customer{
		{ID: "cust-001", Name: "Wanjiku Kamau", Email: "wanjiku@example.com", Phone: "+254745678901", Address: "Kilimani, Nairobi", CreatedAt: day(210)},
		{ID: "cust-002", Name: "Brian Otieno", Email: "brian.otieno@example.com", Phone: "+254712345678", Address: "Milimani, Kisumu", CreatedAt: day(180)},
		{ID: "cust-003", Name: "Amina Hassan", Email: "amina.hassan@example.com", Phone: "+254723456789", Address: "Nyali, Mombasa", CreatedAt: day(95)},
		{ID: "cust-004", Name: "Peter Mwangi", Email: "peter.mwangi@example.com", Phone: "+254734567890", CreatedAt: day(12)},
	}
	for _, c := range customers {
		if err := h.Store.SaveCustomer(ctx, c); err != nil {
			return err
		}
	}

	policies := []insurance.Policy{
		{ID: "pol-001", CustomerID: "cust-001", ItemName: "MacBook Pro 14", Category: insurance.CategoryComputer,
			Status: insurance.PolicyActive, Premium: kes(4500), CoverageAmount: kes(250000),
			StartDate: day(200), EndDate: day(200).AddDate(1, 0, 0), CreatedAt: day(200)},
		{ID: "pol-002", CustomerID: "cust-001", ItemName: "Samsung Galaxy S24", Category: insurance.CategoryMobile,
			Status: insurance.PolicyActive, Premium: kes(1800), CoverageAmount: kes(120000),
			StartDate: day(150), EndDate: day(150).AddDate(1, 0, 0), CreatedAt: day(150)},
		{ID: "pol-003", CustomerID: "cust-002", ItemName: "Canon EOS R6", Category: insurance.CategoryCamera,
			Status: insurance.PolicyClaimed, Premium: kes(3200), CoverageAmount: kes(300000),
			StartDate: day(170), EndDate: day(170).AddDate(1, 0, 0), CreatedAt: day(170)},
		{ID: "pol-004", CustomerID: "cust-002", ItemName: "LG Refrigerator", Category: insurance.CategoryAppliance,
			Status: insurance.PolicyExpired, Premium: kes(2100), CoverageAmount: kes(90000),
			StartDate: day(450), EndDate: day(85), CreatedAt: day(450)},
		{ID: "pol-005", CustomerID: "cust-003", ItemName: "Sony Bravia 65", Category: insurance.CategoryElectronics,
			Status: insurance.PolicyPending, Premium: kes(2600), CoverageAmount: kes(180000),
			StartDate: day(10), EndDate: day(10).AddDate(1, 0, 0), CreatedAt: day(10)},
		{ID: "pol-006", CustomerID: "cust-004", ItemName: "Household Contents Cover", Category: insurance.CategoryHousehold,
			Status: insurance.PolicyActive, Premium: kes(6000), CoverageAmount: kes(500000),
			StartDate: day(8), EndDate: day(8).AddDate(1, 0, 0), CreatedAt: day(8)},
	}
	for _, p := range policies {
		if err := h.Store.SavePolicy(ctx, p); err != nil {
			return err
		}
	}

	claims := []insurance.Claim{
		{ID: "clm-001", PolicyID: "pol-003", CustomerID: "cust-002",
			Description: "Camera dropped during a shoot at Hell's Gate, lens shattered",
			Status:      insurance.ClaimApproved, ClaimAmount: kes(85000),
			IncidentDate: day(40), ReviewNotes: "Repair quote verified with authorized dealer", CreatedAt: day(38)},
		{ID: "clm-002", PolicyID: "pol-002", CustomerID: "cust-001",
			Description: "Phone screen cracked after a fall",
			Status:      insurance.ClaimPending, ClaimAmount: kes(24000),
			IncidentDate: day(6), CreatedAt: day(5)},
		{ID: "clm-003", PolicyID: "pol-001", CustomerID: "cust-001",
			Description: "Laptop water damage, keyboard unresponsive",
			Status:      insurance.ClaimReviewing, ClaimAmount: kes(60000),
			IncidentDate: day(15), CreatedAt: day(14)},
		{ID: "clm-004", PolicyID: "pol-004", CustomerID: "cust-002",
			Description: "Compressor failure reported after policy lapsed",
			Status:      insurance.ClaimRejected, ClaimAmount: kes(45000),
			IncidentDate: day(60), ReviewNotes: "Policy expired before incident date", CreatedAt: day(58)},
	}
	for _, c := range claims {
		if err := h.Store.SaveClaim(ctx, c); err != nil {
			return err
		}
	}

	payments := []insurance.Payment{
		{ID: "pay-001", PolicyID: "pol-001", CustomerID: "cust-001", Amount: kes(4500),
			Method: insurance.MethodMpesa, Status: insurance.PaymentPaid, CreatedAt: day(200)},
		{ID: "pay-002", PolicyID: "pol-002", CustomerID: "cust-001", Amount: kes(1800),
			Method: insurance.MethodMpesa, Status: insurance.PaymentPaid, CreatedAt: day(150)},
		{ID: "pay-003", PolicyID: "pol-003", CustomerID: "cust-002", Amount: kes(3200),
			Method: insurance.MethodCard, Status: insurance.PaymentPaid, CreatedAt: day(170)},
		{ID: "pay-004", PolicyID: "pol-004", CustomerID: "cust-002", Amount: kes(2100),
			Method: insurance.MethodEquityBank, Status: insurance.PaymentPaid, CreatedAt: day(450)},
		{ID: "pay-005", PolicyID: "pol-005", CustomerID: "cust-003", Amount: kes(2600),
			Method: insurance.MethodAirtelMoney, Status: insurance.PaymentPending, CreatedAt: day(10)},
		{ID: "pay-006", PolicyID: "pol-006", CustomerID: "cust-004", Amount: kes(6000),
			Method: insurance.MethodKCBBank, Status: insurance.PaymentPaid, CreatedAt: day(8)},
	}
	for _, p := range payments {
		if err := h.Store.SavePayment(ctx, p); err != nil {
			return err
		}
	}

	notifications := []insurance.Notification{
		{ID: "ntf-001", CustomerID: "cust-002", Kind: insurance.NotifyClaimUpdate,
			Title: "Claim approved", Message: "Your claim clm-001 has been approved for payout.", CreatedAt: day(36)},
		{ID: "ntf-002", CustomerID: "cust-001", Kind: insurance.NotifyClaimUpdate,
			Title: "Claim received", Message: "We received your claim clm-002 and will review it shortly.", CreatedAt: day(5)},
		{ID: "ntf-003", CustomerID: "cust-003", Kind: insurance.NotifyPaymentDue,
			Title: "Payment pending", Message: "Your premium payment for pol-005 is still pending.", CreatedAt: day(9)},
		{ID: "ntf-004", CustomerID: "cust-002", Kind: insurance.NotifyPolicyExpiry,
			Title: "Policy expired", Message: "Policy pol-004 expired. Renew to stay covered.", IsRead: true, CreatedAt: day(85)},
	}
	for _, n := range notifications {
		if err := h.Store.SaveNotification(ctx, n); err != nil {
			return err
		}
	}

	return nil
}
