/*
stats.go - Dashboard statistics

PURPOSE:
  The admin dashboard's headline tiles, computed from already-fetched
  collections with the generic engine. "This month" windows run from the
  first of the current calendar month through now, inclusive.
*/
package insurance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/insuremojo/admin-engine/generic"
)

// DashboardStats are the headline numbers on the admin dashboard.
type DashboardStats struct {
	TotalCustomers        int
	ActivePolicies        int
	PendingClaims         int
	NewCustomersThisMonth int
	TotalPremium          decimal.Decimal
	RevenueThisMonth      decimal.Decimal
	ClaimsPaidThisMonth   decimal.Decimal
}

// ComputeDashboardStats derives the dashboard tiles from raw collections.
func ComputeDashboardStats(now time.Time, customers []Customer, policies []Policy, claims []Claim, payments []Payment) DashboardStats {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	thisMonth := generic.Range{From: &monthStart, To: &now}

	active := generic.Facet(policies, string(PolicyActive), func(p Policy) string { return string(p.Status) })
	pending := generic.Facet(claims, string(ClaimPending), func(c Claim) string { return string(c.Status) })

	paidPayments := generic.Facet(payments, string(PaymentPaid), func(p Payment) string { return string(p.Status) })
	revenue := generic.Total(
		generic.FilterRange(paidPayments, thisMonth, Payment.Created),
		func(p Payment) decimal.Decimal { return p.Amount },
	)

	paidClaims := generic.Facet(claims, string(ClaimPaid), func(c Claim) string { return string(c.Status) })
	claimsPaid := generic.Total(
		generic.FilterRange(paidClaims, thisMonth, Claim.Created),
		func(c Claim) decimal.Decimal { return c.ClaimAmount },
	)

	return DashboardStats{
		TotalCustomers:        len(customers),
		ActivePolicies:        len(active),
		PendingClaims:         len(pending),
		NewCustomersThisMonth: len(generic.FilterRange(customers, thisMonth, Customer.Created)),
		TotalPremium:          generic.Total(policies, func(p Policy) decimal.Decimal { return p.Premium }),
		RevenueThisMonth:      revenue,
		ClaimsPaidThisMonth:   claimsPaid,
	}
}
