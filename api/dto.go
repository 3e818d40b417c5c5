/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

CONVENTIONS:
  - Monetary values are JSON numbers (converted from decimal at the edge)
  - Calendar dates are "YYYY-MM-DD", timestamps are RFC 3339
  - Every status field travels with its presentation tone so the console
    never re-derives colors

VALIDATION:
  Request validation happens in handlers via the domain Validate methods.
  DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - insurance/tone.go: Status tones
*/
package api

import (
	"time"

	"github.com/insuremojo/admin-engine/insurance"
)

const dateFormat = "2006-01-02"

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CUSTOMERS
// =============================================================================

type CustomerDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address,omitempty"`
	CreatedAt string `json:"created_at"`
}

type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

func customerDTO(c insurance.Customer) CustomerDTO {
	return CustomerDTO{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

// =============================================================================
// POLICIES
// =============================================================================

type PolicyDTO struct {
	ID             string  `json:"id"`
	CustomerID     string  `json:"customer_id"`
	ItemName       string  `json:"item_name"`
	Category       string  `json:"category"`
	Status         string  `json:"status"`
	StatusTone     string  `json:"status_tone"`
	Premium        float64 `json:"premium"`
	CoverageAmount float64 `json:"coverage_amount"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	CreatedAt      string  `json:"created_at"`
}

type CreatePolicyRequest struct {
	CustomerID     string  `json:"customer_id"`
	ItemName       string  `json:"item_name"`
	Category       string  `json:"category"`
	Status         string  `json:"status,omitempty"`
	Premium        float64 `json:"premium"`
	CoverageAmount float64 `json:"coverage_amount"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
}

type UpdatePolicyStatusRequest struct {
	Status string `json:"status"`
}

func policyDTO(p insurance.Policy) PolicyDTO {
	return PolicyDTO{
		ID:             p.ID,
		CustomerID:     p.CustomerID,
		ItemName:       p.ItemName,
		Category:       string(p.Category),
		Status:         string(p.Status),
		StatusTone:     string(p.Status.Tone()),
		Premium:        p.Premium.InexactFloat64(),
		CoverageAmount: p.CoverageAmount.InexactFloat64(),
		StartDate:      p.StartDate.Format(dateFormat),
		EndDate:        p.EndDate.Format(dateFormat),
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
	}
}

// =============================================================================
// CLAIMS
// =============================================================================

type ClaimDTO struct {
	ID           string  `json:"id"`
	PolicyID     string  `json:"policy_id"`
	CustomerID   string  `json:"customer_id"`
	Description  string  `json:"description"`
	Status       string  `json:"status"`
	StatusTone   string  `json:"status_tone"`
	ClaimAmount  float64 `json:"claim_amount"`
	IncidentDate string  `json:"incident_date"`
	ReviewNotes  string  `json:"review_notes,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type CreateClaimRequest struct {
	PolicyID     string  `json:"policy_id"`
	CustomerID   string  `json:"customer_id"`
	Description  string  `json:"description"`
	ClaimAmount  float64 `json:"claim_amount"`
	IncidentDate string  `json:"incident_date"`
}

type UpdateClaimStatusRequest struct {
	Status      string `json:"status"`
	ReviewNotes string `json:"review_notes,omitempty"`
}

func claimDTO(c insurance.Claim) ClaimDTO {
	return ClaimDTO{
		ID:           c.ID,
		PolicyID:     c.PolicyID,
		CustomerID:   c.CustomerID,
		Description:  c.Description,
		Status:       string(c.Status),
		StatusTone:   string(c.Status.Tone()),
		ClaimAmount:  c.ClaimAmount.InexactFloat64(),
		IncidentDate: c.IncidentDate.Format(dateFormat),
		ReviewNotes:  c.ReviewNotes,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
}

// =============================================================================
// PAYMENTS
// =============================================================================

type PaymentDTO struct {
	ID         string  `json:"id"`
	PolicyID   string  `json:"policy_id"`
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
	Status     string  `json:"status"`
	StatusTone string  `json:"status_tone"`
	CreatedAt  string  `json:"created_at"`
}

type CreatePaymentRequest struct {
	PolicyID   string  `json:"policy_id"`
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
	Status     string  `json:"status"`
}

func paymentDTO(p insurance.Payment) PaymentDTO {
	return PaymentDTO{
		ID:         p.ID,
		PolicyID:   p.PolicyID,
		CustomerID: p.CustomerID,
		Amount:     p.Amount.InexactFloat64(),
		Method:     string(p.Method),
		Status:     string(p.Status),
		StatusTone: string(p.Status.Tone()),
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

type NotificationDTO struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Kind       string `json:"kind"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	IsRead     bool   `json:"is_read"`
	CreatedAt  string `json:"created_at"`
}

func notificationDTO(n insurance.Notification) NotificationDTO {
	return NotificationDTO{
		ID:         n.ID,
		CustomerID: n.CustomerID,
		Kind:       string(n.Kind),
		Title:      n.Title,
		Message:    n.Message,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt.Format(time.RFC3339),
	}
}

// =============================================================================
// DASHBOARD
// =============================================================================

type DashboardStatsDTO struct {
	TotalCustomers        int     `json:"total_customers"`
	ActivePolicies        int     `json:"active_policies"`
	PendingClaims         int     `json:"pending_claims"`
	NewCustomersThisMonth int     `json:"new_customers_this_month"`
	TotalPremium          float64 `json:"total_premium"`
	RevenueThisMonth      float64 `json:"revenue_this_month"`
	ClaimsPaidThisMonth   float64 `json:"claims_paid_this_month"`
}

func dashboardDTO(s insurance.DashboardStats) DashboardStatsDTO {
	return DashboardStatsDTO{
		TotalCustomers:        s.TotalCustomers,
		ActivePolicies:        s.ActivePolicies,
		PendingClaims:         s.PendingClaims,
		NewCustomersThisMonth: s.NewCustomersThisMonth,
		TotalPremium:          s.TotalPremium.InexactFloat64(),
		RevenueThisMonth:      s.RevenueThisMonth.InexactFloat64(),
		ClaimsPaidThisMonth:   s.ClaimsPaidThisMonth.InexactFloat64(),
	}
}
