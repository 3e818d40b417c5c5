/*
handlers.go - HTTP API handlers for the admin console

PURPOSE:
  Exposes the console's data and the collection engine via REST. Handles
  HTTP request/response and JSON serialization, delegates filtering,
  aggregation, and report building to generic/ and insurance/.

ENDPOINTS:
  Customers:
    GET    /api/customers                 List (free-text search)
    POST   /api/customers                 Create
    GET    /api/customers/{id}            Get one
    GET    /api/customers/{id}/policies   Customer's policies
    GET    /api/customers/{id}/claims     Customer's claims
    GET    /api/customers/{id}/payments   Customer's payments

  Policies:
    GET    /api/policies                  List (search + status/category facets)
    POST   /api/policies                  Create
    GET    /api/policies/{id}             Get one
    PUT    /api/policies/{id}/status      Update status
    GET    /api/policies/{id}/payments    Policy's payments

  Claims:
    GET    /api/claims                    List (search + status facet)
    POST   /api/claims                    Create
    GET    /api/claims/{id}               Get one
    PUT    /api/claims/{id}/status        Update status with review notes

  Payments:
    GET    /api/payments                  List (search + status/method facets)
    POST   /api/payments                  Create

  Reports:
    GET    /api/reports/{kind}            JSON report document
    GET    /api/reports/{kind}/export     XLSX (or ?format=text) download

  Dashboard:
    GET    /api/dashboard                 Headline statistics

FILTER QUERY PARAMETERS:
  search         free-text, case-insensitive substring
  status,
  category,
  method         facet values; "all" or absent means no filter. Facet
                 matching is case-sensitive against the closed enum sets:
                 an unknown value empties the view (and is logged as a
                 likely caller bug, not treated as an error)
  from, to       inclusive YYYY-MM-DD bounds on creation date

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Record not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - seed.go: Demo data loader
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/insuremojo/admin-engine/generic"
	"github.com/insuremojo/admin-engine/insurance"
	"github.com/insuremojo/admin-engine/render"
	"github.com/insuremojo/admin-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store

	// now is swappable so tests can pin report timestamps and month windows.
	now func() time.Time
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store: store,
		now:   time.Now,
	}
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeStoreError maps domain errors onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, message string, err error) {
	switch {
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, generic.ErrInvalidRecord):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

// parseDateRange reads optional from/to query params (YYYY-MM-DD).
// The to bound is widened to the end of its day so records created any time
// on that date are included.
func parseDateRange(r *http.Request) (generic.Range, error) {
	var rng generic.Range

	if v := r.URL.Query().Get("from"); v != "" {
		from, err := time.Parse(dateFormat, v)
		if err != nil {
			return rng, err
		}
		rng.From = &from
	}
	if v := r.URL.Query().Get("to"); v != "" {
		to, err := time.Parse(dateFormat, v)
		if err != nil {
			return rng, err
		}
		to = to.Add(24*time.Hour - time.Nanosecond)
		rng.To = &to
	}
	return rng, nil
}

// warnUnknownFacet flags facet values outside the enumeration. The filter
// itself just returns an empty view; the log line is what tells a developer
// they typo'd a constant.
func warnUnknownFacet(field, value string, valid bool) {
	if value != "" && value != generic.FacetAll && !valid {
		log.Printf("unknown %s facet value %q: view will be empty", field, value)
	}
}

// =============================================================================
// CUSTOMER HANDLERS
// =============================================================================

// ListCustomers returns all customers, narrowed by ?search.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Store.ListCustomers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list customers", err)
		return
	}

	customers = generic.Search(customers, r.URL.Query().Get("search"), insurance.Customer.SearchFields)

	dtos := make([]CustomerDTO, len(customers))
	for i, c := range customers {
		dtos[i] = customerDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCustomer returns a single customer.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.Store.GetCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, "Failed to get customer", err)
		return
	}
	writeJSON(w, http.StatusOK, customerDTO(*c))
}

// CreateCustomer creates a new customer.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	c := insurance.Customer{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedAt: h.now(),
	}

	if err := h.Store.SaveCustomer(r.Context(), c); err != nil {
		writeStoreError(w, "Failed to create customer", err)
		return
	}
	writeJSON(w, http.StatusCreated, customerDTO(c))
}

// ListCustomerPolicies returns one customer's policies.
func (h *Handler) ListCustomerPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.Store.ListPoliciesByCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list policies", err)
		return
	}

	dtos := make([]PolicyDTO, len(policies))
	for i, p := range policies {
		dtos[i] = policyDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListCustomerClaims returns one customer's claims.
func (h *Handler) ListCustomerClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := h.Store.ListClaimsByCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list claims", err)
		return
	}

	dtos := make([]ClaimDTO, len(claims))
	for i, c := range claims {
		dtos[i] = claimDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListCustomerPayments returns one customer's payments.
func (h *Handler) ListCustomerPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Store.ListPaymentsByCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payments", err)
		return
	}

	dtos := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		dtos[i] = paymentDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// POLICY HANDLERS
// =============================================================================

// ListPolicies returns all policies, narrowed by search and facets.
// Status and category facets compose by conjunction, in either order.
func (h *Handler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.Store.ListPolicies(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list policies", err)
		return
	}

	q := r.URL.Query()
	status := q.Get("status")
	category := q.Get("category")
	warnUnknownFacet("status", status, insurance.PolicyStatus(status).Valid())
	warnUnknownFacet("category", category, insurance.Category(category).Valid())

	policies = generic.Search(policies, q.Get("search"), insurance.Policy.SearchFields)
	policies = generic.Facet(policies, status, func(p insurance.Policy) string { return string(p.Status) })
	policies = generic.Facet(policies, category, func(p insurance.Policy) string { return string(p.Category) })

	dtos := make([]PolicyDTO, len(policies))
	for i, p := range policies {
		dtos[i] = policyDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPolicy returns a single policy.
func (h *Handler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.GetPolicy(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, "Failed to get policy", err)
		return
	}
	writeJSON(w, http.StatusOK, policyDTO(*p))
}

// CreatePolicy creates a new policy.
func (h *Handler) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	var req CreatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	startDate, err := time.Parse(dateFormat, req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}
	endDate, err := time.Parse(dateFormat, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
		return
	}

	status := insurance.PolicyStatus(req.Status)
	if req.Status == "" {
		status = insurance.PolicyPending
	}

	p := insurance.Policy{
		ID:             uuid.NewString(),
		CustomerID:     req.CustomerID,
		ItemName:       req.ItemName,
		Category:       insurance.Category(req.Category),
		Status:         status,
		Premium:        decimal.NewFromFloat(req.Premium),
		CoverageAmount: decimal.NewFromFloat(req.CoverageAmount),
		StartDate:      startDate,
		EndDate:        endDate,
		CreatedAt:      h.now(),
	}

	if err := h.Store.SavePolicy(r.Context(), p); err != nil {
		writeStoreError(w, "Failed to create policy", err)
		return
	}
	writeJSON(w, http.StatusCreated, policyDTO(p))
}

// UpdatePolicyStatus moves a policy to a new status.
func (h *Handler) UpdatePolicyStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdatePolicyStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.Store.UpdatePolicyStatus(r.Context(), id, insurance.PolicyStatus(req.Status)); err != nil {
		writeStoreError(w, "Failed to update policy status", err)
		return
	}

	p, err := h.Store.GetPolicy(r.Context(), id)
	if err != nil {
		writeStoreError(w, "Failed to get policy", err)
		return
	}
	writeJSON(w, http.StatusOK, policyDTO(*p))
}

// ListPolicyPayments returns one policy's payments.
func (h *Handler) ListPolicyPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Store.ListPaymentsByPolicy(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payments", err)
		return
	}

	dtos := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		dtos[i] = paymentDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// CLAIM HANDLERS
// =============================================================================

// ListClaims returns all claims, narrowed by search and the status facet.
func (h *Handler) ListClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := h.Store.ListClaims(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list claims", err)
		return
	}

	q := r.URL.Query()
	status := q.Get("status")
	warnUnknownFacet("status", status, insurance.ClaimStatus(status).Valid())

	claims = generic.Search(claims, q.Get("search"), insurance.Claim.SearchFields)
	claims = generic.Facet(claims, status, func(c insurance.Claim) string { return string(c.Status) })

	dtos := make([]ClaimDTO, len(claims))
	for i, c := range claims {
		dtos[i] = claimDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetClaim returns a single claim.
func (h *Handler) GetClaim(w http.ResponseWriter, r *http.Request) {
	c, err := h.Store.GetClaim(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, "Failed to get claim", err)
		return
	}
	writeJSON(w, http.StatusOK, claimDTO(*c))
}

// CreateClaim creates a new claim in pending status.
func (h *Handler) CreateClaim(w http.ResponseWriter, r *http.Request) {
	var req CreateClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	incidentDate, err := time.Parse(dateFormat, req.IncidentDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid incident_date format (use YYYY-MM-DD)", err)
		return
	}

	c := insurance.Claim{
		ID:           uuid.NewString(),
		PolicyID:     req.PolicyID,
		CustomerID:   req.CustomerID,
		Description:  req.Description,
		Status:       insurance.ClaimPending,
		ClaimAmount:  decimal.NewFromFloat(req.ClaimAmount),
		IncidentDate: incidentDate,
		CreatedAt:    h.now(),
	}

	if err := h.Store.SaveClaim(r.Context(), c); err != nil {
		writeStoreError(w, "Failed to create claim", err)
		return
	}
	writeJSON(w, http.StatusCreated, claimDTO(c))
}

// UpdateClaimStatus moves a claim through review, recording notes.
func (h *Handler) UpdateClaimStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateClaimStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.Store.UpdateClaimStatus(r.Context(), id, insurance.ClaimStatus(req.Status), req.ReviewNotes); err != nil {
		writeStoreError(w, "Failed to update claim status", err)
		return
	}

	c, err := h.Store.GetClaim(r.Context(), id)
	if err != nil {
		writeStoreError(w, "Failed to get claim", err)
		return
	}
	writeJSON(w, http.StatusOK, claimDTO(*c))
}

// =============================================================================
// PAYMENT HANDLERS
// =============================================================================

// ListPayments returns all payments, narrowed by search and facets.
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Store.ListPayments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payments", err)
		return
	}

	q := r.URL.Query()
	status := q.Get("status")
	method := q.Get("method")
	warnUnknownFacet("status", status, insurance.PaymentStatus(status).Valid())
	warnUnknownFacet("method", method, insurance.PaymentMethod(method).Valid())

	payments = generic.Search(payments, q.Get("search"), insurance.Payment.SearchFields)
	payments = generic.Facet(payments, status, func(p insurance.Payment) string { return string(p.Status) })
	payments = generic.Facet(payments, method, func(p insurance.Payment) string { return string(p.Method) })

	dtos := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		dtos[i] = paymentDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreatePayment records a new payment.
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	p := insurance.Payment{
		ID:         uuid.NewString(),
		PolicyID:   req.PolicyID,
		CustomerID: req.CustomerID,
		Amount:     decimal.NewFromFloat(req.Amount),
		Method:     insurance.PaymentMethod(req.Method),
		Status:     insurance.PaymentStatus(req.Status),
		CreatedAt:  h.now(),
	}

	if err := h.Store.SavePayment(r.Context(), p); err != nil {
		writeStoreError(w, "Failed to create payment", err)
		return
	}
	writeJSON(w, http.StatusCreated, paymentDTO(p))
}

// =============================================================================
// NOTIFICATION HANDLERS
// =============================================================================

// ListNotifications returns a customer's notifications with the unread count.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")

	notifications, err := h.Store.ListNotifications(r.Context(), customerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list notifications", err)
		return
	}
	unread, err := h.Store.UnreadNotificationCount(r.Context(), customerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count notifications", err)
		return
	}

	dtos := make([]NotificationDTO, len(notifications))
	for i, n := range notifications {
		dtos[i] = notificationDTO(n)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": dtos,
		"unread_count":  unread,
	})
}

// MarkNotificationRead flags one notification as read.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.MarkNotificationRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, "Failed to mark notification read", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// MarkAllNotificationsRead flags all of a customer's notifications as read.
func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.MarkAllNotificationsRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to mark notifications read", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// buildReport assembles the document for a report request.
func (h *Handler) buildReport(r *http.Request) (generic.Document, insurance.ReportKind, int, error) {
	kind := insurance.ReportKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		return generic.Document{}, kind, http.StatusNotFound,
			errors.New("unknown report kind: " + string(kind))
	}

	mode := insurance.ReportMode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = insurance.ModeSummary
	}
	if !mode.Valid() {
		return generic.Document{}, kind, http.StatusBadRequest,
			errors.New("unknown report mode: " + string(mode))
	}

	rng, err := parseDateRange(r)
	if err != nil {
		return generic.Document{}, kind, http.StatusBadRequest, err
	}

	ctx := r.Context()
	now := h.now()

	switch kind {
	case insurance.KindPolicies:
		policies, err := h.Store.ListPolicies(ctx)
		if err != nil {
			return generic.Document{}, kind, http.StatusInternalServerError, err
		}
		return insurance.BuildPolicyReport(policies, mode, rng, now), kind, http.StatusOK, nil
	case insurance.KindPayments:
		payments, err := h.Store.ListPayments(ctx)
		if err != nil {
			return generic.Document{}, kind, http.StatusInternalServerError, err
		}
		return insurance.BuildPaymentReport(payments, mode, rng, now), kind, http.StatusOK, nil
	default:
		claims, err := h.Store.ListClaims(ctx)
		if err != nil {
			return generic.Document{}, kind, http.StatusInternalServerError, err
		}
		return insurance.BuildClaimReport(claims, mode, rng, now), kind, http.StatusOK, nil
	}
}

// GetReport returns a report document as JSON.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	doc, _, status, err := h.buildReport(r)
	if err != nil {
		writeError(w, status, "Failed to build report", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// ExportReport streams a report as a downloadable file.
// Default format is an XLSX workbook; ?format=text returns plain text.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	doc, kind, status, err := h.buildReport(r)
	if err != nil {
		writeError(w, status, "Failed to build report", err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := render.WriteText(w, doc); err != nil {
			log.Printf("text export failed: %v", err)
		}
		return
	}

	filename := render.Filename(string(kind), h.now())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := render.WriteXLSX(w, doc); err != nil {
		log.Printf("xlsx export failed: %v", err)
	}
}

// =============================================================================
// DASHBOARD HANDLER
// =============================================================================

// GetDashboardStats returns the dashboard's headline numbers.
func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customers, err := h.Store.ListCustomers(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list customers", err)
		return
	}
	policies, err := h.Store.ListPolicies(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list policies", err)
		return
	}
	claims, err := h.Store.ListClaims(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list claims", err)
		return
	}
	payments, err := h.Store.ListPayments(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payments", err)
		return
	}

	stats := insurance.ComputeDashboardStats(h.now(), customers, policies, claims, payments)
	writeJSON(w, http.StatusOK, dashboardDTO(stats))
}
