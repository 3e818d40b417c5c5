/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Collection endpoints with search, facet, and date filters
- Status update endpoints and their error mapping
- Report documents and file exports
- Dashboard statistics over the demo dataset
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/insuremojo/admin-engine/store/sqlite"
)

// testNow pins the handler clock so seed dates and month windows are stable.
var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (*Handler, http.Handler) {
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	h := NewHandler(store)
	h.now = func() time.Time { return testNow }

	if err := h.seedDemoData(context.Background()); err != nil {
		t.Fatalf("Failed to seed demo data: %v", err)
	}
	return h, NewRouter(h)
}

func doRequest(t *testing.T, router http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeList[T any](t *testing.T, rec *httptest.ResponseRecorder) []T {
	t.Helper()
	var out []T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response: %v\nbody: %s", err, rec.Body.String())
	}
	return out
}

// =============================================================================
// POLICY LIST FILTERS
// =============================================================================

func TestListPolicies_NoFilters(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doRequest(t, router, "GET", "/api/policies", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	policies := decodeList[PolicyDTO](t, rec)
	if len(policies) != 6 {
		t.Errorf("Expected 6 policies, got %d", len(policies))
	}
}

func TestListPolicies_StatusFacet(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doRequest(t, router, "GET", "/api/policies?status=active", "")
	policies := decodeList[PolicyDTO](t, rec)

	if len(policies) != 3 {
		t.Fatalf("Expected 3 active policies, got %d", len(policies))
	}
	for _, p := range policies {
		if p.Status != "active" {
			t.Errorf("Expected status 'active', got '%s'", p.Status)
		}
		if p.StatusTone != "success" {
			t.Errorf("Expected tone 'success', got '%s'", p.StatusTone)
		}
	}
}

func TestListPolicies_FacetAllIsNoFilter(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doRequest(t, router, "GET", "/api/policies?status=all&category=all", "")
	policies := decodeList[PolicyDTO](t, rec)

	if len(policies) != 6 {
		t.Errorf("Expected all 6 policies with status=all, got %d", len(policies))
	}
}

func TestListPolicies_UnknownFacetEmptiesView(t *testing.T) {
	// An out-of-enum facet value is not an error; it just matches nothing.
	_, router := newTestHandler(t)

	rec := doRequest(t, router, "GET", "/api/policies?status=Active", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	policies := decodeList[PolicyDTO](t, rec)
	if len(policies) != 0 {
		t.Errorf("Expected 0 policies for unknown facet value, got %d", len(policies))
	}
}

func TestListPolicies_SearchAndFacetCompose(t *testing.T) {
	_, router := newTestHandler(t)

	// "sam" matches "Samsung Galaxy S24" case-insensitively.
	rec := doRequest(t, router, "GET", "/api/policies?search=sam&status=active", "")
	policies := decodeList[PolicyDTO](t, rec)

	if len(policies) != 1 {
		t.Fatalf("Expected 1 policy, got %d", len(policies))
	}
	if policies[0].ID != "pol-002" {
		t.Errorf("Expected pol-002, got %s", policies[0].ID)
	}
}

func TestListPolicies_CategoryFacet(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doRequest(t, router, "GET", "/api/policies?category=computer", "")
	policies := decodeList[PolicyDTO](t, rec)

	if len(policies) != 1 {
		t.Fatalf("Expected 1 computer policy, got %d", len(policies))
	}
	if policies[0].ItemName != "MacBook Pro 14" {
		t.Errorf("Expected MacBook Pro 14, got %s", policies[0].ItemName)
	}
}

// =============================================================================
// POLICY MUTATIONS
// =============================================================================

func TestCreatePolicy_DefaultsToPending(t *testing.T) {
	_, router := newTestHandler(t)

	body := `{
		"customer_id": "cust-001",
		"item_name": "iPad Air",
		"category": "electronics",
		"premium": 1500,
		"coverage_amount": 95000,
		"start_date": "2024-06-15",
		"end_date": "2025-06-15"
	}`
	rec := doRequest(t, router, "POST", "/api/policies", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var p PolicyDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if p.ID == "" {
		t.Error("Expected a generated policy ID")
	}
	if p.Status != "pending" {
		t.Errorf("Expected default status 'pending', got '%s'", p.Status)
	}
	if p.StatusTone != "warning" {
		t.Errorf("Expected tone 'warning', got '%s'", p.StatusTone)
	}
}

func TestCreatePolicy_ValidationErrorIs400(t *testing.T) {
	_, router := newTestHandler(t)

	// Negative premium fails domain validation.
	body := `{
		"customer_id": "cust-001",
		"item_name": "iPad Air",
		"category": "electronics",
		"premium": -10,
		"coverage_amount": 95000,
		"start_date": "2024-06-15",
		"end_date": "2025-06-15"
	}`
	rec := doRequest(t, router, "POST", "/api/policies", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if !strings.Contains(resp.Details, "premium") {
		t.Errorf("Expected error details naming the premium field, got %q", resp.Details)
	}
}

func TestUpdatePolicyStatus_RoundTrip(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doRequest(t, router, "PUT", "/api/policies/pol-005/status", `{"status": "active"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var p PolicyDTO
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.Status != "active" {
		t.Errorf("Expected status 'active', got '%s'", p.Status)
	}
}

func TestUpdatePolicyStatus_UnknownPolicyIs404(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doRequest(t, router, "PUT", "/api/policies/nope/status", `{"status": "active"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestUpdatePolicyStatus_BadStatusIs400(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doRequest(t, router, "PUT", "/api/policies/pol-001/status", `{"status": "Active"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

// =============================================================================
// CLAIMS
// =============================================================================

func TestListClaims_StatusFacet(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doRequest(t, router, "GET", "/api/claims?status=pending", "")
	claims := decodeList[ClaimDTO](t, rec)

	if len(claims) != 1 {
		t.Fatalf("Expected 1 pending claim, got %d", len(claims))
	}
	if claims[0].ID != "clm-002" {
		t.Errorf("Expected clm-002, got %s", claims[0].ID)
	}
}

func TestUpdateClaimStatus_RecordsReviewNotes(t *testing.T) {
	_, router := newTestHandler(t)

	body := `{"status": "approved", "review_notes": "Repair invoice checks out"}`
	rec := doRequest(t, router, "PUT", "/api/claims/clm-002/status", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var c ClaimDTO
	json.Unmarshal(rec.Body.Bytes(), &c)
	if c.Status != "approved" {
		t.Errorf("Expected status 'approved', got '%s'", c.Status)
	}
	if c.ReviewNotes != "Repair invoice checks out" {
		t.Errorf("Expected review notes to round-trip, got '%s'", c.ReviewNotes)
	}
	if c.StatusTone != "success" {
		t.Errorf("Expected tone 'success', got '%s'", c.StatusTone)
	}
}

func TestCreateClaim_StartsPending(t *testing.T) {
	_, router := newTestHandler(t)

	body := `{
		"policy_id": "pol-001",
		"customer_id": "cust-001",
		"description": "Charger port burnt out",
		"claim_amount": 12000,
		"incident_date": "2024-06-10"
	}`
	rec := doRequest(t, router, "POST", "/api/claims", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var c ClaimDTO
	json.Unmarshal(rec.Body.Bytes(), &c)
	if c.Status != "pending" {
		t.Errorf("New claims start pending, got '%s'", c.Status)
	}
}

// =============================================================================
// PAYMENTS AND DATE RANGES
// =============================================================================

func TestListPayments_MethodFacet(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doRequest(t, router, "GET", "/api/payments?method=mpesa", "")
	payments := decodeList[PaymentDTO](t, rec)

	if len(payments) != 2 {
		t.Fatalf("Expected 2 mpesa payments, got %d", len(payments))
	}
}

func TestCustomerViews(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doRequest(t, router, "GET", "/api/customers/cust-001/policies", "")
	if got := len(decodeList[PolicyDTO](t, rec)); got != 2 {
		t.Errorf("Expected 2 policies for cust-001, got %d", got)
	}

	rec = doRequest(t, router, "GET", "/api/customers/cust-001/claims", "")
	if got := len(decodeList[ClaimDTO](t, rec)); got != 2 {
		t.Errorf("Expected 2 claims for cust-001, got %d", got)
	}

	rec = doRequest(t, router, "GET", "/api/policies/pol-001/payments", "")
	if got := len(decodeList[PaymentDTO](t, rec)); got != 1 {
		t.Errorf("Expected 1 payment for pol-001, got %d", got)
	}
}

func TestListCustomers_Search(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doRequest(t, router, "GET", "/api/customers?search=otieno", "")
	customers := decodeList[CustomerDTO](t, rec)

	if len(customers) != 1 {
		t.Fatalf("Expected 1 customer, got %d", len(customers))
	}
	if customers[0].Name != "Brian Otieno" {
		t.Errorf("Expected Brian Otieno, got %s", customers[0].Name)
	}
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

func TestNotifications_UnreadCountAndReadAll(t *testing.T) {
	_, router := newTestHandler(t)

	// cust-002 has two notifications, one already read.
	rec := doRequest(t, router, "GET", "/api/customers/cust-002/notifications", "")
	var resp struct {
		Notifications []NotificationDTO `json:"notifications"`
		UnreadCount   int               `json:"unread_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if len(resp.Notifications) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(resp.Notifications))
	}
	if resp.UnreadCount != 1 {
		t.Errorf("Expected unread count 1, got %d", resp.UnreadCount)
	}

	rec = doRequest(t, router, "POST", "/api/customers/cust-002/notifications/read-all", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	rec = doRequest(t, router, "GET", "/api/customers/cust-002/notifications", "")
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.UnreadCount != 0 {
		t.Errorf("Expected unread count 0 after read-all, got %d", resp.UnreadCount)
	}
}

// =============================================================================
// REPORTS
// =============================================================================

func TestGetReport_SummaryDocument(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doRequest(t, router, "GET", "/api/reports/policies", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var doc struct {
		Title    string `json:"title"`
		Sections []struct {
			Header  string     `json:"header"`
			Columns []string   `json:"columns"`
			Rows    [][]string `json:"rows"`
		} `json:"sections"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	if doc.Title != "Policies Report" {
		t.Errorf("Expected title 'Policies Report', got '%s'", doc.Title)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("Expected 3 summary sections, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Header != "Policy Status Summary" {
		t.Errorf("Unexpected first section header: %s", doc.Sections[0].Header)
	}
}

func TestGetReport_DateRangeNarrowsRows(t *testing.T) {
	_, router := newTestHandler(t)

	// Only pol-005 (day 10) and pol-006 (day 8) were created in June 2024.
	rec := doRequest(t, router, "GET", "/api/reports/policies?mode=detailed&from=2024-06-01&to=2024-06-15", "")
	var doc struct {
		Sections []struct {
			Rows [][]string `json:"rows"`
		} `json:"sections"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("Expected 1 detailed section, got %d", len(doc.Sections))
	}
	if len(doc.Sections[0].Rows) != 2 {
		t.Errorf("Expected 2 rows in range, got %d", len(doc.Sections[0].Rows))
	}
}

func TestGetReport_UnknownKindIs404(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doRequest(t, router, "GET", "/api/reports/invoices", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestGetReport_BadModeIs400(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doRequest(t, router, "GET", "/api/reports/policies?mode=verbose", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestExportReport_XLSXHeaders(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doRequest(t, router, "GET", "/api/reports/payments/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	ct := rec.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Unexpected content type: %s", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if cd != `attachment; filename="payments-report-2024-06-15.xlsx"` {
		t.Errorf("Unexpected content disposition: %s", cd)
	}
	if rec.Body.Len() == 0 {
		t.Error("Expected a non-empty workbook body")
	}
}

func TestExportReport_TextFormat(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doRequest(t, router, "GET", "/api/reports/policies/export?format=text", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Unexpected content type: %s", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Policies Report") {
		t.Error("Expected the report title in the text body")
	}
	if !strings.Contains(body, "Policy Status Summary") {
		t.Error("Expected the status section header in the text body")
	}
}

// =============================================================================
// DASHBOARD
// =============================================================================

func TestGetDashboardStats(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doRequest(t, router, "GET", "/api/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var stats DashboardStatsDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	if stats.TotalCustomers != 4 {
		t.Errorf("Expected 4 customers, got %d", stats.TotalCustomers)
	}
	if stats.ActivePolicies != 3 {
		t.Errorf("Expected 3 active policies, got %d", stats.ActivePolicies)
	}
	if stats.PendingClaims != 1 {
		t.Errorf("Expected 1 pending claim, got %d", stats.PendingClaims)
	}
	// cust-004 joined 12 days before the pinned clock, inside June.
	if stats.NewCustomersThisMonth != 1 {
		t.Errorf("Expected 1 new customer this month, got %d", stats.NewCustomersThisMonth)
	}
	if stats.TotalPremium != 20200 {
		t.Errorf("Expected total premium 20200, got %v", stats.TotalPremium)
	}
	// Only pay-006 (paid, 8 days ago) falls in the June window.
	if stats.RevenueThisMonth != 6000 {
		t.Errorf("Expected revenue 6000 this month, got %v", stats.RevenueThisMonth)
	}
	if stats.ClaimsPaidThisMonth != 0 {
		t.Errorf("Expected 0 claims paid this month, got %v", stats.ClaimsPaidThisMonth)
	}
}

// =============================================================================
// SEED
// =============================================================================

func TestLoadSeedData_ResetsBeforeLoading(t *testing.T) {
	_, router := newTestHandler(t)

	// Seeding twice must not duplicate records.
	rec := doRequest(t, router, "POST", "/api/seed", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, "GET", "/api/customers", "")
	if got := len(decodeList[CustomerDTO](t, rec)); got != 4 {
		t.Errorf("Expected 4 customers after reseed, got %d", got)
	}
}
