/*
report.go - Report builders for policies, payments, and claims

PURPOSE:
  Turns a raw collection plus a report mode and optional date range into a
  format-neutral generic.Document. The builders do the filtering and
  aggregation; rendering (XLSX, plain text, HTML) happens elsewhere.

MODES:
  detailed - one section, one row per record, in input order. No resort.
  summary  - fixed section order:
               1. status-count breakdown
               2. category-count breakdown (policies only)
               3. financial totals

  Both modes narrow the collection to the date range first, keyed on each
  record's creation timestamp. An open range passes everything through.

EMPTY INPUT:
  Every section still appears: count sections with no rows, financial totals
  showing 0. Consumers see "no data", never a missing section.

DISPLAY RULES (matching the console's tables):
  - statuses and categories are title-cased in summary rows
  - payment methods are uppercased
  - amounts are comma-grouped, currency code in the column header
  - dates render as dd/mm/yyyy

SEE ALSO:
  - generic/document.go: Output structures
  - render/: Document renderers
*/
package insurance

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insuremojo/admin-engine/generic"
)

// ReportKind selects which collection a report covers.
type ReportKind string

const (
	KindPolicies ReportKind = "policies"
	KindPayments ReportKind = "payments"
	KindClaims   ReportKind = "claims"
)

func (k ReportKind) Valid() bool {
	return k == KindPolicies || k == KindPayments || k == KindClaims
}

// Title returns the document title for the kind.
func (k ReportKind) Title() string {
	switch k {
	case KindPolicies:
		return "Policies Report"
	case KindPayments:
		return "Premium Payments Report"
	case KindClaims:
		return "Claims Report"
	}
	return "Report"
}

// ReportMode selects between a record listing and grouped summaries.
type ReportMode string

const (
	ModeSummary  ReportMode = "summary"
	ModeDetailed ReportMode = "detailed"
)

func (m ReportMode) Valid() bool {
	return m == ModeSummary || m == ModeDetailed
}

const reportDateFormat = "02/01/2006"

// =============================================================================
// DISPLAY HELPERS
// =============================================================================

// amountColumn labels a monetary column with the fixed currency code.
func amountColumn(label string) string {
	return label + " (" + CurrencyCode + ")"
}

// titleCase capitalizes the first letter, the way summary tables display
// lowercase enum values.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// countSection renders an insertion-ordered count grouping as a two-column
// table. Keys pass through display before landing in a row.
func countSection(header, keyColumn string, counts *generic.Grouped[string, int], display func(string) string) generic.Section {
	section := generic.Section{
		Header:  header,
		Columns: []string{keyColumn, "Count"},
		Rows:    make([][]string, 0, counts.Len()),
	}
	for _, key := range counts.Keys() {
		n, _ := counts.Get(key)
		section.Rows = append(section.Rows, []string{display(key), strconv.Itoa(n)})
	}
	return section
}

// =============================================================================
// POLICY REPORTS
// =============================================================================

// BuildPolicyReport builds a policy report document.
func BuildPolicyReport(policies []Policy, mode ReportMode, rng generic.Range, now time.Time) generic.Document {
	policies = generic.FilterRange(policies, rng, Policy.Created)

	doc := generic.Document{Title: KindPolicies.Title(), GeneratedAt: now}

	if mode == ModeDetailed {
		section := generic.Section{
			Header: "Policies",
			Columns: []string{
				"ID", "Item", "Category", "Status",
				amountColumn("Premium"), amountColumn("Coverage"),
				"Start Date", "End Date",
			},
			Rows: make([][]string, 0, len(policies)),
		}
		for _, p := range policies {
			section.Rows = append(section.Rows, []string{
				p.ID,
				p.ItemName,
				string(p.Category),
				string(p.Status),
				FormatAmount(p.Premium),
				FormatAmount(p.CoverageAmount),
				p.StartDate.Format(reportDateFormat),
				p.EndDate.Format(reportDateFormat),
			})
		}
		doc.Sections = append(doc.Sections, section)
		return doc
	}

	statusCounts := generic.CountBy(policies, func(p Policy) string { return string(p.Status) })
	categoryCounts := generic.CountBy(policies, func(p Policy) string { return string(p.Category) })
	totalPremium := generic.Total(policies, func(p Policy) decimal.Decimal { return p.Premium })
	totalCoverage := generic.Total(policies, func(p Policy) decimal.Decimal { return p.CoverageAmount })

	doc.Sections = append(doc.Sections,
		countSection("Policy Status Summary", "Status", statusCounts, titleCase),
		countSection("Policy Category Summary", "Category", categoryCounts, titleCase),
		generic.Section{
			Header:  "Financial Summary",
			Columns: []string{"Metric", amountColumn("Amount")},
			Rows: [][]string{
				{"Total Premium", FormatAmount(totalPremium)},
				{"Total Coverage", FormatAmount(totalCoverage)},
			},
		},
	)
	return doc
}

// =============================================================================
// PAYMENT REPORTS
// =============================================================================

// BuildPaymentReport builds a premium-payments report document.
func BuildPaymentReport(payments []Payment, mode ReportMode, rng generic.Range, now time.Time) generic.Document {
	payments = generic.FilterRange(payments, rng, Payment.Created)

	doc := generic.Document{Title: KindPayments.Title(), GeneratedAt: now}

	if mode == ModeDetailed {
		section := generic.Section{
			Header: "Payments",
			Columns: []string{
				"ID", "Policy ID", "Method", "Status", amountColumn("Amount"), "Date",
			},
			Rows: make([][]string, 0, len(payments)),
		}
		for _, p := range payments {
			section.Rows = append(section.Rows, []string{
				p.ID,
				p.PolicyID,
				strings.ToUpper(string(p.Method)),
				string(p.Status),
				FormatAmount(p.Amount),
				p.CreatedAt.Format(reportDateFormat),
			})
		}
		doc.Sections = append(doc.Sections, section)
		return doc
	}

	methodCounts := generic.CountBy(payments, func(p Payment) string { return string(p.Method) })
	statusCounts := generic.CountBy(payments, func(p Payment) string { return string(p.Status) })
	totalAmount := generic.Total(payments, func(p Payment) decimal.Decimal { return p.Amount })

	doc.Sections = append(doc.Sections,
		countSection("Payment Methods Summary", "Payment Method", methodCounts, strings.ToUpper),
		countSection("Payment Status Summary", "Status", statusCounts, titleCase),
		generic.Section{
			Header:  "Financial Summary",
			Columns: []string{"Metric", amountColumn("Amount")},
			Rows: [][]string{
				{"Total Payments", FormatAmount(totalAmount)},
			},
		},
	)
	return doc
}

// =============================================================================
// CLAIM REPORTS
// =============================================================================

// BuildClaimReport builds a claims report document.
func BuildClaimReport(claims []Claim, mode ReportMode, rng generic.Range, now time.Time) generic.Document {
	claims = generic.FilterRange(claims, rng, Claim.Created)

	doc := generic.Document{Title: KindClaims.Title(), GeneratedAt: now}

	if mode == ModeDetailed {
		section := generic.Section{
			Header: "Claims",
			Columns: []string{
				"ID", "Policy ID", "Customer ID", "Status",
				amountColumn("Amount"), "Incident Date", "Date",
			},
			Rows: make([][]string, 0, len(claims)),
		}
		for _, c := range claims {
			section.Rows = append(section.Rows, []string{
				c.ID,
				c.PolicyID,
				c.CustomerID,
				string(c.Status),
				FormatAmount(c.ClaimAmount),
				c.IncidentDate.Format(reportDateFormat),
				c.CreatedAt.Format(reportDateFormat),
			})
		}
		doc.Sections = append(doc.Sections, section)
		return doc
	}

	statusCounts := generic.CountBy(claims, func(c Claim) string { return string(c.Status) })
	totalClaimed := generic.Total(claims, func(c Claim) decimal.Decimal { return c.ClaimAmount })

	doc.Sections = append(doc.Sections,
		countSection("Claim Status Summary", "Status", statusCounts, titleCase),
		generic.Section{
			Header:  "Financial Summary",
			Columns: []string{"Metric", amountColumn("Amount")},
			Rows: [][]string{
				{"Total Claimed", FormatAmount(totalClaimed)},
			},
		},
	)
	return doc
}
