/*
Package insurance defines the domain model for the admin console.

PURPOSE:
  Entities (Policy, Claim, Payment, Customer) and their closed enumerations,
  plus the domain-specific hooks the generic engine needs: searchable field
  sets, facet keys, and date keys. The engine stays domain-agnostic; this
  package teaches it what a policy is.

KEY CONCEPTS IN THIS FILE (types.go):
  - Closed enums: Category, PolicyStatus, ClaimStatus, PaymentMethod,
    PaymentStatus. Every value a record can carry appears here; downstream
    switches cover all of them.
  - Money: decimal.Decimal for premium, coverage, claim, and payment amounts.
    Monetary fields are non-negative (enforced in validate.go), so sums never
    go negative.

LIFECYCLE:
  Records are created and mutated by the surrounding application (store,
  API). This package only reads and transforms already-materialized
  collections; nothing here outlives a single request.

SEE ALSO:
  - validate.go: Boundary validation, fail-fast FieldError
  - tone.go: Status-to-presentation mapping
  - report.go: Report builders over these entities
*/
package insurance

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ENUMERATIONS - Closed sets, lowercase on the wire
// =============================================================================

// Category classifies the insured item.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryHousehold   Category = "household"
	CategoryPersonal    Category = "personal"
	CategoryMobile      Category = "mobile"
	CategoryComputer    Category = "computer"
	CategoryCamera      Category = "camera"
	CategoryAppliance   Category = "appliance"
	CategoryOther       Category = "other"
)

// Categories lists every valid Category.
var Categories = []Category{
	CategoryElectronics, CategoryHousehold, CategoryPersonal, CategoryMobile,
	CategoryComputer, CategoryCamera, CategoryAppliance, CategoryOther,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// PolicyStatus is the lifecycle state of a policy.
type PolicyStatus string

const (
	PolicyActive    PolicyStatus = "active"
	PolicyExpired   PolicyStatus = "expired"
	PolicyPending   PolicyStatus = "pending"
	PolicyCancelled PolicyStatus = "cancelled"
	PolicyClaimed   PolicyStatus = "claimed"
)

var PolicyStatuses = []PolicyStatus{
	PolicyActive, PolicyExpired, PolicyPending, PolicyCancelled, PolicyClaimed,
}

func (s PolicyStatus) Valid() bool {
	for _, v := range PolicyStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ClaimStatus is the review state of a claim.
type ClaimStatus string

const (
	ClaimPending   ClaimStatus = "pending"
	ClaimReviewing ClaimStatus = "reviewing"
	ClaimApproved  ClaimStatus = "approved"
	ClaimRejected  ClaimStatus = "rejected"
	ClaimPaid      ClaimStatus = "paid"
)

var ClaimStatuses = []ClaimStatus{
	ClaimPending, ClaimReviewing, ClaimApproved, ClaimRejected, ClaimPaid,
}

func (s ClaimStatus) Valid() bool {
	for _, v := range ClaimStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// PaymentMethod is the channel a payment came through.
type PaymentMethod string

const (
	MethodMpesa       PaymentMethod = "mpesa"
	MethodCard        PaymentMethod = "card"
	MethodBank        PaymentMethod = "bank"
	MethodAirtelMoney PaymentMethod = "airtel_money"
	MethodEquityBank  PaymentMethod = "equity_bank"
	MethodKCBBank     PaymentMethod = "kcb_bank"
)

var PaymentMethods = []PaymentMethod{
	MethodMpesa, MethodCard, MethodBank, MethodAirtelMoney, MethodEquityBank, MethodKCBBank,
}

func (m PaymentMethod) Valid() bool {
	for _, v := range PaymentMethods {
		if m == v {
			return true
		}
	}
	return false
}

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentFailed  PaymentStatus = "failed"
)

var PaymentStatuses = []PaymentStatus{PaymentPaid, PaymentPending, PaymentFailed}

func (s PaymentStatus) Valid() bool {
	for _, v := range PaymentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// =============================================================================
// ENTITIES
// =============================================================================

// Policy is an insured-item contract.
type Policy struct {
	ID             string
	CustomerID     string
	ItemName       string
	Category       Category
	Status         PolicyStatus
	Premium        decimal.Decimal
	CoverageAmount decimal.Decimal
	StartDate      time.Time
	EndDate        time.Time
	CreatedAt      time.Time
}

// Claim is a request for compensation against a policy.
type Claim struct {
	ID           string
	PolicyID     string
	CustomerID   string
	Description  string
	Status       ClaimStatus
	ClaimAmount  decimal.Decimal
	IncidentDate time.Time
	ReviewNotes  string
	CreatedAt    time.Time
}

// Payment is a monetary transaction against a policy.
type Payment struct {
	ID         string
	PolicyID   string
	CustomerID string
	Amount     decimal.Decimal
	Method     PaymentMethod
	Status     PaymentStatus
	CreatedAt  time.Time
}

// Customer owns policies, claims, and payments. Address is optional.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
}

// =============================================================================
// ENGINE HOOKS - Searchable fields and date keys
// =============================================================================

// SearchFields returns the fields free-text search matches against.
// The sets mirror what the console's tables search on.

func (p Policy) SearchFields() []string {
	return []string{p.ItemName, p.ID, p.CustomerID}
}

func (c Claim) SearchFields() []string {
	return []string{c.ID, c.PolicyID, c.CustomerID, c.Description}
}

func (p Payment) SearchFields() []string {
	return []string{p.ID, p.PolicyID, p.CustomerID}
}

func (c Customer) SearchFields() []string {
	return []string{c.Name, c.Email, c.Phone, c.Address}
}

// Created returns the record's creation timestamp, the date key used by
// report date-range filtering and month windows.

func (p Policy) Created() time.Time  { return p.CreatedAt }
func (c Claim) Created() time.Time   { return c.CreatedAt }
func (p Payment) Created() time.Time { return p.CreatedAt }
func (c Customer) Created() time.Time { return c.CreatedAt }
