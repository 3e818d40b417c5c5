/*
validate.go - Fail-fast record validation at the data-source boundary

PURPOSE:
  The engine and report builders assume well-formed records: present
  identifiers, non-negative money, enum values inside their closed sets.
  That assumption is enforced HERE, once, when records enter the system
  (store writes, API creates) - not defensively re-checked inside every
  aggregation pass.

  A missing amount is an error, never zero. Coercing it would corrupt
  report totals without anyone noticing.

ERRORS:
  Every failure is a *generic.FieldError naming the entity, record ID, and
  offending field, wrapped under generic.ErrInvalidRecord.

SEE ALSO:
  - generic/errors.go: FieldError definition
*/
package insurance

import (
	"time"

	"github.com/insuremojo/admin-engine/generic"
)

func fieldErr(entity, id, field, reason string) error {
	return &generic.FieldError{Entity: entity, ID: id, Field: field, Reason: reason}
}

// Validate checks a policy for structural problems.
func (p Policy) Validate() error {
	switch {
	case p.ID == "":
		return fieldErr("policy", "", "id", "is required")
	case p.CustomerID == "":
		return fieldErr("policy", p.ID, "customer_id", "is required")
	case p.ItemName == "":
		return fieldErr("policy", p.ID, "item_name", "is required")
	case !p.Category.Valid():
		return fieldErr("policy", p.ID, "category", "is not a known category: "+string(p.Category))
	case !p.Status.Valid():
		return fieldErr("policy", p.ID, "status", "is not a known status: "+string(p.Status))
	case p.Premium.IsNegative():
		return fieldErr("policy", p.ID, "premium", "must be non-negative")
	case p.CoverageAmount.IsNegative():
		return fieldErr("policy", p.ID, "coverage_amount", "must be non-negative")
	case p.StartDate.IsZero():
		return fieldErr("policy", p.ID, "start_date", "is required")
	case p.EndDate.IsZero():
		return fieldErr("policy", p.ID, "end_date", "is required")
	case p.EndDate.Before(p.StartDate):
		return fieldErr("policy", p.ID, "end_date", "precedes start_date")
	}
	return nil
}

// Validate checks a claim for structural problems.
func (c Claim) Validate() error {
	switch {
	case c.ID == "":
		return fieldErr("claim", "", "id", "is required")
	case c.PolicyID == "":
		return fieldErr("claim", c.ID, "policy_id", "is required")
	case c.CustomerID == "":
		return fieldErr("claim", c.ID, "customer_id", "is required")
	case c.Description == "":
		return fieldErr("claim", c.ID, "description", "is required")
	case !c.Status.Valid():
		return fieldErr("claim", c.ID, "status", "is not a known status: "+string(c.Status))
	case c.ClaimAmount.IsNegative():
		return fieldErr("claim", c.ID, "claim_amount", "must be non-negative")
	case c.IncidentDate.IsZero():
		return fieldErr("claim", c.ID, "incident_date", "is required")
	}
	return nil
}

// Validate checks a payment for structural problems.
func (p Payment) Validate() error {
	switch {
	case p.ID == "":
		return fieldErr("payment", "", "id", "is required")
	case p.PolicyID == "":
		return fieldErr("payment", p.ID, "policy_id", "is required")
	case p.CustomerID == "":
		return fieldErr("payment", p.ID, "customer_id", "is required")
	case !p.Method.Valid():
		return fieldErr("payment", p.ID, "method", "is not a known method: "+string(p.Method))
	case !p.Status.Valid():
		return fieldErr("payment", p.ID, "status", "is not a known status: "+string(p.Status))
	case p.Amount.IsNegative():
		return fieldErr("payment", p.ID, "amount", "must be non-negative")
	}
	return nil
}

// Validate checks a customer for structural problems. Address is optional.
func (c Customer) Validate() error {
	switch {
	case c.ID == "":
		return fieldErr("customer", "", "id", "is required")
	case c.Name == "":
		return fieldErr("customer", c.ID, "name", "is required")
	case c.Email == "":
		return fieldErr("customer", c.ID, "email", "is required")
	case c.Phone == "":
		return fieldErr("customer", c.ID, "phone", "is required")
	}
	return nil
}

// StampCreated fills a zero creation timestamp with now. Save paths use it
// so records arriving without a timestamp get one and existing ones are kept.
func StampCreated(t time.Time, now time.Time) time.Time {
	if t.IsZero() {
		return now
	}
	return t
}
