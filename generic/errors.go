/*
errors.go - Centralized error types for the collection engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages wrap these with additional context.

ERROR CATEGORIES:
  1. Record errors - malformed upstream data caught at the boundary
  2. Lookup errors - missing entities surfaced by the store/API layers

The engine itself operates on pre-validated data and defines its degenerate
cases (empty input, inverted range, unknown facet) as valid empty results,
so it returns no errors of its own. FieldError exists for the validation
boundary: a missing or negative amount must surface loudly rather than be
coerced to zero and silently corrupt totals.

USAGE:
  var fe *generic.FieldError
  if errors.As(err, &fe) {
      // fe.Entity, fe.ID, fe.Field identify the offending record
  }

SEE ALSO:
  - insurance/validate.go: Produces FieldError at the data boundary
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when a referenced record doesn't exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidRecord is the category wrapped by every FieldError.
	ErrInvalidRecord = errors.New("invalid record")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// FieldError identifies the exact field of the exact record that failed
// validation at the data-source boundary.
type FieldError struct {
	Entity string // "policy", "claim", "payment", "customer"
	ID     string // record identifier, may be empty when the ID itself is missing
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid %s: field %q %s", e.Entity, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %s: field %q %s", e.Entity, e.ID, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidRecord
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound reports whether err indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
