/*
tone.go - Status-to-presentation mapping

PURPOSE:
  One exhaustive table from every status enumeration to a presentation tone
  (success/warning/danger/info). The console previously scattered this as
  switch statements across UI components; it lives here once so adding a
  status value fails loudly in exactly one place.

  Unknown values panic: records are validated at the boundary, so an unknown
  status reaching presentation is a programming error, not a data condition.
*/
package insurance

import "fmt"

// Tone is the presentation category a status renders with.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
	ToneInfo    Tone = "info"
)

// Tone maps a policy status to its presentation tone.
func (s PolicyStatus) Tone() Tone {
	switch s {
	case PolicyActive:
		return ToneSuccess
	case PolicyPending:
		return ToneWarning
	case PolicyExpired, PolicyCancelled:
		return ToneDanger
	case PolicyClaimed:
		return ToneInfo
	}
	panic(fmt.Sprintf("unmapped policy status %q", s))
}

// Tone maps a claim status to its presentation tone.
func (s ClaimStatus) Tone() Tone {
	switch s {
	case ClaimApproved, ClaimPaid:
		return ToneSuccess
	case ClaimPending:
		return ToneWarning
	case ClaimRejected:
		return ToneDanger
	case ClaimReviewing:
		return ToneInfo
	}
	panic(fmt.Sprintf("unmapped claim status %q", s))
}

// Tone maps a payment status to its presentation tone.
func (s PaymentStatus) Tone() Tone {
	switch s {
	case PaymentPaid:
		return ToneSuccess
	case PaymentPending:
		return ToneWarning
	case PaymentFailed:
		return ToneDanger
	}
	panic(fmt.Sprintf("unmapped payment status %q", s))
}
