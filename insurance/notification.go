/*
notification.go - Per-customer notifications

A notification carries an explicit IsRead flag; the unread count is the
number of rows with the flag off. (The console once derived "unread" by
counting every non-bot chat message, which inflated the badge as history
grew. Tracking the flag per message is the fix.)
*/
package insurance

import "time"

// NotificationKind classifies what a notification is about.
type NotificationKind string

const (
	NotifyPolicyExpiry NotificationKind = "policy_expiry"
	NotifyPaymentDue   NotificationKind = "payment_due"
	NotifyClaimUpdate  NotificationKind = "claim_update"
	NotifyGeneral      NotificationKind = "general"
)

var NotificationKinds = []NotificationKind{
	NotifyPolicyExpiry, NotifyPaymentDue, NotifyClaimUpdate, NotifyGeneral,
}

func (k NotificationKind) Valid() bool {
	for _, v := range NotificationKinds {
		if k == v {
			return true
		}
	}
	return false
}

// Notification is a message delivered to one customer.
type Notification struct {
	ID         string
	CustomerID string
	Kind       NotificationKind
	Title      string
	Message    string
	IsRead     bool
	CreatedAt  time.Time
}

// Validate checks a notification for structural problems.
func (n Notification) Validate() error {
	switch {
	case n.ID == "":
		return fieldErr("notification", "", "id", "is required")
	case n.CustomerID == "":
		return fieldErr("notification", n.ID, "customer_id", "is required")
	case !n.Kind.Valid():
		return fieldErr("notification", n.ID, "kind", "is not a known kind: "+string(n.Kind))
	case n.Title == "":
		return fieldErr("notification", n.ID, "title", "is required")
	}
	return nil
}
