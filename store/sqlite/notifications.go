/*
notifications.go - Notification persistence

Read-state lives in the is_read column, so the unread count is a plain
COUNT(*) over the flag rather than something reconstructed from history.
*/
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/insuremojo/admin-engine/generic"
	"github.com/insuremojo/admin-engine/insurance"
)

// SaveNotification validates and inserts (or replaces) a notification.
func (s *Store) SaveNotification(ctx context.Context, n insurance.Notification) error {
	n.CreatedAt = insurance.StampCreated(n.CreatedAt, time.Now())
	if err := n.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO notifications (id, customer_id, kind, title, message, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.CustomerID, string(n.Kind), n.Title, n.Message, boolToInt(n.IsRead), encodeTime(n.CreatedAt))
	return err
}

// ListNotifications returns one customer's notifications, newest first.
func (s *Store) ListNotifications(ctx context.Context, customerID string) ([]insurance.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, customer_id, kind, title, message, is_read, created_at
		FROM notifications WHERE customer_id = ?
		ORDER BY created_at DESC, id`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []insurance.Notification
	for rows.Next() {
		var n insurance.Notification
		var kind, createdAt string
		var isRead int
		if err := rows.Scan(&n.ID, &n.CustomerID, &kind, &n.Title, &n.Message, &isRead, &createdAt); err != nil {
			return nil, err
		}
		n.Kind = insurance.NotificationKind(kind)
		n.IsRead = isRead != 0
		if n.CreatedAt, err = decodeTime(createdAt); err != nil {
			return nil, fmt.Errorf("notification %s: bad created_at: %w", n.ID, err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// UnreadNotificationCount counts a customer's unread notifications.
func (s *Store) UnreadNotificationCount(ctx context.Context, customerID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM notifications WHERE customer_id = ? AND is_read = 0`,
		customerID).Scan(&n)
	return n, err
}

// MarkNotificationRead flags one notification as read.
func (s *Store) MarkNotificationRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `UPDATE notifications SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return generic.ErrNotFound
	}
	return nil
}

// MarkAllNotificationsRead flags every notification for a customer as read.
func (s *Store) MarkAllNotificationsRead(ctx context.Context, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE customer_id = ?`, customerID)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
