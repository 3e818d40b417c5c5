/*
Package sqlite provides the SQLite-backed data source for the admin console.

PURPOSE:
  Persists customers, policies, claims, payments, and notifications. This is
  the "external data source" the collection engine trusts: records are
  validated on the way IN (fail-fast FieldError), so reads hand the engine
  well-formed collections.

KEY TABLES:
  customers       console customers
  policies        insured-item contracts
  claims          compensation requests, review notes included
  payments        premium transactions
  notifications   per-customer messages with an explicit read flag

STORAGE CONVENTIONS:
  - Monetary columns are TEXT holding decimal strings; decimals round-trip
    exactly, floats would not
  - Timestamps are TEXT in RFC 3339 UTC
  - Enum columns store the lowercase wire values

CONCURRENCY:
  sync.RWMutex around all access. With PostgreSQL the database would handle
  this; for a single-file SQLite deployment the mutex keeps the driver happy.

WAL MODE:
  Opened with WAL so readers don't block behind the writer.

MIGRATION:
  Schema is auto-migrated on New(). For production, use a versioned
  migration tool.

USAGE:
  store, err := sqlite.New("./data/console.db")  // or ":memory:"
  defer store.Close()

SEE ALSO:
  - insurance/validate.go: Validation applied on every save
  - api/handlers.go: The store's only consumer
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/insuremojo/admin-engine/generic"
	"github.com/insuremojo/admin-engine/insurance"
)

// Store persists the console's entities in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a store backed by the database at dbPath.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS policies (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL,
		item_name TEXT NOT NULL,
		category TEXT NOT NULL,
		status TEXT NOT NULL,
		premium TEXT NOT NULL,
		coverage_amount TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_policies_customer ON policies(customer_id);
	CREATE INDEX IF NOT EXISTS idx_policies_status ON policies(status);

	CREATE TABLE IF NOT EXISTS claims (
		id TEXT PRIMARY KEY,
		policy_id TEXT NOT NULL,
		customer_id TEXT NOT NULL,
		description TEXT NOT NULL,
		status TEXT NOT NULL,
		claim_amount TEXT NOT NULL,
		incident_date TEXT NOT NULL,
		review_notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_claims_customer ON claims(customer_id);
	CREATE INDEX IF NOT EXISTS idx_claims_policy ON claims(policy_id);

	CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		policy_id TEXT NOT NULL,
		customer_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		method TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_payments_customer ON payments(customer_id);
	CREATE INDEX IF NOT EXISTS idx_payments_policy ON payments(policy_id);

	CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		is_read INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_notifications_customer ON notifications(customer_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Reset drops all rows. Used by the demo seed loader.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"customers", "policies", "claims", "payments", "notifications"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

// =============================================================================
// TIME / MONEY HELPERS
// =============================================================================

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func decodeDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// =============================================================================
// CUSTOMERS
// =============================================================================

// SaveCustomer validates and inserts (or replaces) a customer.
func (s *Store) SaveCustomer(ctx context.Context, c insurance.Customer) error {
	c.CreatedAt = insurance.StampCreated(c.CreatedAt, time.Now())
	if err := c.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO customers (id, name, email, phone, address, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Phone, c.Address, encodeTime(c.CreatedAt))
	return err
}

// GetCustomer returns one customer, or generic.ErrNotFound.
func (s *Store) GetCustomer(ctx context.Context, id string) (*insurance.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone, address, created_at
		FROM customers WHERE id = ?`, id)

	c, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return nil, generic.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCustomers returns all customers in creation order.
func (s *Store) ListCustomers(ctx context.Context) ([]insurance.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, phone, address, created_at
		FROM customers ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []insurance.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row scanner) (*insurance.Customer, error) {
	var c insurance.Customer
	var createdAt string
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if c.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, fmt.Errorf("customer %s: bad created_at: %w", c.ID, err)
	}
	return &c, nil
}

// =============================================================================
// POLICIES
// =============================================================================

// SavePolicy validates and inserts (or replaces) a policy.
func (s *Store) SavePolicy(ctx context.Context, p insurance.Policy) error {
	p.CreatedAt = insurance.StampCreated(p.CreatedAt, time.Now())
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO policies
			(id, customer_id, item_name, category, status, premium, coverage_amount, start_date, end_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.CustomerID, p.ItemName, string(p.Category), string(p.Status),
		p.Premium.String(), p.CoverageAmount.String(),
		encodeTime(p.StartDate), encodeTime(p.EndDate), encodeTime(p.CreatedAt))
	return err
}

// UpdatePolicyStatus moves a policy to a new status.
func (s *Store) UpdatePolicyStatus(ctx context.Context, id string, status insurance.PolicyStatus) error {
	if !status.Valid() {
		return &generic.FieldError{Entity: "policy", ID: id, Field: "status", Reason: "is not a known status: " + string(status)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `UPDATE policies SET status = ? WHERE id = ?`, string(status), id)
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

// GetPolicy returns one policy, or generic.ErrNotFound.
func (s *Store) GetPolicy(ctx context.Context, id string) (*insurance.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, policySelect+` WHERE id = ?`, id)
	p, err := scanPolicy(row)
	if err == sql.ErrNoRows {
		return nil, generic.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPolicies returns all policies in creation order.
func (s *Store) ListPolicies(ctx context.Context) ([]insurance.Policy, error) {
	return s.queryPolicies(ctx, policySelect+` ORDER BY created_at, id`)
}

// ListPoliciesByCustomer returns one customer's policies in creation order.
func (s *Store) ListPoliciesByCustomer(ctx context.Context, customerID string) ([]insurance.Policy, error) {
	return s.queryPolicies(ctx, policySelect+` WHERE customer_id = ? ORDER BY created_at, id`, customerID)
}

const policySelect = `
	SELECT id, customer_id, item_name, category, status, premium, coverage_amount, start_date, end_date, created_at
	FROM policies`

func (s *Store) queryPolicies(ctx context.Context, query string, args ...any) ([]insurance.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []insurance.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func scanPolicy(row scanner) (*insurance.Policy, error) {
	var p insurance.Policy
	var category, status, premium, coverage, startDate, endDate, createdAt string
	if err := row.Scan(&p.ID, &p.CustomerID, &p.ItemName, &category, &status,
		&premium, &coverage, &startDate, &endDate, &createdAt); err != nil {
		return nil, err
	}

	p.Category = insurance.Category(category)
	p.Status = insurance.PolicyStatus(status)

	var err error
	if p.Premium, err = decodeDecimal(premium); err != nil {
		return nil, fmt.Errorf("policy %s: bad premium: %w", p.ID, err)
	}
	if p.CoverageAmount, err = decodeDecimal(coverage); err != nil {
		return nil, fmt.Errorf("policy %s: bad coverage_amount: %w", p.ID, err)
	}
	if p.StartDate, err = decodeTime(startDate); err != nil {
		return nil, fmt.Errorf("policy %s: bad start_date: %w", p.ID, err)
	}
	if p.EndDate, err = decodeTime(endDate); err != nil {
		return nil, fmt.Errorf("policy %s: bad end_date: %w", p.ID, err)
	}
	if p.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, fmt.Errorf("policy %s: bad created_at: %w", p.ID, err)
	}
	return &p, nil
}

// =============================================================================
// CLAIMS
// =============================================================================

// SaveClaim validates and inserts (or replaces) a claim.
func (s *Store) SaveClaim(ctx context.Context, c insurance.Claim) error {
	c.CreatedAt = insurance.StampCreated(c.CreatedAt, time.Now())
	if err := c.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO claims
			(id, policy_id, customer_id, description, status, claim_amount, incident_date, review_notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.PolicyID, c.CustomerID, c.Description, string(c.Status),
		c.ClaimAmount.String(), encodeTime(c.IncidentDate), c.ReviewNotes, encodeTime(c.CreatedAt))
	return err
}

// UpdateClaimStatus moves a claim to a new status, replacing its review notes.
func (s *Store) UpdateClaimStatus(ctx context.Context, id string, status insurance.ClaimStatus, reviewNotes string) error {
	if !status.Valid() {
		return &generic.FieldError{Entity: "claim", ID: id, Field: "status", Reason: "is not a known status: " + string(status)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE claims SET status = ?, review_notes = ? WHERE id = ?`,
		string(status), reviewNotes, id)
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

// GetClaim returns one claim, or generic.ErrNotFound.
func (s *Store) GetClaim(ctx context.Context, id string) (*insurance.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, claimSelect+` WHERE id = ?`, id)
	c, err := scanClaim(row)
	if err == sql.ErrNoRows {
		return nil, generic.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListClaims returns all claims in creation order.
func (s *Store) ListClaims(ctx context.Context) ([]insurance.Claim, error) {
	return s.queryClaims(ctx, claimSelect+` ORDER BY created_at, id`)
}

// ListClaimsByCustomer returns one customer's claims in creation order.
func (s *Store) ListClaimsByCustomer(ctx context.Context, customerID string) ([]insurance.Claim, error) {
	return s.queryClaims(ctx, claimSelect+` WHERE customer_id = ? ORDER BY created_at, id`, customerID)
}

const claimSelect = `
	SELECT id, policy_id, customer_id, description, status, claim_amount, incident_date, review_notes, created_at
	FROM claims`

func (s *Store) queryClaims(ctx context.Context, query string, args ...any) ([]insurance.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []insurance.Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func scanClaim(row scanner) (*insurance.Claim, error) {
	var c insurance.Claim
	var status, amount, incidentDate, createdAt string
	if err := row.Scan(&c.ID, &c.PolicyID, &c.CustomerID, &c.Description, &status,
		&amount, &incidentDate, &c.ReviewNotes, &createdAt); err != nil {
		return nil, err
	}

	c.Status = insurance.ClaimStatus(status)

	var err error
	if c.ClaimAmount, err = decodeDecimal(amount); err != nil {
		return nil, fmt.Errorf("claim %s: bad claim_amount: %w", c.ID, err)
	}
	if c.IncidentDate, err = decodeTime(incidentDate); err != nil {
		return nil, fmt.Errorf("claim %s: bad incident_date: %w", c.ID, err)
	}
	if c.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, fmt.Errorf("claim %s: bad created_at: %w", c.ID, err)
	}
	return &c, nil
}

// =============================================================================
// PAYMENTS
// =============================================================================

// SavePayment validates and inserts (or replaces) a payment.
func (s *Store) SavePayment(ctx context.Context, p insurance.Payment) error {
	p.CreatedAt = insurance.StampCreated(p.CreatedAt, time.Now())
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO payments (id, policy_id, customer_id, amount, method, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.PolicyID, p.CustomerID, p.Amount.String(), string(p.Method), string(p.Status), encodeTime(p.CreatedAt))
	return err
}

// ListPayments returns all payments in creation order.
func (s *Store) ListPayments(ctx context.Context) ([]insurance.Payment, error) {
	return s.queryPayments(ctx, paymentSelect+` ORDER BY created_at, id`)
}

// ListPaymentsByCustomer returns one customer's payments in creation order.
func (s *Store) ListPaymentsByCustomer(ctx context.Context, customerID string) ([]insurance.Payment, error) {
	return s.queryPayments(ctx, paymentSelect+` WHERE customer_id = ? ORDER BY created_at, id`, customerID)
}

// ListPaymentsByPolicy returns one policy's payments in creation order.
func (s *Store) ListPaymentsByPolicy(ctx context.Context, policyID string) ([]insurance.Payment, error) {
	return s.queryPayments(ctx, paymentSelect+` WHERE policy_id = ? ORDER BY created_at, id`, policyID)
}

const paymentSelect = `
	SELECT id, policy_id, customer_id, amount, method, status, created_at
	FROM payments`

func (s *Store) queryPayments(ctx context.Context, query string, args ...any) ([]insurance.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []insurance.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func scanPayment(row scanner) (*insurance.Payment, error) {
	var p insurance.Payment
	var amount, method, status, createdAt string
	if err := row.Scan(&p.ID, &p.PolicyID, &p.CustomerID, &amount, &method, &status, &createdAt); err != nil {
		return nil, err
	}

	p.Method = insurance.PaymentMethod(method)
	p.Status = insurance.PaymentStatus(status)

	var err error
	if p.Amount, err = decodeDecimal(amount); err != nil {
		return nil, fmt.Errorf("payment %s: bad amount: %w", p.ID, err)
	}
	if p.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, fmt.Errorf("payment %s: bad created_at: %w", p.ID, err)
	}
	return &p, nil
}
