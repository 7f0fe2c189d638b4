// internal/storage/accounts.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"demo-pool/internal/model"
)

// ErrNoAvailable is returned by AcquireAvailable when the pool is empty.
var ErrNoAvailable = errors.New("no available demo account")

// DemoPattern is the SQL LIKE pattern matching pool-managed account emails.
func (s *Storage) DemoPattern() string {
	return "demo_%@" + s.demoDomain
}

// AvailableCount returns the number of unleased accounts in the pool.
func (s *Storage) AvailableCount(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM demo_accounts
		WHERE state = 'available' AND email LIKE $1
	`, s.DemoPattern()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count available accounts: %w", err)
	}
	return n, nil
}

// ActiveCount returns the number of currently leased accounts.
func (s *Storage) ActiveCount(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM demo_accounts
		WHERE state = 'active' AND email LIKE $1
	`, s.DemoPattern()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active accounts: %w", err)
	}
	return n, nil
}

const accountColumns = `id, email, password_hash, name, state, leased_at, last_leased_at, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (*model.DemoAccount, error) {
	var a model.DemoAccount
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.State,
		&a.LeasedAt, &a.LastLeasedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AccountByEmail loads one pool-managed account by its synthetic email.
func (s *Storage) AccountByEmail(ctx context.Context, email string) (*model.DemoAccount, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT `+accountColumns+` FROM demo_accounts
		WHERE email = $1 AND email LIKE $2
	`, email, s.DemoPattern())
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", email, err)
	}
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	return a, nil
}

// AcquireAvailable claims one available account for a new lease. The select
// locks the chosen row so two concurrent acquirers can never claim the same
// account; SKIP LOCKED lets them claim different rows instead of queueing on
// one. Returns ErrNoAvailable when the pool is empty.
func (s *Storage) AcquireAvailable(ctx context.Context) (*model.DemoAccount, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin acquire tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT `+accountColumns+` FROM demo_accounts
		WHERE state = 'available' AND email LIKE $1
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	`, s.DemoPattern())
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoAvailable
	}
	if err != nil {
		return nil, fmt.Errorf("select available account: %w", err)
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		UPDATE demo_accounts
		SET state = 'active', leased_at = $2, last_leased_at = $2, updated_at = $2
		WHERE id = $1
	`, a.ID, now)
	if err != nil {
		return nil, fmt.Errorf("mark account active: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit acquire tx: %w", err)
	}

	a.State = model.StateActive
	a.LeasedAt = &now
	a.LastLeasedAt = &now
	a.UpdatedAt = now
	return a, nil
}

// ReleaseExpired returns every account whose lease is older than ttl to the
// available pool. The workspace data survives and may be re-leased.
func (s *Storage) ReleaseExpired(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-ttl)
	res, err := s.DB.ExecContext(ctx, `
		UPDATE demo_accounts
		SET state = 'available', leased_at = NULL, updated_at = NOW()
		WHERE state = 'active' AND email LIKE $1 AND leased_at < $2
	`, s.DemoPattern(), cutoff)
	if err != nil {
		return 0, fmt.Errorf("release expired leases: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("release rows affected: %w", err)
	}
	return int(n), nil
}

// ExpiredAccounts lists accounts past the data retention TTL: accounts whose
// last lease ended long ago, plus never-leased accounts that have aged out of
// the pool without ever being used.
func (s *Storage) ExpiredAccounts(ctx context.Context, dataTTL time.Duration) ([]model.DemoAccount, error) {
	cutoff := time.Now().UTC().Add(-dataTTL)
	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+accountColumns+` FROM demo_accounts
		WHERE email LIKE $1
		  AND state = 'available'
		  AND ((last_leased_at IS NOT NULL AND last_leased_at < $2)
		    OR (last_leased_at IS NULL AND created_at < $2))
	`, s.DemoPattern(), cutoff)
	if err != nil {
		return nil, fmt.Errorf("list expired accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.DemoAccount
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expired account: %w", err)
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

// AccountWorkspaces lists the workspace IDs owned by an account.
func (s *Storage) AccountWorkspaces(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT workspace_id FROM account_workspaces WHERE account_id = $1
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list account workspaces: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan workspace id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
