// internal/model/account.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// LeaseState is the explicit pool state of a demo account.
type LeaseState string

const (
	// StateAvailable means the account sits unleased in the pool.
	StateAvailable LeaseState = "available"
	// StateActive means the account is currently leased to a visitor.
	StateActive LeaseState = "active"
)

// DemoAccount is a pool-managed trial account. Accounts are recognized by
// their synthetic email under the reserved demo domain, which keeps them
// apart from regular accounts in the same table.
type DemoAccount struct {
	ID           uuid.UUID  `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Name         string     `db:"name"`
	State        LeaseState `db:"state"`
	LeasedAt     *time.Time `db:"leased_at"`
	LastLeasedAt *time.Time `db:"last_leased_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// Available reports whether the account can be handed to a new visitor.
func (a *DemoAccount) Available() bool {
	return a.State == StateAvailable
}

// LeaseExpired reports whether an active lease has outlived ttl at the
// given instant. Unleased accounts never expire.
func (a *DemoAccount) LeaseExpired(now time.Time, ttl time.Duration) bool {
	if a.State != StateActive || a.LeasedAt == nil {
		return false
	}
	return now.Sub(*a.LeasedAt) > ttl
}
