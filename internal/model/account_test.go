package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLeaseExpired(t *testing.T) {
	now := time.Now()
	ttl := 4 * time.Hour

	leased := now.Add(-ttl + time.Second)
	a := &DemoAccount{State: StateActive, LeasedAt: &leased}
	require.False(t, a.LeaseExpired(now, ttl), "lease just inside the window")

	leased = now.Add(-ttl - time.Second)
	require.True(t, a.LeaseExpired(now, ttl), "lease just past the window")
}

func TestLeaseExpiredUnleasedAccount(t *testing.T) {
	a := &DemoAccount{State: StateAvailable}
	require.False(t, a.LeaseExpired(time.Now(), time.Hour))

	// An active state without a timestamp never reports expired.
	a = &DemoAccount{State: StateActive}
	require.False(t, a.LeaseExpired(time.Now(), time.Hour))
}
