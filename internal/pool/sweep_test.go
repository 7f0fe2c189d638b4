package pool

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"demo-pool/internal/config"
)

func TestSweepReleasesExpiredLeases(t *testing.T) {
	store := newFakeStore()
	expired := time.Now().Add(-5 * time.Hour)
	live := time.Now().Add(-1 * time.Hour)
	store.addAccount("active", &expired)
	store.addAccount("active", &live)

	seed := &fakeSeeder{store: store}
	svc := newTestService(testConfig(2), store, seed, &fakeQueue{})

	report, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, report.Released)

	// Immediately re-running the sweep releases nothing further.
	report, err = svc.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, report.Released)
}

func TestSweepDeletesAccountsPastDataTTL(t *testing.T) {
	store := newFakeStore()
	longGone := time.Now().Add(-48 * time.Hour)
	victim := store.addAccount("available", &longGone)
	store.accounts[victim.Email].State = "available"
	store.accounts[victim.Email].LeasedAt = nil
	keeper := store.addAccount("available", nil)

	seed := &fakeSeeder{store: store}
	svc := newTestService(testConfig(1), store, seed, &fakeQueue{})

	report, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, report.Deleted)
	require.Equal(t, []string{victim.Email}, store.deletedAccts)
	require.Len(t, store.purgedWs, 1)
	require.Len(t, store.deletedWs, 1)
	require.Contains(t, store.accounts, keeper.Email)
}

func TestSweepPluginCleanupFailureIsNotFatal(t *testing.T) {
	store := newFakeStore()
	longGone := time.Now().Add(-48 * time.Hour)
	victim := store.addAccount("available", &longGone)
	store.accounts[victim.Email].LeasedAt = nil
	store.purgeErr = errors.New("plugin table is locked")

	seed := &fakeSeeder{store: store}
	svc := newTestService(testConfig(1), store, seed, &fakeQueue{})

	report, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	// Deletion proceeds past the failed plugin purge.
	require.Equal(t, 1, report.Deleted)
	require.Equal(t, []string{victim.Email}, store.deletedAccts)
}

func TestSweepDeleteFailureLeavesVictimIntact(t *testing.T) {
	store := newFakeStore()
	longGone := time.Now().Add(-48 * time.Hour)
	victim := store.addAccount("available", &longGone)
	store.accounts[victim.Email].LeasedAt = nil
	store.deleteErr = errors.New("connection reset")

	seed := &fakeSeeder{store: store}
	svc := newTestService(testConfig(1), store, seed, &fakeQueue{})

	report, err := svc.Sweep(context.Background())
	require.NoError(t, err)

	// Deletion is all-or-nothing per victim: nothing counted, no workspace
	// removed without its account, and the next sweep can retry.
	require.Zero(t, report.Deleted)
	require.Empty(t, store.deletedWs)
	require.Empty(t, store.deletedAccts)
	require.Contains(t, store.accounts, victim.Email)
}

func TestSweepReplenishesAfterCleanup(t *testing.T) {
	store := newFakeStore()
	expired := time.Now().Add(-5 * time.Hour)
	store.addAccount("active", &expired)

	seed := &fakeSeeder{store: store}
	svc := newTestService(testConfig(3), store, seed, &fakeQueue{})

	report, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, report.Released)
	// One account came back from release; two more fill the gap to target.
	require.Equal(t, 2, report.Replenished)

	available, err := store.AvailableCount(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, available)
}

func TestSweepTTLBoundary(t *testing.T) {
	cfg := testConfig(1)
	cfg.Demo.SessionTTL = config.Duration(4 * time.Hour)

	store := newFakeStore()
	justInside := time.Now().Add(-4*time.Hour + time.Second)
	store.addAccount("active", &justInside)

	seed := &fakeSeeder{store: store}
	svc := newTestService(cfg, store, seed, &fakeQueue{})

	report, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, report.Released)

	justPast := time.Now().Add(-4*time.Hour - time.Second)
	store.addAccount("active", &justPast)

	report, err = svc.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, report.Released)
}
