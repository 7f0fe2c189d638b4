package pool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"demo-pool/internal/auth"
	"demo-pool/internal/config"
	"demo-pool/internal/model"
	"demo-pool/internal/storage"
)

// fakeStore is an in-memory Store for exercising pool policy without a
// database. Locking semantics collapse to a mutex; the real row-lock
// behavior is covered by the integration tests.
type fakeStore struct {
	mu         sync.Mutex
	accounts   map[string]*model.DemoAccount
	workspaces map[uuid.UUID][]uuid.UUID

	purgeErr     error
	deleteErr    error
	purgedWs     []uuid.UUID
	deletedWs    []uuid.UUID
	deletedAccts []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:   make(map[string]*model.DemoAccount),
		workspaces: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeStore) addAccount(state model.LeaseState, leasedAt *time.Time) *model.DemoAccount {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := &model.DemoAccount{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("demo_%s@demo.example.com", uuid.NewString()[:8]),
		State:        state,
		LeasedAt:     leasedAt,
		LastLeasedAt: leasedAt,
		CreatedAt:    time.Now(),
	}
	f.accounts[a.Email] = a
	wsID := uuid.New()
	f.workspaces[a.ID] = []uuid.UUID{wsID}
	return a
}

func (f *fakeStore) AvailableCount(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, a := range f.accounts {
		if a.State == model.StateAvailable {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) ActiveCount(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, a := range f.accounts {
		if a.State == model.StateActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) AccountByEmail(_ context.Context, email string) (*model.DemoAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[email]
	if !ok {
		return nil, fmt.Errorf("account %s not found", email)
	}
	cp := *a
	return &cp, nil
}

func (f *fakeStore) AcquireAvailable(context.Context) (*model.DemoAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.State == model.StateAvailable {
			now := time.Now()
			a.State = model.StateActive
			a.LeasedAt = &now
			a.LastLeasedAt = &now
			cp := *a
			return &cp, nil
		}
	}
	return nil, storage.ErrNoAvailable
}

func (f *fakeStore) ReleaseExpired(_ context.Context, ttl time.Duration) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	released := 0
	now := time.Now()
	for _, a := range f.accounts {
		if a.State == model.StateActive && a.LeasedAt != nil && now.Sub(*a.LeasedAt) > ttl {
			a.State = model.StateAvailable
			a.LeasedAt = nil
			released++
		}
	}
	return released, nil
}

func (f *fakeStore) ExpiredAccounts(_ context.Context, dataTTL time.Duration) ([]model.DemoAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cutoff := time.Now().Add(-dataTTL)
	var out []model.DemoAccount
	for _, a := range f.accounts {
		if a.State != model.StateAvailable {
			continue
		}
		if a.LastLeasedAt != nil && a.LastLeasedAt.Before(cutoff) {
			out = append(out, *a)
		} else if a.LastLeasedAt == nil && a.CreatedAt.Before(cutoff) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) AccountWorkspaces(_ context.Context, accountID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.workspaces[accountID], nil
}

func (f *fakeStore) PurgePluginData(_ context.Context, wsID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.purgeErr != nil {
		return f.purgeErr
	}
	f.purgedWs = append(f.purgedWs, wsID)
	return nil
}

// DeleteAccount mirrors the real store's all-or-nothing semantics: a failure
// mutates nothing.
func (f *fakeStore) DeleteAccount(_ context.Context, id uuid.UUID, workspaceIDs []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for email, a := range f.accounts {
		if a.ID == id {
			f.deletedWs = append(f.deletedWs, workspaceIDs...)
			delete(f.accounts, email)
			delete(f.workspaces, id)
			f.deletedAccts = append(f.deletedAccts, email)
			return nil
		}
	}
	return fmt.Errorf("account %s not found", id)
}

// fakeSeeder creates bare available accounts directly in the fake store.
type fakeSeeder struct {
	store   *fakeStore
	seedErr error
	seeded  int
}

func (f *fakeSeeder) Seed(_ context.Context, n int) (int, error) {
	if f.seedErr != nil {
		return 0, f.seedErr
	}
	for i := 0; i < n; i++ {
		f.store.addAccount(model.StateAvailable, nil)
	}
	f.seeded += n
	return n, nil
}

func (f *fakeSeeder) SeedLeased(context.Context) (*model.DemoAccount, error) {
	if f.seedErr != nil {
		return nil, f.seedErr
	}
	now := time.Now()
	a := f.store.addAccount(model.StateActive, &now)
	f.seeded++
	return a, nil
}

type fakeQueue struct {
	mu       sync.Mutex
	enqueued []int
	err      error
}

func (f *fakeQueue) EnqueueReplenish(count int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, count)
	return nil
}

func testConfig(target int) *config.Config {
	cfg := config.Default()
	cfg.Demo.PoolSize = target
	cfg.Demo.SessionTTL = config.Duration(4 * time.Hour)
	cfg.Demo.DataTTL = config.Duration(24 * time.Hour)
	return cfg
}

func newTestService(cfg *config.Config, store Store, seed *fakeSeeder, queue Enqueuer) *Service {
	tokens := auth.NewTokenManager("test-secret", cfg.Demo.SessionTTL.Std())
	return New(store, seed, queue, tokens, cfg, zap.NewNop())
}
