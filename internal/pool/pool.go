// internal/pool/pool.go
package pool

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"demo-pool/internal/auth"
	"demo-pool/internal/config"
	"demo-pool/internal/model"
)

// ErrPoolExhausted means no account is available and synchronous fallback is
// disabled. Callers surface it as a "preparing, try again" message, never as
// a hard failure.
var ErrPoolExhausted = errors.New("demo pool exhausted")

// ErrStaleToken marks a returning-visitor token that no longer maps to a
// live lease. It is swallowed internally; acquisition falls through to the
// normal path.
var ErrStaleToken = errors.New("stale lease token")

// Store is the account persistence the pool manager runs against.
type Store interface {
	AvailableCount(ctx context.Context) (int, error)
	ActiveCount(ctx context.Context) (int, error)
	AccountByEmail(ctx context.Context, email string) (*model.DemoAccount, error)
	AcquireAvailable(ctx context.Context) (*model.DemoAccount, error)
	ReleaseExpired(ctx context.Context, ttl time.Duration) (int, error)
	ExpiredAccounts(ctx context.Context, dataTTL time.Duration) ([]model.DemoAccount, error)
	AccountWorkspaces(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error)
	PurgePluginData(ctx context.Context, workspaceID uuid.UUID) error
	DeleteAccount(ctx context.Context, accountID uuid.UUID, workspaceIDs []uuid.UUID) error
}

// Seeder creates fully seeded demo instances. SeedLeased creates one that is
// already leased to the caller, atomically with its data.
type Seeder interface {
	Seed(ctx context.Context, n int) (int, error)
	SeedLeased(ctx context.Context) (*model.DemoAccount, error)
}

// Enqueuer hands replenishment work to the background queue.
type Enqueuer interface {
	EnqueueReplenish(count int) error
}

// Service is the pool manager: it leases accounts to visitors, releases and
// garbage-collects them on sweep, and keeps the pool at its target size.
type Service struct {
	store  Store
	seeder Seeder
	queue  Enqueuer // nil means replenish always runs inline
	tokens *auth.TokenManager
	log    *zap.Logger

	target        int
	sessionTTL    time.Duration
	dataTTL       time.Duration
	syncFallback  bool
	syncThreshold int
}

func New(store Store, seeder Seeder, queue Enqueuer, tokens *auth.TokenManager, cfg *config.Config, log *zap.Logger) *Service {
	return &Service{
		store:         store,
		seeder:        seeder,
		queue:         queue,
		tokens:        tokens,
		log:           log,
		target:        cfg.Demo.PoolSize,
		sessionTTL:    cfg.Demo.SessionTTL.Std(),
		dataTTL:       cfg.Demo.DataTTL.Std(),
		syncFallback:  cfg.Demo.SyncFallback,
		syncThreshold: cfg.Demo.SyncThreshold,
	}
}

// Target is the configured pool size.
func (s *Service) Target() int {
	return s.target
}
