// internal/pool/lease.go
package pool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"demo-pool/internal/metrics"
	"demo-pool/internal/model"
	"demo-pool/internal/storage"
)

// Acquire leases a demo account to a visitor and returns it with a session
// token for re-attachment. If returningToken names an account whose lease is
// still live, that account is handed back without touching the pool.
//
// When the pool is empty and synchronous fallback is enabled, one instance
// is seeded on the spot so the request still succeeds; with fallback
// disabled the caller gets ErrPoolExhausted and shows a retry-later message.
func (s *Service) Acquire(ctx context.Context, returningToken string) (*model.DemoAccount, string, error) {
	if returningToken != "" {
		account, err := s.resume(ctx, returningToken)
		if err == nil {
			metrics.LeasesTotal.WithLabelValues("token").Inc()
			return account, returningToken, nil
		}
		// Stale tokens fall through to a fresh lease, silently.
		s.log.Debug("discarding stale lease token", zap.Error(err))
	}

	path := "pool"
	account, err := s.store.AcquireAvailable(ctx)
	if errors.Is(err, storage.ErrNoAvailable) {
		if !s.syncFallback {
			return nil, "", ErrPoolExhausted
		}
		// The instance is created already leased, in one transaction, so
		// no concurrent acquirer can claim it before we hand it over.
		s.log.Info("pool empty, seeding one instance synchronously")
		account, err = s.seeder.SeedLeased(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("cold-pool seed: %w", err)
		}
		path = "seeded"
	}
	if err != nil {
		return nil, "", fmt.Errorf("acquire account: %w", err)
	}

	token, err := s.tokens.Issue(account.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue lease token: %w", err)
	}

	metrics.LeasesTotal.WithLabelValues(path).Inc()
	s.log.Info("leased demo account",
		zap.String("email", account.Email),
		zap.String("path", path))

	// Top up the pool for the slot we just took; never blocks the visitor.
	s.enqueueReplenish(1)

	return account, token, nil
}

// resume re-attaches a returning visitor to the account their token names.
// The token is only a hint: the account must still be actively leased and
// inside the session TTL.
func (s *Service) resume(ctx context.Context, token string) (*model.DemoAccount, error) {
	email, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrStaleToken
	}
	account, err := s.store.AccountByEmail(ctx, email)
	if err != nil {
		return nil, ErrStaleToken
	}
	if account.State != model.StateActive || account.LeaseExpired(time.Now(), s.sessionTTL) {
		return nil, ErrStaleToken
	}
	return account, nil
}

func (s *Service) enqueueReplenish(count int) {
	if s.queue == nil {
		return
	}
	if err := s.queue.EnqueueReplenish(count); err != nil {
		s.log.Warn("failed to enqueue replenish", zap.Int("count", count), zap.Error(err))
		return
	}
	metrics.ReplenishEnqueued.Add(float64(count))
}
