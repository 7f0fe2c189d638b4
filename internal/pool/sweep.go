// internal/pool/sweep.go
package pool

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"demo-pool/internal/metrics"
	"demo-pool/internal/model"
)

// Sweep runs one maintenance cycle: release expired leases, hard-delete
// accounts past the data retention TTL, then top the pool back up. Each step
// is independently transactional and a failing step never blocks the next;
// the joined errors come back alongside a report of what did happen.
// Running Sweep twice in a row is a no-op the second time.
func (s *Service) Sweep(ctx context.Context) (model.SweepReport, error) {
	var report model.SweepReport
	var errs []error

	released, err := s.store.ReleaseExpired(ctx, s.sessionTTL)
	if err != nil {
		s.log.Error("sweep: release step failed", zap.Error(err))
		errs = append(errs, fmt.Errorf("release: %w", err))
	} else {
		report.Released = released
		metrics.SweepReleased.Add(float64(released))
		if released > 0 {
			s.log.Info("released expired leases", zap.Int("count", released))
		}
	}

	deleted, err := s.collectGarbage(ctx)
	report.Deleted = deleted
	if err != nil {
		s.log.Error("sweep: garbage collection failed", zap.Error(err))
		errs = append(errs, fmt.Errorf("garbage collect: %w", err))
	}

	created, enqueued, err := s.topUp(ctx)
	report.Replenished = created
	report.Enqueued = enqueued
	if err != nil {
		s.log.Error("sweep: replenish step failed", zap.Error(err))
		errs = append(errs, fmt.Errorf("replenish: %w", err))
	}

	s.refreshGauges(ctx)
	return report, errors.Join(errs...)
}

// collectGarbage hard-deletes accounts past the data TTL together with their
// workspaces. Plugin-owned tables have no cascade back to the workspace, so
// they are purged explicitly first; a purge failure is logged as a warning
// and the rest of the deletion still proceeds.
func (s *Service) collectGarbage(ctx context.Context) (int, error) {
	victims, err := s.store.ExpiredAccounts(ctx, s.dataTTL)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, account := range victims {
		if err := s.deleteAccount(ctx, &account); err != nil {
			s.log.Error("failed to delete expired account",
				zap.String("email", account.Email), zap.Error(err))
			continue
		}
		deleted++
		metrics.SweepDeleted.Inc()
	}
	if deleted > 0 {
		s.log.Info("deleted expired demo accounts", zap.Int("count", deleted))
	}
	return deleted, nil
}

func (s *Service) deleteAccount(ctx context.Context, account *model.DemoAccount) error {
	workspaces, err := s.store.AccountWorkspaces(ctx, account.ID)
	if err != nil {
		return fmt.Errorf("list workspaces: %w", err)
	}

	for _, wsID := range workspaces {
		if err := s.store.PurgePluginData(ctx, wsID); err != nil {
			s.log.Warn("plugin data cleanup failed, continuing",
				zap.String("workspace", wsID.String()), zap.Error(err))
		}
	}

	// Workspaces and account go in one transaction; a failure leaves the
	// victim intact for the next sweep instead of half-deleted.
	return s.store.DeleteAccount(ctx, account.ID, workspaces)
}
