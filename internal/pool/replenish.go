// internal/pool/replenish.go
package pool

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// needClamp decides how many instances a replenish call may create: never
// more than requested, never past the target. Recomputing from the live
// available count keeps concurrent replenish calls convergent on the target
// instead of each creating their full request.
func needClamp(target, available, requested int) int {
	needed := target - available
	if needed <= 0 {
		return 0
	}
	if requested < needed {
		return requested
	}
	return needed
}

// Replenish creates up to requested new demo instances, clamped to the gap
// between the live available count and the target pool size. The count is
// re-checked at execution time, not enqueue time, which makes queued
// replenish jobs idempotent under at-least-once delivery.
func (s *Service) Replenish(ctx context.Context, requested int) (int, error) {
	available, err := s.store.AvailableCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("replenish precheck: %w", err)
	}

	toCreate := needClamp(s.target, available, requested)
	if toCreate == 0 {
		s.log.Info("pool is healthy, no replenishment needed",
			zap.Int("available", available), zap.Int("target", s.target))
		return 0, nil
	}

	s.log.Info("replenishing demo pool",
		zap.Int("creating", toCreate),
		zap.Int("available", available),
		zap.Int("target", s.target))

	created, err := s.seeder.Seed(ctx, toCreate)
	if err != nil {
		return created, fmt.Errorf("replenish seed: %w", err)
	}
	return created, nil
}

// topUp restores the pool to its target size: small gaps are filled inline,
// large gaps are handed to the queue worker so the caller is not held up.
func (s *Service) topUp(ctx context.Context) (created, enqueued int, err error) {
	available, err := s.store.AvailableCount(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("top-up precheck: %w", err)
	}

	needed := s.target - available
	if needed <= 0 {
		return 0, 0, nil
	}

	if needed <= s.syncThreshold || s.queue == nil {
		created, err = s.Replenish(ctx, needed)
		return created, 0, err
	}

	s.enqueueReplenish(needed)
	return 0, needed, nil
}
