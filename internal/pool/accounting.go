// internal/pool/accounting.go
package pool

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"demo-pool/internal/metrics"
)

// Counts returns the committed available and active pool counts. The reads
// are advisory; any mutation that depends on them re-validates under its own
// row lock.
func (s *Service) Counts(ctx context.Context) (available, active int, err error) {
	available, err = s.store.AvailableCount(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("available count: %w", err)
	}
	active, err = s.store.ActiveCount(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("active count: %w", err)
	}
	metrics.PoolAvailable.Set(float64(available))
	metrics.PoolActive.Set(float64(active))
	return available, active, nil
}

func (s *Service) refreshGauges(ctx context.Context) {
	if _, _, err := s.Counts(ctx); err != nil {
		s.log.Warn("failed to refresh pool gauges", zap.Error(err))
	}
}
