package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/behavior-ledger/internal/core/storage"
	"github.com/aevon-lab/behavior-ledger/internal/metrics"
)

const (
	DefaultDays     = 7
	DefaultInterval = 24 * time.Hour
)

// Scheduler deletes behavior rows older than a fixed number of days on a periodic interval.
// It holds no state between ticks; a failed purge is retried on the next one.
type Scheduler struct {
	interval time.Duration
	days     int
	store    storage.EventStore
}

// NewScheduler creates a purge scheduler. Non-positive values fall back to 7 days every 24h.
func NewScheduler(store storage.EventStore, interval time.Duration, days int) *Scheduler {
	if store == nil {
		panic("retention: store must not be nil")
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	if days <= 0 {
		days = DefaultDays
	}
	return &Scheduler{
		interval: interval,
		days:     days,
		store:    store,
	}
}

// Days is the configured retention window.
func (s *Scheduler) Days() int {
	return s.days
}

// Start purges once immediately, then on every tick.
// Runs until context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("[Retention] Starting purge scheduler", "interval", s.interval, "days", s.days)

	s.runLogged(ctx)

	for {
		select {
		case <-ticker.C:
			s.runLogged(ctx)
		case <-ctx.Done():
			slog.Info("[Retention] Stopping (context cancelled)")
			return nil
		}
	}
}

// RunOnce performs a single purge with the configured window.
func (s *Scheduler) RunOnce(ctx context.Context) (int64, error) {
	return Purge(ctx, s.store, s.days)
}

func (s *Scheduler) runLogged(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil {
		slog.Error("[Retention] Purge failed, will retry on next tick", "error", err, "days", s.days)
	}
}

// Purge deletes rows created more than days ago. days must be >= 1.
func Purge(ctx context.Context, store storage.EventStore, days int) (int64, error) {
	if days < 1 {
		return 0, fmt.Errorf("retention days must be >= 1, got %d", days)
	}

	start := time.Now()
	deleted, err := store.PurgeOlderThan(ctx, days)
	metrics.RecordPurge(deleted, err)
	if err != nil {
		return 0, fmt.Errorf("purge older than %d days: %w", days, err)
	}

	slog.Info("[Retention] Purged expired behavior rows",
		"deleted", deleted,
		"days", days,
		"duration", time.Since(start))

	return deleted, nil
}
