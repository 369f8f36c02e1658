package storage

import (
	"context"
	"time"

	v1 "github.com/aevon-lab/behavior-ledger/internal/api/v1"
	"github.com/aevon-lab/behavior-ledger/internal/metrics"
)

type instrumentedStore struct {
	next EventStore
}

// Instrument wraps store so every call records latency and failures in metrics.
func Instrument(store EventStore) EventStore {
	if store == nil {
		panic("storage: store must not be nil")
	}
	return &instrumentedStore{next: store}
}

func (s *instrumentedStore) BulkInsert(ctx context.Context, events []*v1.Event) (*BulkResult, error) {
	start := time.Now()
	res, err := s.next.BulkInsert(ctx, events)
	metrics.RecordStoreCall("bulk_insert", time.Since(start), err)
	return res, err
}

func (s *instrumentedStore) QueryByUser(ctx context.Context, q BehaviorQuery) ([]*v1.Behavior, error) {
	start := time.Now()
	res, err := s.next.QueryByUser(ctx, q)
	metrics.RecordStoreCall("query_by_user", time.Since(start), err)
	return res, err
}

func (s *instrumentedStore) StatsByUser(ctx context.Context, userID string, days int) (*v1.BehaviorStats, error) {
	start := time.Now()
	res, err := s.next.StatsByUser(ctx, userID, days)
	metrics.RecordStoreCall("stats_by_user", time.Since(start), err)
	return res, err
}

func (s *instrumentedStore) RecentPath(ctx context.Context, userID string, limit int) ([]v1.PathStep, error) {
	start := time.Now()
	res, err := s.next.RecentPath(ctx, userID, limit)
	metrics.RecordStoreCall("recent_path", time.Since(start), err)
	return res, err
}

func (s *instrumentedStore) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	start := time.Now()
	n, err := s.next.PurgeOlderThan(ctx, days)
	metrics.RecordStoreCall("purge", time.Since(start), err)
	return n, err
}
