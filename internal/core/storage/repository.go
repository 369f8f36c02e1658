package storage

import (
	"context"
	"fmt"

	v1 "github.com/aevon-lab/behavior-ledger/internal/api/v1"
)

// InsertOutcome is the per-event result of a bulk insert.
type InsertOutcome int

const (
	// OutcomeInserted means a new row was written.
	OutcomeInserted InsertOutcome = iota
	// OutcomeDuplicateID means a row with the same event_id already existed
	// (or appeared earlier in the same batch). Nothing was written.
	OutcomeDuplicateID
	// OutcomeStorageError means the statement failed and nothing in the batch was written.
	OutcomeStorageError
)

func (o InsertOutcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeDuplicateID:
		return "duplicate_id"
	case OutcomeStorageError:
		return "storage_error"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// BulkResult reports what a bulk insert did. Outcomes is index-aligned with the input slice.
type BulkResult struct {
	Inserted   int64
	Duplicates int64
	Outcomes   []InsertOutcome
}

// StorageError wraps a failure of the persistence backend.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// BehaviorQuery filters QueryByUser. Zero values mean "no filter".
type BehaviorQuery struct {
	UserID    string
	StartTime *int64 // inclusive, epoch ms
	EndTime   *int64 // inclusive, epoch ms
	EventType string
	Page      string
	Limit     int
}

// EventStore defines persistence for behavior events.
type EventStore interface {
	// BulkInsert writes all events in one atomic statement. Duplicate event IDs are skipped.
	BulkInsert(ctx context.Context, events []*v1.Event) (*BulkResult, error)

	// QueryByUser returns a user's events newest-timestamp first, capped at q.Limit.
	QueryByUser(ctx context.Context, q BehaviorQuery) ([]*v1.Behavior, error)

	// StatsByUser counts a user's events created within the trailing window of days.
	StatsByUser(ctx context.Context, userID string, days int) (*v1.BehaviorStats, error)

	// RecentPath returns the user's latest page_view/page_leave events.
	RecentPath(ctx context.Context, userID string, limit int) ([]v1.PathStep, error)

	// PurgeOlderThan deletes rows created more than days ago and returns the count.
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
}
