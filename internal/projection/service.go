package projection

import (
	"context"
	"errors"
	"fmt"
	"strings"

	v1 "github.com/aevon-lab/behavior-ledger/internal/api/v1"
	"github.com/aevon-lab/behavior-ledger/internal/core/storage"
)

const (
	DefaultQueryLimit = 100
	MaxQueryLimit     = 1000
	DefaultStatsDays  = 7
	DefaultPathLimit  = 20
	MaxPathLimit      = 200
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid behavior query")

// Service is the read side over stored behavior events.
type Service struct {
	store storage.EventStore
}

func NewService(store storage.EventStore) *Service {
	if store == nil {
		panic("projection: store must not be nil")
	}
	return &Service{store: store}
}

// QueryBehaviors lists a user's events matching all given filters.
func (s *Service) QueryBehaviors(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	userID, err := requireUser(string(req.UserID))
	if err != nil {
		return nil, err
	}
	if req.StartTime != nil && req.EndTime != nil && *req.EndTime < *req.StartTime {
		return nil, invalidQueryf("end_time must not be before start_time")
	}

	behaviors, err := s.store.QueryByUser(ctx, storage.BehaviorQuery{
		UserID:    userID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		EventType: req.EventType,
		Page:      req.Page,
		Limit:     clamp(req.Limit, DefaultQueryLimit, MaxQueryLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("query behaviors: %w", err)
	}
	if behaviors == nil {
		behaviors = []*v1.Behavior{}
	}

	return &QueryResponse{Behaviors: behaviors, Count: len(behaviors)}, nil
}

// Stats counts a user's events created in the trailing window.
func (s *Service) Stats(ctx context.Context, req StatsRequest) (*v1.BehaviorStats, error) {
	userID, err := requireUser(string(req.UserID))
	if err != nil {
		return nil, err
	}

	days := req.Days
	if days <= 0 {
		days = DefaultStatsDays
	}

	stats, err := s.store.StatsByUser(ctx, userID, days)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	return stats, nil
}

// Path returns a user's latest page_view and page_leave events.
func (s *Service) Path(ctx context.Context, req PathRequest) (*PathResponse, error) {
	userID, err := requireUser(string(req.UserID))
	if err != nil {
		return nil, err
	}

	path, err := s.store.RecentPath(ctx, userID, clamp(req.Limit, DefaultPathLimit, MaxPathLimit))
	if err != nil {
		return nil, fmt.Errorf("query path: %w", err)
	}
	if path == nil {
		path = []v1.PathStep{}
	}

	return &PathResponse{Path: path, Count: len(path)}, nil
}

func requireUser(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", invalidQueryf("user_id is required")
	}
	return userID, nil
}

// clamp maps non-positive values to def and caps at max.
func clamp(v, def, max int) int {
	if v <= 0 {
		return def
	}
	if v > max {
		return max
	}
	return v
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
