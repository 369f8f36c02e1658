package projection

import (
	v1 "github.com/aevon-lab/behavior-ledger/internal/api/v1"
)

// QueryRequest is the body of POST /api/behavior/query.
// Times are epoch milliseconds, inclusive. Limit <= 0 means the default.
type QueryRequest struct {
	UserID    v1.UserRef `json:"user_id"`
	StartTime *int64     `json:"start_time,omitempty"`
	EndTime   *int64     `json:"end_time,omitempty"`
	EventType string     `json:"event_type,omitempty"`
	Page      string     `json:"page,omitempty"`
	Limit     int        `json:"limit,omitempty"`
}

// QueryResponse lists a user's behaviors, newest first.
type QueryResponse struct {
	Behaviors []*v1.Behavior `json:"behaviors"`
	Count     int            `json:"count"`
}

// StatsRequest is the body of POST /api/behavior/stats.
type StatsRequest struct {
	UserID v1.UserRef `json:"user_id"`
	Days   int        `json:"days,omitempty"`
}

// PathRequest is the body of POST /api/behavior/path.
type PathRequest struct {
	UserID v1.UserRef `json:"user_id"`
	Limit  int        `json:"limit,omitempty"`
}

// PathResponse is a user's recent page navigation, newest first.
type PathResponse struct {
	Path  []v1.PathStep `json:"path"`
	Count int           `json:"count"`
}
