package v1

import (
	"time"
)

// Event is a validated behavior event split into its storage shape.
// Fixed columns are typed fields; everything else the client sent lives in BusinessData.
type Event struct {
	// EventID is the client-generated identifier. It is unique across the table,
	// re-submitting the same ID is a silent no-op.
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`

	// --- Who ---
	UserID    string `json:"user_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`

	// --- Where ---
	Page     string `json:"page,omitempty"`
	PageURL  string `json:"page_url,omitempty"`
	Referrer string `json:"referrer,omitempty"`

	// --- What was touched ---
	ElementType  string `json:"element_type,omitempty"`
	ElementID    string `json:"element_id,omitempty"`
	ElementText  string `json:"element_text,omitempty"`
	ElementClass string `json:"element_class,omitempty"`

	// Duration is in milliseconds, ScrollDepth in percent. Nil means not reported.
	Duration    *int64 `json:"duration,omitempty"`
	ScrollDepth *int64 `json:"scroll_depth,omitempty"`

	// Timestamp is the client clock in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`

	// BusinessData holds every non-null field outside the fixed set.
	BusinessData map[string]interface{} `json:"business_data,omitempty"`

	// Context is the device/environment payload, stored verbatim.
	Context interface{} `json:"context,omitempty"`
}

// Behavior is a stored event row as returned by the read APIs.
type Behavior struct {
	ID           int64       `json:"id"`
	EventID      string      `json:"event_id"`
	EventType    string      `json:"event_type"`
	UserID       *string     `json:"user_id"`
	SessionID    *string     `json:"session_id"`
	Page         *string     `json:"page"`
	PageURL      *string     `json:"page_url"`
	Referrer     *string     `json:"referrer"`
	ElementType  *string     `json:"element_type"`
	ElementID    *string     `json:"element_id"`
	ElementText  *string     `json:"element_text"`
	ElementClass *string     `json:"element_class"`
	BusinessData interface{} `json:"business_data"`
	Duration     *int64      `json:"duration"`
	ScrollDepth  *int64      `json:"scroll_depth"`
	ContextData  interface{} `json:"context_data"`
	Timestamp    int64       `json:"timestamp"`
	CreatedAt    time.Time   `json:"created_at"`
}

// PathStep is one page_view/page_leave entry of a user's navigation path.
type PathStep struct {
	Page      *string `json:"page"`
	Timestamp int64   `json:"timestamp"`
	EventType string  `json:"event_type"`
}

// BehaviorStats summarises a user's events over a trailing window of days.
type BehaviorStats struct {
	TotalEvents    int64            `json:"total_events"`
	EventTypeStats map[string]int64 `json:"event_type_stats"`
	PageStats      map[string]int64 `json:"page_stats"`
	Days           int              `json:"days"`
}

// UnknownPage is the page_stats key used for rows without a page.
const UnknownPage = "unknown"
