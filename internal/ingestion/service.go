package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/behavior-ledger/internal/api/v1"
	httperr "github.com/aevon-lab/behavior-ledger/internal/core/errors"
	"github.com/aevon-lab/behavior-ledger/internal/core/storage"
	"github.com/aevon-lab/behavior-ledger/internal/metrics"
	"github.com/aevon-lab/behavior-ledger/internal/suggestion"
	"github.com/gin-gonic/gin"
)

// MaxBatchSize is the hard cap on events per track request. Larger batches are rejected whole.
const MaxBatchSize = 100

// Suggestion trigger modes.
const (
	ModeSync  = "sync"
	ModeAsync = "async"
)

// Suggester produces a best-effort suggestion for a user after ingestion.
type Suggester interface {
	Suggest(ctx context.Context, userID string) (*suggestion.Suggestion, error)
}

// TrackRequest is the body of POST /api/behavior/track.
// Events stay raw so one malformed element is dropped instead of failing the batch.
// Meta is informational only.
type TrackRequest struct {
	Events []json.RawMessage `json:"events"`
	Meta   json.RawMessage   `json:"meta,omitempty"`
}

// TrackResult reports how much of a batch was accepted.
// Received minus Valid is the number of events dropped by validation.
type TrackResult struct {
	Received     int                    `json:"received"`
	Valid        int                    `json:"valid"`
	Inserted     int64                  `json:"inserted"`
	ServerTime   int64                  `json:"server_time"`
	AISuggestion *suggestion.Suggestion `json:"ai_suggestion,omitempty"`
}

// Options tunes optional behaviour of the Service.
type Options struct {
	MaxBodySizeMB     int
	Suggester         Suggester // nil disables suggestions
	SuggestionMode    string    // sync | async
	SuggestionTimeout time.Duration
}

type Service struct {
	store             storage.EventStore
	maxBodySizeBytes  int
	suggester         Suggester
	suggestionMode    string
	suggestionTimeout time.Duration
	now               func() time.Time
}

func NewService(store storage.EventStore, opts Options) *Service {
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	if opts.MaxBodySizeMB <= 0 {
		opts.MaxBodySizeMB = 1
	}
	if opts.SuggestionMode != ModeAsync {
		opts.SuggestionMode = ModeSync
	}
	if opts.SuggestionTimeout <= 0 {
		opts.SuggestionTimeout = 3 * time.Second
	}
	return &Service{
		store:             store,
		maxBodySizeBytes:  opts.MaxBodySizeMB * 1024 * 1024,
		suggester:         opts.Suggester,
		suggestionMode:    opts.SuggestionMode,
		suggestionTimeout: opts.SuggestionTimeout,
		now:               time.Now,
	}
}

// RegisterRoutes registers the ingestion routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/behavior/track", s.TrackHandler)
}

// Track validates a batch, stores the valid events and reports the counts.
// Invalid events are dropped without failing the batch.
func (s *Service) Track(ctx context.Context, req TrackRequest) (*TrackResult, error) {
	received := len(req.Events)

	if received == 0 {
		metrics.RecordRejectedBatch(metrics.ReasonEmptyBatch, 0)
		return nil, fmt.Errorf("%w: events must not be empty", httperr.ErrInvalidRequest)
	}
	if received > MaxBatchSize {
		metrics.RecordRejectedBatch(metrics.ReasonBatchTooBig, received)
		return nil, fmt.Errorf("%w: batch too large (%d events, max %d)", httperr.ErrInvalidRequest, received, MaxBatchSize)
	}

	valid := make([]*v1.Event, 0, received)
	userID := ""
	for i, elem := range req.Events {
		raw, err := decodeRawEvent(elem)
		if err != nil {
			slog.DebugContext(ctx, "Dropping undecodable event", "index", i, "error", err)
			continue
		}
		if err := raw.Validate(); err != nil {
			slog.DebugContext(ctx, "Dropping invalid event", "index", i, "error", err)
			continue
		}
		evt := v1.NewEvent(raw)
		if userID == "" && evt.UserID != "" {
			userID = evt.UserID
		}
		valid = append(valid, evt)
	}

	if len(valid) == 0 {
		metrics.RecordRejectedBatch(metrics.ReasonNoValidEvent, received)
		return nil, fmt.Errorf("%w: no valid events", httperr.ErrInvalidRequest)
	}

	res, err := s.store.BulkInsert(ctx, valid)
	if err != nil {
		metrics.RecordRejectedBatch(metrics.ReasonStorage, received)
		return nil, err
	}

	metrics.RecordBatch(received, len(valid), res.Inserted, res.Duplicates)

	result := &TrackResult{
		Received:   received,
		Valid:      len(valid),
		Inserted:   res.Inserted,
		ServerTime: s.now().UnixMilli(),
	}

	attrs := []any{"received", received, "valid", len(valid), "inserted", res.Inserted, "duplicates", res.Duplicates}
	if version := clientVersion(req.Meta); version != "" {
		attrs = append(attrs, "client_version", version)
	}
	slog.InfoContext(ctx, "Tracked behavior batch", attrs...)

	if userID != "" && s.suggester != nil {
		result.AISuggestion = s.triggerSuggestion(ctx, userID)
	}

	return result, nil
}

// decodeRawEvent keeps numbers as json.Number so timestamps keep their precision.
func decodeRawEvent(elem json.RawMessage) (v1.RawEvent, error) {
	dec := json.NewDecoder(bytes.NewReader(elem))
	dec.UseNumber()

	var raw v1.RawEvent
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// clientVersion returns meta.version when it is a string, "" otherwise.
func clientVersion(meta json.RawMessage) string {
	var m map[string]interface{}
	if len(meta) == 0 || json.Unmarshal(meta, &m) != nil {
		return ""
	}
	version, _ := m["version"].(string)
	return version
}

// triggerSuggestion never fails the caller. Only sync mode returns a value.
func (s *Service) triggerSuggestion(ctx context.Context, userID string) *suggestion.Suggestion {
	if s.suggestionMode == ModeAsync {
		// Detached from the request so the response does not wait for it.
		go func() {
			bg, cancel := context.WithTimeout(context.Background(), s.suggestionTimeout)
			defer cancel()
			s.suggest(bg, userID)
		}()
		return nil
	}

	sctx, cancel := context.WithTimeout(ctx, s.suggestionTimeout)
	defer cancel()
	return s.suggest(sctx, userID)
}

func (s *Service) suggest(ctx context.Context, userID string) (out *suggestion.Suggestion) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Suggestion panicked", "user_id", userID, "panic", r)
			metrics.SuggestionsTotal.WithLabelValues(s.suggestionMode, "panic").Inc()
			out = nil
		}
	}()

	sug, err := s.suggester.Suggest(ctx, userID)
	if err != nil {
		slog.Warn("Suggestion failed", "user_id", userID, "error", err)
		metrics.SuggestionsTotal.WithLabelValues(s.suggestionMode, "failure").Inc()
		return nil
	}

	metrics.SuggestionsTotal.WithLabelValues(s.suggestionMode, "success").Inc()
	return sug
}
