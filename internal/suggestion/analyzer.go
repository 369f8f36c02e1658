package suggestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/behavior-ledger/internal/api/v1"
	"github.com/aevon-lab/behavior-ledger/internal/core/storage"
)

const (
	analysisDays     = 7
	analysisLimit    = 100
	lastActivityTime = "2006-01-02 15:04:05"
)

// Suggestion is the advice derived from a user's recent activity. It is never stored.
type Suggestion struct {
	Suggestion      string           `json:"suggestion"`
	Command         string           `json:"command"`
	FundID          string           `json:"fund_id,omitempty"`
	Confidence      float64          `json:"confidence"`
	AnalysisSummary *AnalysisSummary `json:"analysis_summary,omitempty"`
	ModelReply      string           `json:"model_reply,omitempty"`
	MockMode        bool             `json:"mock_mode"`
	Timestamp       int64            `json:"timestamp"`
	UserID          string           `json:"user_id"`
}

type AnalysisSummary struct {
	LogCount       int    `json:"log_count"`
	DaysAnalyzed   int    `json:"days_analyzed"`
	MostActivePage string `json:"most_active_page"`
	LastActivity   string `json:"last_activity"`
}

// Analyzer turns a user's recent events into a Suggestion.
type Analyzer struct {
	store     storage.EventStore
	templates *TemplateSet
	generator TextGenerator
	now       func() time.Time
}

// NewAnalyzer panics on a nil store or template set. generator may be nil.
func NewAnalyzer(store storage.EventStore, templates *TemplateSet, generator TextGenerator) *Analyzer {
	if store == nil {
		panic("suggestion: store must not be nil")
	}
	if templates == nil {
		panic("suggestion: templates must not be nil")
	}
	return &Analyzer{
		store:     store,
		templates: templates,
		generator: generator,
		now:       time.Now,
	}
}

// Suggest analyses the last 7 days of the user's events.
func (a *Analyzer) Suggest(ctx context.Context, userID string) (*Suggestion, error) {
	now := a.now()
	end := now.UnixMilli()
	start := now.Add(-analysisDays * 24 * time.Hour).UnixMilli()

	logs, err := a.store.QueryByUser(ctx, storage.BehaviorQuery{
		UserID:    userID,
		StartTime: &start,
		EndTime:   &end,
		Limit:     analysisLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load recent behavior for %s: %w", userID, err)
	}

	var out Suggestion
	if len(logs) == 0 {
		out = fromTemplate(a.templates.Welcome)
	} else {
		out = fromTemplate(a.templates.pick(len(logs)))
		out.AnalysisSummary = &AnalysisSummary{
			LogCount:       len(logs),
			DaysAnalyzed:   analysisDays,
			MostActivePage: mostActivePage(logs),
			LastActivity:   time.UnixMilli(logs[0].Timestamp).UTC().Format(lastActivityTime),
		}
	}

	out.MockMode = true
	if a.generator != nil {
		reply, err := a.generator.Generate(ctx, buildPrompt(userID, out.AnalysisSummary), hintsFor(logs))
		if err != nil {
			slog.Warn("[Suggestion] Generator failed, keeping template only", "user_id", userID, "error", err)
		} else {
			out.ModelReply = reply
			out.MockMode = IsMockReply(reply)
		}
	}

	out.Timestamp = now.Unix()
	out.UserID = userID
	return &out, nil
}

func fromTemplate(t Template) Suggestion {
	return Suggestion{
		Suggestion: t.Suggestion,
		Command:    t.Command,
		FundID:     t.FundID,
		Confidence: t.Confidence,
	}
}

// mostActivePage picks the page with the most events. Ties go to the page seen first.
func mostActivePage(logs []*v1.Behavior) string {
	counts := make(map[string]int, len(logs))
	order := make([]string, 0, len(logs))

	for _, b := range logs {
		page := v1.UnknownPage
		if b.Page != nil {
			page = *b.Page
		}
		if _, seen := counts[page]; !seen {
			order = append(order, page)
		}
		counts[page]++
	}

	best := ""
	for _, page := range order {
		if best == "" || counts[page] > counts[best] {
			best = page
		}
	}
	return best
}

func buildPrompt(userID string, summary *AnalysisSummary) string {
	if summary == nil {
		return fmt.Sprintf("User %s has no activity in the last %d days. Suggest a first step.", userID, analysisDays)
	}
	return fmt.Sprintf("User %s recorded %d events in the last %d days, mostly on page %q, last active at %s. Suggest one next step.",
		userID, summary.LogCount, summary.DaysAnalyzed, summary.MostActivePage, summary.LastActivity)
}

// hintsFor counts events per type.
func hintsFor(logs []*v1.Behavior) map[string]interface{} {
	if len(logs) == 0 {
		return nil
	}
	byType := make(map[string]int)
	for _, b := range logs {
		byType[b.EventType]++
	}
	return map[string]interface{}{"event_types": byType}
}
