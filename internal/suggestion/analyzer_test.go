package suggestion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	v1 "github.com/aevon-lab/behavior-ledger/internal/api/v1"
	"github.com/aevon-lab/behavior-ledger/internal/core/storage"
	storagemocks "github.com/aevon-lab/behavior-ledger/internal/mocks/storage"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func behaviors(pages ...*string) []*v1.Behavior {
	out := make([]*v1.Behavior, len(pages))
	for i, p := range pages {
		out[i] = &v1.Behavior{
			EventID:   "e" + string(rune('a'+i)),
			EventType: "click",
			Page:      p,
			Timestamp: fixedNow.UnixMilli() - int64(i)*1000,
		}
	}
	return out
}

func newTestAnalyzer(t *testing.T, store storage.EventStore, gen TextGenerator) *Analyzer {
	t.Helper()
	templates, err := LoadTemplates("")
	require.NoError(t, err)

	a := NewAnalyzer(store, templates, gen)
	a.now = func() time.Time { return fixedNow }
	return a
}

func TestLoadTemplates_Default(t *testing.T) {
	set, err := LoadTemplates("")
	require.NoError(t, err)
	require.Len(t, set.Responses, 5)
	require.Equal(t, 0.75, set.Welcome.Confidence)
	require.Equal(t, "FUND123456", set.Responses[1].FundID)
	require.Equal(t, "highlight", set.Responses[4].Command)
}

func TestLoadTemplates_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
welcome:
  suggestion: "hi"
  command: bubble
  confidence: 0.5
responses:
  - suggestion: "only one"
    command: bubble
    confidence: 0.6
`), 0o644))

	set, err := LoadTemplates(path)
	require.NoError(t, err)
	require.Len(t, set.Responses, 1)
	require.Equal(t, "only one", set.pick(7).Suggestion)
}

func TestParseTemplates_Invalid(t *testing.T) {
	_, err := ParseTemplates([]byte("welcome:\n  suggestion: hi\n  command: bubble\n"))
	require.ErrorContains(t, err, "no responses")

	_, err = ParseTemplates([]byte("welcome:\n  command: bubble\nresponses:\n  - suggestion: x\n    command: bubble\n"))
	require.ErrorContains(t, err, "welcome template")

	_, err = ParseTemplates([]byte("welcome:\n  suggestion: hi\n  command: bubble\nresponses:\n  - suggestion: x\n    command: bubble\n    confidence: 2\n"))
	require.ErrorContains(t, err, "out of range")
}

func TestTemplateSet_Pick(t *testing.T) {
	set, err := LoadTemplates("")
	require.NoError(t, err)

	for count, want := range map[int]int{1: 1, 4: 4, 5: 0, 7: 2, 100: 0} {
		require.Equal(t, set.Responses[want], set.pick(count), "count %d", count)
	}
}

func TestAnalyzer_NoEventsReturnsWelcome(t *testing.T) {
	store := storagemocks.NewEventStore(t)
	store.EXPECT().
		QueryByUser(mock.Anything, mock.MatchedBy(func(q storage.BehaviorQuery) bool {
			return q.UserID == "u1" &&
				q.Limit == 100 &&
				q.StartTime != nil && *q.StartTime == fixedNow.Add(-7*24*time.Hour).UnixMilli() &&
				q.EndTime != nil && *q.EndTime == fixedNow.UnixMilli()
		})).
		Return([]*v1.Behavior{}, nil).
		Once()

	got, err := newTestAnalyzer(t, store, nil).Suggest(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, 0.75, got.Confidence)
	require.Equal(t, "bubble", got.Command)
	require.Nil(t, got.AnalysisSummary)
	require.True(t, got.MockMode)
	require.Empty(t, got.ModelReply)
	require.Equal(t, "u1", got.UserID)
	require.Equal(t, fixedNow.Unix(), got.Timestamp)
}

func TestAnalyzer_PicksTemplateAndSummarises(t *testing.T) {
	logs := behaviors(strPtr("fund"), nil, strPtr("home"), nil)

	store := storagemocks.NewEventStore(t)
	store.EXPECT().QueryByUser(mock.Anything, mock.Anything).Return(logs, nil).Once()

	got, err := newTestAnalyzer(t, store, MockGenerator{}).Suggest(context.Background(), "u1")
	require.NoError(t, err)

	require.Equal(t, 0.90, got.Confidence)
	require.NotNil(t, got.AnalysisSummary)
	require.Equal(t, 4, got.AnalysisSummary.LogCount)
	require.Equal(t, 7, got.AnalysisSummary.DaysAnalyzed)
	require.Equal(t, v1.UnknownPage, got.AnalysisSummary.MostActivePage)
	require.Equal(t, "2024-03-01 12:00:00", got.AnalysisSummary.LastActivity)
	require.True(t, IsMockReply(got.ModelReply))
	require.True(t, got.MockMode)
}

func TestAnalyzer_RealModelReplyClearsMockMode(t *testing.T) {
	store := storagemocks.NewEventStore(t)
	store.EXPECT().QueryByUser(mock.Anything, mock.Anything).Return(behaviors(strPtr("fund")), nil).Once()

	got, err := newTestAnalyzer(t, store, staticGenerator("rebalance quarterly")).Suggest(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "rebalance quarterly", got.ModelReply)
	require.False(t, got.MockMode)
	require.Equal(t, "fund", got.AnalysisSummary.MostActivePage)
}

func TestAnalyzer_GeneratorFailureKeepsTemplate(t *testing.T) {
	store := storagemocks.NewEventStore(t)
	store.EXPECT().QueryByUser(mock.Anything, mock.Anything).Return(behaviors(strPtr("fund"), strPtr("fund")), nil).Once()

	got, err := newTestAnalyzer(t, store, failingGenerator{err: errors.New("timeout")}).Suggest(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, 0.78, got.Confidence)
	require.Empty(t, got.ModelReply)
	require.True(t, got.MockMode)
}

func TestAnalyzer_StoreError(t *testing.T) {
	store := storagemocks.NewEventStore(t)
	store.EXPECT().QueryByUser(mock.Anything, mock.Anything).
		Return(nil, &storage.StorageError{Op: "query_by_user", Err: errors.New("down")}).
		Once()

	_, err := newTestAnalyzer(t, store, nil).Suggest(context.Background(), "u1")
	var storageErr *storage.StorageError
	require.ErrorAs(t, err, &storageErr)
}

func TestMostActivePage_TieGoesToFirstSeen(t *testing.T) {
	logs := behaviors(strPtr("b"), strPtr("a"), strPtr("a"), strPtr("b"))
	require.Equal(t, "b", mostActivePage(logs))
}

type staticGenerator string

func (g staticGenerator) Generate(context.Context, string, map[string]interface{}) (string, error) {
	return string(g), nil
}
