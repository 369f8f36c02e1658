package projection

import (
	"context"
	"errors"
	"testing"

	v1 "github.com/aevon-lab/behavior-ledger/internal/api/v1"
	"github.com/aevon-lab/behavior-ledger/internal/core/storage"
	storagemocks "github.com/aevon-lab/behavior-ledger/internal/mocks/storage"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_QueryBehaviors_LimitNormalisation(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "zero uses default", limit: 0, wantLimit: DefaultQueryLimit},
		{name: "negative uses default", limit: -5, wantLimit: DefaultQueryLimit},
		{name: "within range kept", limit: 25, wantLimit: 25},
		{name: "over cap clamped", limit: 5000, wantLimit: MaxQueryLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storagemocks.NewEventStore(t)
			store.EXPECT().
				QueryByUser(mock.Anything, storage.BehaviorQuery{UserID: "u1", Limit: tt.wantLimit}).
				Return(nil, nil).
				Once()

			resp, err := NewService(store).QueryBehaviors(context.Background(), QueryRequest{UserID: "u1", Limit: tt.limit})
			require.NoError(t, err)
			require.NotNil(t, resp.Behaviors)
			require.Equal(t, 0, resp.Count)
		})
	}
}

func TestService_QueryBehaviors_Validation(t *testing.T) {
	store := storagemocks.NewEventStore(t)
	svc := NewService(store)

	_, err := svc.QueryBehaviors(context.Background(), QueryRequest{UserID: "   "})
	require.ErrorIs(t, err, ErrInvalidQuery)

	start, end := int64(2000), int64(1000)
	_, err = svc.QueryBehaviors(context.Background(), QueryRequest{UserID: "u1", StartTime: &start, EndTime: &end})
	require.ErrorIs(t, err, ErrInvalidQuery)
}

func TestService_QueryBehaviors_PassesFilters(t *testing.T) {
	start, end := int64(1700000000000), int64(1700000100000)
	want := storage.BehaviorQuery{
		UserID:    "u1",
		StartTime: &start,
		EndTime:   &end,
		EventType: "page_view",
		Page:      "fund",
		Limit:     10,
	}

	store := storagemocks.NewEventStore(t)
	store.EXPECT().
		QueryByUser(mock.Anything, want).
		Return([]*v1.Behavior{{EventID: "e1"}}, nil).
		Once()

	resp, err := NewService(store).QueryBehaviors(context.Background(), QueryRequest{
		UserID:    "u1",
		StartTime: &start,
		EndTime:   &end,
		EventType: "page_view",
		Page:      "fund",
		Limit:     10,
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Count)
}

func TestService_Stats_DefaultDays(t *testing.T) {
	store := storagemocks.NewEventStore(t)
	store.EXPECT().
		StatsByUser(mock.Anything, "u1", DefaultStatsDays).
		Return(&v1.BehaviorStats{Days: DefaultStatsDays}, nil).
		Once()

	stats, err := NewService(store).Stats(context.Background(), StatsRequest{UserID: "u1", Days: -1})
	require.NoError(t, err)
	require.Equal(t, DefaultStatsDays, stats.Days)
}

func TestService_Stats_StorageErrorWrapped(t *testing.T) {
	store := storagemocks.NewEventStore(t)
	store.EXPECT().
		StatsByUser(mock.Anything, "u1", 30).
		Return(nil, &storage.StorageError{Op: "stats_by_user", Err: errors.New("timeout")}).
		Once()

	_, err := NewService(store).Stats(context.Background(), StatsRequest{UserID: "u1", Days: 30})
	var storageErr *storage.StorageError
	require.ErrorAs(t, err, &storageErr)
	require.Equal(t, "stats_by_user", storageErr.Op)
}

func TestService_Path_LimitNormalisation(t *testing.T) {
	store := storagemocks.NewEventStore(t)
	store.EXPECT().RecentPath(mock.Anything, "u1", MaxPathLimit).Return(nil, nil).Once()
	store.EXPECT().RecentPath(mock.Anything, "u1", 5).Return([]v1.PathStep{{EventType: "page_leave"}}, nil).Once()

	svc := NewService(store)

	resp, err := svc.Path(context.Background(), PathRequest{UserID: "u1", Limit: 10000})
	require.NoError(t, err)
	require.NotNil(t, resp.Path)
	require.Equal(t, 0, resp.Count)

	resp, err = svc.Path(context.Background(), PathRequest{UserID: "u1", Limit: 5})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Count)

	_, err = svc.Path(context.Background(), PathRequest{})
	require.ErrorIs(t, err, ErrInvalidQuery)
}
