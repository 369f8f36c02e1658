package projection

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	v1 "github.com/aevon-lab/behavior-ledger/internal/api/v1"
	httperr "github.com/aevon-lab/behavior-ledger/internal/core/errors"
	"github.com/aevon-lab/behavior-ledger/internal/core/storage"
	storagemocks "github.com/aevon-lab/behavior-ledger/internal/mocks/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, store *storagemocks.EventStore, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewService(store).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out), resp.Body.String())
	return resp, out
}

func TestService_Handlers_StatusMapping(t *testing.T) {
	storeErr := &storage.StorageError{Op: "query_by_user", Err: errors.New("pq: connection reset")}

	tests := []struct {
		name           string
		path           string
		body           string
		expectedStatus int
		expectedError  string
		configure      func(store *storagemocks.EventStore)
	}{
		{
			name:           "query without user_id returns 400",
			path:           "/api/behavior/query",
			body:           `{"limit":5}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  httperr.HttpInvalidRequestError,
			configure:      func(_ *storagemocks.EventStore) {},
		},
		{
			name:           "stats with empty body returns 400",
			path:           "/api/behavior/stats",
			body:           "",
			expectedStatus: http.StatusBadRequest,
			expectedError:  httperr.HttpInvalidRequestError,
			configure:      func(_ *storagemocks.EventStore) {},
		},
		{
			name:           "path with malformed json returns 400",
			path:           "/api/behavior/path",
			body:           `{"user_id":`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  httperr.HttpInvalidJsonError,
			configure:      func(_ *storagemocks.EventStore) {},
		},
		{
			name:           "query store error returns 500",
			path:           "/api/behavior/query",
			body:           `{"user_id":"u1"}`,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  httperr.HttpStorageError,
			configure: func(store *storagemocks.EventStore) {
				store.EXPECT().QueryByUser(mock.Anything, mock.Anything).Return(nil, storeErr).Once()
			},
		},
		{
			name:           "stats success returns 200",
			path:           "/api/behavior/stats",
			body:           `{"user_id":"u1","days":3}`,
			expectedStatus: http.StatusOK,
			configure: func(store *storagemocks.EventStore) {
				store.EXPECT().StatsByUser(mock.Anything, "u1", 3).Return(&v1.BehaviorStats{
					TotalEvents:    2,
					EventTypeStats: map[string]int64{"click": 2},
					PageStats:      map[string]int64{"home": 1, v1.UnknownPage: 1},
					Days:           3,
				}, nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storagemocks.NewEventStore(t)
			tt.configure(store)

			resp, body := serve(t, store, tt.path, tt.body)
			require.Equal(t, tt.expectedStatus, resp.Code)
			if tt.expectedError != "" {
				require.Equal(t, false, body["success"])
				require.Equal(t, tt.expectedError, body["error"])
			} else {
				require.Equal(t, true, body["success"])
			}
		})
	}
}

func TestService_HandleQuery_Envelope(t *testing.T) {
	page := "home"
	store := storagemocks.NewEventStore(t)
	store.EXPECT().
		QueryByUser(mock.Anything, mock.MatchedBy(func(q storage.BehaviorQuery) bool {
			return q.UserID == "u1" && q.EventType == "click" && q.Limit == DefaultQueryLimit &&
				q.StartTime != nil && *q.StartTime == 1700000000000 && q.EndTime == nil
		})).
		Return([]*v1.Behavior{
			{ID: 2, EventID: "e2", EventType: "click", Page: &page, Timestamp: 1700000000002},
			{ID: 1, EventID: "e1", EventType: "click", Page: &page, Timestamp: 1700000000001},
		}, nil).
		Once()

	resp, body := serve(t, store, "/api/behavior/query", `{"user_id":"u1","event_type":"click","start_time":1700000000000}`)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "success", body["message"])

	data := body["data"].(map[string]interface{})
	require.Equal(t, float64(2), data["count"])
	behaviors := data["behaviors"].([]interface{})
	require.Len(t, behaviors, 2)
	require.Equal(t, "e2", behaviors[0].(map[string]interface{})["event_id"])
}

func TestService_HandlePath_Envelope(t *testing.T) {
	page := "fund"
	store := storagemocks.NewEventStore(t)
	store.EXPECT().
		RecentPath(mock.Anything, "u1", DefaultPathLimit).
		Return([]v1.PathStep{{Page: &page, Timestamp: 1700000000000, EventType: "page_view"}}, nil).
		Once()

	resp, body := serve(t, store, "/api/behavior/path", `{"user_id":"u1"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	data := body["data"].(map[string]interface{})
	require.Equal(t, float64(1), data["count"])
	step := data["path"].([]interface{})[0].(map[string]interface{})
	require.Equal(t, "fund", step["page"])
	require.Equal(t, "page_view", step["event_type"])
}

func TestService_Handlers_NumericUserID(t *testing.T) {
	store := storagemocks.NewEventStore(t)
	store.EXPECT().
		QueryByUser(mock.Anything, mock.MatchedBy(func(q storage.BehaviorQuery) bool { return q.UserID == "12345" })).
		Return(nil, nil).
		Once()
	store.EXPECT().StatsByUser(mock.Anything, "12345", DefaultStatsDays).Return(&v1.BehaviorStats{Days: DefaultStatsDays}, nil).Once()
	store.EXPECT().RecentPath(mock.Anything, "12345", DefaultPathLimit).Return(nil, nil).Once()

	for _, path := range []string{"/api/behavior/query", "/api/behavior/stats", "/api/behavior/path"} {
		resp, body := serve(t, store, path, `{"user_id":12345}`)
		require.Equal(t, http.StatusOK, resp.Code, path)
		require.Equal(t, true, body["success"], path)
	}
}
