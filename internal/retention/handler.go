package retention

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	httperr "github.com/aevon-lab/behavior-ledger/internal/core/errors"
	"github.com/aevon-lab/behavior-ledger/internal/core/storage"
	"github.com/gin-gonic/gin"
)

// PurgeRequest is the body of POST /api/behavior/purge. Days defaults to the scheduler window.
type PurgeRequest struct {
	Days *int `json:"days,omitempty"`
}

type PurgeResponse struct {
	Deleted int64 `json:"deleted"`
	Days    int   `json:"days"`
}

// RegisterRoutes exposes the manual purge endpoint.
func (s *Scheduler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/behavior/purge", s.HandlePurge)
}

// HandlePurge handles POST /api/behavior/purge.
func (s *Scheduler) HandlePurge(c *gin.Context) {
	var req PurgeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		resp := httperr.Fail(httperr.HttpInvalidJsonError, "Invalid JSON body")
		resp.Details = err.Error()
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	days := s.days
	if req.Days != nil {
		days = *req.Days
	}
	if days < 1 {
		c.JSON(http.StatusBadRequest, httperr.Fail(httperr.HttpInvalidRequestError, "days must be >= 1"))
		return
	}

	deleted, err := Purge(c.Request.Context(), s.store, days)
	if err != nil {
		var storageErr *storage.StorageError
		if errors.As(err, &storageErr) {
			slog.ErrorContext(c.Request.Context(), "[Retention] Manual purge failed", "op", storageErr.Op, "error", storageErr.Err)
		} else {
			slog.ErrorContext(c.Request.Context(), "[Retention] Manual purge failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, httperr.Fail(httperr.HttpStorageError, "Failed to purge behavior data"))
		return
	}

	c.JSON(http.StatusOK, httperr.OK(PurgeResponse{Deleted: deleted, Days: days}, "Purge completed"))
}
