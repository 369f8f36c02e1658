package projection

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	httperr "github.com/aevon-lab/behavior-ledger/internal/core/errors"
	"github.com/aevon-lab/behavior-ledger/internal/core/storage"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/behavior/query", s.HandleQuery)
	r.POST("/api/behavior/stats", s.HandleStats)
	r.POST("/api/behavior/path", s.HandlePath)
}

// HandleQuery handles POST /api/behavior/query.
func (s *Service) HandleQuery(c *gin.Context) {
	var req QueryRequest
	if !bindBody(c, &req) {
		return
	}

	resp, err := s.QueryBehaviors(c.Request.Context(), req)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, httperr.OK(resp, ""))
}

// HandleStats handles POST /api/behavior/stats.
func (s *Service) HandleStats(c *gin.Context) {
	var req StatsRequest
	if !bindBody(c, &req) {
		return
	}

	resp, err := s.Stats(c.Request.Context(), req)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, httperr.OK(resp, ""))
}

// HandlePath handles POST /api/behavior/path.
func (s *Service) HandlePath(c *gin.Context) {
	var req PathRequest
	if !bindBody(c, &req) {
		return
	}

	resp, err := s.Path(c.Request.Context(), req)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, httperr.OK(resp, ""))
}

// bindBody decodes the JSON body into dst and writes a 400 on failure.
func bindBody(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	if errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, httperr.Fail(httperr.HttpInvalidRequestError, "Request body is empty"))
		return false
	}

	resp := httperr.Fail(httperr.HttpInvalidJsonError, "Invalid JSON body")
	resp.Details = err.Error()
	c.JSON(http.StatusBadRequest, resp)
	return false
}

func writeQueryError(c *gin.Context, err error) {
	if errors.Is(err, ErrInvalidQuery) {
		c.JSON(http.StatusBadRequest, httperr.Fail(httperr.HttpInvalidRequestError, err.Error()))
		return
	}

	var storageErr *storage.StorageError
	if errors.As(err, &storageErr) {
		slog.ErrorContext(c.Request.Context(), "Behavior query failed", "op", storageErr.Op, "error", storageErr.Err)
		c.JSON(http.StatusInternalServerError, httperr.Fail(httperr.HttpStorageError, "Failed to query behavior data"))
		return
	}

	slog.ErrorContext(c.Request.Context(), "Behavior query failed", "error", err)
	c.JSON(http.StatusInternalServerError, httperr.Fail(httperr.HttpInternalError, "Failed to query behavior data"))
}
