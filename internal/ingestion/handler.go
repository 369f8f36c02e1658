package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	httperr "github.com/aevon-lab/behavior-ledger/internal/core/errors"
	"github.com/aevon-lab/behavior-ledger/internal/core/storage"
	"github.com/gin-gonic/gin"
)

const (
	msgReadBodyFailed = "Failed to read request body"
	msgEmptyBody      = "Request body is empty"
	msgInvalidJSON    = "Invalid JSON body"
	msgPersistFailed  = "Failed to store behavior events"
	msgTracked        = "Behavior events tracked"
)

// ingestionError carries the structured HTTP error shape from a helper back to the handler.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// TrackHandler handles POST /api/behavior/track.
func (s *Service) TrackHandler(c *gin.Context) {
	req, ierr := s.parseTrackRequest(c)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	result, err := s.Track(c.Request.Context(), *req)
	if err != nil {
		writeError(c, mapTrackError(c.Request.Context(), err))
		return
	}

	c.JSON(http.StatusOK, httperr.OK(result, msgTracked))
}

// parseTrackRequest reads the body through the size limit and decodes it with number preservation.
func (s *Service) parseTrackRequest(c *gin.Context) (*TrackRequest, *ingestionError) {
	// Enforce maximum body size to prevent OOM attacks
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to read request body", "error", err)
		return nil, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.WarnContext(c.Request.Context(), "Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpPayloadTooLargeError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidRequestError,
			message:    msgEmptyBody,
		}
	}

	dec := json.NewDecoder(bytes.NewReader(bodyBytes))
	dec.UseNumber()

	var req TrackRequest
	if err := dec.Decode(&req); err != nil {
		slog.WarnContext(c.Request.Context(), "Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	return &req, nil
}

// mapTrackError turns a Track error into its HTTP shape. Storage detail is logged, never returned.
func mapTrackError(ctx context.Context, err error) *ingestionError {
	if errors.Is(err, httperr.ErrInvalidRequest) {
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidRequestError,
			message:    err.Error(),
		}
	}

	var storageErr *storage.StorageError
	if errors.As(err, &storageErr) {
		slog.ErrorContext(ctx, "Failed to store behavior events", "op", storageErr.Op, "error", storageErr.Err)
		return &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpStorageError,
			message:    msgPersistFailed,
		}
	}

	slog.ErrorContext(ctx, "Unexpected track failure", "error", err)
	return &ingestionError{
		statusCode: http.StatusInternalServerError,
		errorType:  httperr.HttpInternalError,
		message:    msgPersistFailed,
	}
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	resp := httperr.Fail(err.errorType, err.message)
	resp.Details = err.details
	c.JSON(err.statusCode, resp)
}
