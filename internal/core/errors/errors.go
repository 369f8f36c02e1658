package errors

import stderrors "errors"

const (
	HttpInternalError        = "internal_error"
	HttpInvalidJsonError     = "invalid_json"
	HttpInvalidRequestError  = "invalid_request"
	HttpPayloadTooLargeError = "payload_too_large"
	HttpRateLimitedError     = "rate_limited"
	HttpStorageError         = "storage_error"
)

// ErrInvalidRequest marks malformed or missing client input. Handlers map it to HTTP 400.
var ErrInvalidRequest = stderrors.New("invalid request")

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse is the body of every successful API call.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// Fail builds an ErrorResponse.
func Fail(errorType, message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: errorType, Message: message}
}

// OK builds a SuccessResponse. An empty message becomes "success".
func OK(data interface{}, message string) SuccessResponse {
	if message == "" {
		message = "success"
	}
	return SuccessResponse{Success: true, Data: data, Message: message}
}
