package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/linkgame/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeInvalidDimensions    = "INVALID_DIMENSIONS"
	CodeOddCellCount         = "ODD_CELL_COUNT"
	CodePatternTypesOutRange = "PATTERN_TYPES_OUT_OF_RANGE"
	CodeAlreadyPlaying       = "ALREADY_PLAYING"
	CodeNotPlaying           = "NOT_PLAYING"
	CodeSettingsLocked       = "SETTINGS_LOCKED"
	CodeSessionNotFound      = "SESSION_NOT_FOUND"
	CodeSettingsNotFound     = "SETTINGS_NOT_FOUND"
	CodeInternalError        = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors. Construction errors carry their detail in the wrapped message.
	switch {
	case errors.Is(err, model.ErrInvalidDimensions):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDimensions, err.Error()}}
	case errors.Is(err, model.ErrOddCellCount):
		return &httpError{http.StatusBadRequest, APIError{CodeOddCellCount, err.Error()}}
	case errors.Is(err, model.ErrPatternTypesOutOfRange):
		return &httpError{http.StatusBadRequest, APIError{CodePatternTypesOutRange, err.Error()}}
	case errors.Is(err, model.ErrAlreadyPlaying):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyPlaying, "Game is already playing"}}
	case errors.Is(err, model.ErrNotPlaying):
		return &httpError{http.StatusConflict, APIError{CodeNotPlaying, "Game has not started"}}
	case errors.Is(err, model.ErrSettingsLocked):
		return &httpError{http.StatusConflict, APIError{CodeSettingsLocked, "Cannot change settings during a game"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "No game has been played in this conversation"}}
	case errors.Is(err, model.ErrSettingsNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSettingsNotFound, "Settings not found"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
