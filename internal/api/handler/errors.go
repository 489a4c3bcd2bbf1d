package handler

import (
	"net/http"

	"github.com/mcoot/linkgame/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest       = apierr.CodeInvalidRequest
	CodeInvalidDimensions    = apierr.CodeInvalidDimensions
	CodeOddCellCount         = apierr.CodeOddCellCount
	CodePatternTypesOutRange = apierr.CodePatternTypesOutRange
	CodeAlreadyPlaying       = apierr.CodeAlreadyPlaying
	CodeNotPlaying           = apierr.CodeNotPlaying
	CodeSettingsLocked       = apierr.CodeSettingsLocked
	CodeSessionNotFound      = apierr.CodeSessionNotFound
	CodeInternalError        = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}
