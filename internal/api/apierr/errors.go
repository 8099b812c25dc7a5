package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/tictactoe-go/internal/model"
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
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeMatchNotFound  = "MATCH_NOT_FOUND"
	CodeInvalidMode    = "INVALID_MODE"
	CodeInvalidSymbol  = "INVALID_SYMBOL"
	CodeInvalidCell    = "INVALID_CELL"
	CodeCellOccupied   = "CELL_OCCUPIED"
	CodeNotFound       = "NOT_FOUND"
	CodeInternalError  = "INTERNAL_ERROR"
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

// Status returns the HTTP status WriteError would use for err
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrInvalidMode):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidMode, "Mode must be 1 or 2"}}
	case errors.Is(err, model.ErrInvalidSymbol):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSymbol, "Symbol must be X or O"}}
	case errors.Is(err, model.ErrInvalidCell):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCell, "Cell must be between 0 and 8"}}
	case errors.Is(err, model.ErrCellOccupied):
		return &httpError{http.StatusConflict, APIError{CodeCellOccupied, "Cell is already occupied"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewNotFoundError creates a not found error for unknown routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Not found"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
