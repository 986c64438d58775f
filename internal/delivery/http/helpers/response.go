package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	"devevent/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeNotFound         = "not_found"
	ErrCodeDuplicateTitle   = "duplicate_title"
	ErrCodeDuplicateBooking = "duplicate_booking"
	ErrCodeEventNotFound    = "event_not_found"
	ErrCodeUpstreamError    = "upstream_error"
	ErrCodeInternalError    = "internal_error"
)

// APIError is the error object in the standardized API response envelope.
// Fields is set only for validation failures and maps field name to message.
// swagger:model APIError
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data, Error: nil})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Data:  nil,
		Error: &APIError{Code: code, Message: message},
	})
}

// WriteValidationError writes a 400 response with per-field messages.
func WriteValidationError(w http.ResponseWriter, v *domain.ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Data:  nil,
		Error: &APIError{Code: ErrCodeBadRequest, Message: v.Error(), Fields: v.Fields},
	})
}

// WriteDomainError maps a service error to the matching HTTP status and error
// code. Unrecognized errors become 500 internal_error.
func WriteDomainError(w http.ResponseWriter, err error) {
	if v, ok := domain.AsValidation(err); ok {
		WriteValidationError(w, v)
		return
	}
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeEventNotFound, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateTitle):
		WriteJSONError(w, http.StatusConflict, ErrCodeDuplicateTitle, err.Error())
	case errors.Is(err, domain.ErrDuplicateBooking):
		WriteJSONError(w, http.StatusConflict, ErrCodeDuplicateBooking, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrUpstream):
		WriteJSONError(w, http.StatusBadGateway, ErrCodeUpstreamError, err.Error())
	default:
		// Internal detail stays in the server log; clients get a generic body.
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
