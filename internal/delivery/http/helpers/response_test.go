package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"devevent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "event not found", err: domain.ErrEventNotFound, wantStatus: http.StatusNotFound, wantCode: ErrCodeEventNotFound},
		{name: "not found", err: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: ErrCodeNotFound},
		{name: "duplicate title", err: domain.ErrDuplicateTitle, wantStatus: http.StatusConflict, wantCode: ErrCodeDuplicateTitle},
		{name: "duplicate booking", err: domain.ErrDuplicateBooking, wantStatus: http.StatusConflict, wantCode: ErrCodeDuplicateBooking},
		{name: "unauthorized", err: domain.ErrUnauthorized, wantStatus: http.StatusUnauthorized, wantCode: ErrCodeUnauthorized},
		{name: "upstream", err: domain.ErrUpstream, wantStatus: http.StatusBadGateway, wantCode: ErrCodeUpstreamError},
		{name: "wrapped sentinel", err: fmt.Errorf("approve event: %w", domain.ErrDuplicateTitle), wantStatus: http.StatusConflict, wantCode: ErrCodeDuplicateTitle},
		{name: "unknown error", err: errors.New("pq: connection refused"), wantStatus: http.StatusInternalServerError, wantCode: ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteDomainError(rec, tt.err)

			require.Equal(t, tt.wantStatus, rec.Code)
			var resp APIResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestWriteDomainErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteDomainError(rec, errors.New(`pq: relation "bookings" does not exist`))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "bookings")

	var resp APIResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "internal server error", resp.Error.Message)
}

func TestWriteValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	v := domain.NewValidationError("date", "invalid date format")
	WriteDomainError(rec, v)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeBadRequest, resp.Error.Code)
	assert.Equal(t, "invalid date format", resp.Error.Fields["date"])
}
