package httpapi

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Saifr72000/airsense-platform/internal/repository"
	"github.com/Saifr72000/airsense-platform/internal/service"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "unauthorized stays generic",
			err:        fmt.Errorf("session lookup: %w", service.ErrUnauthorized),
			wantStatus: 401,
			wantBody:   `{"error":"Unauthorized"}`,
		},
		{
			name:       "validation carries its message",
			err:        service.Validationf("building code %s is already in use", "MC"),
			wantStatus: 400,
			wantBody:   `{"error":"building code MC is already in use"}`,
		},
		{
			name:       "not found",
			err:        fmt.Errorf("no room found with sensor_id: esp32-01: %w", repository.ErrNotFound),
			wantStatus: 404,
		},
		{
			name:       "bare duplicate is a server error",
			err:        repository.ErrDuplicate,
			wantStatus: 500,
			wantBody:   `{"error":"Internal server error"}`,
		},
		{
			name:       "unknown error",
			err:        errors.New("connection refused"),
			wantStatus: 500,
			wantBody:   `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
