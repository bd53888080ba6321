package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	cause := errors.New("disk full")

	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "not found passes through",
			err:        NewNotFound("User", nil),
			wantCode:   CodeNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "User not found",
		},
		{
			name:       "wrapped domain error is unwrapped",
			err:        fmt.Errorf("handler: %w", NewInternalError("Error writing JSON file", cause)),
			wantCode:   CodeInternal,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Error writing JSON file",
		},
		{
			name:       "fiber not found",
			err:        fiber.ErrNotFound,
			wantCode:   CodeNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "Not Found",
		},
		{
			name:       "fiber client error",
			err:        fiber.NewError(http.StatusMethodNotAllowed, "nope"),
			wantCode:   "HTTP_405",
			wantStatus: http.StatusMethodNotAllowed,
			wantMsg:    "nope",
		},
		{
			name:       "plain error becomes internal",
			err:        cause,
			wantCode:   CodeInternal,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantStatus, got.HTTPStatus)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}

	assert.Nil(t, ToDomainError(nil))
}

func TestInternalErrorKeepsCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewInternalError("Error reading JSON file", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Error reading JSON file: permission denied", err.Error())
	assert.False(t, IsNotFound(err))
	assert.True(t, IsNotFound(fmt.Errorf("get: %w", NewNotFound("User", nil))))
}
