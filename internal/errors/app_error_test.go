package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	appErrors "github.com/aaravmahajanofficial/shopping-cart/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *appErrors.AppError
		code       string
		statusCode int
	}{
		{"Validation", appErrors.ValidationError("bad"), appErrors.ErrCodeValidation, http.StatusBadRequest},
		{"BadRequest", appErrors.BadRequestError("bad"), appErrors.ErrCodeBadRequest, http.StatusBadRequest},
		{"NotFound", appErrors.NotFoundError("bad"), appErrors.ErrCodeNotFound, http.StatusNotFound},
		{"Internal", appErrors.InternalError("bad"), appErrors.ErrCodeInternal, http.StatusInternalServerError},
		{"Storage", appErrors.StorageError("bad"), appErrors.ErrCodeStorage, http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, tc.err.Code)
			assert.Equal(t, tc.statusCode, tc.err.StatusCode)
			assert.Equal(t, "bad", tc.err.Error())
		})
	}
}

func TestWithErrorAndDetail(t *testing.T) {
	cause := errors.New("connection refused")

	appErr := appErrors.StorageError("Failed to save cart").WithError(cause).WithDetail("redis")

	assert.ErrorIs(t, appErr, cause)
	assert.Equal(t, "redis", appErr.Detail)
}

func TestIsAppError(t *testing.T) {
	t.Run("Wrapped AppError", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", appErrors.NotFoundError("Item not found in the cart"))

		appErr, ok := appErrors.IsAppError(wrapped)

		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Plain error", func(t *testing.T) {
		appErr, ok := appErrors.IsAppError(errors.New("plain"))

		assert.False(t, ok)
		assert.Nil(t, appErr)
	})
}

func TestAddValidationError(t *testing.T) {
	appErr := appErrors.AddValidationError("price", "must be a finite number")

	assert.Equal(t, "Invalid field 'price': must be a finite number", appErr.Message)
	assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
}
