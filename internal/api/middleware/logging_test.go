package middleware_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/shopping-cart/internal/api/middleware"
	"github.com/aaravmahajanofficial/shopping-cart/internal/utils/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging(t *testing.T) {
	t.Run("Generates a correlation ID", func(t *testing.T) {
		// Arrange
		var ctxLogger *slog.Logger
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxLogger = logger.FromContext(r.Context())
			w.WriteHeader(http.StatusTeapot)
		})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		recorder := httptest.NewRecorder()

		// Act
		middleware.Logging(next).ServeHTTP(recorder, req)

		// Assert
		assert.Equal(t, http.StatusTeapot, recorder.Code)
		_, err := uuid.Parse(recorder.Header().Get("X-Request-ID"))
		require.NoError(t, err, "correlation ID should be a UUID")
		assert.NotNil(t, ctxLogger)
	})

	t.Run("Keeps an incoming correlation ID", func(t *testing.T) {
		// Arrange
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.Header.Set("X-Request-ID", "req-123")
		recorder := httptest.NewRecorder()

		// Act
		middleware.Logging(next).ServeHTTP(recorder, req)

		// Assert
		assert.Equal(t, "req-123", recorder.Header().Get("X-Request-ID"))
	})
}
