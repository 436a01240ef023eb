package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/shopping-cart/internal/config"
	"github.com/aaravmahajanofficial/shopping-cart/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readOnlyStore has no Ping, so the check falls back to a read.
type readOnlyStore struct {
	readErr error
}

func (s *readOnlyStore) Read(context.Context, string) (string, bool, error) {
	return "", false, s.readErr
}
func (s *readOnlyStore) Write(context.Context, string, string) error { return nil }
func (s *readOnlyStore) Remove(context.Context, string) error        { return nil }
func (s *readOnlyStore) Close() error                                { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Storage: config.Storage{Driver: config.DriverMemory},
		Cart:    config.Cart{StorageKey: "cartItems"},
	}
}

func TestStorageCheck(t *testing.T) {
	ctx := t.Context()

	t.Run("Pinger", func(t *testing.T) {
		assert.NoError(t, storageCheck(memory.New(), "cartItems")(ctx))
	})

	t.Run("Read fallback", func(t *testing.T) {
		assert.NoError(t, storageCheck(&readOnlyStore{}, "cartItems")(ctx))
	})

	t.Run("Read failure", func(t *testing.T) {
		readErr := errors.New("connection refused")

		err := storageCheck(&readOnlyStore{readErr: readErr}, "cartItems")(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, readErr)
	})

	t.Run("Nil storage", func(t *testing.T) {
		assert.Error(t, storageCheck(nil, "cartItems")(ctx))
	})
}

func TestNewHealthHandler(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		h, err := NewHealthHandler(testConfig(), memory.New())
		require.NoError(t, err)

		recorder := httptest.NewRecorder()
		h.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "shopping-cart")
	})

	t.Run("Unavailable storage", func(t *testing.T) {
		h, err := NewHealthHandler(testConfig(), &readOnlyStore{readErr: errors.New("down")})
		require.NoError(t, err)

		recorder := httptest.NewRecorder()
		h.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	})
}
