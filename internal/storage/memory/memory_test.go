package memory_test

import (
	"testing"

	"github.com/aaravmahajanofficial/shopping-cart/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := t.Context()

	t.Run("Missing key", func(t *testing.T) {
		store := memory.New()

		value, found, err := store.Read(ctx, "cartItems")

		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, value)
	})

	t.Run("Write then read", func(t *testing.T) {
		store := memory.New()

		require.NoError(t, store.Write(ctx, "cartItems", `{}`))
		require.NoError(t, store.Write(ctx, "cartItems", `{"a":1}`))

		value, found, err := store.Read(ctx, "cartItems")

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `{"a":1}`, value)
	})

	t.Run("Remove", func(t *testing.T) {
		store := memory.New()
		require.NoError(t, store.Write(ctx, "cartItems", `{}`))

		require.NoError(t, store.Remove(ctx, "cartItems"))
		require.NoError(t, store.Remove(ctx, "cartItems"), "removing a missing key is not an error")

		_, found, err := store.Read(ctx, "cartItems")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Ping and Close", func(t *testing.T) {
		store := memory.New()

		assert.NoError(t, store.Ping(ctx))
		assert.NoError(t, store.Close())
	})
}
