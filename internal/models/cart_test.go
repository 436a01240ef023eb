package models_test

import (
	"encoding/json"
	"testing"

	"github.com/aaravmahajanofficial/shopping-cart/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, quantity int, price float64) models.OrderItem {
	return models.OrderItem{
		Product:       models.Product{ID: id, Name: "Product " + id, Price: price, ImageURL: "http://img/" + id, CategoryID: "1"},
		Quantity:      quantity,
		PurchasePrice: price,
	}
}

// productIDs lists the cart lines in iteration order.
func productIDs(m *models.CartItemsMap) []string {
	ids := make([]string, 0, m.Len())
	for _, v := range m.Values() {
		ids = append(ids, v.Product.ID)
	}
	return ids
}

func TestCartItemsMapOrder(t *testing.T) {
	t.Run("Insertion order", func(t *testing.T) {
		m := models.NewCartItemsMap()
		m.Set("b", item("b", 1, 1))
		m.Set("a", item("a", 1, 1))
		m.Set("c", item("c", 1, 1))

		assert.Equal(t, []string{"b", "a", "c"}, productIDs(m))
		assert.Equal(t, 3, m.Len())
	})

	t.Run("Replace keeps position", func(t *testing.T) {
		m := models.NewCartItemsMap()
		m.Set("b", item("b", 1, 1))
		m.Set("a", item("a", 1, 1))
		m.Set("b", item("b", 5, 2))

		assert.Equal(t, []string{"b", "a"}, productIDs(m))
		got, ok := m.Get("b")
		require.True(t, ok)
		assert.Equal(t, 5, got.Quantity)
	})

	t.Run("Delete then re-add moves to end", func(t *testing.T) {
		m := models.NewCartItemsMap()
		m.Set("b", item("b", 1, 1))
		m.Set("a", item("a", 1, 1))

		assert.True(t, m.Delete("b"))
		assert.False(t, m.Delete("b"), "second delete is a no-op")
		m.Set("b", item("b", 1, 1))

		assert.Equal(t, []string{"a", "b"}, productIDs(m))
	})

	t.Run("Zero value is usable", func(t *testing.T) {
		var m models.CartItemsMap

		assert.Equal(t, 0, m.Len())
		assert.Empty(t, m.Values())
		_, ok := m.Get("x")
		assert.False(t, ok)

		m.Set("x", item("x", 1, 1))
		assert.Equal(t, 1, m.Len())
	})
}

func TestCartItemsMapJSON(t *testing.T) {
	t.Run("Persisted format", func(t *testing.T) {
		m := models.NewCartItemsMap()
		m.Set("1", models.OrderItem{
			Product:       models.Product{ID: "1", Name: "One", Price: 9.5, ImageURL: "http://placeimg.com/128/128/animals", CategoryID: "1"},
			Quantity:      3,
			PurchasePrice: 9.5,
		})

		data, err := json.Marshal(m)

		require.NoError(t, err)
		assert.JSONEq(t, `{"1":{"product":{"_id":"1","name":"One","price":9.5,"imageUrl":"http://placeimg.com/128/128/animals","categoryId":"1"},"quantity":3,"purchasePrice":9.5}}`, string(data))
	})

	t.Run("Empty map", func(t *testing.T) {
		data, err := json.Marshal(models.NewCartItemsMap())

		require.NoError(t, err)
		assert.Equal(t, `{}`, string(data))
	})

	t.Run("Round trip keeps order and fields", func(t *testing.T) {
		m := models.NewCartItemsMap()
		m.Set("3", item("3", 2, 1.25))
		m.Set("1", item("1", 1, 0))
		m.Set("2", item("2", 7, 3))

		data, err := json.Marshal(m)
		require.NoError(t, err)

		decoded := models.NewCartItemsMap()
		require.NoError(t, json.Unmarshal(data, decoded))

		assert.Equal(t, productIDs(m), productIDs(decoded))
		assert.Equal(t, m.Values(), decoded.Values())
	})

	t.Run("Duplicate keys keep first position and last value", func(t *testing.T) {
		raw := `{"a":{"product":{"_id":"a"},"quantity":1},"b":{"product":{"_id":"b"},"quantity":1},"a":{"product":{"_id":"a"},"quantity":4}}`

		decoded := models.NewCartItemsMap()
		require.NoError(t, json.Unmarshal([]byte(raw), decoded))

		assert.Equal(t, []string{"a", "b"}, productIDs(decoded))
		got, _ := decoded.Get("a")
		assert.Equal(t, 4, got.Quantity)
	})

	t.Run("Rejects non-objects", func(t *testing.T) {
		for _, raw := range []string{`[]`, `null`, `"x"`, `42`} {
			decoded := models.NewCartItemsMap()
			assert.Error(t, json.Unmarshal([]byte(raw), decoded), raw)
		}
	})

	t.Run("Rejects fractional quantity", func(t *testing.T) {
		decoded := models.NewCartItemsMap()

		err := json.Unmarshal([]byte(`{"a":{"product":{"_id":"a"},"quantity":1.5}}`), decoded)

		assert.Error(t, err)
	})
}
