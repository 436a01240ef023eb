package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OrderItem is a cart line. PurchasePrice is pinned when the item is set and
// does not follow later changes to Product.Price.
type OrderItem struct {
	Product       Product `json:"product"`
	Quantity      int     `json:"quantity"`
	PurchasePrice float64 `json:"purchasePrice"`
}

// CartItemsMap maps a product id to its single OrderItem and remembers
// insertion order. Replacing an entry keeps its position, deleting and
// re-adding moves it to the end. The zero value is an empty map.
type CartItemsMap struct {
	keys  []string
	items map[string]OrderItem
}

func NewCartItemsMap() *CartItemsMap {
	return &CartItemsMap{items: make(map[string]OrderItem)}
}

func (m *CartItemsMap) Len() int {
	return len(m.keys)
}

func (m *CartItemsMap) Get(productID string) (OrderItem, bool) {
	item, ok := m.items[productID]
	return item, ok
}

func (m *CartItemsMap) Set(productID string, item OrderItem) {
	if m.items == nil {
		m.items = make(map[string]OrderItem)
	}

	if _, exists := m.items[productID]; !exists {
		m.keys = append(m.keys, productID)
	}

	m.items[productID] = item
}

// Delete reports whether an entry was removed.
func (m *CartItemsMap) Delete(productID string) bool {
	if _, exists := m.items[productID]; !exists {
		return false
	}

	delete(m.items, productID)

	for i, key := range m.keys {
		if key == productID {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}

	return true
}

// Values returns the items in insertion order.
func (m *CartItemsMap) Values() []OrderItem {
	values := make([]OrderItem, 0, len(m.keys))
	for _, key := range m.keys {
		values = append(values, m.items[key])
	}
	return values
}

func (m *CartItemsMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal cart key %q: %w", key, err)
		}

		itemJSON, err := json.Marshal(m.items[key])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal cart item %q: %w", key, err)
		}

		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.Write(itemJSON)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON accepts only a JSON object. Duplicate keys keep the position
// of their first occurrence and the value of their last.
func (m *CartItemsMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read cart items: %w", err)
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("cart items must be a JSON object, got %v", tok)
	}

	decoded := NewCartItemsMap()

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read cart key: %w", err)
		}

		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected cart key %v", tok)
		}

		var item OrderItem
		if err := dec.Decode(&item); err != nil {
			return fmt.Errorf("failed to decode cart item %q: %w", key, err)
		}

		decoded.Set(key, item)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read end of cart items: %w", err)
	}

	*m = *decoded

	return nil
}

// CartSummary is everything the cart view renders, computed from a single load.
type CartSummary struct {
	Items         []OrderItem `json:"items"`
	TotalQuantity int         `json:"totalQuantity"`
	TotalPrice    float64     `json:"totalPrice"`
	IsEmpty       bool        `json:"isEmpty"`
}

type CartTotals struct {
	TotalQuantity int     `json:"totalQuantity"`
	TotalPrice    float64 `json:"totalPrice"`
}

// MaxItemQuantity caps a single line so totals stay far from int overflow.
const MaxItemQuantity = 9999

type SetItemRequest struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity" validate:"lte=9999"`
}
