package service

import (
	"encoding/json"

	"github.com/aaravmahajanofficial/shopping-cart/internal/models"
)

type ValidationResult string

const (
	StoredCartAbsent  ValidationResult = "absent"
	StoredCartValid   ValidationResult = "valid"
	StoredCartCleared ValidationResult = "cleared"
)

// checkStoredCart reports whether raw is a cart this service can own. The
// generic pass mirrors the shape rules of the stored format; the typed pass
// rejects what the shape rules let through but OrderItem cannot hold.
func checkStoredCart(raw string) bool {

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return false
	}

	entries, ok := parsed.(map[string]any)
	if !ok {
		return false
	}

	for _, entry := range entries {
		if !hasOrderItemShape(entry) {
			return false
		}
	}

	items := models.NewCartItemsMap()
	if err := json.Unmarshal([]byte(raw), items); err != nil {
		return false
	}

	for _, item := range items.Values() {
		if item.Quantity < 1 {
			return false
		}
	}

	return true
}

func hasOrderItemShape(entry any) bool {

	item, ok := entry.(map[string]any)
	if !ok {
		return false
	}

	product, ok := item["product"].(map[string]any)
	if !ok {
		return false
	}

	return isString(product["_id"]) &&
		isString(product["name"]) &&
		isNumber(product["price"]) &&
		isString(product["imageUrl"]) &&
		isNumber(item["quantity"])
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

// encoding/json decodes every JSON number into float64 when the target is any.
func isNumber(v any) bool {
	_, ok := v.(float64)
	return ok
}
