package service

import "github.com/aaravmahajanofficial/shopping-cart/internal/models"

// DefaultSeedItems is the catalog an empty cart starts with. A new slice is
// returned on every call.
func DefaultSeedItems() []models.OrderItem {
	return []models.OrderItem{
		{
			Product: models.Product{
				ID:         "1",
				CategoryID: "1",
				ImageURL:   "http://placeimg.com/128/128/animals",
				Name:       "One",
				Price:      0,
			},
			Quantity:      1,
			PurchasePrice: 0,
		},
		{
			Product: models.Product{
				ID:         "2",
				CategoryID: "1",
				ImageURL:   "http://placeimg.com/128/128/nature",
				Name:       "Two",
				Price:      0,
			},
			Quantity:      1,
			PurchasePrice: 0,
		},
		{
			Product: models.Product{
				ID:         "3",
				CategoryID: "1",
				ImageURL:   "http://placeimg.com/128/128/tech",
				Name:       "Three",
				Price:      0,
			},
			Quantity:      1,
			PurchasePrice: 0,
		},
	}
}
