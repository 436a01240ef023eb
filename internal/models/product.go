package models

// Product is read-only reference data. The JSON names follow the persisted
// cart format, which predates this service.
type Product struct {
	ID         string  `json:"_id" validate:"required,max=100"`
	Name       string  `json:"name" validate:"max=200"`
	Price      float64 `json:"price" validate:"gte=0"`
	ImageURL   string  `json:"imageUrl" validate:"omitempty,url,max=2048"`
	CategoryID string  `json:"categoryId" validate:"max=100"`
}
