package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/shopping-cart/internal/models"
	"github.com/stretchr/testify/mock"
)

// CartService is a testify mock of the cart operations the HTTP layer uses.
type CartService struct {
	mock.Mock
}

func (m *CartService) Summary(ctx context.Context) (*models.CartSummary, error) {
	args := m.Called(ctx)
	if summary, ok := args.Get(0).(*models.CartSummary); ok {
		return summary, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CartService) GetAllItems(ctx context.Context) ([]models.OrderItem, error) {
	args := m.Called(ctx)
	if items, ok := args.Get(0).([]models.OrderItem); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CartService) GetItem(ctx context.Context, productID string) (*models.OrderItem, error) {
	args := m.Called(ctx, productID)
	if item, ok := args.Get(0).(*models.OrderItem); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CartService) GetTotalQuantity(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *CartService) GetTotalPrice(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *CartService) SetItem(ctx context.Context, product models.Product, quantity int) error {
	args := m.Called(ctx, product, quantity)
	return args.Error(0)
}

func (m *CartService) IncrementItem(ctx context.Context, productID string) (*models.OrderItem, error) {
	args := m.Called(ctx, productID)
	if item, ok := args.Get(0).(*models.OrderItem); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CartService) DecrementItem(ctx context.Context, productID string) (*models.OrderItem, error) {
	args := m.Called(ctx, productID)
	if item, ok := args.Get(0).(*models.OrderItem); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CartService) RemoveItem(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *CartService) Empty(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
