package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/shopping-cart/internal/config"
	"github.com/aaravmahajanofficial/shopping-cart/internal/errors"
	"github.com/aaravmahajanofficial/shopping-cart/internal/metrics"
	"github.com/aaravmahajanofficial/shopping-cart/internal/models"
	"github.com/aaravmahajanofficial/shopping-cart/internal/storage"
	"github.com/aaravmahajanofficial/shopping-cart/internal/utils/logger"
)

// CartService owns the cart stored under a single key. Nothing is cached:
// every call reads and parses the stored value again.
type CartService struct {
	store   storage.Storage
	key     string
	timeout time.Duration

	// serialises load-modify-save within this process
	mu sync.Mutex
}

// NewCartService validates whatever is stored under the cart key, discarding
// it if it is not a cart, and seeds an empty cart with DefaultSeedItems
// unless cfg.DisableSeed is set.
func NewCartService(ctx context.Context, store storage.Storage, cfg *config.Cart) (*CartService, error) {

	s := &CartService{
		store:   store,
		key:     cfg.StorageKey,
		timeout: cfg.OperationTimeout,
	}

	if _, err := s.validateStoredCart(ctx); err != nil {
		return nil, err
	}

	if cfg.DisableSeed {
		return s, nil
	}

	isEmpty, err := s.IsEmpty(ctx)
	if err != nil {
		return nil, err
	}

	if isEmpty {
		for _, item := range DefaultSeedItems() {
			if err := s.SetItem(ctx, item.Product, item.Quantity); err != nil {
				return nil, err
			}
		}
	}

	return s, nil
}

func (s *CartService) GetAllItems(ctx context.Context) ([]models.OrderItem, error) {

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return items.Values(), nil
}

func (s *CartService) GetItem(ctx context.Context, productID string) (*models.OrderItem, error) {

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	item, exists := items.Get(productID)
	if !exists {
		return nil, errors.NotFoundError("Item not found in the cart")
	}

	return &item, nil
}

func (s *CartService) GetTotalQuantity(ctx context.Context) (int, error) {

	items, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	return totalQuantity(items), nil
}

// GetTotalPrice sums quantity × purchase price. The product's current price
// is never consulted.
func (s *CartService) GetTotalPrice(ctx context.Context) (float64, error) {

	items, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	return totalPrice(items), nil
}

func (s *CartService) IsEmpty(ctx context.Context) (bool, error) {

	items, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	return items.Len() == 0, nil
}

// Summary computes everything the cart view shows from a single read.
func (s *CartService) Summary(ctx context.Context) (*models.CartSummary, error) {

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return &models.CartSummary{
		Items:         items.Values(),
		TotalQuantity: totalQuantity(items),
		TotalPrice:    totalPrice(items),
		IsEmpty:       items.Len() == 0,
	}, nil
}

// SetItem stores quantity for product, pinning the purchase price to
// product.Price. A quantity of zero or less removes the product; removing an
// absent product still rewrites the cart. Quantities above
// models.MaxItemQuantity are rejected.
func (s *CartService) SetItem(ctx context.Context, product models.Product, quantity int) error {

	if quantity > models.MaxItemQuantity {
		return quantityAboveCap()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}

	return s.setItem(ctx, items, product, quantity)
}

// IncrementItem adds one to the quantity of a product already in the cart.
func (s *CartService) IncrementItem(ctx context.Context, productID string) (*models.OrderItem, error) {
	return s.adjustItem(ctx, productID, func(quantity int) (int, error) {
		if quantity >= models.MaxItemQuantity {
			return quantity, quantityAboveCap()
		}
		return quantity + 1, nil
	})
}

// DecrementItem subtracts one, but never takes a line below a quantity of
// one. Use RemoveItem to drop it.
func (s *CartService) DecrementItem(ctx context.Context, productID string) (*models.OrderItem, error) {
	return s.adjustItem(ctx, productID, func(quantity int) (int, error) {
		if quantity > 1 {
			return quantity - 1, nil
		}
		return quantity, nil
	})
}

func (s *CartService) RemoveItem(ctx context.Context, productID string) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}

	item, exists := items.Get(productID)
	if !exists {
		return errors.NotFoundError("Item not found in the cart")
	}

	return s.setItem(ctx, items, item.Product, 0)
}

func (s *CartService) Empty(ctx context.Context) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, models.NewCartItemsMap()); err != nil {
		return err
	}

	metrics.RecordCartMutation(metrics.OperationEmpty)

	return nil
}

func (s *CartService) adjustItem(ctx context.Context, productID string, next func(int) (int, error)) (*models.OrderItem, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	item, exists := items.Get(productID)
	if !exists {
		return nil, errors.NotFoundError("Item not found in the cart")
	}

	quantity, err := next(item.Quantity)
	if err != nil {
		return nil, err
	}

	if quantity == item.Quantity {
		return &item, nil
	}

	if err := s.setItem(ctx, items, item.Product, quantity); err != nil {
		return nil, err
	}

	updated, exists := items.Get(productID)
	if !exists {
		return nil, errors.InternalError("Cart item vanished after update")
	}

	return &updated, nil
}

// setItem mutates items and saves it. Callers hold s.mu.
func (s *CartService) setItem(ctx context.Context, items *models.CartItemsMap, product models.Product, quantity int) error {

	if product.ID == "" {
		return errors.AddValidationError("_id", "product identifier is required")
	}

	operation := metrics.OperationRemoveItem

	if quantity > 0 {
		if math.IsNaN(product.Price) || math.IsInf(product.Price, 0) {
			return errors.AddValidationError("price", "must be a finite number")
		}

		items.Set(product.ID, models.OrderItem{
			Product:       product,
			Quantity:      quantity,
			PurchasePrice: product.Price,
		})
		operation = metrics.OperationSetItem
	} else {
		items.Delete(product.ID)
	}

	if err := s.save(ctx, items); err != nil {
		return err
	}

	metrics.RecordCartMutation(operation)

	return nil
}

// load parses the stored cart. A missing or blank value is an empty cart.
func (s *CartService) load(ctx context.Context) (*models.CartItemsMap, error) {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	raw, found, err := s.store.Read(ctx, s.key)
	if err != nil {
		return nil, errors.StorageError("Failed to read cart").WithError(err)
	}

	items := models.NewCartItemsMap()

	if !found || strings.TrimSpace(raw) == "" {
		return items, nil
	}

	if err := json.Unmarshal([]byte(raw), items); err != nil {
		return nil, errors.InternalError("Stored cart is unreadable").WithError(err)
	}

	return items, nil
}

// save overwrites the stored cart with items.
func (s *CartService) save(ctx context.Context, items *models.CartItemsMap) error {

	data, err := json.Marshal(items)
	if err != nil {
		return errors.InternalError("Failed to encode cart").WithError(err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.store.Write(ctx, s.key, string(data)); err != nil {
		return errors.StorageError("Failed to save cart").WithError(err)
	}

	return nil
}

// validateStoredCart removes the stored value when it is not a cart. Bad data
// is never reported as an error; only a failing store is.
func (s *CartService) validateStoredCart(ctx context.Context) (ValidationResult, error) {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	raw, found, err := s.store.Read(ctx, s.key)
	if err != nil {
		return "", errors.StorageError("Failed to read cart").WithError(err)
	}

	if !found {
		return StoredCartAbsent, nil
	}

	if checkStoredCart(raw) {
		return StoredCartValid, nil
	}

	if err := s.store.Remove(ctx, s.key); err != nil {
		return "", errors.StorageError("Failed to remove invalid cart").WithError(err)
	}

	metrics.RecordStoredCartDiscarded()
	logger.FromContext(ctx).Warn("Discarded stored cart that failed validation",
		slog.String("key", s.key),
		slog.Int("bytes", len(raw)),
	)

	return StoredCartCleared, nil
}

func quantityAboveCap() *errors.AppError {
	return errors.AddValidationError("quantity", fmt.Sprintf("must be at most %d", models.MaxItemQuantity))
}

func (s *CartService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func totalQuantity(items *models.CartItemsMap) int {

	var total int

	// stored carts written elsewhere are not capped
	for _, item := range items.Values() {
		if item.Quantity > math.MaxInt-total {
			return math.MaxInt
		}
		total += item.Quantity
	}

	return total
}

func totalPrice(items *models.CartItemsMap) float64 {

	var total float64

	for _, item := range items.Values() {
		total += float64(item.Quantity) * item.PurchasePrice
	}

	return total
}
