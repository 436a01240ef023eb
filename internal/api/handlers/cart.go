package handlers

import (
	"context"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/shopping-cart/internal/errors"
	"github.com/aaravmahajanofficial/shopping-cart/internal/models"
	"github.com/aaravmahajanofficial/shopping-cart/internal/utils"
	"github.com/aaravmahajanofficial/shopping-cart/internal/utils/logger"
	"github.com/aaravmahajanofficial/shopping-cart/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

type CartService interface {
	Summary(ctx context.Context) (*models.CartSummary, error)
	GetAllItems(ctx context.Context) ([]models.OrderItem, error)
	GetItem(ctx context.Context, productID string) (*models.OrderItem, error)
	GetTotalQuantity(ctx context.Context) (int, error)
	GetTotalPrice(ctx context.Context) (float64, error)
	SetItem(ctx context.Context, product models.Product, quantity int) error
	IncrementItem(ctx context.Context, productID string) (*models.OrderItem, error)
	DecrementItem(ctx context.Context, productID string) (*models.OrderItem, error)
	RemoveItem(ctx context.Context, productID string) error
	Empty(ctx context.Context) error
}

type CartHandler struct {
	cartService CartService
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
}

func NewCartHandler(service CartService) *CartHandler {
	return &CartHandler{
		cartService: service,
		validator:   validator.New(),
		sanitizer:   bluemonday.StrictPolicy(),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		summary, err := h.cartService.Summary(r.Context())
		if err != nil {
			h.fail(w, r, "Failed to load cart", err)
			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

func (h *CartHandler) ListItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		items, err := h.cartService.GetAllItems(r.Context())
		if err != nil {
			h.fail(w, r, "Failed to list cart items", err)
			return
		}

		response.Success(w, http.StatusOK, items)
	}
}

func (h *CartHandler) GetItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID := r.PathValue("id")
		if productID == "" {
			response.Error(w, errors.BadRequestError("Product ID is required"))
			return
		}

		item, err := h.cartService.GetItem(r.Context(), productID)
		if err != nil {
			h.fail(w, r, "Failed to get cart item", err)
			return
		}

		response.Success(w, http.StatusOK, item)
	}
}

func (h *CartHandler) GetTotals() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		quantity, err := h.cartService.GetTotalQuantity(r.Context())
		if err != nil {
			h.fail(w, r, "Failed to compute cart quantity", err)
			return
		}

		price, err := h.cartService.GetTotalPrice(r.Context())
		if err != nil {
			h.fail(w, r, "Failed to compute cart price", err)
			return
		}

		response.Success(w, http.StatusOK, models.CartTotals{TotalQuantity: quantity, TotalPrice: price})
	}
}

// SetItem upserts a line, or removes it when the quantity is zero or less.
func (h *CartHandler) SetItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		log := logger.FromContext(r.Context())

		var req models.SetItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product := h.sanitizeProduct(req.Product)

		if err := h.cartService.SetItem(r.Context(), product, req.Quantity); err != nil {
			h.fail(w, r, "Failed to set cart item", err)
			return
		}

		log.Info("Cart item set", slog.String("productId", product.ID), slog.Int("quantity", req.Quantity))

		h.writeSummary(w, r)
	}
}

func (h *CartHandler) IncrementItem() http.HandlerFunc {
	return h.adjustItem(h.cartService.IncrementItem)
}

func (h *CartHandler) DecrementItem() http.HandlerFunc {
	return h.adjustItem(h.cartService.DecrementItem)
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID := r.PathValue("id")
		if productID == "" {
			response.Error(w, errors.BadRequestError("Product ID is required"))
			return
		}

		if err := h.cartService.RemoveItem(r.Context(), productID); err != nil {
			h.fail(w, r, "Failed to remove cart item", err)
			return
		}

		h.writeSummary(w, r)
	}
}

func (h *CartHandler) EmptyCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if err := h.cartService.Empty(r.Context()); err != nil {
			h.fail(w, r, "Failed to empty cart", err)
			return
		}

		h.writeSummary(w, r)
	}
}

func (h *CartHandler) adjustItem(adjust func(context.Context, string) (*models.OrderItem, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID := r.PathValue("id")
		if productID == "" {
			response.Error(w, errors.BadRequestError("Product ID is required"))
			return
		}

		item, err := adjust(r.Context(), productID)
		if err != nil {
			h.fail(w, r, "Failed to adjust cart item", err)
			return
		}

		response.Success(w, http.StatusOK, item)
	}
}

func (h *CartHandler) writeSummary(w http.ResponseWriter, r *http.Request) {

	summary, err := h.cartService.Summary(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to load cart", err)
		return
	}

	response.Success(w, http.StatusOK, summary)
}

func (h *CartHandler) fail(w http.ResponseWriter, r *http.Request, message string, err error) {

	log := logger.FromContext(r.Context())

	if appErr, ok := errors.IsAppError(err); ok && appErr.StatusCode < http.StatusInternalServerError {
		log.Warn(message, slog.String("error", err.Error()))
	} else {
		log.Error(message, slog.Any("error", err))
	}

	response.Error(w, err)
}

// sanitizeProduct strips markup from the free-text fields and keeps them as
// plain text. ImageURL is checked by the url validator instead.
func (h *CartHandler) sanitizeProduct(p models.Product) models.Product {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = h.plainText(p.Name)
	p.CategoryID = h.plainText(p.CategoryID)
	return p
}

// plainText removes tags; the policy escapes what is left, which is undone
// since the value is stored as text, not HTML.
func (h *CartHandler) plainText(s string) string {
	return html.UnescapeString(h.sanitizer.Sanitize(s))
}
