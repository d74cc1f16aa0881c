package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"miniMercado/business/cart"
	"miniMercado/domain"
	"miniMercado/pkg/logger"
	"miniMercado/pkg/metrics"
)

type (
	CartHandler struct {
		validate    *validator.Validate
		cartService CartService
		timeout     time.Duration
	}

	CartService interface {
		AddOrMerge(ctx context.Context, userID, productID uint, quantity int) (cart.AddResult, error)
		ListCart(ctx context.Context, userID uint) ([]domain.CartLine, decimal.Decimal, error)
		UpdateQuantity(ctx context.Context, itemID uint, quantity int) error
		RemoveItem(ctx context.Context, itemID uint) error
		ClearCart(ctx context.Context, userID uint) error
	}

	AddCartInput struct {
		UserID    uint `json:"userId" validate:"required"`
		ProductID uint `json:"productId" validate:"required"`
		Quantity  int  `json:"quantity"`
	}

	UpdateCartInput struct {
		Quantity int `json:"quantity" validate:"required"`
	}
)

func NewCartHandler(cartService CartService) *CartHandler {
	return &CartHandler{
		validate:    validator.New(),
		cartService: cartService,
		timeout:     10 * time.Second,
	}
}

// AddToCart answers 201 when a new line was created and 200 when the
// quantity was merged into an existing line.
func (h *CartHandler) AddToCart(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.CartAddLatency.Observe(time.Since(start).Seconds())
	}()

	var request AddCartInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate cart add input", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.cartService.AddOrMerge(ctx, request.UserID, request.ProductID, request.Quantity)
	if err != nil {
		logger.Error("Failed to add item to cart", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if strings.Contains(err.Error(), "required") {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to add item to cart"})
	}

	if result.Merged {
		metrics.CartAddTotal.WithLabelValues("merged").Inc()
		return c.JSON(http.StatusOK, fres.Response.StatusOK("Item quantity updated in cart"))
	}

	metrics.CartAddTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("Product added to cart"))
}

func (h *CartHandler) GetCart(c echo.Context) error {
	id := c.Param("userId")
	userID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		logger.Error("Invalid user ID", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	lines, total, err := h.cartService.ListCart(ctx, uint(userID))
	if err != nil {
		logger.Error("Failed to list cart items", err)
		if strings.Contains(err.Error(), "required") {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to list cart items"})
	}

	if lines == nil {
		lines = []domain.CartLine{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":      lines,
		"cart_total": total.StringFixed(2),
	})
}

func (h *CartHandler) UpdateCartItem(c echo.Context) error {
	id := c.Param("id")
	itemID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		logger.Error("Invalid cart item ID", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid cart item ID"})
	}

	var request UpdateCartInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.cartService.UpdateQuantity(ctx, uint(itemID), request.Quantity); err != nil {
		logger.Error("Failed to update cart item", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if strings.Contains(err.Error(), "greater than zero") {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to update cart item"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Item quantity updated successfully"))
}

func (h *CartHandler) RemoveCartItem(c echo.Context) error {
	id := c.Param("id")
	itemID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		logger.Error("Invalid cart item ID", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid cart item ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.cartService.RemoveItem(ctx, uint(itemID)); err != nil {
		logger.Error("Failed to remove cart item", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to remove cart item"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Item removed from cart successfully"))
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	id := c.Param("userId")
	userID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		logger.Error("Invalid user ID", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.cartService.ClearCart(ctx, uint(userID)); err != nil {
		logger.Error("Failed to clear cart", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to clear cart"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Cart emptied successfully"))
}
