package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// CartHandler exposes the authenticated customer's live cart.
type CartHandler struct {
	ledger *service.OrderLedger
}

// NewCartHandler constructs the handler.
func NewCartHandler(ledger *service.OrderLedger) *CartHandler {
	return &CartHandler{ledger: ledger}
}

// Get handles GET /cart.
func (h *CartHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": dto.NewCartResponse(h.ledger.Cart(principal.Account.ID))})
}

// AddItem handles POST /cart/items.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Barcode == "" {
		return apperrors.NewValidationError("barcode required", nil)
	}

	if err := h.ledger.AddToCart(principal.Account.ID, req.Barcode, req.Quantity); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCartResponse(h.ledger.Cart(principal.Account.ID))})
}

// RemoveItem handles POST /cart/items/remove.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Barcode == "" {
		return apperrors.NewValidationError("barcode required", nil)
	}

	if err := h.ledger.RemoveFromCart(principal.Account.ID, req.Barcode, req.Quantity); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCartResponse(h.ledger.Cart(principal.Account.ID))})
}

// Checkout handles POST /cart/checkout, converting the cart into an order.
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	order, err := h.ledger.PlaceOrder(principal.Account.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}
