package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// OrdersHandler exposes order history and the status state machines.
type OrdersHandler struct {
	ledger *service.OrderLedger
}

// NewOrdersHandler constructs the handler.
func NewOrdersHandler(ledger *service.OrderLedger) *OrdersHandler {
	return &OrdersHandler{ledger: ledger}
}

// Mine handles GET /orders for customers.
func (h *OrdersHandler) Mine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponses(h.ledger.OrderHistory(principal.Account.ID))})
}

// Get handles GET /orders/:id for the owning customer or an administrator.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	order, exists := h.ledger.GetOrder(h.orderID(c))
	if !exists {
		return apperrors.NewNotFound("order", nil)
	}
	if principal.Role != domain.RoleAdministrator && order.CustomerID != principal.Account.ID {
		return apperrors.NewForbidden("not the owner of this order")
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// All handles GET /admin/orders.
func (h *OrdersHandler) All(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewOrderResponses(h.ledger.AllOrders())})
}

// SellerOrders handles GET /seller/orders: every order containing at least
// one of the seller's products, with the snapshot filtered to those items.
func (h *OrdersHandler) SellerOrders(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	orders := h.ledger.OrdersWithSeller(principal.Account.ID)
	responses := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		resp := dto.NewOrderResponse(order)
		resp.Items = h.ledger.ProductsForSeller(principal.Account.ID, order)
		responses = append(responses, resp)
	}
	return c.JSON(fiber.Map{"data": responses})
}

// UpdateFulfillment handles POST /orders/:id/fulfillment. The ledger rejects
// transitions outside its table.
func (h *OrdersHandler) UpdateFulfillment(c *fiber.Ctx) error {
	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, ok := domain.ParseFulfillmentStatus(strings.ToUpper(req.Status))
	if !ok {
		return apperrors.NewValidationError("unknown fulfillment status", nil)
	}

	orderID := h.orderID(c)
	if err := h.ledger.SetFulfillmentStatus(orderID, status); err != nil {
		return err
	}

	order, _ := h.ledger.GetOrder(orderID)
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// UpdatePayment handles POST /orders/:id/payment. Customers may only act on
// their own orders; administrators on any.
func (h *OrdersHandler) UpdatePayment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, ok := domain.ParsePaymentStatus(strings.ToUpper(req.Status))
	if !ok {
		return apperrors.NewValidationError("unknown payment status", nil)
	}

	orderID := h.orderID(c)
	order, exists := h.ledger.GetOrder(orderID)
	if !exists {
		return apperrors.NewNotFound("order", nil)
	}
	if principal.Role != domain.RoleAdministrator && order.CustomerID != principal.Account.ID {
		return apperrors.NewForbidden("not the owner of this order")
	}

	if err := h.ledger.SetPaymentStatus(orderID, status); err != nil {
		return err
	}

	order, _ = h.ledger.GetOrder(orderID)
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

func (h *OrdersHandler) orderID(c *fiber.Ctx) int64 {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return -1
	}
	return id
}
