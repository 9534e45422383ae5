package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// AccountsHandler exposes the administrator surface over every role's
// population: account creation for any role, listing, deletion and the
// audit log.
type AccountsHandler struct {
	stores map[domain.Role]*service.IdentityStore
}

// NewAccountsHandler constructs the handler.
func NewAccountsHandler(stores map[domain.Role]*service.IdentityStore) *AccountsHandler {
	return &AccountsHandler{stores: stores}
}

// Create handles POST /admin/accounts/:role.
func (h *AccountsHandler) Create(c *fiber.Ctx) error {
	store, err := h.storeFromParam(c)
	if err != nil {
		return err
	}

	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || req.DisplayName == "" {
		return apperrors.NewValidationError("email, display_name, password required", nil)
	}

	account, err := store.Register(req.Email, req.DisplayName, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// List handles GET /admin/accounts/:role.
func (h *AccountsHandler) List(c *fiber.Ctx) error {
	store, err := h.storeFromParam(c)
	if err != nil {
		return err
	}

	accounts := store.Accounts()
	responses := make([]dto.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, dto.NewAccountResponse(account))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Delete handles DELETE /admin/accounts/:role/:id. Catalog items and order
// history belonging to the account are intentionally left in place.
func (h *AccountsHandler) Delete(c *fiber.Ctx) error {
	store, err := h.storeFromParam(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid account id", nil)
	}

	if _, exists := store.GetByID(id); !exists {
		return apperrors.NewNotFound("account", nil)
	}
	if err := store.Delete(id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AuditLog handles GET /admin/accounts/:role/audit.
func (h *AccountsHandler) AuditLog(c *fiber.Ctx) error {
	store, err := h.storeFromParam(c)
	if err != nil {
		return err
	}

	entries := store.AuditLog()
	responses := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.NewAuditEntryResponse(entry))
	}
	return c.JSON(fiber.Map{"data": responses})
}

func (h *AccountsHandler) storeFromParam(c *fiber.Ctx) (*service.IdentityStore, error) {
	role, ok := domain.ParseRole(strings.ToUpper(c.Params("role")))
	if !ok {
		return nil, apperrors.NewValidationError("unknown role", nil)
	}
	return h.stores[role], nil
}
