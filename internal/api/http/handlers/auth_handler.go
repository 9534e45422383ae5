package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// AuthHandler exposes registration, login and self-service account
// operations across every role's identity store.
type AuthHandler struct {
	stores     map[domain.Role]*service.IdentityStore
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(stores map[domain.Role]*service.IdentityStore, tokens *auth.TokenManager, dispatcher events.Dispatcher) *AuthHandler {
	return &AuthHandler{stores: stores, tokens: tokens, dispatcher: dispatcher}
}

// Register handles POST /auth/register. Self-registration is customer-only;
// seller and administrator accounts are created through the admin surface.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || req.DisplayName == "" {
		return apperrors.NewValidationError("email, display_name, password required", nil)
	}

	store := h.stores[domain.RoleCustomer]
	account, err := store.Register(req.Email, req.DisplayName, req.Password)
	if err != nil {
		return err
	}
	h.publishRegistered(account)

	token, exp, err := h.tokens.GenerateToken(account.ID, account.Role)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"account": dto.NewAccountResponse(account),
			"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/:role/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	store, err := h.storeFromParam(c)
	if err != nil {
		return err
	}

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	account, err := store.Login(req.Email, req.Password)
	if err != nil {
		return err
	}

	token, exp, err := h.tokens.GenerateToken(account.ID, account.Role)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"account": dto.NewAccountResponse(account),
			"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(principal.Account)})
}

// ChangePassword handles POST /auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	store := h.stores[principal.Role]
	if err := store.ChangePassword(principal.Account.ID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ChangeEmail handles POST /auth/email/change.
func (h *AuthHandler) ChangeEmail(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ChangeEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	store := h.stores[principal.Role]
	if err := store.ChangeEmail(principal.Account.ID, req.NewEmail); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ChangeDisplayName handles POST /auth/display-name/change.
func (h *AuthHandler) ChangeDisplayName(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ChangeDisplayNameRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.DisplayName == "" {
		return apperrors.NewValidationError("display_name required", nil)
	}

	store := h.stores[principal.Role]
	if err := store.ChangeDisplayName(principal.Account.ID, req.DisplayName); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *AuthHandler) storeFromParam(c *fiber.Ctx) (*service.IdentityStore, error) {
	// Role names arrive lowercased in URLs.
	role, ok := domain.ParseRole(strings.ToUpper(c.Params("role")))
	if !ok {
		return nil, apperrors.NewValidationError("unknown role", nil)
	}
	return h.stores[role], nil
}

func (h *AuthHandler) publishRegistered(account domain.Account) {
	if h.dispatcher == nil {
		return
	}
	_ = h.dispatcher.Publish(context.Background(), events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccountRegistered,
		AccountID: account.ID.String(),
		Timestamp: time.Now(),
		Payload: events.AccountRegisteredPayload{
			Role:  string(account.Role),
			Email: account.Email,
		},
	})
}
