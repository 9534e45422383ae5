package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/storefront-service/internal/domain"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Role    domain.Role
	Account domain.Account
}

// AccountResolver looks up a live account in one role's population.
type AccountResolver interface {
	GetByID(id uuid.UUID) (domain.Account, bool)
}

// Middleware validates bearer tokens and loads principals.
type Middleware struct {
	tokens    *TokenManager
	resolvers map[domain.Role]AccountResolver
}

// NewMiddleware constructs middleware over the per-role identity stores.
func NewMiddleware(tokens *TokenManager, resolvers map[domain.Role]AccountResolver) *Middleware {
	return &Middleware{tokens: tokens, resolvers: resolvers}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	resolver, ok := m.resolvers[claims.Role]
	if !ok {
		return apperrors.NewUnauthorized("unknown role")
	}
	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token subject")
	}
	account, ok := resolver.GetByID(accountID)
	if !ok {
		// The account was deleted after the token was issued.
		return apperrors.NewUnauthorized("account not found")
	}

	c.Locals(principalKey, &Principal{Role: claims.Role, Account: account})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
