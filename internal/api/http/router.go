package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/http/handlers"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Accounts       *handlers.AccountsHandler
	Catalog        *handlers.CatalogHandler
	Cart           *handlers.CartHandler
	Orders         *handlers.OrdersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/:role/login", cfg.Auth.Login)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	authProtected.Get("/me", cfg.Auth.Me)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)
	authProtected.Post("/email/change", cfg.Auth.ChangeEmail)
	authProtected.Post("/display-name/change", cfg.Auth.ChangeDisplayName)

	catalog := app.Group("/catalog")
	catalog.Get("/", cfg.Catalog.List)
	catalog.Get("/mine", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleSeller), cfg.Catalog.Mine)
	catalog.Get("/:barcode", cfg.Catalog.Get)
	catalog.Post("/", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleSeller), cfg.Catalog.Create)
	catalog.Patch("/:barcode", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleSeller, domain.RoleAdministrator), cfg.Catalog.Update)
	catalog.Delete("/:barcode", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleSeller, domain.RoleAdministrator), cfg.Catalog.Delete)

	cart := app.Group("/cart", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleCustomer))
	cart.Get("/", cfg.Cart.Get)
	cart.Post("/items", cfg.Cart.AddItem)
	cart.Post("/items/remove", cfg.Cart.RemoveItem)
	cart.Post("/checkout", cfg.Cart.Checkout)

	orders := app.Group("/orders", cfg.AuthMiddleware.Handle)
	orders.Get("/", auth.RequireRole(domain.RoleCustomer), cfg.Orders.Mine)
	orders.Get("/:id", auth.RequireRole(domain.RoleCustomer, domain.RoleAdministrator), cfg.Orders.Get)
	orders.Post("/:id/fulfillment", auth.RequireRole(domain.RoleSeller, domain.RoleAdministrator), cfg.Orders.UpdateFulfillment)
	orders.Post("/:id/payment", auth.RequireRole(domain.RoleCustomer, domain.RoleAdministrator), cfg.Orders.UpdatePayment)

	seller := app.Group("/seller", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleSeller))
	seller.Get("/orders", cfg.Orders.SellerOrders)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdministrator))
	admin.Get("/orders", cfg.Orders.All)
	admin.Post("/accounts/:role", cfg.Accounts.Create)
	admin.Get("/accounts/:role", cfg.Accounts.List)
	admin.Get("/accounts/:role/audit", cfg.Accounts.AuditLog)
	admin.Delete("/accounts/:role/:id", cfg.Accounts.Delete)
}
