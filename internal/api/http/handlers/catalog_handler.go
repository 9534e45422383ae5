package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// CatalogHandler exposes the product catalog. Browsing is open; mutation is
// restricted to the owning seller or an administrator.
type CatalogHandler struct {
	catalog *service.Catalog
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(catalog *service.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List handles GET /catalog.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	products := h.catalog.Products()
	responses := make([]dto.ProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, dto.NewProductResponse(product))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Get handles GET /catalog/:barcode.
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	product, exists := h.catalog.GetByBarcode(c.Params("barcode"))
	if !exists {
		return apperrors.NewNotFound("product", nil)
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// Mine handles GET /catalog/mine for sellers.
func (h *CatalogHandler) Mine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	products := h.catalog.ProductsBySeller(principal.Account.ID)
	responses := make([]dto.ProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, dto.NewProductResponse(product))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Create handles POST /catalog.
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ProductCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Barcode == "" || req.Name == "" {
		return apperrors.NewValidationError("barcode and name required", nil)
	}

	product, err := h.catalog.Add(principal.Account.ID, req.Barcode, req.Name, req.Description, req.Price, req.Stock)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// Update handles PATCH /catalog/:barcode, applying only the fields present.
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	barcode := c.Params("barcode")
	if err := h.authorizeMutation(c, barcode); err != nil {
		return err
	}

	var req dto.ProductUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if req.Name != nil {
		if err := h.catalog.SetName(barcode, *req.Name); err != nil {
			return err
		}
	}
	if req.Description != nil {
		if err := h.catalog.SetDescription(barcode, *req.Description); err != nil {
			return err
		}
	}
	if req.Price != nil {
		if err := h.catalog.SetPrice(barcode, *req.Price); err != nil {
			return err
		}
	}
	if req.Stock != nil {
		if err := h.catalog.SetStock(barcode, *req.Stock); err != nil {
			return err
		}
	}
	if req.Discount != nil {
		if err := h.catalog.SetDiscount(barcode, *req.Discount); err != nil {
			return err
		}
	}
	if req.Category != nil {
		category, ok := domain.ParseCategory(strings.ToUpper(*req.Category))
		if !ok {
			return apperrors.NewValidationError("unknown category", nil)
		}
		if err := h.catalog.SetCategory(barcode, category); err != nil {
			return err
		}
	}

	product, _ := h.catalog.GetByBarcode(barcode)
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// Delete handles DELETE /catalog/:barcode.
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	barcode := c.Params("barcode")
	if err := h.authorizeMutation(c, barcode); err != nil {
		return err
	}
	if err := h.catalog.Remove(barcode); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// authorizeMutation requires the product to exist and the caller to be its
// owning seller or an administrator.
func (h *CatalogHandler) authorizeMutation(c *fiber.Ctx, barcode string) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	product, exists := h.catalog.GetByBarcode(barcode)
	if !exists {
		return apperrors.NewNotFound("product", nil)
	}
	if principal.Role == domain.RoleAdministrator {
		return nil
	}
	if principal.Role == domain.RoleSeller && product.SellerID == principal.Account.ID {
		return nil
	}
	return apperrors.NewForbidden("not the owner of this product")
}
