package dto

import "github.com/spec-kit/storefront-service/internal/domain"

// ProductCreateRequest payload for new catalog entries.
type ProductCreateRequest struct {
	Barcode     string  `json:"barcode"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// ProductUpdateRequest carries partial field updates; nil fields are left
// unchanged.
type ProductUpdateRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Discount    *float64 `json:"discount,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

// ProductResponse is the public view of a catalog entry.
type ProductResponse struct {
	SellerID       string  `json:"seller_id"`
	Barcode        string  `json:"barcode"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	EffectivePrice float64 `json:"effective_price"`
	Stock          int     `json:"stock"`
	Discount       float64 `json:"discount"`
	Category       string  `json:"category"`
}

// NewProductResponse maps a domain product.
func NewProductResponse(product domain.Product) ProductResponse {
	return ProductResponse{
		SellerID:       product.SellerID.String(),
		Barcode:        product.Barcode,
		Name:           product.Name,
		Description:    product.Description,
		Price:          product.Price,
		EffectivePrice: product.EffectivePrice(),
		Stock:          product.Stock,
		Discount:       product.Discount,
		Category:       string(product.Category),
	}
}
