package repository

import (
	"path/filepath"

	"github.com/spec-kit/storefront-service/internal/codec"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/flatfile"
)

// CartRepository persists every live shopping cart, one line per customer.
type CartRepository interface {
	LoadAll() ([]domain.Cart, error)
	SaveAll(carts []domain.Cart) error
}

type cartRepository struct {
	store *flatfile.Store[domain.Cart]
}

// NewCartRepository returns a flat-file-backed implementation.
func NewCartRepository(dataDir string, reg *codec.Registry) CartRepository {
	path := filepath.Join(dataDir, "shopping_carts.txt")
	return &cartRepository{store: flatfile.NewStore[domain.Cart](path, reg, SerializerCart)}
}

func (r *cartRepository) LoadAll() ([]domain.Cart, error) {
	return r.store.LoadAll()
}

func (r *cartRepository) SaveAll(carts []domain.Cart) error {
	return r.store.SaveAll(carts)
}
