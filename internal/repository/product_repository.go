package repository

import (
	"path/filepath"

	"github.com/spec-kit/storefront-service/internal/codec"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/flatfile"
)

// ProductRepository persists the whole catalog.
type ProductRepository interface {
	LoadAll() ([]domain.Product, error)
	SaveAll(products []domain.Product) error
}

type productRepository struct {
	store *flatfile.Store[domain.Product]
}

// NewProductRepository returns a flat-file-backed implementation.
func NewProductRepository(dataDir string, reg *codec.Registry) ProductRepository {
	path := filepath.Join(dataDir, "products.txt")
	return &productRepository{store: flatfile.NewStore[domain.Product](path, reg, SerializerProduct)}
}

func (r *productRepository) LoadAll() ([]domain.Product, error) {
	return r.store.LoadAll()
}

func (r *productRepository) SaveAll(products []domain.Product) error {
	return r.store.SaveAll(products)
}
