package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/codec"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
)

func newTestCatalog(t *testing.T, dir string) *Catalog {
	t.Helper()

	reg := codec.NewRegistry()
	repository.RegisterSerializers(reg)

	catalog, err := NewCatalog(repository.NewProductRepository(dir, reg), zap.NewNop())
	require.NoError(t, err)
	return catalog
}

func TestCatalogAdd(t *testing.T) {
	catalog := newTestCatalog(t, t.TempDir())
	sellerID := uuid.New()

	product, err := catalog.Add(sellerID, "B-1", "Widget", "a widget", 9.99, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryUncategorized, product.Category)
	assert.Zero(t, product.Discount)

	_, err = catalog.Add(uuid.New(), "B-1", "Other Widget", "", 1, 1)
	require.ErrorIs(t, err, ErrDuplicateBarcode)

	_, err = catalog.Add(sellerID, "B-2", "Widget", "", -1, 1)
	require.ErrorIs(t, err, ErrNegativePrice)

	_, err = catalog.Add(sellerID, "B-2", "Widget", "", 1, -1)
	require.ErrorIs(t, err, ErrNegativeStock)
}

func TestCatalogRemove(t *testing.T) {
	catalog := newTestCatalog(t, t.TempDir())

	_, err := catalog.Add(uuid.New(), "B-1", "Widget", "", 1, 1)
	require.NoError(t, err)

	require.NoError(t, catalog.Remove("B-1"))
	_, ok := catalog.GetByBarcode("B-1")
	assert.False(t, ok)

	// Removing an unknown barcode is a no-op.
	require.NoError(t, catalog.Remove("B-1"))
}

func TestCatalogSetters(t *testing.T) {
	catalog := newTestCatalog(t, t.TempDir())

	_, err := catalog.Add(uuid.New(), "B-1", "Widget", "old", 10, 5)
	require.NoError(t, err)

	require.NoError(t, catalog.SetName("B-1", "Gadget"))
	require.NoError(t, catalog.SetDescription("B-1", "new"))
	require.NoError(t, catalog.SetPrice("B-1", 12.5))
	require.NoError(t, catalog.SetStock("B-1", 7))
	require.NoError(t, catalog.SetDiscount("B-1", 0.2))
	require.NoError(t, catalog.SetCategory("B-1", domain.CategoryTech))

	product, ok := catalog.GetByBarcode("B-1")
	require.True(t, ok)
	assert.Equal(t, "Gadget", product.Name)
	assert.Equal(t, "new", product.Description)
	assert.Equal(t, 12.5, product.Price)
	assert.Equal(t, 7, product.Stock)
	assert.Equal(t, 0.2, product.Discount)
	assert.Equal(t, domain.CategoryTech, product.Category)
	assert.InDelta(t, 10.0, product.EffectivePrice(), 1e-9)

	require.ErrorIs(t, catalog.SetPrice("B-1", -1), ErrNegativePrice)
	require.ErrorIs(t, catalog.SetStock("B-1", -1), ErrNegativeStock)
	require.ErrorIs(t, catalog.SetDiscount("B-1", -0.1), ErrInvalidDiscount)
	require.ErrorIs(t, catalog.SetDiscount("B-1", 1), ErrInvalidDiscount)
	require.ErrorIs(t, catalog.SetName("B-404", "x"), ErrUnknownProduct)
}

func TestCatalogProductsBySeller(t *testing.T) {
	catalog := newTestCatalog(t, t.TempDir())
	alice := uuid.New()
	bob := uuid.New()

	_, err := catalog.Add(alice, "A-1", "One", "", 1, 1)
	require.NoError(t, err)
	_, err = catalog.Add(bob, "B-1", "Two", "", 1, 1)
	require.NoError(t, err)
	_, err = catalog.Add(alice, "A-2", "Three", "", 1, 1)
	require.NoError(t, err)

	owned := catalog.ProductsBySeller(alice)
	require.Len(t, owned, 2)
	assert.Equal(t, "A-1", owned[0].Barcode)
	assert.Equal(t, "A-2", owned[1].Barcode)

	assert.Len(t, catalog.Products(), 3)
	assert.Empty(t, catalog.ProductsBySeller(uuid.New()))
}

func TestCatalogDeductStock(t *testing.T) {
	catalog := newTestCatalog(t, t.TempDir())

	_, err := catalog.Add(uuid.New(), "A", "One", "", 1, 5)
	require.NoError(t, err)
	_, err = catalog.Add(uuid.New(), "B", "Two", "", 1, 2)
	require.NoError(t, err)

	// One entry short on stock leaves every product untouched.
	err = catalog.DeductStock(map[string]int{"A": 1, "B": 3})
	require.ErrorIs(t, err, ErrInsufficientStock)
	a, _ := catalog.GetByBarcode("A")
	assert.Equal(t, 5, a.Stock)

	err = catalog.DeductStock(map[string]int{"A": 1, "C": 1})
	require.ErrorIs(t, err, ErrUnknownProduct)

	require.NoError(t, catalog.DeductStock(map[string]int{"A": 3, "B": 2}))
	a, _ = catalog.GetByBarcode("A")
	b, _ := catalog.GetByBarcode("B")
	assert.Equal(t, 2, a.Stock)
	assert.Equal(t, 0, b.Stock)
}

func TestCatalogReload(t *testing.T) {
	dir := t.TempDir()

	first := newTestCatalog(t, dir)
	_, err := first.Add(uuid.New(), "B-1", "Widget", "", 10, 5)
	require.NoError(t, err)
	require.NoError(t, first.SetDiscount("B-1", 0.25))

	second := newTestCatalog(t, dir)
	product, ok := second.GetByBarcode("B-1")
	require.True(t, ok)
	assert.Equal(t, 0.25, product.Discount)
}

func TestCatalogLoadsLegacyLines(t *testing.T) {
	dir := t.TempDir()

	// A products file written before categories existed carries seven fields.
	line := codec.EncodeLine([]string{uuid.NewString(), "B-old", "Relic", "pre-category stock", "4", "2", "0"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.txt"), []byte(line+"\n"), 0o644))

	catalog := newTestCatalog(t, dir)
	product, ok := catalog.GetByBarcode("B-old")
	require.True(t, ok)
	assert.Equal(t, domain.CategoryUncategorized, product.Category)
	assert.Equal(t, 4.0, product.Price)
}
