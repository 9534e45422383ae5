package service

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
)

// Catalog manages the product population. Barcodes are unique across the
// whole catalog regardless of owner. Every mutation persists implicitly.
type Catalog struct {
	products []domain.Product
	repo     repository.ProductRepository
	logger   *zap.Logger
}

// NewCatalog builds the catalog and loads its population.
func NewCatalog(repo repository.ProductRepository, logger *zap.Logger) (*Catalog, error) {
	c := &Catalog{repo: repo, logger: logger}
	if err := c.Load(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load clears in-memory state and re-reads the backing file.
func (c *Catalog) Load() error {
	products, err := c.repo.LoadAll()
	if err != nil {
		return err
	}
	c.products = products
	return nil
}

// Add creates a new product with no discount and the default category.
func (c *Catalog) Add(sellerID uuid.UUID, barcode, name, description string, price float64, stock int) (domain.Product, error) {
	if _, exists := c.GetByBarcode(barcode); exists {
		return domain.Product{}, ErrDuplicateBarcode
	}
	if price < 0 {
		return domain.Product{}, ErrNegativePrice
	}
	if stock < 0 {
		return domain.Product{}, ErrNegativeStock
	}

	product := domain.Product{
		SellerID:    sellerID,
		Barcode:     barcode,
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		Discount:    0,
		Category:    domain.CategoryUncategorized,
	}

	products := append(c.copyProducts(), product)
	if err := c.persist(products); err != nil {
		return domain.Product{}, err
	}

	c.logger.Info("product added", zap.String("barcode", barcode), zap.String("seller_id", sellerID.String()))
	return product, nil
}

// Remove deletes the product. Removing an unknown barcode is a no-op.
func (c *Catalog) Remove(barcode string) error {
	idx := c.indexByBarcode(barcode)
	if idx < 0 {
		return nil
	}

	products := c.copyProducts()
	products = append(products[:idx], products[idx+1:]...)
	return c.persist(products)
}

// GetByBarcode scans for a product with the given barcode.
func (c *Catalog) GetByBarcode(barcode string) (domain.Product, bool) {
	idx := c.indexByBarcode(barcode)
	if idx < 0 {
		return domain.Product{}, false
	}
	return c.products[idx], true
}

// Products returns a copy of the whole catalog.
func (c *Catalog) Products() []domain.Product {
	return c.copyProducts()
}

// ProductsBySeller returns every product owned by the given seller.
func (c *Catalog) ProductsBySeller(sellerID uuid.UUID) []domain.Product {
	var owned []domain.Product
	for _, product := range c.products {
		if product.SellerID == sellerID {
			owned = append(owned, product)
		}
	}
	return owned
}

// SetName renames the product.
func (c *Catalog) SetName(barcode, name string) error {
	return c.update(barcode, func(p *domain.Product) error {
		p.Name = name
		return nil
	})
}

// SetDescription replaces the description.
func (c *Catalog) SetDescription(barcode, description string) error {
	return c.update(barcode, func(p *domain.Product) error {
		p.Description = description
		return nil
	})
}

// SetPrice replaces the unit price.
func (c *Catalog) SetPrice(barcode string, price float64) error {
	return c.update(barcode, func(p *domain.Product) error {
		if price < 0 {
			return ErrNegativePrice
		}
		p.Price = price
		return nil
	})
}

// SetStock replaces the stock count.
func (c *Catalog) SetStock(barcode string, stock int) error {
	return c.update(barcode, func(p *domain.Product) error {
		if stock < 0 {
			return ErrNegativeStock
		}
		p.Stock = stock
		return nil
	})
}

// SetDiscount replaces the fractional discount.
func (c *Catalog) SetDiscount(barcode string, discount float64) error {
	return c.update(barcode, func(p *domain.Product) error {
		if discount < 0 || discount >= 1 {
			return ErrInvalidDiscount
		}
		p.Discount = discount
		return nil
	})
}

// SetCategory replaces the category tag.
func (c *Catalog) SetCategory(barcode string, category domain.Category) error {
	return c.update(barcode, func(p *domain.Product) error {
		p.Category = category
		return nil
	})
}

// DeductStock removes the given quantities in one mutation. Either every
// entry is available in sufficient quantity and all are deducted, or nothing
// changes.
func (c *Catalog) DeductStock(items map[string]int) error {
	products := c.copyProducts()
	for barcode, quantity := range items {
		idx := c.indexByBarcode(barcode)
		if idx < 0 {
			return ErrUnknownProduct
		}
		if products[idx].Stock < quantity {
			return ErrInsufficientStock
		}
		products[idx].Stock -= quantity
	}
	return c.persist(products)
}

func (c *Catalog) update(barcode string, mutate func(*domain.Product) error) error {
	idx := c.indexByBarcode(barcode)
	if idx < 0 {
		return ErrUnknownProduct
	}

	products := c.copyProducts()
	if err := mutate(&products[idx]); err != nil {
		return err
	}
	return c.persist(products)
}

func (c *Catalog) indexByBarcode(barcode string) int {
	for i, product := range c.products {
		if product.Barcode == barcode {
			return i
		}
	}
	return -1
}

func (c *Catalog) copyProducts() []domain.Product {
	return append([]domain.Product(nil), c.products...)
}

func (c *Catalog) persist(products []domain.Product) error {
	if err := c.repo.SaveAll(products); err != nil {
		return err
	}
	c.products = products
	return nil
}
