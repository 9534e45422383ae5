package domain

import "github.com/google/uuid"

// Category tags a product for browsing.
type Category string

const (
	CategoryUncategorized Category = "UNCATEGORIZED"
	CategoryTech          Category = "TECH"
	CategorySports        Category = "SPORTS"
	CategoryLifestyle     Category = "LIFESTYLE"
	CategoryFood          Category = "FOOD"
)

// Categories lists every category in a stable order.
func Categories() []Category {
	return []Category{CategoryUncategorized, CategoryTech, CategorySports, CategoryLifestyle, CategoryFood}
}

// ParseCategory maps a stored or user-supplied value to a Category.
func ParseCategory(value string) (Category, bool) {
	switch Category(value) {
	case CategoryUncategorized, CategoryTech, CategorySports, CategoryLifestyle, CategoryFood:
		return Category(value), true
	}
	return "", false
}

// Product is one catalog entry. The barcode is unique across the whole
// catalog regardless of owner; the seller id and barcode never change.
type Product struct {
	SellerID    uuid.UUID
	Barcode     string
	Name        string
	Description string
	Price       float64
	Stock       int
	Discount    float64
	Category    Category
}

// EffectivePrice is the sale price after applying the fractional discount.
func (p Product) EffectivePrice() float64 {
	return p.Price - p.Price*p.Discount
}
