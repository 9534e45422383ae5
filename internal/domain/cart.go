package domain

import "github.com/google/uuid"

// Cart holds the live barcode → quantity selection for one customer.
// Quantities are always positive; an entry that drops to zero is removed
// rather than stored.
type Cart struct {
	CustomerID uuid.UUID
	Items      map[string]int
}

// NewCart returns an empty cart for the customer.
func NewCart(customerID uuid.UUID) Cart {
	return Cart{CustomerID: customerID, Items: make(map[string]int)}
}

// Snapshot copies the item map by value. The copy never aliases the live
// cart, so later cart mutation cannot reach into a placed order.
func (c Cart) Snapshot() map[string]int {
	items := make(map[string]int, len(c.Items))
	for barcode, quantity := range c.Items {
		items[barcode] = quantity
	}
	return items
}

// ItemCount sums the quantities across all entries.
func (c Cart) ItemCount() int {
	count := 0
	for _, quantity := range c.Items {
		count += quantity
	}
	return count
}
