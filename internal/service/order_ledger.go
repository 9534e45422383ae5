package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/repository"
)

// OrderLedger manages the live shopping carts and the historical order
// sequence. Order ids are ledger-wide and monotonic; the counter is recovered
// at load time as the highest id seen across all persisted orders.
type OrderLedger struct {
	carts       []domain.Cart
	history     map[uuid.UUID][]domain.Order
	lastOrderID int64

	cartRepo   repository.CartRepository
	orderRepo  repository.OrderRepository
	catalog    *Catalog
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// LedgerDependencies encapsulates requirements for the order ledger.
type LedgerDependencies struct {
	CartRepo   repository.CartRepository
	OrderRepo  repository.OrderRepository
	Catalog    *Catalog
	Dispatcher events.Dispatcher
}

// NewOrderLedger builds the ledger and loads carts and order history.
func NewOrderLedger(deps LedgerDependencies, logger *zap.Logger) (*OrderLedger, error) {
	l := &OrderLedger{
		cartRepo:   deps.CartRepo,
		orderRepo:  deps.OrderRepo,
		catalog:    deps.Catalog,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
	if err := l.Load(); err != nil {
		return nil, err
	}
	return l, nil
}

// Load clears in-memory state, re-reads both backing files and recovers the
// order id counter.
func (l *OrderLedger) Load() error {
	carts, err := l.cartRepo.LoadAll()
	if err != nil {
		return err
	}
	history, err := l.orderRepo.LoadAll()
	if err != nil {
		return err
	}

	var lastOrderID int64
	for _, orders := range history {
		for _, order := range orders {
			if order.ID > lastOrderID {
				lastOrderID = order.ID
			}
		}
	}

	l.carts = carts
	l.history = history
	l.lastOrderID = lastOrderID
	return nil
}

// Cart returns a copy of the customer's cart, creating an empty one on first
// access. The lazily created cart is not persisted until its first mutation.
func (l *OrderLedger) Cart(customerID uuid.UUID) domain.Cart {
	idx := l.ensureCart(customerID)
	cart := l.carts[idx]
	return domain.Cart{CustomerID: cart.CustomerID, Items: cart.Snapshot()}
}

// CartItemCount sums the quantities in the customer's cart.
func (l *OrderLedger) CartItemCount(customerID uuid.UUID) int {
	idx := l.ensureCart(customerID)
	return l.carts[idx].ItemCount()
}

// AddToCart adds quantity of the product to the live cart.
func (l *OrderLedger) AddToCart(customerID uuid.UUID, barcode string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if _, exists := l.catalog.GetByBarcode(barcode); !exists {
		return ErrUnknownProduct
	}

	return l.mutateCart(customerID, func(items map[string]int) {
		items[barcode] += quantity
	})
}

// RemoveFromCart subtracts quantity from the entry. An entry that drops to
// zero or below is removed rather than stored as zero.
func (l *OrderLedger) RemoveFromCart(customerID uuid.UUID, barcode string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	return l.mutateCart(customerID, func(items map[string]int) {
		remaining := items[barcode] - quantity
		if remaining <= 0 {
			delete(items, barcode)
		} else {
			items[barcode] = remaining
		}
	})
}

// PlaceOrder converts the customer's cart into an immutable order. The total
// is computed from the catalog's current effective prices; later price
// changes never retroactively affect the order. The order file is written
// before the cart file so a crash in between cannot lose a paid-for order.
func (l *OrderLedger) PlaceOrder(customerID uuid.UUID) (domain.Order, error) {
	idx := l.ensureCart(customerID)
	cart := l.carts[idx]
	if len(cart.Items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	snapshot := cart.Snapshot()

	// Validate everything before mutating anything.
	totalCost := 0.0
	for barcode, quantity := range snapshot {
		product, exists := l.catalog.GetByBarcode(barcode)
		if !exists {
			return domain.Order{}, ErrUnknownProduct
		}
		if product.Stock < quantity {
			return domain.Order{}, ErrInsufficientStock
		}
		totalCost += product.EffectivePrice() * float64(quantity)
	}

	order := domain.Order{
		CustomerID:  customerID,
		ID:          l.lastOrderID + 1,
		OrderedAt:   time.Now(),
		TotalCost:   totalCost,
		Fulfillment: domain.FulfillmentPending,
		Payment:     domain.PaymentPending,
		Items:       snapshot,
	}

	history := l.copyHistory()
	history[customerID] = append(history[customerID], order)
	if err := l.orderRepo.SaveAll(history); err != nil {
		return domain.Order{}, err
	}
	l.history = history
	l.lastOrderID = order.ID

	carts := l.copyCarts()
	carts[idx].Items = make(map[string]int)
	if err := l.cartRepo.SaveAll(carts); err != nil {
		return domain.Order{}, err
	}
	l.carts = carts

	if err := l.catalog.DeductStock(snapshot); err != nil {
		return domain.Order{}, err
	}

	l.logger.Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.String("customer_id", customerID.String()),
		zap.Float64("total_cost", order.TotalCost))
	l.publish(events.EventOrderPlaced, order, events.OrderPlacedPayload{
		TotalCost: order.TotalCost,
		ItemCount: len(order.Items),
	})

	return order, nil
}

// OrderHistory returns a copy of the customer's orders in placement order.
func (l *OrderLedger) OrderHistory(customerID uuid.UUID) []domain.Order {
	return append([]domain.Order(nil), l.history[customerID]...)
}

// AllOrders returns every order across all customers.
func (l *OrderLedger) AllOrders() []domain.Order {
	var orders []domain.Order
	for _, customerOrders := range l.history {
		orders = append(orders, customerOrders...)
	}
	return orders
}

// ProductsForSeller filters an order's snapshot down to the items owned by
// the given seller.
func (l *OrderLedger) ProductsForSeller(sellerID uuid.UUID, order domain.Order) map[string]int {
	items := make(map[string]int)
	for barcode, quantity := range order.Items {
		product, exists := l.catalog.GetByBarcode(barcode)
		if exists && product.SellerID == sellerID {
			items[barcode] = quantity
		}
	}
	return items
}

// OrdersWithSeller returns every order containing at least one of the
// seller's products.
func (l *OrderLedger) OrdersWithSeller(sellerID uuid.UUID) []domain.Order {
	var orders []domain.Order
	for _, customerOrders := range l.history {
		for _, order := range customerOrders {
			if len(l.ProductsForSeller(sellerID, order)) > 0 {
				orders = append(orders, order)
			}
		}
	}
	return orders
}

// GetOrder scans the whole ledger for the order with the given id.
func (l *OrderLedger) GetOrder(orderID int64) (domain.Order, bool) {
	customerID, idx := l.locateOrder(orderID)
	if idx < 0 {
		return domain.Order{}, false
	}
	return l.history[customerID][idx], true
}

// SetFulfillmentStatus moves the order through the fulfillment state machine.
// Transitions outside the table are rejected. Reaching DELIVERED records the
// delivery timestamp.
func (l *OrderLedger) SetFulfillmentStatus(orderID int64, next domain.FulfillmentStatus) error {
	return l.updateOrder(orderID, func(order *domain.Order) error {
		if !order.Fulfillment.CanTransitionTo(next) {
			return ErrInvalidTransition
		}
		order.Fulfillment = next
		if next == domain.FulfillmentDelivered {
			order.DeliveredAt = time.Now()
		}
		l.publish(events.EventOrderStatusChanged, *order, events.OrderStatusChangedPayload{
			Status: string(next),
		})
		return nil
	})
}

// SetPaymentStatus moves the order through the payment state machine.
func (l *OrderLedger) SetPaymentStatus(orderID int64, next domain.PaymentStatus) error {
	return l.updateOrder(orderID, func(order *domain.Order) error {
		if !order.Payment.CanTransitionTo(next) {
			return ErrInvalidTransition
		}
		order.Payment = next
		l.publish(events.EventPaymentStatusChanged, *order, events.OrderStatusChangedPayload{
			Status: string(next),
		})
		return nil
	})
}

func (l *OrderLedger) updateOrder(orderID int64, mutate func(*domain.Order) error) error {
	customerID, idx := l.locateOrder(orderID)
	if idx < 0 {
		return ErrUnknownOrder
	}

	history := l.copyHistory()
	if err := mutate(&history[customerID][idx]); err != nil {
		return err
	}
	if err := l.orderRepo.SaveAll(history); err != nil {
		return err
	}
	l.history = history
	return nil
}

func (l *OrderLedger) locateOrder(orderID int64) (uuid.UUID, int) {
	for customerID, orders := range l.history {
		for i, order := range orders {
			if order.ID == orderID {
				return customerID, i
			}
		}
	}
	return uuid.UUID{}, -1
}

func (l *OrderLedger) ensureCart(customerID uuid.UUID) int {
	for i, cart := range l.carts {
		if cart.CustomerID == customerID {
			return i
		}
	}
	l.carts = append(l.carts, domain.NewCart(customerID))
	return len(l.carts) - 1
}

func (l *OrderLedger) mutateCart(customerID uuid.UUID, mutate func(map[string]int)) error {
	idx := l.ensureCart(customerID)

	carts := l.copyCarts()
	items := carts[idx].Snapshot()
	mutate(items)
	carts[idx].Items = items

	if err := l.cartRepo.SaveAll(carts); err != nil {
		return err
	}
	l.carts = carts
	return nil
}

func (l *OrderLedger) copyCarts() []domain.Cart {
	return append([]domain.Cart(nil), l.carts...)
}

func (l *OrderLedger) copyHistory() map[uuid.UUID][]domain.Order {
	history := make(map[uuid.UUID][]domain.Order, len(l.history))
	for customerID, orders := range l.history {
		history[customerID] = append([]domain.Order(nil), orders...)
	}
	return history
}

func (l *OrderLedger) publish(eventType events.EventType, order domain.Order, payload any) {
	if l.dispatcher == nil {
		return
	}
	_ = l.dispatcher.Publish(context.Background(), events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		OrderID:   order.ID,
		AccountID: order.CustomerID.String(),
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
