package dto

import (
	"time"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// CartItemRequest payload for adding or removing cart quantities.
type CartItemRequest struct {
	Barcode  string `json:"barcode"`
	Quantity int    `json:"quantity"`
}

// CartResponse is the public view of a live cart.
type CartResponse struct {
	CustomerID string         `json:"customer_id"`
	Items      map[string]int `json:"items"`
	ItemCount  int            `json:"item_count"`
}

// NewCartResponse maps a domain cart.
func NewCartResponse(cart domain.Cart) CartResponse {
	return CartResponse{
		CustomerID: cart.CustomerID.String(),
		Items:      cart.Items,
		ItemCount:  cart.ItemCount(),
	}
}

// StatusUpdateRequest payload for fulfillment or payment transitions.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// OrderResponse is the public view of a placed order.
type OrderResponse struct {
	ID          int64          `json:"id"`
	CustomerID  string         `json:"customer_id"`
	OrderedAt   time.Time      `json:"ordered_at"`
	DeliveredAt *time.Time     `json:"delivered_at,omitempty"`
	TotalCost   float64        `json:"total_cost"`
	Fulfillment string         `json:"fulfillment_status"`
	Payment     string         `json:"payment_status"`
	Items       map[string]int `json:"items"`
}

// NewOrderResponse maps a domain order.
func NewOrderResponse(order domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:          order.ID,
		CustomerID:  order.CustomerID.String(),
		OrderedAt:   order.OrderedAt,
		TotalCost:   order.TotalCost,
		Fulfillment: string(order.Fulfillment),
		Payment:     string(order.Payment),
		Items:       order.Items,
	}
	if !order.DeliveredAt.IsZero() {
		deliveredAt := order.DeliveredAt
		resp.DeliveredAt = &deliveredAt
	}
	return resp
}

// NewOrderResponses maps a slice of domain orders.
func NewOrderResponses(orders []domain.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, NewOrderResponse(order))
	}
	return responses
}
