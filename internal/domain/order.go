package domain

import (
	"time"

	"github.com/google/uuid"
)

// FulfillmentStatus tracks delivery progress of a placed order.
type FulfillmentStatus string

const (
	FulfillmentPending          FulfillmentStatus = "PENDING"
	FulfillmentCancelled        FulfillmentStatus = "CANCELLED"
	FulfillmentReadyForDelivery FulfillmentStatus = "READY_FOR_DELIVERY"
	FulfillmentInTransit        FulfillmentStatus = "IN_TRANSIT"
	FulfillmentDelivered        FulfillmentStatus = "DELIVERED"
)

// ParseFulfillmentStatus maps a stored value to a FulfillmentStatus.
func ParseFulfillmentStatus(value string) (FulfillmentStatus, bool) {
	switch FulfillmentStatus(value) {
	case FulfillmentPending, FulfillmentCancelled, FulfillmentReadyForDelivery, FulfillmentInTransit, FulfillmentDelivered:
		return FulfillmentStatus(value), true
	}
	return "", false
}

// fulfillmentTransitions is the full table of legal moves. DELIVERED and
// CANCELLED are terminal.
var fulfillmentTransitions = map[FulfillmentStatus][]FulfillmentStatus{
	FulfillmentPending:          {FulfillmentReadyForDelivery, FulfillmentCancelled},
	FulfillmentReadyForDelivery: {FulfillmentInTransit, FulfillmentCancelled},
	FulfillmentInTransit:        {FulfillmentDelivered},
}

// CanTransitionTo reports whether moving to next is legal from s.
func (s FulfillmentStatus) CanTransitionTo(next FulfillmentStatus) bool {
	for _, allowed := range fulfillmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentStatus tracks payment progress of a placed order.
type PaymentStatus string

const (
	PaymentPending          PaymentStatus = "PENDING"
	PaymentFailed           PaymentStatus = "FAILED"
	PaymentCompleted        PaymentStatus = "COMPLETED"
	PaymentRequestingRefund PaymentStatus = "REQUESTING_REFUND"
	PaymentRefunded         PaymentStatus = "REFUNDED"
)

// ParsePaymentStatus maps a stored value to a PaymentStatus.
func ParsePaymentStatus(value string) (PaymentStatus, bool) {
	switch PaymentStatus(value) {
	case PaymentPending, PaymentFailed, PaymentCompleted, PaymentRequestingRefund, PaymentRefunded:
		return PaymentStatus(value), true
	}
	return "", false
}

// paymentTransitions allows a refund request to be denied by moving back to
// COMPLETED.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:          {PaymentCompleted, PaymentFailed},
	PaymentCompleted:        {PaymentRequestingRefund},
	PaymentRequestingRefund: {PaymentCompleted, PaymentRefunded},
}

// CanTransitionTo reports whether moving to next is legal from s.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is the immutable record produced by converting a cart. The item
// snapshot and total cost are fixed at creation time; only the statuses and
// the delivery timestamp change afterwards, and only through the ledger.
type Order struct {
	CustomerID  uuid.UUID
	ID          int64
	OrderedAt   time.Time
	DeliveredAt time.Time // zero until the order is delivered
	TotalCost   float64
	Fulfillment FulfillmentStatus
	Payment     PaymentStatus
	Items       map[string]int
}
