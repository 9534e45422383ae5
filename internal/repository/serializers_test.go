package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront-service/internal/codec"
	"github.com/spec-kit/storefront-service/internal/domain"
)

func newTestRegistry() *codec.Registry {
	reg := codec.NewRegistry()
	RegisterSerializers(reg)
	return reg
}

func TestAccountRoundTrip(t *testing.T) {
	reg := newTestRegistry()
	s, err := reg.Lookup(SerializerAccount)
	require.NoError(t, err)

	account := domain.Account{
		Role:         domain.RoleSeller,
		ID:           uuid.New(),
		Email:        "seller@example.com",
		DisplayName:  `The "Best" Shop, Ltd.`,
		PasswordHash: `$2a$10$abc\def`,
	}

	encoded, err := s.Encode(account)
	require.NoError(t, err)

	decoded, err := s.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, account, decoded)
}

func TestAccountDecodeRejectsBadInput(t *testing.T) {
	reg := newTestRegistry()
	s, err := reg.Lookup(SerializerAccount)
	require.NoError(t, err)

	_, err = s.Decode(codec.EncodeLine([]string{"CUSTOMER", "id", "a@b", "name"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 5 fields")

	_, err = s.Decode(codec.EncodeLine([]string{"WIZARD", uuid.NewString(), "a@b", "n", "h"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}

func TestAuditEntryRoundTrip(t *testing.T) {
	reg := newTestRegistry()
	s, err := reg.Lookup(SerializerAuditEntry)
	require.NoError(t, err)

	entry := domain.AuditEntry{
		AccountID:  uuid.New(),
		Kind:       domain.AuditChangeEmail,
		OccurredAt: time.UnixMilli(1724800000123),
		Payload:    "old@example.com",
	}

	encoded, err := s.Encode(entry)
	require.NoError(t, err)

	decoded, err := s.Decode(encoded)
	require.NoError(t, err)

	got := decoded.(domain.AuditEntry)
	assert.Equal(t, entry.AccountID, got.AccountID)
	assert.Equal(t, entry.Kind, got.Kind)
	assert.Equal(t, entry.Payload, got.Payload)
	assert.True(t, entry.OccurredAt.Equal(got.OccurredAt))
}

func TestProductRoundTrip(t *testing.T) {
	reg := newTestRegistry()
	s, err := reg.Lookup(SerializerProduct)
	require.NoError(t, err)

	product := domain.Product{
		SellerID:    uuid.New(),
		Barcode:     "4006381333931",
		Name:        "Mechanical Keyboard",
		Description: "Tenkeyless, \"clicky\" switches\nUS layout",
		Price:       79.99,
		Stock:       12,
		Discount:    0.15,
		Category:    domain.CategoryTech,
	}

	encoded, err := s.Encode(product)
	require.NoError(t, err)

	decoded, err := s.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, product, decoded)
}

func TestProductDecodeLegacySevenFieldLine(t *testing.T) {
	reg := newTestRegistry()
	s, err := reg.Lookup(SerializerProduct)
	require.NoError(t, err)

	sellerID := uuid.New()
	line := codec.EncodeLine([]string{
		sellerID.String(), "B-1", "Old Product", "written before categories", "9.5", "3", "0",
	})

	decoded, err := s.Decode(line)
	require.NoError(t, err)

	product := decoded.(domain.Product)
	assert.Equal(t, domain.CategoryUncategorized, product.Category)
	assert.Equal(t, "B-1", product.Barcode)
	assert.Equal(t, 9.5, product.Price)
}

func TestQuantityMapRoundTrip(t *testing.T) {
	reg := newTestRegistry()
	s, err := reg.Lookup(SerializerQuantityMap)
	require.NoError(t, err)

	items := map[string]int{
		"plain":            3,
		`with "quotes"`:    1,
		"with, delimiter":  7,
		"with\nline break": 2,
	}

	encoded, err := s.Encode(items)
	require.NoError(t, err)

	decoded, err := s.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, items, decoded)
}

func TestQuantityMapEncodingIsDeterministic(t *testing.T) {
	reg := newTestRegistry()
	s, err := reg.Lookup(SerializerQuantityMap)
	require.NoError(t, err)

	items := map[string]int{"c": 1, "a": 2, "b": 3}

	first, err := s.Encode(items)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := s.Encode(items)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCartRoundTrip(t *testing.T) {
	reg := newTestRegistry()
	s, err := reg.Lookup(SerializerCart)
	require.NoError(t, err)

	cart := domain.Cart{
		CustomerID: uuid.New(),
		Items:      map[string]int{"A": 1, "B": 4},
	}

	encoded, err := s.Encode(cart)
	require.NoError(t, err)

	decoded, err := s.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, cart, decoded)
}

func TestOrderRoundTrip(t *testing.T) {
	reg := newTestRegistry()
	s, err := reg.Lookup(SerializerOrder)
	require.NoError(t, err)

	order := domain.Order{
		CustomerID:  uuid.New(),
		ID:          42,
		OrderedAt:   time.UnixMilli(1724800000000),
		TotalCost:   24,
		Fulfillment: domain.FulfillmentInTransit,
		Payment:     domain.PaymentCompleted,
		Items:       map[string]int{"A": 2, "B": 1},
	}

	encoded, err := s.Encode(order)
	require.NoError(t, err)

	decoded, err := s.Decode(encoded)
	require.NoError(t, err)

	got := decoded.(domain.Order)
	assert.Equal(t, order.CustomerID, got.CustomerID)
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, order.TotalCost, got.TotalCost)
	assert.Equal(t, order.Fulfillment, got.Fulfillment)
	assert.Equal(t, order.Payment, got.Payment)
	assert.Equal(t, order.Items, got.Items)
	assert.True(t, order.OrderedAt.Equal(got.OrderedAt))

	// An undelivered order stays undelivered through persistence.
	assert.True(t, got.DeliveredAt.IsZero())
}

func TestOrderRoundTripDelivered(t *testing.T) {
	reg := newTestRegistry()
	s, err := reg.Lookup(SerializerOrder)
	require.NoError(t, err)

	order := domain.Order{
		CustomerID:  uuid.New(),
		ID:          7,
		OrderedAt:   time.UnixMilli(1724800000000),
		DeliveredAt: time.UnixMilli(1724886400000),
		TotalCost:   9.99,
		Fulfillment: domain.FulfillmentDelivered,
		Payment:     domain.PaymentCompleted,
		Items:       map[string]int{"A": 1},
	}

	encoded, err := s.Encode(order)
	require.NoError(t, err)

	decoded, err := s.Decode(encoded)
	require.NoError(t, err)

	got := decoded.(domain.Order)
	assert.True(t, order.DeliveredAt.Equal(got.DeliveredAt))
}
