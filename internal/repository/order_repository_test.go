package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront-service/internal/domain"
)

func TestOrderRepositoryMissingFile(t *testing.T) {
	repo := NewOrderRepository(t.TempDir(), newTestRegistry())

	history, err := repo.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestOrderRepositoryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo := NewOrderRepository(dir, newTestRegistry())

	alice := uuid.New()
	bob := uuid.New()
	history := map[uuid.UUID][]domain.Order{
		alice: {
			{
				CustomerID:  alice,
				ID:          1,
				OrderedAt:   time.UnixMilli(1724800000000),
				TotalCost:   24,
				Fulfillment: domain.FulfillmentPending,
				Payment:     domain.PaymentPending,
				Items:       map[string]int{"A": 2, "B": 1},
			},
			{
				CustomerID:  alice,
				ID:          3,
				OrderedAt:   time.UnixMilli(1724800100000),
				TotalCost:   5,
				Fulfillment: domain.FulfillmentReadyForDelivery,
				Payment:     domain.PaymentCompleted,
				Items:       map[string]int{"B": 1},
			},
		},
		bob: {
			{
				CustomerID:  bob,
				ID:          2,
				OrderedAt:   time.UnixMilli(1724800050000),
				TotalCost:   10,
				Fulfillment: domain.FulfillmentPending,
				Payment:     domain.PaymentPending,
				Items:       map[string]int{"A": 1},
			},
		},
	}

	require.NoError(t, repo.SaveAll(history))

	loaded, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	// Per-customer order sequence survives persistence in placement order.
	require.Len(t, loaded[alice], 2)
	assert.Equal(t, int64(1), loaded[alice][0].ID)
	assert.Equal(t, int64(3), loaded[alice][1].ID)
	assert.Equal(t, map[string]int{"A": 2, "B": 1}, loaded[alice][0].Items)

	require.Len(t, loaded[bob], 1)
	assert.Equal(t, int64(2), loaded[bob][0].ID)
}

func TestOrderRepositorySaveIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	repo := NewOrderRepository(dir, newTestRegistry())
	path := filepath.Join(dir, "customer_orders.txt")

	history := map[uuid.UUID][]domain.Order{}
	for i := 0; i < 5; i++ {
		customerID := uuid.New()
		history[customerID] = []domain.Order{{
			CustomerID:  customerID,
			ID:          int64(i + 1),
			OrderedAt:   time.UnixMilli(1724800000000),
			Fulfillment: domain.FulfillmentPending,
			Payment:     domain.PaymentPending,
			Items:       map[string]int{"A": 1},
		}}
	}

	require.NoError(t, repo.SaveAll(history))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, repo.SaveAll(history))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestRoleScopedFileNames(t *testing.T) {
	dir := t.TempDir()
	reg := newTestRegistry()

	accounts := NewAccountRepository(dir, domain.RoleSeller, reg)
	require.NoError(t, accounts.SaveAll(nil))

	audit := NewAuditRepository(dir, domain.RoleAdministrator, reg)
	require.NoError(t, audit.SaveAll(nil))

	_, err := os.Stat(filepath.Join(dir, "seller_accounts.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "administrator_audit_log.txt"))
	assert.NoError(t, err)
}
