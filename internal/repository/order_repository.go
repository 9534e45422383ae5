package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/storefront-service/internal/codec"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/flatfile"
)

// OrderRepository persists the full order history keyed by customer. Each
// file line holds one customer id plus a nested list field whose segments are
// complete Order serializer outputs.
type OrderRepository interface {
	LoadAll() (map[uuid.UUID][]domain.Order, error)
	SaveAll(history map[uuid.UUID][]domain.Order) error
}

type orderRepository struct {
	path     string
	registry *codec.Registry
}

// NewOrderRepository returns a flat-file-backed implementation.
func NewOrderRepository(dataDir string, reg *codec.Registry) OrderRepository {
	return &orderRepository{path: filepath.Join(dataDir, "customer_orders.txt"), registry: reg}
}

func (r *orderRepository) LoadAll() (map[uuid.UUID][]domain.Order, error) {
	serializer, err := r.registry.Lookup(SerializerOrder)
	if err != nil {
		return nil, err
	}

	history := make(map[uuid.UUID][]domain.Order)

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return history, nil
		}
		return nil, fmt.Errorf("orders: read %s: %w", r.path, err)
	}

	for i, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		fields, err := codec.DecodeLine(line)
		if err != nil {
			return nil, fmt.Errorf("orders: line %d: %w", i+1, err)
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("orders: line %d: expected 2 fields, got %d", i+1, len(fields))
		}
		customerID, err := uuid.Parse(fields[0])
		if err != nil {
			return nil, fmt.Errorf("orders: line %d: bad customer id: %w", i+1, err)
		}
		encodedOrders, err := codec.DecodeLine(fields[1])
		if err != nil {
			return nil, fmt.Errorf("orders: line %d: %w", i+1, err)
		}

		for _, encoded := range encodedOrders {
			decoded, err := serializer.Decode(encoded)
			if err != nil {
				return nil, fmt.Errorf("orders: line %d: %w", i+1, err)
			}
			history[customerID] = append(history[customerID], decoded.(domain.Order))
		}
	}

	return history, nil
}

func (r *orderRepository) SaveAll(history map[uuid.UUID][]domain.Order) error {
	serializer, err := r.registry.Lookup(SerializerOrder)
	if err != nil {
		return err
	}

	// Sort customers so repeated saves of the same history produce identical
	// file contents.
	customers := make([]uuid.UUID, 0, len(history))
	for customerID := range history {
		customers = append(customers, customerID)
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].String() < customers[j].String()
	})

	var b strings.Builder
	for _, customerID := range customers {
		orders := history[customerID]
		encodedOrders := make([]string, 0, len(orders))
		for _, order := range orders {
			encoded, err := serializer.Encode(order)
			if err != nil {
				return err
			}
			encodedOrders = append(encodedOrders, encoded)
		}

		b.WriteString(codec.EncodeLine([]string{customerID.String(), codec.EncodeLine(encodedOrders)}))
		b.WriteByte('\n')
	}

	return flatfile.WriteFileAtomic(r.path, []byte(b.String()))
}
