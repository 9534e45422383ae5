package repository

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/storefront-service/internal/codec"
	"github.com/spec-kit/storefront-service/internal/domain"
)

// Serializer names. Composite records resolve their nested parts through the
// registry by these names, so the nested output is re-escaped as one opaque
// field of the outer record.
const (
	SerializerAccount     = "account"
	SerializerAuditEntry  = "audit_entry"
	SerializerProduct     = "product"
	SerializerQuantityMap = "quantity_map"
	SerializerCart        = "shopping_cart"
	SerializerOrder       = "order"
)

// RegisterSerializers binds every record type used by the stores into reg.
func RegisterSerializers(reg *codec.Registry) {
	reg.Register(SerializerAccount, codec.NewSerializer(encodeAccount, decodeAccount))
	reg.Register(SerializerAuditEntry, codec.NewSerializer(encodeAuditEntry, decodeAuditEntry))
	reg.Register(SerializerProduct, codec.NewSerializer(encodeProduct, decodeProduct))
	reg.Register(SerializerQuantityMap, codec.NewSerializer(encodeQuantityMap, decodeQuantityMap))
	reg.Register(SerializerCart, cartSerializer(reg))
	reg.Register(SerializerOrder, orderSerializer(reg))
}

func encodeAccount(a domain.Account) (string, error) {
	return codec.EncodeLine([]string{
		string(a.Role),
		a.ID.String(),
		a.Email,
		a.DisplayName,
		a.PasswordHash,
	}), nil
}

func decodeAccount(line string) (domain.Account, error) {
	fields, err := codec.DecodeLine(line)
	if err != nil {
		return domain.Account{}, err
	}
	if len(fields) != 5 {
		return domain.Account{}, fmt.Errorf("account: expected 5 fields, got %d", len(fields))
	}

	role, ok := domain.ParseRole(fields[0])
	if !ok {
		return domain.Account{}, fmt.Errorf("account: unknown role %q", fields[0])
	}
	id, err := uuid.Parse(fields[1])
	if err != nil {
		return domain.Account{}, fmt.Errorf("account: bad id: %w", err)
	}

	return domain.Account{
		Role:         role,
		ID:           id,
		Email:        fields[2],
		DisplayName:  fields[3],
		PasswordHash: fields[4],
	}, nil
}

func encodeAuditEntry(e domain.AuditEntry) (string, error) {
	return codec.EncodeLine([]string{
		e.AccountID.String(),
		string(e.Kind),
		strconv.FormatInt(e.OccurredAt.UnixMilli(), 10),
		e.Payload,
	}), nil
}

func decodeAuditEntry(line string) (domain.AuditEntry, error) {
	fields, err := codec.DecodeLine(line)
	if err != nil {
		return domain.AuditEntry{}, err
	}
	if len(fields) != 4 {
		return domain.AuditEntry{}, fmt.Errorf("audit entry: expected 4 fields, got %d", len(fields))
	}

	id, err := uuid.Parse(fields[0])
	if err != nil {
		return domain.AuditEntry{}, fmt.Errorf("audit entry: bad account id: %w", err)
	}
	kind, ok := domain.ParseAuditKind(fields[1])
	if !ok {
		return domain.AuditEntry{}, fmt.Errorf("audit entry: unknown kind %q", fields[1])
	}
	millis, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return domain.AuditEntry{}, fmt.Errorf("audit entry: bad timestamp: %w", err)
	}

	return domain.AuditEntry{
		AccountID:  id,
		Kind:       kind,
		OccurredAt: time.UnixMilli(millis),
		Payload:    fields[3],
	}, nil
}

func encodeProduct(p domain.Product) (string, error) {
	return codec.EncodeLine([]string{
		p.SellerID.String(),
		p.Barcode,
		p.Name,
		p.Description,
		formatFloat(p.Price),
		strconv.Itoa(p.Stock),
		formatFloat(p.Discount),
		string(p.Category),
	}), nil
}

func decodeProduct(line string) (domain.Product, error) {
	fields, err := codec.DecodeLine(line)
	if err != nil {
		return domain.Product{}, err
	}
	if len(fields) < 7 {
		return domain.Product{}, fmt.Errorf("product: expected at least 7 fields, got %d", len(fields))
	}

	sellerID, err := uuid.Parse(fields[0])
	if err != nil {
		return domain.Product{}, fmt.Errorf("product: bad seller id: %w", err)
	}
	price, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product: bad price: %w", err)
	}
	stock, err := strconv.Atoi(fields[5])
	if err != nil {
		return domain.Product{}, fmt.Errorf("product: bad stock: %w", err)
	}
	discount, err := strconv.ParseFloat(fields[6], 64)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product: bad discount: %w", err)
	}

	// Lines written before categories existed carry 7 fields.
	category := domain.CategoryUncategorized
	if len(fields) >= 8 {
		parsed, ok := domain.ParseCategory(fields[7])
		if !ok {
			return domain.Product{}, fmt.Errorf("product: unknown category %q", fields[7])
		}
		category = parsed
	}

	return domain.Product{
		SellerID:    sellerID,
		Barcode:     fields[1],
		Name:        fields[2],
		Description: fields[3],
		Price:       price,
		Stock:       stock,
		Discount:    discount,
		Category:    category,
	}, nil
}

func encodeQuantityMap(items map[string]int) (string, error) {
	barcodes := make([]string, 0, len(items))
	for barcode := range items {
		barcodes = append(barcodes, barcode)
	}
	sort.Strings(barcodes)

	entries := make([]string, 0, len(items))
	for _, barcode := range barcodes {
		entries = append(entries, codec.EncodeLine([]string{barcode, strconv.Itoa(items[barcode])}))
	}
	return codec.EncodeLine(entries), nil
}

func decodeQuantityMap(data string) (map[string]int, error) {
	entries, err := codec.DecodeLine(data)
	if err != nil {
		return nil, err
	}

	items := make(map[string]int, len(entries))
	for _, entry := range entries {
		pair, err := codec.DecodeLine(entry)
		if err != nil {
			return nil, err
		}
		if len(pair) != 2 {
			return nil, fmt.Errorf("quantity map: expected 2 fields per entry, got %d", len(pair))
		}
		quantity, err := strconv.Atoi(pair[1])
		if err != nil {
			return nil, fmt.Errorf("quantity map: bad quantity for %q: %w", pair[0], err)
		}
		items[pair[0]] = quantity
	}
	return items, nil
}

func cartSerializer(reg *codec.Registry) codec.Serializer {
	return codec.NewSerializer(
		func(c domain.Cart) (string, error) {
			quantities, err := reg.Lookup(SerializerQuantityMap)
			if err != nil {
				return "", err
			}
			nested, err := quantities.Encode(c.Items)
			if err != nil {
				return "", err
			}
			return codec.EncodeLine([]string{c.CustomerID.String(), nested}), nil
		},
		func(line string) (domain.Cart, error) {
			fields, err := codec.DecodeLine(line)
			if err != nil {
				return domain.Cart{}, err
			}
			if len(fields) != 2 {
				return domain.Cart{}, fmt.Errorf("cart: expected 2 fields, got %d", len(fields))
			}
			customerID, err := uuid.Parse(fields[0])
			if err != nil {
				return domain.Cart{}, fmt.Errorf("cart: bad customer id: %w", err)
			}

			quantities, err := reg.Lookup(SerializerQuantityMap)
			if err != nil {
				return domain.Cart{}, err
			}
			decoded, err := quantities.Decode(fields[1])
			if err != nil {
				return domain.Cart{}, fmt.Errorf("cart: %w", err)
			}

			return domain.Cart{CustomerID: customerID, Items: decoded.(map[string]int)}, nil
		},
	)
}

func orderSerializer(reg *codec.Registry) codec.Serializer {
	return codec.NewSerializer(
		func(o domain.Order) (string, error) {
			quantities, err := reg.Lookup(SerializerQuantityMap)
			if err != nil {
				return "", err
			}
			nested, err := quantities.Encode(o.Items)
			if err != nil {
				return "", err
			}

			deliveredAt := int64(-1)
			if !o.DeliveredAt.IsZero() {
				deliveredAt = o.DeliveredAt.UnixMilli()
			}

			return codec.EncodeLine([]string{
				o.CustomerID.String(),
				strconv.FormatInt(o.ID, 10),
				strconv.FormatInt(o.OrderedAt.UnixMilli(), 10),
				strconv.FormatInt(deliveredAt, 10),
				formatFloat(o.TotalCost),
				string(o.Fulfillment),
				string(o.Payment),
				nested,
			}), nil
		},
		func(line string) (domain.Order, error) {
			fields, err := codec.DecodeLine(line)
			if err != nil {
				return domain.Order{}, err
			}
			if len(fields) != 8 {
				return domain.Order{}, fmt.Errorf("order: expected 8 fields, got %d", len(fields))
			}

			customerID, err := uuid.Parse(fields[0])
			if err != nil {
				return domain.Order{}, fmt.Errorf("order: bad customer id: %w", err)
			}
			id, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				return domain.Order{}, fmt.Errorf("order: bad order id: %w", err)
			}
			orderedAtMillis, err := strconv.ParseInt(fields[2], 10, 64)
			if err != nil {
				return domain.Order{}, fmt.Errorf("order: bad order timestamp: %w", err)
			}
			deliveredAtMillis, err := strconv.ParseInt(fields[3], 10, 64)
			if err != nil {
				return domain.Order{}, fmt.Errorf("order: bad delivery timestamp: %w", err)
			}
			totalCost, err := strconv.ParseFloat(fields[4], 64)
			if err != nil {
				return domain.Order{}, fmt.Errorf("order: bad total cost: %w", err)
			}
			fulfillment, ok := domain.ParseFulfillmentStatus(fields[5])
			if !ok {
				return domain.Order{}, fmt.Errorf("order: unknown fulfillment status %q", fields[5])
			}
			payment, ok := domain.ParsePaymentStatus(fields[6])
			if !ok {
				return domain.Order{}, fmt.Errorf("order: unknown payment status %q", fields[6])
			}

			quantities, err := reg.Lookup(SerializerQuantityMap)
			if err != nil {
				return domain.Order{}, err
			}
			decoded, err := quantities.Decode(fields[7])
			if err != nil {
				return domain.Order{}, fmt.Errorf("order: %w", err)
			}

			order := domain.Order{
				CustomerID:  customerID,
				ID:          id,
				OrderedAt:   time.UnixMilli(orderedAtMillis),
				TotalCost:   totalCost,
				Fulfillment: fulfillment,
				Payment:     payment,
				Items:       decoded.(map[string]int),
			}
			if deliveredAtMillis >= 0 {
				order.DeliveredAt = time.UnixMilli(deliveredAtMillis)
			}
			return order, nil
		},
	)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
