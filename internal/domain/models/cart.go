package models

import (
	"github.com/google/uuid"
)

type ItemKind string

const (
	ItemKindCatalog ItemKind = "catalog"
	ItemKindCustom  ItemKind = "custom"
)

type FlowerSelection struct {
	FlowerID   uuid.UUID `json:"flower_id"`
	Quantity   int       `json:"quantity"`
	Color      string    `json:"color"`
	FlowerName string    `json:"flower_name"`
}

type CustomBouquet struct {
	Name    string            `json:"name"`
	BasedOn *uuid.UUID        `json:"based_on,omitempty"`
	Flowers []FlowerSelection `json:"flowers"`
}

// CartItem is a tagged union: Kind selects between a catalog-referenced
// bouquet (BouquetID set) and an ad-hoc composition (Custom set).
type CartItem struct {
	ID       uuid.UUID `json:"id"`
	Kind     ItemKind  `json:"kind"`
	Quantity int       `json:"quantity"`
	// Price is the unit price in tiyn captured when the line was added.
	// It stays immutable on the line; display goes through EffectivePrice.
	Price     int64          `json:"price"`
	BouquetID uuid.UUID      `json:"bouquet_id,omitempty"`
	Custom    *CustomBouquet `json:"custom,omitempty"`
}

type Cart struct {
	Items  []CartItem `json:"items"`
	IsOpen bool       `json:"is_open"`
}

// Snapshot copies the aggregate so callers can walk Items after the
// cart engine's lock is released. Custom compositions are written once
// when the line is added, sharing their pointers is safe.
func (c *Cart) Snapshot() *Cart {
	return &Cart{
		Items:  append([]CartItem(nil), c.Items...),
		IsOpen: c.IsOpen,
	}
}

// EffectivePrice prefers the live price for catalog lines and falls back
// to the price stored at add time. Custom lines always keep their
// composed price.
func EffectivePrice(item CartItem, livePrices map[uuid.UUID]int64) int64 {
	if item.Kind == ItemKindCatalog {
		if price, ok := livePrices[item.BouquetID]; ok {
			return price
		}
	}
	return item.Price
}

// TotalItems counts line quantities. A custom bouquet is one purchasable
// unit per line quantity; its inner flower quantities do not contribute.
func (c *Cart) TotalItems() int {
	var total int
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

func (c *Cart) TotalPrice(livePrices map[uuid.UUID]int64) int64 {
	var total int64
	for _, item := range c.Items {
		total += EffectivePrice(item, livePrices) * int64(item.Quantity)
	}
	return total
}

// CatalogIDs returns the bouquet ids referenced by catalog lines, for
// the live price refresh.
func (c *Cart) CatalogIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Items))
	seen := make(map[uuid.UUID]struct{}, len(c.Items))
	for _, item := range c.Items {
		if item.Kind != ItemKindCatalog {
			continue
		}
		if _, ok := seen[item.BouquetID]; ok {
			continue
		}
		seen[item.BouquetID] = struct{}{}
		ids = append(ids, item.BouquetID)
	}
	return ids
}
