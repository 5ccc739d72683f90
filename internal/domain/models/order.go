package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus int

const (
	UndefinedStatus OrderStatus = iota
	OrderStatusCreated
	OrderStatusPaid
	OrderStatusDelivered
	OrderStatusCanceled
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusCreated:
		return "created"
	case OrderStatusPaid:
		return "paid"
	case OrderStatusDelivered:
		return "delivered"
	case OrderStatusCanceled:
		return "canceled"
	default:
		return "undefined"
	}
}

func OrderStatusFromString(v string) (OrderStatus, bool) {
	switch v {
	case "created":
		return OrderStatusCreated, true
	case "paid":
		return OrderStatusPaid, true
	case "delivered":
		return OrderStatusDelivered, true
	case "canceled":
		return OrderStatusCanceled, true
	default:
		return UndefinedStatus, false
	}
}

type CustomerInfo struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,min=6"`
	Address string `json:"address" validate:"required,min=5"`
	Comment string `json:"comment" validate:"max=500"`
}

type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderUUID uuid.UUID `json:"order_uuid"`
	Kind      ItemKind  `json:"kind"`
	BouquetID uuid.UUID `json:"bouquet_id,omitempty"`
	Title     string    `json:"title"`
	Quantity  int       `json:"quantity"`
	// Price is the effective unit price in tiyn at submission time.
	Price       int64             `json:"price"`
	Composition []FlowerSelection `json:"composition,omitempty"`
}

type Order struct {
	OrderUUID  uuid.UUID    `json:"order_uuid"`
	Customer   CustomerInfo `json:"customer"`
	Items      []OrderItem  `json:"items"`
	TotalPrice int64        `json:"total_price"`
	Locale     Locale       `json:"locale"`
	Status     OrderStatus  `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Event is what the async broker producer accepts.
type Event interface {
	UUID() string
	EventType() string
}

type CatalogChangedEvent struct {
	EntityUUID uuid.UUID `json:"entity_uuid"`
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
}

func (e *CatalogChangedEvent) UUID() string {
	return e.EntityUUID.String()
}

func (e *CatalogChangedEvent) EventType() string {
	return "catalog." + e.Entity + "." + e.Action
}
