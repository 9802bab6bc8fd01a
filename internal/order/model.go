package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order owns its items; items are never touched outside whole-order
// creation. Status is the only field mutated after creation.
type Order struct {
	ID              uuid.UUID
	CustomerID      *uuid.UUID
	ShippingAddress string
	BillingAddress  string
	Notes           string
	Date            time.Time
	Status          Status
	TotalAmount     decimal.Decimal
	Items           []Item
}

// Item snapshots the product price at order time, so later catalog price
// changes do not alter recorded orders.
type Item struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// PlaceRequest is the incoming order-placement payload.
type PlaceRequest struct {
	CustomerID      *uuid.UUID         `json:"customerId,omitempty"`
	ShippingAddress string             `json:"shippingAddress"`
	BillingAddress  string             `json:"billingAddress"`
	Notes           string             `json:"notes,omitempty"`
	Items           []PlaceRequestItem `json:"orderItems"`
}

type PlaceRequestItem struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// QueryFilter selects orders for listing. Unset filters match everything.
type QueryFilter struct {
	Status     *Status
	CustomerID *uuid.UUID
	PageNumber int
	PageSize   int
}

type Response struct {
	ID              uuid.UUID       `json:"id"`
	CustomerID      *uuid.UUID      `json:"customerId,omitempty"`
	ShippingAddress string          `json:"shippingAddress"`
	BillingAddress  string          `json:"billingAddress"`
	Notes           string          `json:"notes,omitempty"`
	Date            time.Time       `json:"date"`
	Status          string          `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	OrderItems      []ItemResponse  `json:"orderItems"`
}

type ItemResponse struct {
	ProductID   uuid.UUID       `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}
