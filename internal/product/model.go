package product

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable item with available stock. Products are never hard
// deleted; deactivation flips IsActive off.
type Product struct {
	ID            uuid.UUID
	Sku           string
	InternalCode  string
	Name          string
	Description   string
	CurrentPrice  decimal.Decimal
	StockQuantity int
	IsActive      bool
}

// Request carries catalog create/update input. StockQuantity is a pointer so
// an absent value can be rejected instead of silently read as zero.
type Request struct {
	Sku           string          `json:"sku"`
	InternalCode  string          `json:"internalCode"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	StockQuantity *int            `json:"stockQuantity"`
}

type Response struct {
	ID            uuid.UUID       `json:"id"`
	Sku           string          `json:"sku"`
	InternalCode  string          `json:"internalCode"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	StockQuantity int             `json:"stockQuantity"`
	IsActive      bool            `json:"isActive"`
}
