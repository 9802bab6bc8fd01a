package order

import (
	"orderdesk-be/internal/product"

	"github.com/google/uuid"
)

// toResponse maps an order to its response DTO, resolving product display
// fields from the given map. Products missing from the map (disabled or
// removed since placement) yield empty display fields, not an error.
func toResponse(o *Order, products map[uuid.UUID]product.Product) *Response {
	items := make([]ItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		var name, description string
		if p, ok := products[item.ProductID]; ok {
			name = p.Name
			description = p.Description
		}
		items = append(items, ItemResponse{
			ProductID:   item.ProductID,
			Name:        name,
			Description: description,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		})
	}

	return &Response{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
		Notes:           o.Notes,
		Date:            o.Date,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		OrderItems:      items,
	}
}

// distinctProductIDs returns the union of product ids across orders.
func distinctProductIDs(orders []*Order) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, o := range orders {
		for _, item := range o.Items {
			if _, ok := seen[item.ProductID]; ok {
				continue
			}
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}
