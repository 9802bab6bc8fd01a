package product

func ToResponse(p *Product) Response {
	return Response{
		ID:            p.ID,
		Sku:           p.Sku,
		InternalCode:  p.InternalCode,
		Name:          p.Name,
		Description:   p.Description,
		CurrentPrice:  p.CurrentPrice,
		StockQuantity: p.StockQuantity,
		IsActive:      p.IsActive,
	}
}

func ToResponseList(products []Product) []Response {
	out := make([]Response, 0, len(products))
	for i := range products {
		out = append(out, ToResponse(&products[i]))
	}
	return out
}
