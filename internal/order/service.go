package order

import (
	"context"
	"time"

	"orderdesk-be/internal/apperr"
	"orderdesk-be/internal/customer"
	"orderdesk-be/internal/logger"
	"orderdesk-be/internal/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type Service interface {
	PlaceOrder(ctx context.Context, req PlaceRequest) (*Response, error)
	GetOrders(ctx context.Context, filter QueryFilter) ([]*Response, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*Response, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, newStatusText string) (*Response, error)
}

type service struct {
	repo         Repository
	productRepo  product.Repository
	customerRepo customer.Repository
	loc          *time.Location
}

// NewService wires the order workflow. loc is the zone used to stamp order
// creation dates.
func NewService(repo Repository, productRepo product.Repository, customerRepo customer.Repository, loc *time.Location) Service {
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		repo:         repo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		loc:          loc,
	}
}

func (s *service) PlaceOrder(ctx context.Context, req PlaceRequest) (*Response, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.Int("item_count", len(req.Items)),
	)

	// 1. Structural validation, before any store access.
	if err := validatePlaceRequest(req); err != nil {
		log.Warn("invalid order request", zap.Error(err))
		return nil, err
	}

	if req.CustomerID != nil {
		exists, err := s.customerRepo.Exists(ctx, *req.CustomerID)
		if err != nil {
			return nil, err
		}
		if !exists {
			log.Warn("unknown customer", zap.String("customer_id", req.CustomerID.String()))
			return nil, apperr.NotFoundf("customer %s", *req.CustomerID)
		}
	}

	// 2. Every referenced product must exist.
	productIDs := requestProductIDs(req)
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	if len(products) != len(productIDs) {
		log.Warn("order references unknown products")
		return nil, apperr.NotFoundf("one or more products do not exist")
	}

	// 3. Validate all lines before mutating anything, so a failing line never
	// leaves earlier lines decremented.
	requested := make(map[uuid.UUID]int, len(productIDs))
	for _, item := range req.Items {
		requested[item.ProductID] += item.Quantity
	}
	for id, qty := range requested {
		p := products[id]
		if qty > p.StockQuantity {
			log.Warn("insufficient stock",
				zap.String("product_id", id.String()),
				zap.Int("available", p.StockQuantity),
				zap.Int("requested", qty),
			)
			return nil, &apperr.InsufficientStockError{
				ProductID: id,
				Available: p.StockQuantity,
				Requested: qty,
			}
		}
	}

	// 4. Assembly: snapshot unit prices, derive subtotals and the total.
	orderID := uuid.New()
	items := make([]Item, 0, len(req.Items))
	total := decimal.Zero
	for _, line := range req.Items {
		p := products[line.ProductID]
		subtotal := p.CurrentPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(subtotal)
		items = append(items, Item{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: p.CurrentPrice,
			Subtotal:  subtotal,
		})
	}

	o := &Order{
		ID:              orderID,
		CustomerID:      req.CustomerID,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Notes:           req.Notes,
		Date:            time.Now().In(s.loc),
		Status:          StatusPending,
		TotalAmount:     total,
		Items:           items,
	}

	// 5. Reservation and persistence as one unit.
	if err := s.repo.CreateOrderTx(ctx, o); err != nil {
		log.Error("failed to persist order", zap.Error(err))
		return nil, err
	}

	log.Info("order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("total", o.TotalAmount.String()),
	)

	return toResponse(o, products), nil
}

func (s *service) GetOrders(ctx context.Context, filter QueryFilter) ([]*Response, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetOrders"),
	)

	if filter.PageNumber <= 0 {
		filter.PageNumber = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = defaultPageSize
	} else if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}

	orders, err := s.repo.FetchOrders(ctx, filter)
	if err != nil {
		log.Error("failed to fetch orders", zap.Error(err))
		return nil, err
	}

	responses := make([]*Response, 0, len(orders))
	if len(orders) == 0 {
		return responses, nil
	}

	products, err := s.productRepo.GetByIDs(ctx, distinctProductIDs(orders))
	if err != nil {
		return nil, err
	}

	for _, o := range orders {
		responses = append(responses, toResponse(o, products))
	}

	log.Debug("orders fetched",
		zap.Int("count", len(responses)),
		zap.Int("page", filter.PageNumber),
		zap.Int("page_size", filter.PageSize),
	)

	return responses, nil
}

func (s *service) GetOrderByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFoundf("order %s", id)
	}

	products, err := s.productRepo.GetByIDs(ctx, distinctProductIDs([]*Order{o}))
	if err != nil {
		return nil, err
	}

	return toResponse(o, products), nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, newStatusText string) (*Response, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", id.String()),
		zap.String("new_status", newStatusText),
	)

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		log.Warn("order not found")
		return nil, apperr.NotFoundf("order %s", id)
	}

	newStatus, err := ParseStatus(newStatusText)
	if err != nil {
		log.Warn("invalid status text", zap.Error(err))
		return nil, err
	}

	if o.Status != newStatus {
		if err := s.repo.UpdateStatus(ctx, id, o.Status, newStatus); err != nil {
			log.Error("failed to update order status", zap.Error(err))
			return nil, err
		}
		o.Status = newStatus
		log.Info("order status updated")
	} else {
		log.Debug("order already in requested status, nothing to do")
	}

	products, err := s.productRepo.GetByIDs(ctx, distinctProductIDs([]*Order{o}))
	if err != nil {
		return nil, err
	}

	return toResponse(o, products), nil
}

func requestProductIDs(req PlaceRequest) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(req.Items))
	var ids []uuid.UUID
	for _, item := range req.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}
