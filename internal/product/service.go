package product

import (
	"context"
	"strings"

	"orderdesk-be/internal/apperr"
	"orderdesk-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxSkuLen         = 15
	maxNameLen        = 60
	maxDescriptionLen = 500
)

type Service interface {
	Create(ctx context.Context, req Request) (*Response, error)
	GetAll(ctx context.Context, includeDisabled bool) ([]Response, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Response, error)
	Update(ctx context.Context, id uuid.UUID, req Request) (*Response, error)
	Disable(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req Request) (*Response, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
		zap.String("sku", req.Sku),
	)

	if err := validateRequest(req); err != nil {
		log.Warn("invalid product request", zap.Error(err))
		return nil, err
	}

	existing, err := s.repo.GetBySku(ctx, req.Sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		log.Warn("duplicate sku")
		return nil, apperr.Duplicatef("product with sku %s", req.Sku)
	}

	p := &Product{
		ID:            uuid.New(),
		Sku:           req.Sku,
		InternalCode:  req.InternalCode,
		Name:          req.Name,
		Description:   req.Description,
		CurrentPrice:  req.CurrentPrice,
		StockQuantity: *req.StockQuantity,
		IsActive:      true,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.String("product_id", p.ID.String()))

	resp := ToResponse(p)
	return &resp, nil
}

func (s *service) GetAll(ctx context.Context, includeDisabled bool) ([]Response, error) {
	products, err := s.repo.GetAll(ctx, !includeDisabled)
	if err != nil {
		return nil, err
	}
	return ToResponseList(products), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFoundf("product %s", id)
	}
	resp := ToResponse(p)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req Request) (*Response, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProduct"),
		zap.String("product_id", id.String()),
	)

	if err := validateRequest(req); err != nil {
		log.Warn("invalid product request", zap.Error(err))
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFoundf("product %s", id)
	}

	p.Sku = req.Sku
	p.InternalCode = req.InternalCode
	p.Name = req.Name
	p.Description = req.Description
	p.CurrentPrice = req.CurrentPrice
	p.StockQuantity = *req.StockQuantity

	if err := s.repo.Update(ctx, p); err != nil {
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}

	resp := ToResponse(p)
	return &resp, nil
}

func (s *service) Disable(ctx context.Context, id uuid.UUID) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DisableProduct"),
		zap.String("product_id", id.String()),
	)

	if err := s.repo.Disable(ctx, id); err != nil {
		log.Warn("failed to disable product", zap.Error(err))
		return err
	}

	log.Info("product disabled")
	return nil
}

func validateRequest(req Request) error {
	sku := strings.TrimSpace(req.Sku)
	name := strings.TrimSpace(req.Name)

	switch {
	case sku == "":
		return apperr.Validationf("sku is required")
	case len(sku) > maxSkuLen:
		return apperr.Validationf("sku must be at most %d characters", maxSkuLen)
	case name == "":
		return apperr.Validationf("name is required")
	case len(name) > maxNameLen:
		return apperr.Validationf("name must be at most %d characters", maxNameLen)
	case len(req.Description) > maxDescriptionLen:
		return apperr.Validationf("description must be at most %d characters", maxDescriptionLen)
	case req.CurrentPrice.IsNegative():
		return apperr.Validationf("current price cannot be negative")
	case req.StockQuantity == nil:
		return apperr.Validationf("stock quantity is required")
	case *req.StockQuantity < 0:
		return apperr.Validationf("stock quantity cannot be negative")
	}
	return nil
}
