package product

import (
	"context"
	"strings"
	"testing"

	"orderdesk-be/internal/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) GetAll(ctx context.Context, onlyActive bool) ([]Product, error) {
	args := m.Called(ctx, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) GetBySku(ctx context.Context, sku string) (*Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]Product), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) Disable(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func intPtr(v int) *int { return &v }

func validRequest() Request {
	return Request{
		Sku:           "SKU-001",
		InternalCode:  "INT-001",
		Name:          "Widget",
		Description:   "A widget",
		CurrentPrice:  decimal.RequireFromString("9.99"),
		StockQuantity: intPtr(10),
	}
}

func TestService_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetBySku", mock.Anything, "SKU-001").Return(nil, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(p *Product) bool {
			return p.Sku == "SKU-001" && p.IsActive && p.StockQuantity == 10
		})).Return(nil)

		resp, err := svc.Create(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, "SKU-001", resp.Sku)
		assert.True(t, resp.IsActive)
		repo.AssertExpectations(t)
	})

	t.Run("DuplicateSku", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		existing := Product{ID: uuid.New(), Sku: "SKU-001"}
		repo.On("GetBySku", mock.Anything, "SKU-001").Return(&existing, nil)

		_, err := svc.Create(context.Background(), validRequest())
		assert.ErrorIs(t, err, apperr.ErrDuplicate)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"MissingSku", func(r *Request) { r.Sku = "" }},
		{"SkuTooLong", func(r *Request) { r.Sku = strings.Repeat("X", maxSkuLen+1) }},
		{"MissingName", func(r *Request) { r.Name = "" }},
		{"NameTooLong", func(r *Request) { r.Name = strings.Repeat("X", maxNameLen+1) }},
		{"DescriptionTooLong", func(r *Request) { r.Description = strings.Repeat("X", maxDescriptionLen+1) }},
		{"NegativePrice", func(r *Request) { r.CurrentPrice = decimal.RequireFromString("-1") }},
		{"MissingStock", func(r *Request) { r.StockQuantity = nil }},
		{"NegativeStock", func(r *Request) { r.StockQuantity = intPtr(-5) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := NewService(repo)

			req := validRequest()
			tc.mutate(&req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, apperr.ErrValidation)
			repo.AssertNotCalled(t, "GetBySku", mock.Anything, mock.Anything)
		})
	}
}

func TestService_GetAll(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	products := []Product{
		{ID: uuid.New(), Sku: "A", Name: "Active", IsActive: true},
	}

	// includeDisabled inverts into the repository's onlyActive flag.
	repo.On("GetAll", mock.Anything, true).Return(products, nil)

	responses, err := svc.GetAll(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "A", responses[0].Sku)
	repo.AssertExpectations(t)
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		id := uuid.New()
		existing := Product{ID: id, Sku: "OLD", Name: "Old", StockQuantity: 1, IsActive: true}
		repo.On("GetByID", mock.Anything, id).Return(&existing, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(p *Product) bool {
			return p.ID == id && p.Sku == "SKU-001" && p.StockQuantity == 10
		})).Return(nil)

		resp, err := svc.Update(context.Background(), id, validRequest())
		require.NoError(t, err)
		assert.Equal(t, "SKU-001", resp.Sku)
		repo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		id := uuid.New()
		repo.On("GetByID", mock.Anything, id).Return(nil, nil)

		_, err := svc.Update(context.Background(), id, validRequest())
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestService_Disable(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	id := uuid.New()
	repo.On("Disable", mock.Anything, id).Return(nil)

	err := svc.Disable(context.Background(), id)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
