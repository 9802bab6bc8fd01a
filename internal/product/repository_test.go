package product

import (
	"context"
	"errors"
	"testing"

	"orderdesk-be/internal/apperr"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productTestColumns = []string{"id", "sku", "internal_code", "name", "description",
	"current_price", "stock_quantity", "is_active"}

func TestRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		p := &Product{
			ID:            uuid.New(),
			Sku:           "SKU-001",
			Name:          "Widget",
			CurrentPrice:  decimal.RequireFromString("9.99"),
			StockQuantity: 10,
			IsActive:      true,
		}

		mock.ExpectExec(`INSERT INTO products`).
			WithArgs(p.ID, p.Sku, p.InternalCode, p.Name, p.Description,
				p.CurrentPrice, p.StockQuantity, p.IsActive).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Create(context.Background(), p)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateSku", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		p := &Product{ID: uuid.New(), Sku: "SKU-001"}

		mock.ExpectExec(`INSERT INTO products`).
			WillReturnError(&pq.Error{Code: "23505"})

		err = repo.Create(context.Background(), p)
		assert.ErrorIs(t, err, apperr.ErrDuplicate)
	})
}

func TestRepository_GetAll(t *testing.T) {
	t.Run("OnlyActive", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT .* FROM products WHERE is_active ORDER BY name`).
			WillReturnRows(sqlmock.NewRows(productTestColumns).
				AddRow(uuid.New(), "SKU-001", "", "Widget", "", "9.99", 10, true))

		products, err := repo.GetAll(context.Background(), true)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Widget", products[0].Name)
	})

	t.Run("All", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT .* FROM products ORDER BY name`).
			WillReturnRows(sqlmock.NewRows(productTestColumns).
				AddRow(uuid.New(), "SKU-001", "", "Widget", "", "9.99", 10, true).
				AddRow(uuid.New(), "SKU-002", "", "Gone", "", "1.00", 0, false))

		products, err := repo.GetAll(context.Background(), false)
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})
}

func TestRepository_GetByID_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM products WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(productTestColumns))

	p, err := repo.GetByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestRepository_GetByIDs(t *testing.T) {
	t.Run("EmptyInputSkipsQuery", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		result, err := repo.GetByIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("KeyedByID", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		id1 := uuid.New()
		id2 := uuid.New()

		mock.ExpectQuery(`SELECT .* FROM products WHERE id = ANY\(\$1\)`).
			WillReturnRows(sqlmock.NewRows(productTestColumns).
				AddRow(id1, "SKU-001", "", "One", "", "1.00", 5, true))

		result, err := repo.GetByIDs(context.Background(), []uuid.UUID{id1, id2})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "One", result[id1].Name)
		_, ok := result[id2]
		assert.False(t, ok)
	})
}

func TestRepository_Update(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		p := &Product{ID: uuid.New(), Sku: "SKU-001", Name: "Widget"}

		mock.ExpectExec(`UPDATE products`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Update(context.Background(), p)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestRepository_Disable(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		id := uuid.New()

		mock.ExpectExec(`UPDATE products SET is_active = FALSE WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Disable(context.Background(), id)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		id := uuid.New()

		mock.ExpectExec(`UPDATE products SET is_active = FALSE WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Disable(context.Background(), id)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("DBError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		mock.ExpectExec(`UPDATE products SET is_active = FALSE`).
			WillReturnError(errors.New("db error"))

		err = repo.Disable(context.Background(), uuid.New())
		assert.ErrorIs(t, err, apperr.ErrUnavailable)
	})
}
