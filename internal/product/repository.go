package product

import (
	"context"
	"database/sql"
	"errors"

	"orderdesk-be/internal/apperr"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetAll(ctx context.Context, onlyActive bool) ([]Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	GetBySku(ctx context.Context, sku string) (*Product, error)
	// GetByIDs returns the products matching ids keyed by id. Missing ids are
	// simply absent from the map.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Product, error)
	Update(ctx context.Context, p *Product) error
	Disable(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, sku, internal_code, name, description, current_price, stock_quantity, is_active`

func (r *repository) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, sku, internal_code, name, description, current_price, stock_quantity, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		p.ID, p.Sku, p.InternalCode, p.Name, p.Description,
		p.CurrentPrice, p.StockQuantity, p.IsActive,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return apperr.Duplicatef("product with sku %s", p.Sku)
		}
		return apperr.Unavailablef("insert product: %v", err)
	}
	return nil
}

func (r *repository) GetAll(ctx context.Context, onlyActive bool) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	if onlyActive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperr.Unavailablef("query products: %v", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailablef("iterate products: %v", err)
	}
	return products, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	var p Product
	err := row.Scan(&p.ID, &p.Sku, &p.InternalCode, &p.Name, &p.Description,
		&p.CurrentPrice, &p.StockQuantity, &p.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Unavailablef("query product %s: %v", id, err)
	}
	return &p, nil
}

func (r *repository) GetBySku(ctx context.Context, sku string) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)

	var p Product
	err := row.Scan(&p.ID, &p.Sku, &p.InternalCode, &p.Name, &p.Description,
		&p.CurrentPrice, &p.StockQuantity, &p.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Unavailablef("query product by sku %s: %v", sku, err)
	}
	return &p, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Product, error) {
	result := make(map[uuid.UUID]Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ANY($1)`,
		pq.Array(ids))
	if err != nil {
		return nil, apperr.Unavailablef("query products by ids: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		result[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailablef("iterate products by ids: %v", err)
	}
	return result, nil
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET sku = $1, internal_code = $2, name = $3, description = $4,
		    current_price = $5, stock_quantity = $6
		WHERE id = $7
	`,
		p.Sku, p.InternalCode, p.Name, p.Description,
		p.CurrentPrice, p.StockQuantity, p.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return apperr.Duplicatef("product with sku %s", p.Sku)
		}
		return apperr.Unavailablef("update product %s: %v", p.ID, err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return apperr.NotFoundf("product %s", p.ID)
	}
	return nil
}

func (r *repository) Disable(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return apperr.Unavailablef("disable product %s: %v", id, err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return apperr.NotFoundf("product %s", id)
	}
	return nil
}

func scanProduct(rows *sql.Rows, p *Product) error {
	if err := rows.Scan(&p.ID, &p.Sku, &p.InternalCode, &p.Name, &p.Description,
		&p.CurrentPrice, &p.StockQuantity, &p.IsActive); err != nil {
		return apperr.Unavailablef("scan product row: %v", err)
	}
	return nil
}
