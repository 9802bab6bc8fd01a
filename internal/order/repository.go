package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"orderdesk-be/internal/apperr"
	"orderdesk-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrderTx reserves stock for every item and persists the order with
	// its items as one transaction. Either everything commits or nothing does.
	CreateOrderTx(ctx context.Context, o *Order) error
	FetchOrders(ctx context.Context, filter QueryFilter) ([]*Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// UpdateStatus applies the transition only when the stored status still
	// matches from, so concurrent updates cannot be silently lost.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.String("order_id", o.ID.String()),
		zap.Int("item_count", len(o.Items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return apperr.Unavailablef("begin order transaction: %v", err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	// Reserve stock first. The stock_quantity >= qty guard makes concurrent
	// placements against the same product race safely: the loser sees zero
	// rows affected and the whole order rolls back.
	for _, item := range o.Items {
		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock_quantity = stock_quantity - $1
			WHERE id = $2 AND stock_quantity >= $1
		`, item.Quantity, item.ProductID)
		if err != nil {
			log.Error("failed to reserve stock", zap.String("product_id", item.ProductID.String()), zap.Error(err))
			return apperr.Unavailablef("reserve stock for product %s: %v", item.ProductID, err)
		}

		affected, _ := res.RowsAffected()
		if affected == 0 {
			return r.insufficientStock(ctx, tx, item)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, shipping_address, billing_address, notes, date, status, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		o.ID, o.CustomerID, o.ShippingAddress, o.BillingAddress,
		o.Notes, o.Date, o.Status, o.TotalAmount,
	)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return apperr.Unavailablef("insert order: %v", err)
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			item.ID, o.ID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
		)
		if err != nil {
			log.Error("failed to insert order item", zap.String("product_id", item.ProductID.String()), zap.Error(err))
			return apperr.Unavailablef("insert order item: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return apperr.Unavailablef("commit order transaction: %v", err)
	}

	committed = true
	log.Info("order transaction committed")
	return nil
}

// insufficientStock resolves the available quantity for the error message
// while the transaction is still open.
func (r *repository) insufficientStock(ctx context.Context, tx *sql.Tx, item Item) error {
	var available int
	err := tx.QueryRowContext(ctx,
		`SELECT stock_quantity FROM products WHERE id = $1`, item.ProductID).
		Scan(&available)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFoundf("product %s", item.ProductID)
	}
	if err != nil {
		return apperr.Unavailablef("read stock for product %s: %v", item.ProductID, err)
	}
	return &apperr.InsufficientStockError{
		ProductID: item.ProductID,
		Available: available,
		Requested: item.Quantity,
	}
}

func (r *repository) FetchOrders(ctx context.Context, filter QueryFilter) ([]*Order, error) {
	query := `
		SELECT id, customer_id, shipping_address, billing_address, notes, date, status, total_amount
		FROM orders
		WHERE 1=1
	`
	args := []any{}
	argIndex := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}
	if filter.CustomerID != nil {
		query += fmt.Sprintf(" AND customer_id = $%d", argIndex)
		args = append(args, *filter.CustomerID)
		argIndex++
	}

	offset := (filter.PageNumber - 1) * filter.PageSize

	query += " ORDER BY date DESC, id"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Unavailablef("query orders: %v", err)
	}
	defer rows.Close()

	var orders []*Order
	byID := make(map[uuid.UUID]*Order)
	var orderIDs []uuid.UUID

	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.ShippingAddress, &o.BillingAddress,
			&o.Notes, &o.Date, &o.Status, &o.TotalAmount); err != nil {
			return nil, apperr.Unavailablef("scan order row: %v", err)
		}
		orders = append(orders, &o)
		byID[o.ID] = &o
		orderIDs = append(orderIDs, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailablef("iterate orders: %v", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = ANY($1)
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, apperr.Unavailablef("query order items: %v", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item Item
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return nil, apperr.Unavailablef("scan order item row: %v", err)
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, apperr.Unavailablef("iterate order items: %v", err)
	}

	return orders, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, shipping_address, billing_address, notes, date, status, total_amount
		FROM orders
		WHERE id = $1
	`, id).Scan(&o.ID, &o.CustomerID, &o.ShippingAddress, &o.BillingAddress,
		&o.Notes, &o.Date, &o.Status, &o.TotalAmount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Unavailablef("query order %s: %v", id, err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = $1
	`, id)
	if err != nil {
		return nil, apperr.Unavailablef("query items for order %s: %v", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return nil, apperr.Unavailablef("scan item for order %s: %v", id, err)
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailablef("iterate items for order %s: %v", id, err)
	}

	return &o, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2 AND status = $3`,
		to, id, from)
	if err != nil {
		return apperr.Unavailablef("update status for order %s: %v", id, err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return apperr.Conflictf("order %s was modified concurrently", id)
	}
	return nil
}
