package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
	"github.com/RUstamdarvishY/Online-shop/internal/usecase"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var (
		o      domain.Order
		status string
	)
	row := r.db.QueryRowContext(ctx, `
SELECT id, customer_id, payment_status, placed_at
FROM orders WHERE id = ?`, id)
	if err := row.Scan(&o.ID, &o.CustomerID, &status, &o.PlacedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	o.PaymentStatus = domain.PaymentStatus(status)

	items, err := r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *MySQLOrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `
SELECT id, customer_id, payment_status, placed_at
FROM orders ORDER BY id`)
}

func (r *MySQLOrderRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return r.list(ctx, `
SELECT id, customer_id, payment_status, placed_at
FROM orders WHERE customer_id = ? ORDER BY id`, customerID)
}

func (r *MySQLOrderRepo) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var (
			o      domain.Order
			status string
		)
		if err := rows.Scan(&o.ID, &o.CustomerID, &status, &o.PlacedAt); err != nil {
			return nil, err
		}
		o.PaymentStatus = domain.PaymentStatus(status)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return r.attachItems(ctx, orders)
}

// attachItems resolves the items of every listed order in one batched read.
func (r *MySQLOrderRepo) attachItems(ctx context.Context, orders []domain.Order) ([]domain.Order, error) {
	if len(orders) == 0 {
		return orders, nil
	}
	placeholders := make([]string, len(orders))
	args := make([]any, len(orders))
	byID := make(map[int64]int, len(orders))
	for i, o := range orders {
		placeholders[i] = "?"
		args[i] = o.ID
		byID[o.ID] = i
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT oi.id, oi.order_id, oi.quantity,
       p.id, p.title, p.description, p.unit_price, p.inventory, p.collection_id
FROM order_items oi
JOIN products p ON p.id = oi.product_id
WHERE oi.order_id IN (`+strings.Join(placeholders, ", ")+`)
ORDER BY oi.id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		it, err := scanOrderLine(rows)
		if err != nil {
			return nil, err
		}
		i := byID[it.OrderID]
		orders[i].Items = append(orders[i].Items, *it)
	}
	return orders, rows.Err()
}

func (r *MySQLOrderRepo) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET payment_status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Re-setting the current status affects zero rows on MySQL.
		ok, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return usecase.ErrNotFound
		}
	}
	return nil
}

func (r *MySQLOrderRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *MySQLOrderRepo) ItemCount(ctx context.Context, orderID int64) (int, error) {
	ok, err := r.exists(ctx, orderID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, usecase.ErrNotFound
	}
	var n int
	err = r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM order_items WHERE order_id = ?`, orderID).Scan(&n)
	return n, err
}

func (r *MySQLOrderRepo) ListItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT oi.id, oi.order_id, oi.quantity,
       p.id, p.title, p.description, p.unit_price, p.inventory, p.collection_id
FROM order_items oi
JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = ?
ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		it, err := scanOrderLine(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (r *MySQLOrderRepo) exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM orders WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func scanOrderLine(row rowScanner) (*domain.OrderItem, error) {
	var (
		it   domain.OrderItem
		desc sql.NullString
	)
	err := row.Scan(
		&it.ID, &it.OrderID, &it.Quantity,
		&it.Product.ID, &it.Product.Title, &desc,
		&it.Product.UnitPrice, &it.Product.Inventory, &it.Product.CollectionID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	it.Product.Description = desc.String
	return &it, nil
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
