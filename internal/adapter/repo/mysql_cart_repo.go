package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
	"github.com/RUstamdarvishY/Online-shop/internal/usecase"
)

type MySQLCartRepo struct{ db *sql.DB }

func NewMySQLCartRepo(db *sql.DB) *MySQLCartRepo { return &MySQLCartRepo{db: db} }

const cartLineColumns = `
ci.id, ci.cart_id, ci.quantity,
p.id, p.title, p.description, p.unit_price, p.inventory, p.collection_id`

func (r *MySQLCartRepo) Create(ctx context.Context, c *domain.Cart) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO carts (id, created_at) VALUES (?, ?)`, c.ID, c.CreatedAt)
	return err
}

func (r *MySQLCartRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Cart, error) {
	var cart domain.Cart
	row := r.db.QueryRowContext(ctx, `
SELECT id, created_at FROM carts WHERE id = ?`, id)
	if err := row.Scan(&cart.ID, &cart.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	items, err := r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	cart.Items = items
	return &cart, nil
}

func (r *MySQLCartRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM carts WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (r *MySQLCartRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE id = ?`, id)
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
	return tx.Commit()
}

func (r *MySQLCartRepo) CountItems(ctx context.Context, id uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM cart_items WHERE cart_id = ?`, id).Scan(&n)
	return n, err
}

// UpsertItem relies on the UNIQUE(cart_id, product_id) key: a second add of
// the same product folds into the existing row instead of creating one.
func (r *MySQLCartRepo) UpsertItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*domain.CartItem, error) {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)`,
		cartID, productID, quantity)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx, `
SELECT`+cartLineColumns+`
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = ? AND ci.product_id = ?`, cartID, productID)
	return scanCartLine(row)
}

func (r *MySQLCartRepo) GetItem(ctx context.Context, cartID uuid.UUID, itemID int64) (*domain.CartItem, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT`+cartLineColumns+`
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = ? AND ci.id = ?`, cartID, itemID)
	return scanCartLine(row)
}

func (r *MySQLCartRepo) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE cart_items SET quantity = ? WHERE cart_id = ? AND id = ?`,
		quantity, cartID, itemID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// MySQL reports zero affected rows when the stored quantity already
		// matches, so distinguish no-op from missing row.
		var one int
		err := r.db.QueryRowContext(ctx, `
SELECT 1 FROM cart_items WHERE cart_id = ? AND id = ?`, cartID, itemID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return usecase.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *MySQLCartRepo) RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM cart_items WHERE cart_id = ? AND id = ?`, cartID, itemID)
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

func (r *MySQLCartRepo) ListItems(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT`+cartLineColumns+`
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = ?
ORDER BY ci.id`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		it, err := scanCartLine(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCartLine(row rowScanner) (*domain.CartItem, error) {
	var (
		it   domain.CartItem
		desc sql.NullString
	)
	err := row.Scan(
		&it.ID, &it.CartID, &it.Quantity,
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

var _ usecase.CartRepo = (*MySQLCartRepo)(nil)
