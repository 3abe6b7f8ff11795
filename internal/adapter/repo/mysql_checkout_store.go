package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
	"github.com/RUstamdarvishY/Online-shop/internal/usecase"
)

// MySQLCheckoutStore executes the cart-to-order conversion in one
// transaction; fn returning an error rolls back every write.
type MySQLCheckoutStore struct{ db *sql.DB }

func NewMySQLCheckoutStore(db *sql.DB) *MySQLCheckoutStore {
	return &MySQLCheckoutStore{db: db}
}

func (s *MySQLCheckoutStore) WithinTx(ctx context.Context, fn func(tx usecase.CheckoutTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(&checkoutTx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

type checkoutTx struct{ tx *sql.Tx }

func (t *checkoutTx) LockCart(ctx context.Context, cartID uuid.UUID) (bool, error) {
	var one int
	err := t.tx.QueryRowContext(ctx, `
SELECT 1 FROM carts WHERE id = ? FOR UPDATE`, cartID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (t *checkoutTx) CartLines(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error) {
	rows, err := t.tx.QueryContext(ctx, `
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

func (t *checkoutTx) CustomerExists(ctx context.Context, customerID int64) (bool, error) {
	var one int
	err := t.tx.QueryRowContext(ctx, `
SELECT 1 FROM customers WHERE id = ?`, customerID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (t *checkoutTx) InsertOrder(ctx context.Context, customerID int64, status domain.PaymentStatus, placedAt time.Time) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
INSERT INTO orders (customer_id, payment_status, placed_at)
VALUES (?, ?, ?)`, customerID, string(status), placedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertOrderItems writes every line in one multi-row INSERT, then reads
// the created rows back with their products in a single query.
func (t *checkoutTx) InsertOrderItems(ctx context.Context, orderID int64, lines []domain.CartItem) ([]domain.OrderItem, error) {
	placeholders := make([]string, 0, len(lines))
	args := make([]any, 0, len(lines)*3)
	for _, l := range lines {
		placeholders = append(placeholders, "(?, ?, ?)")
		args = append(args, orderID, l.Product.ID, l.Quantity)
	}
	_, err := t.tx.ExecContext(ctx, `
INSERT INTO order_items (order_id, product_id, quantity)
VALUES `+strings.Join(placeholders, ", "), args...)
	if err != nil {
		return nil, err
	}

	rows, err := t.tx.QueryContext(ctx, `
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

func (t *checkoutTx) InsertOutbox(ctx context.Context, channel string, payload []byte) error {
	_, err := t.tx.ExecContext(ctx, `
INSERT INTO outbox (channel, payload, status, retry_count, next_attempt_at, created_at)
VALUES (?, ?, 'PENDING', 0, NOW(), NOW())`, channel, payload)
	return err
}

func (t *checkoutTx) DeleteCart(ctx context.Context, cartID uuid.UUID) error {
	if _, err := t.tx.ExecContext(ctx, `
DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return err
	}
	_, err := t.tx.ExecContext(ctx, `DELETE FROM carts WHERE id = ?`, cartID)
	return err
}

var _ usecase.CheckoutStore = (*MySQLCheckoutStore)(nil)
