package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
	"github.com/RUstamdarvishY/Online-shop/internal/usecase"
)

type MySQLProductRepo struct{ db *sql.DB }

func NewMySQLProductRepo(db *sql.DB) *MySQLProductRepo { return &MySQLProductRepo{db: db} }

func (r *MySQLProductRepo) Create(ctx context.Context, p *domain.Product) error {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO products (title, description, unit_price, inventory, collection_id)
VALUES (?, ?, ?, ?, ?)`,
		p.Title, nullIfEmpty(p.Description), p.UnitPrice, p.Inventory, p.CollectionID)
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

func (r *MySQLProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, description, unit_price, inventory, collection_id
FROM products WHERE id = ?`, id)
	return scanProduct(row)
}

func (r *MySQLProductRepo) List(ctx context.Context, f usecase.ProductFilter) ([]domain.Product, error) {
	query := `
SELECT id, title, description, unit_price, inventory, collection_id
FROM products WHERE 1 = 1`
	var args []any
	if f.CollectionID > 0 {
		query += ` AND collection_id = ?`
		args = append(args, f.CollectionID)
	}
	if f.Search != "" {
		query += ` AND (title LIKE ? OR description LIKE ?)`
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY title`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *MySQLProductRepo) Update(ctx context.Context, p *domain.Product) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE products
SET title = ?, description = ?, unit_price = ?, inventory = ?, collection_id = ?
WHERE id = ?`,
		p.Title, nullIfEmpty(p.Description), p.UnitPrice, p.Inventory, p.CollectionID, p.ID)
	return err
}

func (r *MySQLProductRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
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

func (r *MySQLProductRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM products WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (r *MySQLProductRepo) OrderItemCount(ctx context.Context, productID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM order_items WHERE product_id = ?`, productID).Scan(&n)
	return n, err
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p    domain.Product
		desc sql.NullString
	)
	err := row.Scan(&p.ID, &p.Title, &desc, &p.UnitPrice, &p.Inventory, &p.CollectionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Description = desc.String
	return &p, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ usecase.ProductRepo = (*MySQLProductRepo)(nil)
