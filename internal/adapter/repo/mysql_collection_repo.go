package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
	"github.com/RUstamdarvishY/Online-shop/internal/usecase"
)

type MySQLCollectionRepo struct{ db *sql.DB }

func NewMySQLCollectionRepo(db *sql.DB) *MySQLCollectionRepo {
	return &MySQLCollectionRepo{db: db}
}

func (r *MySQLCollectionRepo) Create(ctx context.Context, c *domain.Collection) error {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO collections (title, featured_product_id) VALUES (?, ?)`,
		c.Title, c.FeaturedProductID)
	if err != nil {
		return err
	}
	c.ID, err = res.LastInsertId()
	return err
}

func (r *MySQLCollectionRepo) GetByID(ctx context.Context, id int64) (*domain.Collection, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT c.id, c.title, c.featured_product_id, COUNT(p.id)
FROM collections c
LEFT JOIN products p ON p.collection_id = c.id
WHERE c.id = ?
GROUP BY c.id, c.title, c.featured_product_id`, id)
	return scanCollection(row)
}

func (r *MySQLCollectionRepo) List(ctx context.Context) ([]domain.Collection, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT c.id, c.title, c.featured_product_id, COUNT(p.id)
FROM collections c
LEFT JOIN products p ON p.collection_id = c.id
GROUP BY c.id, c.title, c.featured_product_id
ORDER BY c.title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *MySQLCollectionRepo) Update(ctx context.Context, c *domain.Collection) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE collections SET title = ?, featured_product_id = ? WHERE id = ?`,
		c.Title, c.FeaturedProductID, c.ID)
	return err
}

func (r *MySQLCollectionRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM collections WHERE id = ?`, id)
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

func (r *MySQLCollectionRepo) ProductCount(ctx context.Context, id int64) (int, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM collections WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, usecase.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	var n int
	err = r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM products WHERE collection_id = ?`, id).Scan(&n)
	return n, err
}

func scanCollection(row rowScanner) (*domain.Collection, error) {
	var (
		c        domain.Collection
		featured sql.NullInt64
	)
	err := row.Scan(&c.ID, &c.Title, &featured, &c.ProductsCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if featured.Valid {
		c.FeaturedProductID = &featured.Int64
	}
	return &c, nil
}

var _ usecase.CollectionRepo = (*MySQLCollectionRepo)(nil)
