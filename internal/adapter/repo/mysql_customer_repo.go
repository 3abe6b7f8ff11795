package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
	"github.com/RUstamdarvishY/Online-shop/internal/usecase"
)

type MySQLCustomerRepo struct{ db *sql.DB }

func NewMySQLCustomerRepo(db *sql.DB) *MySQLCustomerRepo { return &MySQLCustomerRepo{db: db} }

func (r *MySQLCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO customers (first_name, last_name, email, phone, street, house, korpus, flat)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.FirstName, c.LastName, c.Email, c.Phone,
		c.Street, c.House, nullIfEmpty(c.Korpus), c.Flat)
	if err != nil {
		return err
	}
	c.ID, err = res.LastInsertId()
	return err
}

func (r *MySQLCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, first_name, last_name, email, phone, street, house, korpus, flat
FROM customers WHERE id = ?`, id)
	return scanCustomer(row)
}

func (r *MySQLCustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, first_name, last_name, email, phone, street, house, korpus, flat
FROM customers ORDER BY first_name, last_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *MySQLCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE customers
SET first_name = ?, last_name = ?, email = ?, phone = ?,
    street = ?, house = ?, korpus = ?, flat = ?
WHERE id = ?`,
		c.FirstName, c.LastName, c.Email, c.Phone,
		c.Street, c.House, nullIfEmpty(c.Korpus), c.Flat, c.ID)
	return err
}

func (r *MySQLCustomerRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
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

func (r *MySQLCustomerRepo) OrderCount(ctx context.Context, customerID int64) (int, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM customers WHERE id = ?`, customerID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, usecase.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	var n int
	err = r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM orders WHERE customer_id = ?`, customerID).Scan(&n)
	return n, err
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var (
		c      domain.Customer
		korpus sql.NullString
	)
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.Street, &c.House, &korpus, &c.Flat)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	c.Korpus = korpus.String
	return &c, nil
}

var _ usecase.CustomerRepo = (*MySQLCustomerRepo)(nil)
