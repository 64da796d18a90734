// source: query.sql

package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const productColumns = `id, name, description, price, available, category, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var i Product
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.Price,
		&i.Available,
		&i.Category,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func (q *Queries) queryProducts(ctx context.Context, sql string, args ...interface{}) ([]Product, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		i, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const create = `-- name: Create :one
INSERT INTO products (name, description, price, available, category)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + productColumns

type CreateParams struct {
	Name        string
	Description string
	Price       pgtype.Numeric
	Available   bool
	Category    string
}

func (q *Queries) Create(ctx context.Context, arg CreateParams) (Product, error) {
	row := q.db.QueryRow(ctx, create,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.Available,
		arg.Category,
	)
	return scanProduct(row)
}

const deleteProduct = `-- name: Delete :execrows
DELETE FROM products
WHERE id = $1`

func (q *Queries) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteProduct, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const findAll = `-- name: FindAll :many
SELECT ` + productColumns + `
FROM products
ORDER BY created_at, id`

func (q *Queries) FindAll(ctx context.Context) ([]Product, error) {
	return q.queryProducts(ctx, findAll)
}

const findByAvailability = `-- name: FindByAvailability :many
SELECT ` + productColumns + `
FROM products
WHERE available = $1
ORDER BY created_at, id`

func (q *Queries) FindByAvailability(ctx context.Context, available bool) ([]Product, error) {
	return q.queryProducts(ctx, findByAvailability, available)
}

const findByCategory = `-- name: FindByCategory :many
SELECT ` + productColumns + `
FROM products
WHERE category = $1
ORDER BY created_at, id`

func (q *Queries) FindByCategory(ctx context.Context, category string) ([]Product, error) {
	return q.queryProducts(ctx, findByCategory, category)
}

const findByID = `-- name: FindByID :one
SELECT ` + productColumns + `
FROM products
WHERE id = $1`

func (q *Queries) FindByID(ctx context.Context, id uuid.UUID) (Product, error) {
	row := q.db.QueryRow(ctx, findByID, id)
	return scanProduct(row)
}

const findByName = `-- name: FindByName :many
SELECT ` + productColumns + `
FROM products
WHERE name = $1
ORDER BY created_at, id`

func (q *Queries) FindByName(ctx context.Context, name string) ([]Product, error) {
	return q.queryProducts(ctx, findByName, name)
}

const findByPrice = `-- name: FindByPrice :many
SELECT ` + productColumns + `
FROM products
WHERE price = $1
ORDER BY created_at, id`

func (q *Queries) FindByPrice(ctx context.Context, price pgtype.Numeric) ([]Product, error) {
	return q.queryProducts(ctx, findByPrice, price)
}

const update = `-- name: Update :one
UPDATE products
SET name = $2, description = $3, price = $4, available = $5, category = $6, updated_at = NOW()
WHERE id = $1
RETURNING ` + productColumns

type UpdateParams struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       pgtype.Numeric
	Available   bool
	Category    string
}

func (q *Queries) Update(ctx context.Context, arg UpdateParams) (Product, error) {
	row := q.db.QueryRow(ctx, update,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.Available,
		arg.Category,
	)
	return scanProduct(row)
}
