package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Product is one row of the products table.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       pgtype.Numeric
	Available   bool
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
