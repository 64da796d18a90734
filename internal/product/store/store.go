// Package store provides the persistence operations of the product catalog.
package store

import (
	"context"

	"github.com/abgdnv/productcatalog/internal/product/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (PostgreSQL, GORM, in-memory).
// List operations return an empty slice, never nil, when nothing matches.
type ProductStore interface {
	// Create persists a new product and assigns its ID.
	Create(ctx context.Context, p *model.Product) error

	// Update persists the fields of an already persisted product.
	// Returns ErrDataValidation if p has no ID and ErrProductNotFound if no row has it.
	Update(ctx context.Context, p *model.Product) error

	// Delete removes a persisted product.
	// Returns ErrDataValidation if p has no ID and ErrProductNotFound if no row has it.
	Delete(ctx context.Context, p *model.Product) error

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// FindAll returns every product ordered by creation.
	FindAll(ctx context.Context) ([]model.Product, error)

	FindByName(ctx context.Context, name string) ([]model.Product, error)
	FindByAvailability(ctx context.Context, available bool) ([]model.Product, error)
	FindByCategory(ctx context.Context, category model.Category) ([]model.Product, error)
	FindByPrice(ctx context.Context, price decimal.Decimal) ([]model.Product, error)
}
