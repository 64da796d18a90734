package store

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/internal/product/model"
	"github.com/abgdnv/productcatalog/internal/product/store/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
	q  *db.Queries
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: dbp,
		q:  db.New(dbp),
	}
}

// Create inserts the product and copies the generated ID back into p.
func (s *PgStore) Create(ctx context.Context, p *model.Product) error {
	row, err := s.q.Create(ctx, db.CreateParams{
		Name:        p.Name,
		Description: p.Description,
		Price:       toNumeric(p.Price),
		Available:   p.Available,
		Category:    p.Category.String(),
	})
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	p.ID = row.ID
	return nil
}

// Update overwrites the stored fields of p.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *PgStore) Update(ctx context.Context, p *model.Product) error {
	if !p.IsPersisted() {
		return fmt.Errorf("%w: update called with empty ID field", perrors.ErrDataValidation)
	}
	_, err := s.q.Update(ctx, db.UpdateParams{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       toNumeric(p.Price),
		Available:   p.Available,
		Category:    p.Category.String(),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return perrors.ErrProductNotFound
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete removes p by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *PgStore) Delete(ctx context.Context, p *model.Product) error {
	if !p.IsPersisted() {
		return fmt.Errorf("%w: delete called with empty ID field", perrors.ErrDataValidation)
	}
	count, err := s.q.Delete(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if count == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *PgStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	row, err := s.q.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	p, err := fromRow(row)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PgStore) FindAll(ctx context.Context) ([]model.Product, error) {
	rows, err := s.q.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	return fromRows(rows)
}

func (s *PgStore) FindByName(ctx context.Context, name string) ([]model.Product, error) {
	rows, err := s.q.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by name: %w", err)
	}
	return fromRows(rows)
}

func (s *PgStore) FindByAvailability(ctx context.Context, available bool) ([]model.Product, error) {
	rows, err := s.q.FindByAvailability(ctx, available)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by availability: %w", err)
	}
	return fromRows(rows)
}

func (s *PgStore) FindByCategory(ctx context.Context, category model.Category) ([]model.Product, error) {
	rows, err := s.q.FindByCategory(ctx, category.String())
	if err != nil {
		return nil, fmt.Errorf("failed to find products by category: %w", err)
	}
	return fromRows(rows)
}

func (s *PgStore) FindByPrice(ctx context.Context, price decimal.Decimal) ([]model.Product, error) {
	rows, err := s.q.FindByPrice(ctx, toNumeric(price))
	if err != nil {
		return nil, fmt.Errorf("failed to find products by price: %w", err)
	}
	return fromRows(rows)
}

func toNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func fromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func fromRow(row db.Product) (model.Product, error) {
	category, err := model.ParseCategory(row.Category)
	if err != nil {
		return model.Product{}, fmt.Errorf("product %s has a corrupt category: %w", row.ID, err)
	}
	return model.Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Price:       fromNumeric(row.Price),
		Available:   row.Available,
		Category:    category,
	}, nil
}

func fromRows(rows []db.Product) ([]model.Product, error) {
	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		p, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}
