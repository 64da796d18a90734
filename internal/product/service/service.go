// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/internal/product/events"
	"github.com/abgdnv/productcatalog/internal/product/model"
	"github.com/abgdnv/productcatalog/internal/product/store"
	"github.com/abgdnv/productcatalog/pkg/messaging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// List returns the products selected by the filter, or all products when the filter is empty.
	// Returns an empty slice if nothing matches.
	List(ctx context.Context, filter Filter) ([]model.Product, error)

	// Create validates and persists a new product, assigning its ID.
	Create(ctx context.Context, p *model.Product) error

	// Update validates and persists an already persisted product.
	// Returns ErrDataValidation if p has no ID and ErrProductNotFound if it does not exist.
	Update(ctx context.Context, p *model.Product) error

	// Delete removes a persisted product.
	// Returns ErrDataValidation if p has no ID and ErrProductNotFound if it does not exist.
	Delete(ctx context.Context, p *model.Product) error
}

// Filter selects a single query. When several fields are set, the first one in
// field order wins: Name, then Category, then Available, then Price.
type Filter struct {
	Name      *string
	Category  *model.Category
	Available *bool
	Price     *decimal.Decimal
}

// IsEmpty reports whether no criterion is set.
func (f Filter) IsEmpty() bool {
	return f.Name == nil && f.Category == nil && f.Available == nil && f.Price == nil
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
	publisher  messaging.Publisher
	logger     *slog.Logger
}

// NewService creates a new instance of ProductService with the provided repository.
// Change events are sent to publisher after every successful write.
func NewService(repo store.ProductStore, publisher messaging.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repository: repo,
		publisher:  publisher,
		logger:     logger.With("component", "product_service"),
	}
}

// FindByID retrieves a product by its ID.
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}
	return product, nil
}

// List runs the query selected by the filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]model.Product, error) {
	var (
		products []model.Product
		err      error
	)
	switch {
	case filter.Name != nil:
		products, err = s.repository.FindByName(ctx, *filter.Name)
	case filter.Category != nil:
		products, err = s.repository.FindByCategory(ctx, *filter.Category)
	case filter.Available != nil:
		products, err = s.repository.FindByAvailability(ctx, *filter.Available)
	case filter.Price != nil:
		products, err = s.repository.FindByPrice(ctx, *filter.Price)
	default:
		products, err = s.repository.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// Create validates the product, persists it and publishes ProductCreated.
func (s *Service) Create(ctx context.Context, p *model.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.repository.Create(ctx, p); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	s.logger.InfoContext(ctx, "Product created", "product_id", p.ID)
	s.publish(ctx, events.NewProductCreated(ctx, p))
	return nil
}

// Update validates the product, persists it and publishes ProductUpdated.
func (s *Service) Update(ctx context.Context, p *model.Product) error {
	if !p.IsPersisted() {
		return fmt.Errorf("%w: update called with empty ID field", perrors.ErrDataValidation)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.repository.Update(ctx, p); err != nil {
		return fmt.Errorf("failed to update product %s: %w", p.ID, err)
	}
	s.logger.InfoContext(ctx, "Product updated", "product_id", p.ID)
	s.publish(ctx, events.NewProductUpdated(ctx, p))
	return nil
}

// Delete removes the product and publishes ProductDeleted.
func (s *Service) Delete(ctx context.Context, p *model.Product) error {
	if !p.IsPersisted() {
		return fmt.Errorf("%w: delete called with empty ID field", perrors.ErrDataValidation)
	}
	if err := s.repository.Delete(ctx, p); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", p.ID, err)
	}
	s.logger.InfoContext(ctx, "Product deleted", "product_id", p.ID)
	s.publish(ctx, events.NewProductDeleted(ctx, p.ID))
	return nil
}

// publish sends the event; failures are logged and never fail the write.
func (s *Service) publish(ctx context.Context, event messaging.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event", "subject", event.Subject(), "error", err)
	}
}

// IsClientError reports whether err was caused by the caller rather than the service.
func IsClientError(err error) bool {
	return errors.Is(err, perrors.ErrDataValidation) || errors.Is(err, perrors.ErrProductNotFound)
}
