package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/internal/product/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productRecord maps the products table for GORM. The schema itself is owned by the migrations.
type productRecord struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string          `gorm:"column:name;type:varchar(100);not null"`
	Description string          `gorm:"column:description;type:varchar(250);not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(14,2);not null"`
	Available   bool            `gorm:"column:available;not null"`
	Category    string          `gorm:"column:category;type:text;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

var lockForUpdate = clause.Locking{Strength: "UPDATE"}

// GormStore implements ProductStore on top of GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new instance of ProductStore using a GORM handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, p *model.Product) error {
	rec := toRecord(p)
	rec.ID = uuid.Nil
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	p.ID = rec.ID
	return nil
}

// Update locks the row, then overwrites its fields inside one transaction.
func (s *GormStore) Update(ctx context.Context, p *model.Product) error {
	if !p.IsPersisted() {
		return fmt.Errorf("%w: update called with empty ID field", perrors.ErrDataValidation)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current productRecord
		if err := tx.Clauses(lockForUpdate).Where("id = ?", p.ID).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return perrors.ErrProductNotFound
			}
			return err
		}
		// a map keeps zero values such as available=false in the SET list
		return tx.Model(&current).Updates(map[string]any{
			"name":        p.Name,
			"description": p.Description,
			"price":       p.Price,
			"available":   p.Available,
			"category":    p.Category.String(),
		}).Error
	})
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			return err
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, p *model.Product) error {
	if !p.IsPersisted() {
		return fmt.Errorf("%w: delete called with empty ID field", perrors.ErrDataValidation)
	}
	result := s.db.WithContext(ctx).Where("id = ?", p.ID).Delete(&productRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product by ID: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}

func (s *GormStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var rec productRecord
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	p, err := rec.toModel()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) FindAll(ctx context.Context) ([]model.Product, error) {
	return s.find(ctx, "all products", nil)
}

func (s *GormStore) FindByName(ctx context.Context, name string) ([]model.Product, error) {
	return s.find(ctx, "products by name", map[string]any{"name": name})
}

func (s *GormStore) FindByAvailability(ctx context.Context, available bool) ([]model.Product, error) {
	return s.find(ctx, "products by availability", map[string]any{"available": available})
}

func (s *GormStore) FindByCategory(ctx context.Context, category model.Category) ([]model.Product, error) {
	return s.find(ctx, "products by category", map[string]any{"category": category.String()})
}

func (s *GormStore) FindByPrice(ctx context.Context, price decimal.Decimal) ([]model.Product, error) {
	return s.find(ctx, "products by price", map[string]any{"price": price})
}

func (s *GormStore) find(ctx context.Context, what string, where map[string]any) ([]model.Product, error) {
	var records []productRecord
	query := s.db.WithContext(ctx).Order("created_at, id")
	if where != nil {
		query = query.Where(where)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to find %s: %w", what, err)
	}
	products := make([]model.Product, 0, len(records))
	for _, rec := range records {
		p, err := rec.toModel()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func toRecord(p *model.Product) productRecord {
	return productRecord{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Available:   p.Available,
		Category:    p.Category.String(),
	}
}

func (r productRecord) toModel() (model.Product, error) {
	category, err := model.ParseCategory(r.Category)
	if err != nil {
		return model.Product{}, fmt.Errorf("product %s has a corrupt category: %w", r.ID, err)
	}
	return model.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Available:   r.Available,
		Category:    category,
	}, nil
}
