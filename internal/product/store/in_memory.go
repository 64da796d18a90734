package store

import (
	"context"
	"fmt"
	"sync"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/internal/product/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InMemory implements ProductStore using an in-memory map.
// Products are listed in creation order.
type InMemory struct {
	mu       sync.RWMutex
	products map[uuid.UUID]model.Product
	order    []uuid.UUID
}

// NewInMemoryStore creates a new, empty in-memory ProductStore.
func NewInMemoryStore() *InMemory {
	return &InMemory{
		products: make(map[uuid.UUID]model.Product),
	}
}

func (s *InMemory) Create(_ context.Context, p *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = uuid.New()
	s.products[p.ID] = *p
	s.order = append(s.order, p.ID)
	return nil
}

func (s *InMemory) Update(_ context.Context, p *model.Product) error {
	if !p.IsPersisted() {
		return fmt.Errorf("%w: update called with empty ID field", perrors.ErrDataValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; !ok {
		return perrors.ErrProductNotFound
	}
	s.products[p.ID] = *p
	return nil
}

func (s *InMemory) Delete(_ context.Context, p *model.Product) error {
	if !p.IsPersisted() {
		return fmt.Errorf("%w: delete called with empty ID field", perrors.ErrDataValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; !ok {
		return perrors.ErrProductNotFound
	}
	delete(s.products, p.ID)
	for i, id := range s.order {
		if id == p.ID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	return &p, nil
}

func (s *InMemory) FindAll(_ context.Context) ([]model.Product, error) {
	return s.filter(func(model.Product) bool { return true }), nil
}

func (s *InMemory) FindByName(_ context.Context, name string) ([]model.Product, error) {
	return s.filter(func(p model.Product) bool { return p.Name == name }), nil
}

func (s *InMemory) FindByAvailability(_ context.Context, available bool) ([]model.Product, error) {
	return s.filter(func(p model.Product) bool { return p.Available == available }), nil
}

func (s *InMemory) FindByCategory(_ context.Context, category model.Category) ([]model.Product, error) {
	return s.filter(func(p model.Product) bool { return p.Category == category }), nil
}

func (s *InMemory) FindByPrice(_ context.Context, price decimal.Decimal) ([]model.Product, error) {
	return s.filter(func(p model.Product) bool { return p.Price.Equal(price) }), nil
}

func (s *InMemory) filter(match func(model.Product) bool) []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]model.Product, 0, len(s.order))
	for _, id := range s.order {
		if p := s.products[id]; match(p) {
			list = append(list, p)
		}
	}
	return list
}
