package store

import (
	"context"
	"sync"
	"testing"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/internal/product/model"
	"github.com/abgdnv/productcatalog/internal/product/model/modeltest"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_InMemory_CRUD(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	// create
	p := modeltest.NewProduct()
	require.NoError(t, s.Create(ctx, p))
	require.True(t, p.IsPersisted())

	// find
	found, err := s.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, *p, *found)

	// the returned product is a copy
	found.Name = "changed"
	again, err := s.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, again.Name)

	// update
	id := p.ID
	p.Description = "This is just a test"
	require.NoError(t, s.Update(ctx, p))
	assert.Equal(t, id, p.ID)
	found, err = s.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "This is just a test", found.Description)

	// delete
	require.NoError(t, s.Delete(ctx, p))
	_, err = s.FindByID(ctx, id)
	assert.ErrorIs(t, err, perrors.ErrProductNotFound)
	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func Test_InMemory_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		action      func(s *InMemory) error
		expectError error
	}{
		{
			name:        "Error - update without id",
			action:      func(s *InMemory) error { return s.Update(context.Background(), modeltest.NewProduct()) },
			expectError: perrors.ErrDataValidation,
		},
		{
			name:        "Error - delete without id",
			action:      func(s *InMemory) error { return s.Delete(context.Background(), modeltest.NewProduct()) },
			expectError: perrors.ErrDataValidation,
		},
		{
			name: "Error - update unknown id",
			action: func(s *InMemory) error {
				p := modeltest.NewProduct()
				p.ID = uuid.New()
				return s.Update(context.Background(), p)
			},
			expectError: perrors.ErrProductNotFound,
		},
		{
			name: "Error - delete unknown id",
			action: func(s *InMemory) error {
				p := modeltest.NewProduct()
				p.ID = uuid.New()
				return s.Delete(context.Background(), p)
			},
			expectError: perrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			s := NewInMemoryStore()
			// when
			err := tc.action(s)
			// then
			assert.ErrorIs(t, err, tc.expectError)
		})
	}
}

func Test_InMemory_Queries(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	products := []*model.Product{
		{Name: "Hat", Price: decimal.RequireFromString("10.00"), Available: true, Category: model.CategoryCloths},
		{Name: "Apple", Price: decimal.RequireFromString("1.25"), Available: false, Category: model.CategoryFood},
		{Name: "Hat", Price: decimal.RequireFromString("1.25"), Available: false, Category: model.CategoryCloths},
		{Name: "Hammer", Price: decimal.RequireFromString("20"), Available: true, Category: model.CategoryTools},
	}
	for _, p := range products {
		require.NoError(t, s.Create(ctx, p))
	}

	ids := func(list []model.Product) []uuid.UUID {
		out := make([]uuid.UUID, len(list))
		for i, p := range list {
			out[i] = p.ID
		}
		return out
	}

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{products[0].ID, products[1].ID, products[2].ID, products[3].ID}, ids(all))

	byName, err := s.FindByName(ctx, "Hat")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{products[0].ID, products[2].ID}, ids(byName))

	byAvailability, err := s.FindByAvailability(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{products[1].ID, products[2].ID}, ids(byAvailability))

	byCategory, err := s.FindByCategory(ctx, model.CategoryTools)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{products[3].ID}, ids(byCategory))

	byPrice, err := s.FindByPrice(ctx, decimal.RequireFromString("1.250"))
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{products[1].ID, products[2].ID}, ids(byPrice))

	none, err := s.FindByName(ctx, "Nothing")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func Test_InMemory_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Create(ctx, modeltest.NewProduct()))
		}()
	}
	wg.Wait()

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 50)
}
