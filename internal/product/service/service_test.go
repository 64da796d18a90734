package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/internal/product/model"
	"github.com/abgdnv/productcatalog/internal/product/store"
	"github.com/abgdnv/productcatalog/pkg/messaging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductStore is a mock implementation of the ProductStore interface.
// It records the last query it served.
type mockProductStore struct {
	products []model.Product
	product  *model.Product
	error    error
	called   string
}

var _ store.ProductStore = (*mockProductStore)(nil)

func (m *mockProductStore) Create(_ context.Context, p *model.Product) error {
	m.called = "Create"
	if m.error == nil {
		p.ID = uuid.New()
	}
	return m.error
}

func (m *mockProductStore) Update(_ context.Context, _ *model.Product) error {
	m.called = "Update"
	return m.error
}

func (m *mockProductStore) Delete(_ context.Context, _ *model.Product) error {
	m.called = "Delete"
	return m.error
}

func (m *mockProductStore) FindByID(_ context.Context, _ uuid.UUID) (*model.Product, error) {
	m.called = "FindByID"
	return m.product, m.error
}

func (m *mockProductStore) FindAll(_ context.Context) ([]model.Product, error) {
	m.called = "FindAll"
	return m.products, m.error
}

func (m *mockProductStore) FindByName(_ context.Context, _ string) ([]model.Product, error) {
	m.called = "FindByName"
	return m.products, m.error
}

func (m *mockProductStore) FindByAvailability(_ context.Context, _ bool) ([]model.Product, error) {
	m.called = "FindByAvailability"
	return m.products, m.error
}

func (m *mockProductStore) FindByCategory(_ context.Context, _ model.Category) ([]model.Product, error) {
	m.called = "FindByCategory"
	return m.products, m.error
}

func (m *mockProductStore) FindByPrice(_ context.Context, _ decimal.Decimal) ([]model.Product, error) {
	m.called = "FindByPrice"
	return m.products, m.error
}

// recordingPublisher keeps the subjects of published events.
type recordingPublisher struct {
	subjects []string
	error    error
}

func (p *recordingPublisher) Publish(_ context.Context, event messaging.Event) error {
	p.subjects = append(p.subjects, event.Subject())
	return p.error
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func validProduct() *model.Product {
	return &model.Product{
		Name:        "Fedora",
		Description: "A red hat",
		Price:       decimal.RequireFromString("12.50"),
		Available:   true,
		Category:    model.CategoryCloths,
	}
}

func persistedProduct() *model.Product {
	p := validProduct()
	p.ID = uuid.New()
	return p
}

func Test_ProductService_FindByID(t *testing.T) {
	found := persistedProduct()
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expected    *model.Product
		expectError error
	}{
		{
			name:      "Success - product found",
			mockStore: &mockProductStore{product: found},
			expected:  found,
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{error: perrors.ErrProductNotFound},
			expectError: perrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore, &recordingPublisher{}, discardLogger)
			// when
			product, err := service.FindByID(context.Background(), uuid.New())
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, product)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, product)
		})
	}
}

func Test_ProductService_List(t *testing.T) {
	name := "Hat"
	category := model.CategoryFood
	available := false
	price := decimal.RequireFromString("9.99")
	ErrStoreError := errors.New("store error")

	testCases := []struct {
		name         string
		filter       Filter
		mockStore    *mockProductStore
		expectedCall string
		expectError  error
	}{
		{name: "Success - empty filter lists all", filter: Filter{}, mockStore: &mockProductStore{products: []model.Product{}}, expectedCall: "FindAll"},
		{name: "Success - by name", filter: Filter{Name: &name}, mockStore: &mockProductStore{}, expectedCall: "FindByName"},
		{name: "Success - by category", filter: Filter{Category: &category}, mockStore: &mockProductStore{}, expectedCall: "FindByCategory"},
		{name: "Success - by availability", filter: Filter{Available: &available}, mockStore: &mockProductStore{}, expectedCall: "FindByAvailability"},
		{name: "Success - by price", filter: Filter{Price: &price}, mockStore: &mockProductStore{}, expectedCall: "FindByPrice"},
		{name: "Success - name wins over the rest", filter: Filter{Name: &name, Category: &category, Available: &available, Price: &price}, mockStore: &mockProductStore{}, expectedCall: "FindByName"},
		{name: "Success - category wins over availability", filter: Filter{Category: &category, Available: &available}, mockStore: &mockProductStore{}, expectedCall: "FindByCategory"},
		{name: "Success - availability wins over price", filter: Filter{Available: &available, Price: &price}, mockStore: &mockProductStore{}, expectedCall: "FindByAvailability"},
		{name: "Error - store error", filter: Filter{}, mockStore: &mockProductStore{error: ErrStoreError}, expectedCall: "FindAll", expectError: ErrStoreError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore, &recordingPublisher{}, discardLogger)
			// when
			_, err := service.List(context.Background(), tc.filter)
			// then
			assert.Equal(t, tc.expectedCall, tc.mockStore.called)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func Test_Filter_IsEmpty(t *testing.T) {
	name := "x"
	assert.True(t, Filter{}.IsEmpty())
	assert.False(t, Filter{Name: &name}.IsEmpty())
}

func Test_ProductService_Create(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name             string
		product          *model.Product
		mockStore        *mockProductStore
		expectError      error
		expectedSubjects []string
	}{
		{
			name:             "Success - product created",
			product:          validProduct(),
			mockStore:        &mockProductStore{},
			expectedSubjects: []string{messaging.ProductsCreatedSubject},
		},
		{
			name:        "Error - invalid product",
			product:     &model.Product{Price: decimal.NewFromInt(1)},
			mockStore:   &mockProductStore{},
			expectError: perrors.ErrDataValidation,
		},
		{
			name:        "Error - store error",
			product:     validProduct(),
			mockStore:   &mockProductStore{error: ErrStoreError},
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			publisher := &recordingPublisher{}
			service := NewService(tc.mockStore, publisher, discardLogger)
			// when
			err := service.Create(context.Background(), tc.product)
			// then
			assert.Equal(t, tc.expectedSubjects, publisher.subjects)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.product.IsPersisted())
		})
	}
}

func Test_ProductService_Update(t *testing.T) {
	testCases := []struct {
		name             string
		product          *model.Product
		mockStore        *mockProductStore
		expectError      error
		expectedSubjects []string
	}{
		{
			name:             "Success - product updated",
			product:          persistedProduct(),
			mockStore:        &mockProductStore{},
			expectedSubjects: []string{messaging.ProductsUpdatedSubject},
		},
		{
			name:        "Error - product without id",
			product:     validProduct(),
			mockStore:   &mockProductStore{},
			expectError: perrors.ErrDataValidation,
		},
		{
			name: "Error - invalid product",
			product: func() *model.Product {
				p := persistedProduct()
				p.Name = ""
				return p
			}(),
			mockStore:   &mockProductStore{},
			expectError: perrors.ErrDataValidation,
		},
		{
			name:        "Error - product not found",
			product:     persistedProduct(),
			mockStore:   &mockProductStore{error: perrors.ErrProductNotFound},
			expectError: perrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			publisher := &recordingPublisher{}
			service := NewService(tc.mockStore, publisher, discardLogger)
			// when
			err := service.Update(context.Background(), tc.product)
			// then
			assert.Equal(t, tc.expectedSubjects, publisher.subjects)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func Test_ProductService_Delete(t *testing.T) {
	testCases := []struct {
		name             string
		product          *model.Product
		mockStore        *mockProductStore
		expectError      error
		expectedSubjects []string
	}{
		{
			name:             "Success - product deleted",
			product:          persistedProduct(),
			mockStore:        &mockProductStore{},
			expectedSubjects: []string{messaging.ProductsDeletedSubject},
		},
		{
			name:        "Error - product without id",
			product:     validProduct(),
			mockStore:   &mockProductStore{},
			expectError: perrors.ErrDataValidation,
		},
		{
			name:        "Error - product not found",
			product:     persistedProduct(),
			mockStore:   &mockProductStore{error: perrors.ErrProductNotFound},
			expectError: perrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			publisher := &recordingPublisher{}
			service := NewService(tc.mockStore, publisher, discardLogger)
			// when
			err := service.Delete(context.Background(), tc.product)
			// then
			assert.Equal(t, tc.expectedSubjects, publisher.subjects)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				if errors.Is(tc.expectError, perrors.ErrDataValidation) {
					assert.Empty(t, tc.mockStore.called, "store must not be called")
				}
				return
			}
			assert.NoError(t, err)
		})
	}
}

func Test_ProductService_PublishFailureDoesNotFailWrite(t *testing.T) {
	// given
	publisher := &recordingPublisher{error: errors.New("broker down")}
	service := NewService(&mockProductStore{}, publisher, discardLogger)
	p := validProduct()

	// when
	err := service.Create(context.Background(), p)

	// then
	require.NoError(t, err)
	assert.True(t, p.IsPersisted())
	assert.Equal(t, []string{messaging.ProductsCreatedSubject}, publisher.subjects)
}

func Test_IsClientError(t *testing.T) {
	assert.True(t, IsClientError(perrors.ErrDataValidation))
	assert.True(t, IsClientError(errors.Join(errors.New("wrapped"), perrors.ErrProductNotFound)))
	assert.False(t, IsClientError(errors.New("boom")))
}
