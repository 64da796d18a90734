// Package modeltest builds randomized products for tests.
package modeltest

import (
	"fmt"
	"math/rand/v2"

	"github.com/abgdnv/productcatalog/internal/product/model"
	"github.com/shopspring/decimal"
)

var names = []string{"Hat", "Pants", "Shirt", "Apple", "Banana", "Pots", "Towels", "Ford", "Chevy", "Hammer", "Wrench"}

// NewProduct returns a valid, not yet persisted product with random field values.
func NewProduct() *model.Product {
	categories := model.Categories()
	return &model.Product{
		Name:        names[rand.IntN(len(names))],
		Description: fmt.Sprintf("Description %d", rand.IntN(100000)),
		Price:       decimal.New(int64(50+rand.IntN(200000-50)), -model.PriceScale),
		Available:   rand.IntN(2) == 0,
		Category:    categories[rand.IntN(len(categories))],
	}
}

// NewProducts returns n products built by NewProduct.
func NewProducts(n int) []*model.Product {
	products := make([]*model.Product, n)
	for i := range products {
		products[i] = NewProduct()
	}
	return products
}
