// Package model defines the Product record, its category enumeration and the
// conversion between a Product and its plain key-value representation.
package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// PriceScale is the number of fractional digits kept for prices.
	PriceScale = 2
	// MaxPriceDigits is the number of integer digits of a price column, NUMERIC(14,2).
	MaxPriceDigits = 12
)

// MaxPrice is the smallest price the price column cannot hold.
var MaxPrice = decimal.New(1, MaxPriceDigits)

// Product is one catalog record. ID is uuid.Nil until the product is first persisted.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"        validate:"required,max=100"`
	Description string          `json:"description" validate:"max=250"`
	Price       decimal.Decimal `json:"price"       validate:"gte=0,lt=1000000000000"`
	Available   bool            `json:"available"`
	Category    Category        `json:"category"    validate:"product_category"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json names in validation messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("product_category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().Int()).IsValid()
	})
	return v
}

// IsPersisted reports whether the product has been assigned an identifier.
func (p *Product) IsPersisted() bool {
	return p.ID != uuid.Nil
}

// Validate checks the field constraints of the product.
// The returned error wraps ErrDataValidation and names every failing field.
func (p *Product) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			msgs = append(msgs, fieldErr.Field()+" failed on rule: "+fieldErr.Tag())
		}
		return fmt.Errorf("%w: %s", perrors.ErrDataValidation, strings.Join(msgs, "; "))
	}
	return fmt.Errorf("%w: %v", perrors.ErrDataValidation, err)
}

func (p *Product) String() string {
	id := "None"
	if p.IsPersisted() {
		id = p.ID.String()
	}
	return fmt.Sprintf("<Product %s id=[%s]>", p.Name, id)
}
