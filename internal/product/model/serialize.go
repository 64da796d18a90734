package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Serialize converts the product into a plain mapping.
// id is nil for a product that was never persisted; price is a decimal string.
func (p *Product) Serialize() map[string]any {
	var id any
	if p.IsPersisted() {
		id = p.ID.String()
	}
	return map[string]any{
		"id":          id,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.StringFixed(PriceScale),
		"available":   p.Available,
		"category":    p.Category.String(),
	}
}

// Deserialize populates the product from a plain mapping. The identifier is left untouched.
// Every key is required. price accepts numbers and string-encoded decimals.
// On error the product is not modified and the error wraps ErrDataValidation.
func (p *Product) Deserialize(data map[string]any) error {
	if data == nil {
		return fmt.Errorf("%w: body of request contained no data", perrors.ErrDataValidation)
	}
	name, err := stringField(data, "name")
	if err != nil {
		return err
	}
	description, err := stringField(data, "description")
	if err != nil {
		return err
	}
	price, err := priceField(data, "price")
	if err != nil {
		return err
	}
	available, err := boolField(data, "available")
	if err != nil {
		return err
	}
	category, err := categoryField(data, "category")
	if err != nil {
		return err
	}

	candidate := Product{
		ID:          p.ID,
		Name:        name,
		Description: description,
		Price:       price,
		Available:   available,
		Category:    category,
	}
	if err := candidate.Validate(); err != nil {
		return err
	}
	*p = candidate
	return nil
}

// ParseID parses a serialized identifier.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id %q", perrors.ErrDataValidation, raw)
	}
	return id, nil
}

// ParsePrice converts a number or a string-encoded decimal into a price rounded to PriceScale digits.
// Values a NUMERIC(14,2) column cannot hold are rejected before rounding.
func ParsePrice(raw any) (decimal.Decimal, error) {
	var (
		d   decimal.Decimal
		err error
	)
	switch v := raw.(type) {
	case decimal.Decimal:
		d = v
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(v))
	case json.Number:
		d, err = decimal.NewFromString(v.String())
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, fmt.Errorf("%w: invalid price %v", perrors.ErrDataValidation, raw)
		}
		d = decimal.NewFromFloat(v)
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return decimal.Zero, fmt.Errorf("%w: invalid price %v", perrors.ErrDataValidation, raw)
		}
		d = decimal.NewFromFloat32(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int32:
		d = decimal.NewFromInt32(v)
	case int64:
		d = decimal.NewFromInt(v)
	default:
		return decimal.Zero, fmt.Errorf("%w: invalid type for price [%T]", perrors.ErrDataValidation, raw)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid price %v", perrors.ErrDataValidation, raw)
	}
	return roundPrice(d)
}

// roundPrice rounds d to PriceScale digits. The magnitude is checked on the exponent first:
// rescaling a short literal such as 1e30000000 would allocate a 10^exp integer.
func roundPrice(d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsZero() {
		return decimal.Zero, nil
	}
	magnitude := int(d.Exponent()) + d.NumDigits()
	switch {
	case magnitude > MaxPriceDigits:
		return decimal.Zero, fmt.Errorf("%w: price out of range: must be less than %s", perrors.ErrDataValidation, MaxPrice)
	case magnitude < -PriceScale:
		// rounds to zero at PriceScale
		return decimal.Zero, nil
	}
	rounded := d.Round(PriceScale)
	if rounded.Abs().GreaterThanOrEqual(MaxPrice) {
		return decimal.Zero, fmt.Errorf("%w: price out of range: must be less than %s", perrors.ErrDataValidation, MaxPrice)
	}
	return rounded, nil
}

func lookup(data map[string]any, key string) (any, error) {
	raw, ok := data[key]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", perrors.ErrDataValidation, key)
	}
	return raw, nil
}

func stringField(data map[string]any, key string) (string, error) {
	raw, err := lookup(data, key)
	if err != nil {
		return "", err
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: invalid type for string [%s]: %T", perrors.ErrDataValidation, key, raw)
	}
	return s, nil
}

func boolField(data map[string]any, key string) (bool, error) {
	raw, err := lookup(data, key)
	if err != nil {
		return false, err
	}
	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%w: invalid type for boolean [%s]: %T", perrors.ErrDataValidation, key, raw)
	}
	return b, nil
}

func priceField(data map[string]any, key string) (decimal.Decimal, error) {
	raw, err := lookup(data, key)
	if err != nil {
		return decimal.Zero, err
	}
	return ParsePrice(raw)
}

func categoryField(data map[string]any, key string) (Category, error) {
	raw, err := lookup(data, key)
	if err != nil {
		return CategoryUnknown, err
	}
	name, ok := raw.(string)
	if !ok {
		return CategoryUnknown, fmt.Errorf("%w: invalid type for category [%s]: %T", perrors.ErrDataValidation, key, raw)
	}
	return ParseCategory(name)
}
