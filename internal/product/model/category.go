package model

import (
	"fmt"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
)

// Category is the closed set of product categories.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryCloths
	CategoryFood
	CategoryHousewares
	CategoryAutomotive
	CategoryTools
)

var categoryNames = [...]string{
	CategoryUnknown:    "UNKNOWN",
	CategoryCloths:     "CLOTHS",
	CategoryFood:       "FOOD",
	CategoryHousewares: "HOUSEWARES",
	CategoryAutomotive: "AUTOMOTIVE",
	CategoryTools:      "TOOLS",
}

// Categories returns every category in ordinal order.
func Categories() []Category {
	all := make([]Category, len(categoryNames))
	for i := range categoryNames {
		all[i] = Category(i)
	}
	return all
}

// IsValid reports whether c is one of the enumerated categories.
func (c Category) IsValid() bool {
	return c >= CategoryUnknown && int(c) < len(categoryNames)
}

func (c Category) String() string {
	if !c.IsValid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory returns the category with the given name. Names are case-sensitive.
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return CategoryUnknown, fmt.Errorf("%w: invalid category %q", perrors.ErrDataValidation, name)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: invalid category %d", perrors.ErrDataValidation, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
