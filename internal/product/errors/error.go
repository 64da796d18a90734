// Package errors provides the sentinel errors of the product catalog.
package errors

import "errors"

// ErrProductNotFound is returned when no product exists with the requested identifier.
var ErrProductNotFound = errors.New("product not found")

// ErrDataValidation is wrapped by every error caused by invalid product data,
// including updates or deletes of a product that was never persisted.
var ErrDataValidation = errors.New("data validation error")
