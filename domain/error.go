// Package domain defines error types for the shopping cart.
package domain

import (
	"errors"
	"fmt"
)

// ProductNotFoundError is returned when a product with the given SKU is not in the catalog
type ProductNotFoundError struct {
	ProductID string
}

// Error implements the error interface for ProductNotFoundError
func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: id=%s", e.ProductID)
}

// Is allows proper error type checking with errors.Is()
func (e *ProductNotFoundError) Is(target error) bool {
	_, ok := target.(*ProductNotFoundError)
	return ok
}

// ValidationError is returned when an input fails validation before any state is touched
type ValidationError struct {
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field=%s, reason=%s, value=%v", e.Field, e.Reason, e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// DuplicateProductError is returned when a SKU is already present in the catalog.
// It also reports as a ValidationError.
type DuplicateProductError struct {
	ProductID string
}

// Error implements the error interface for DuplicateProductError
func (e *DuplicateProductError) Error() string {
	return fmt.Sprintf("duplicate product: id=%s already exists", e.ProductID)
}

// Is allows proper error type checking with errors.Is()
func (e *DuplicateProductError) Is(target error) bool {
	switch target.(type) {
	case *DuplicateProductError, *ValidationError:
		return true
	}
	return false
}

// Helper functions for creating errors with context

// NewProductNotFoundError creates a new ProductNotFoundError
func NewProductNotFoundError(productID string) error {
	return &ProductNotFoundError{ProductID: productID}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, reason string, value interface{}) error {
	return &ValidationError{
		Field:  field,
		Reason: reason,
		Value:  value,
	}
}

// NewDuplicateProductError creates a new DuplicateProductError
func NewDuplicateProductError(productID string) error {
	return &DuplicateProductError{ProductID: productID}
}

// Type assertion helpers

// IsProductNotFoundError checks if an error is a ProductNotFoundError
func IsProductNotFoundError(err error) bool {
	var pnf *ProductNotFoundError
	return errors.As(err, &pnf)
}

// IsValidationError reports whether err is a validation failure, duplicates included
func IsValidationError(err error) bool {
	return errors.Is(err, &ValidationError{})
}

// IsDuplicateProductError checks if an error is a DuplicateProductError
func IsDuplicateProductError(err error) bool {
	var dpe *DuplicateProductError
	return errors.As(err, &dpe)
}
