package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports a business-rule violation. These are recoverable:
// callers show the message and let the user retry.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalidf builds a ValidationError from a format string.
func Invalidf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a business-rule violation.
func IsValidation(err error) bool {
	var ve *ValidationError
	var ise *InsufficientStockError
	return errors.As(err, &ve) || errors.As(err, &ise)
}

// InsufficientStockError is raised when a requested quantity exceeds the
// available stock of a product.
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: available %d, requested %d",
		e.ProductName, e.Available, e.Requested)
}

// PersistenceError reports a failure reading, parsing or writing a backing
// file. Line is the 1-based offending line when the failure is line-scoped,
// zero otherwise.
type PersistenceError struct {
	File string
	Line int
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsPersistence reports whether err is a data-processing failure.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
