package ledger

import "fmt"

// ValidationError is a business-rule failure; controllers surface it as 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError names the missing record; controllers surface it as 404.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// InsufficientStockError names the product and both quantities.
type InsufficientStockError struct {
	Product   string
	Requested float64
	Available float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %.2f, available %.2f",
		e.Product, e.Requested, e.Available)
}
