package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount rejects non-positive or over-balance debt payments.
	ErrInvalidAmount = errors.New("invalid payment amount")

	// ErrProductInUse blocks deleting a product still referenced by sale items.
	ErrProductInUse = errors.New("product is referenced by existing sales")
)

// InsufficientStockError names the product whose available stock cannot cover
// the requested quantity. Raised at cart-add time and re-raised at commit time
// after re-checking under the row lock.
type InsufficientStockError struct {
	ProductID uint
	Code      string
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (%s): requested %d, available %d",
		e.Name, e.Code, e.Requested, e.Available)
}
