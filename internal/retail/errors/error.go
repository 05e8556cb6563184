// Package errors provides error kinds for retail back-office operations.
// Every validation failure is a distinct kind so callers can branch without
// matching message strings.
package errors

import (
	"errors"
	"fmt"
)

var ErrStoreNotFound = errors.New("store not found")
var ErrEmployeeNotFound = errors.New("employee not found")
var ErrCategoryNotFound = errors.New("category not found")
var ErrProductNotFound = errors.New("product not found")
var ErrSaleNotFound = errors.New("sale not found")

var ErrProductCodeTaken = errors.New("product code already exists")

// ErrDuplicateSale is returned when another sale for the same store and employee
// already exists within the same one-minute bucket.
var ErrDuplicateSale = errors.New("a sale with this datetime, store, and employee combination already exists")

// ErrTransactionAborted is returned when the underlying persistence failed to
// begin or commit; all staged changes have been rolled back.
var ErrTransactionAborted = errors.New("sale transaction aborted")

// InsufficientStockError is returned when a sale line requests more units than
// the product has in stock. It carries enough detail for a user-facing message.
type InsufficientStockError struct {
	ProductName string
	Available   int32
	Requested   int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s. Available: %d, Requested: %d",
		e.ProductName, e.Available, e.Requested)
}
