// Package store provides the retail persistence layer: row types and the
// interfaces the service layer depends on.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store is a retail outlet row.
type Store struct {
	ID         uuid.UUID
	Name       string
	Address    string
	Manager    string
	Region     string
	Territory  string
	District   string
	Settlement string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Employee is an employee row.
type Employee struct {
	ID                  uuid.UUID
	FirstName           string
	LastName            string
	Position            string
	MonthlySalary       decimal.Decimal
	EmploymentStartDate time.Time
	StoreID             uuid.UUID
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}

// Category is a product category row.
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Product is a catalog row. AvailableQuantity never goes below zero: the sale
// transaction checks it under a row lock and the schema backs it with a CHECK
// constraint.
type Product struct {
	ID                uuid.UUID
	Code              string
	Name              string
	CategoryID        uuid.UUID
	PurchasePrice     decimal.Decimal
	SellingPrice      decimal.Decimal
	AvailableQuantity int32
	ExpirationDate    *time.Time
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// SaleRecord is a sale row hydrated with store and employee names.
type SaleRecord struct {
	ID           uuid.UUID
	SaleDateTime time.Time
	StoreID      uuid.UUID
	StoreName    string
	EmployeeID   uuid.UUID
	EmployeeName string
	TotalAmount  decimal.Decimal
	CreatedAt    time.Time
}

// SaleItemRecord is a sale line hydrated with the product name. UnitPrice is
// the selling price captured at sale time.
type SaleItemRecord struct {
	ID          uuid.UUID
	SaleID      uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int32
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// CreateSaleParams carries a proposed sale into the transactional workflow.
type CreateSaleParams struct {
	SaleDateTime time.Time
	StoreID      uuid.UUID
	EmployeeID   uuid.UUID
	Items        []SaleLineParams
}

// SaleLineParams is one proposed sale line.
type SaleLineParams struct {
	ProductID uuid.UUID
	Quantity  int32
}

// SaleFilter narrows sale queries. Zero values mean "no constraint".
type SaleFilter struct {
	StoreID    uuid.UUID
	EmployeeID uuid.UUID
	From       time.Time
	To         time.Time
}

// Directory is the read/write access to stores and employees.
type Directory interface {
	CreateStore(ctx context.Context, s *Store) (*Store, error)
	FindStoreByID(ctx context.Context, id uuid.UUID) (*Store, error)
	FindAllStores(ctx context.Context) ([]Store, error)
	UpdateStore(ctx context.Context, s *Store) (*Store, error)
	DeleteStore(ctx context.Context, id uuid.UUID) error

	CreateEmployee(ctx context.Context, e *Employee) (*Employee, error)
	FindEmployeeByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindAllEmployees(ctx context.Context) ([]Employee, error)
	FindEmployeesByStore(ctx context.Context, storeID uuid.UUID) ([]Employee, error)
	UpdateEmployee(ctx context.Context, e *Employee) (*Employee, error)
	DeleteEmployee(ctx context.Context, id uuid.UUID) error
}

// Catalog is the read/write access to categories and products.
type Catalog interface {
	CreateCategory(ctx context.Context, c *Category) (*Category, error)
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAllCategories(ctx context.Context) ([]Category, error)
	UpdateCategory(ctx context.Context, c *Category) (*Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, p *Product) (*Product, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAllProducts(ctx context.Context) ([]Product, error)
	FindProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]Product, error)
	FindLowStockProducts(ctx context.Context, threshold int32) ([]Product, error)
	FindExpiringProducts(ctx context.Context, before time.Time) ([]Product, error)
	UpdateProduct(ctx context.Context, p *Product) (*Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// Sales is the sale workflow and its queries.
//
// CreateSale runs the whole validation and mutation sequence inside a
// single database transaction: store and employee existence, the one-minute
// duplicate bucket, then per line in input order a product row lock, stock
// check, price snapshot and decrement. Either the sale, all its items, and all
// quantity decrements commit together, or nothing is visible to any reader.
type Sales interface {
	CreateSale(ctx context.Context, params CreateSaleParams) (*SaleRecord, []SaleItemRecord, error)
	FindSaleByID(ctx context.Context, id uuid.UUID) (*SaleRecord, []SaleItemRecord, error)
	FindSales(ctx context.Context, filter SaleFilter) ([]SaleRecord, error)
	FindSaleItems(ctx context.Context, saleID uuid.UUID) ([]SaleItemRecord, error)
}
