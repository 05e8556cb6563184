// Package service provides the implementation of retail back-office business logic.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finwatch/finwatch/internal/retail/store"
	"github.com/finwatch/finwatch/pkg/messaging"
	"github.com/finwatch/finwatch/pkg/messaging/events"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// SaleService defines the sale transaction workflow and its queries.
type SaleService interface {
	// Create validates the proposed sale and commits the sale, its items and the
	// product stock decrements as one atomic unit. On failure nothing is
	// persisted; the returned error is one of the kinds in the errors package.
	Create(ctx context.Context, sale SaleCreateDto) (*SaleDto, error)

	// FindByID retrieves a hydrated sale by its unique identifier.
	// Returns ErrSaleNotFound if no sale exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*SaleDto, error)

	// FindAll returns every sale, newest first.
	FindAll(ctx context.Context) ([]SaleDto, error)

	// FindByStore returns all sales registered at the given store, newest first.
	FindByStore(ctx context.Context, storeID uuid.UUID) ([]SaleDto, error)

	// FindByEmployee returns all sales registered by the given employee, newest first.
	FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]SaleDto, error)

	// FindByDateRange returns all sales within [from, to], newest first.
	FindByDateRange(ctx context.Context, from, to time.Time) ([]SaleDto, error)
}

// Sales implements SaleService on top of the transactional sale store.
type Sales struct {
	saleStore    store.Sales
	publisher    messaging.Publisher
	salesCounter metric.Int64Counter
}

// NewSaleService creates a new SaleService. publisher may be nil when event
// publication is disabled.
func NewSaleService(saleStore store.Sales, publisher messaging.Publisher) *Sales {
	meter := otel.Meter("retail-service")
	salesCounter, err := meter.Int64Counter("sales_created", metric.WithDescription("Total number of committed sales"))
	if err != nil {
		panic(fmt.Sprintf("failed to create sales_created counter: %v", err))
	}
	return &Sales{saleStore: saleStore, publisher: publisher, salesCounter: salesCounter}
}

// SaleDto is the hydrated representation of a committed sale.
type SaleDto struct {
	ID           uuid.UUID       `json:"id"`
	SaleDateTime time.Time       `json:"saleDateTime"`
	StoreID      uuid.UUID       `json:"storeId"`
	StoreName    string          `json:"storeName"`
	EmployeeID   uuid.UUID       `json:"employeeId"`
	EmployeeName string          `json:"employeeName"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	CreatedAt    time.Time       `json:"createdAt"`
	SaleItems    []SaleItemDto   `json:"saleItems"`
}

// SaleItemDto is one hydrated sale line.
type SaleItemDto struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleCreateDto is the proposed sale as supplied by the caller.
type SaleCreateDto struct {
	SaleDateTime time.Time           `json:"saleDateTime" validate:"required"`
	StoreID      uuid.UUID           `json:"storeId" validate:"required"`
	EmployeeID   uuid.UUID           `json:"employeeId" validate:"required"`
	SaleItems    []SaleItemCreateDto `json:"saleItems" validate:"required,gt=0,dive"`
}

// SaleItemCreateDto is one proposed sale line.
type SaleItemCreateDto struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int32     `json:"quantity" validate:"required,min=1"`
}

func (s *Sales) Create(ctx context.Context, sale SaleCreateDto) (*SaleDto, error) {
	params := store.CreateSaleParams{
		SaleDateTime: sale.SaleDateTime,
		StoreID:      sale.StoreID,
		EmployeeID:   sale.EmployeeID,
		Items:        make([]store.SaleLineParams, 0, len(sale.SaleItems)),
	}
	for _, item := range sale.SaleItems {
		params.Items = append(params.Items, store.SaleLineParams{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	record, items, err := s.saleStore.CreateSale(ctx, params)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := events.SaleCompletedEvent{
			SaleID:      record.ID,
			StoreID:     record.StoreID,
			EmployeeID:  record.EmployeeID,
			TotalAmount: record.TotalAmount,
			SoldAt:      record.SaleDateTime,
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			// The sale is already committed; losing the event must not fail it.
			slog.ErrorContext(ctx, "Failed to publish SaleCompletedEvent", "sale_id", record.ID, "error", err)
		}
	}

	// increase the number of committed sales
	s.salesCounter.Add(ctx, 1)

	return toSaleDto(record, items), nil
}

func (s *Sales) FindByID(ctx context.Context, id uuid.UUID) (*SaleDto, error) {
	record, items, err := s.saleStore.FindSaleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSaleDto(record, items), nil
}

func (s *Sales) FindAll(ctx context.Context) ([]SaleDto, error) {
	return s.findFiltered(ctx, store.SaleFilter{})
}

func (s *Sales) FindByStore(ctx context.Context, storeID uuid.UUID) ([]SaleDto, error) {
	return s.findFiltered(ctx, store.SaleFilter{StoreID: storeID})
}

func (s *Sales) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]SaleDto, error) {
	return s.findFiltered(ctx, store.SaleFilter{EmployeeID: employeeID})
}

func (s *Sales) FindByDateRange(ctx context.Context, from, to time.Time) ([]SaleDto, error) {
	return s.findFiltered(ctx, store.SaleFilter{From: from, To: to})
}

func (s *Sales) findFiltered(ctx context.Context, filter store.SaleFilter) ([]SaleDto, error) {
	records, err := s.saleStore.FindSales(ctx, filter)
	if err != nil {
		return nil, err
	}
	dtos := make([]SaleDto, 0, len(records))
	for i := range records {
		items, err := s.saleStore.FindSaleItems(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *toSaleDto(&records[i], items))
	}
	return dtos, nil
}

// toSaleDto converts store records to the hydrated DTO.
func toSaleDto(record *store.SaleRecord, items []store.SaleItemRecord) *SaleDto {
	if record == nil {
		return nil
	}
	itemDtos := make([]SaleItemDto, 0, len(items))
	for _, item := range items {
		itemDtos = append(itemDtos, SaleItemDto{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	return &SaleDto{
		ID:           record.ID,
		SaleDateTime: record.SaleDateTime,
		StoreID:      record.StoreID,
		StoreName:    record.StoreName,
		EmployeeID:   record.EmployeeID,
		EmployeeName: record.EmployeeName,
		TotalAmount:  record.TotalAmount,
		CreatedAt:    record.CreatedAt,
		SaleItems:    itemDtos,
	}
}
