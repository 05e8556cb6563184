package service

import (
	"context"
	"errors"
	"testing"
	"time"

	retailerrors "github.com/finwatch/finwatch/internal/retail/errors"
	"github.com/finwatch/finwatch/internal/retail/store"
	"github.com/finwatch/finwatch/pkg/messaging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// mockSaleStore is a mock implementation of the store.Sales interface
type mockSaleStore struct {
	record    *store.SaleRecord
	items     []store.SaleItemRecord
	records   []store.SaleRecord
	err       error
	gotParams *store.CreateSaleParams
	gotFilter *store.SaleFilter
}

func (m *mockSaleStore) CreateSale(_ context.Context, params store.CreateSaleParams) (*store.SaleRecord, []store.SaleItemRecord, error) {
	m.gotParams = &params
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.record, m.items, nil
}

func (m *mockSaleStore) FindSaleByID(_ context.Context, _ uuid.UUID) (*store.SaleRecord, []store.SaleItemRecord, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.record, m.items, nil
}

func (m *mockSaleStore) FindSales(_ context.Context, filter store.SaleFilter) ([]store.SaleRecord, error) {
	m.gotFilter = &filter
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

func (m *mockSaleStore) FindSaleItems(_ context.Context, _ uuid.UUID) ([]store.SaleItemRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

// mockPublisher records every published event.
type mockPublisher struct {
	events []messaging.Event
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, event messaging.Event) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func fixedSaleRecord(saleTime time.Time) (*store.SaleRecord, []store.SaleItemRecord) {
	saleID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	storeID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174001")
	employeeID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174002")
	productID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174003")
	itemID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174004")

	record := &store.SaleRecord{
		ID:           saleID,
		SaleDateTime: saleTime,
		StoreID:      storeID,
		StoreName:    "Central",
		EmployeeID:   employeeID,
		EmployeeName: "Jane Doe",
		TotalAmount:  decimal.RequireFromString("15.00"),
		CreatedAt:    saleTime,
	}
	items := []store.SaleItemRecord{{
		ID:          itemID,
		SaleID:      saleID,
		ProductID:   productID,
		ProductName: "Milk 1L",
		Quantity:    3,
		UnitPrice:   decimal.RequireFromString("5.00"),
		Subtotal:    decimal.RequireFromString("15.00"),
	}}
	return record, items
}

func Test_SaleService_Create(t *testing.T) {
	saleTime := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	record, items := fixedSaleRecord(saleTime)

	testCases := []struct {
		name        string
		mockStore   *mockSaleStore
		expectError error
	}{
		{
			name:      "Success - sale committed",
			mockStore: &mockSaleStore{record: record, items: items},
		},
		{
			name:        "Error - store not found",
			mockStore:   &mockSaleStore{err: retailerrors.ErrStoreNotFound},
			expectError: retailerrors.ErrStoreNotFound,
		},
		{
			name:        "Error - duplicate sale",
			mockStore:   &mockSaleStore{err: retailerrors.ErrDuplicateSale},
			expectError: retailerrors.ErrDuplicateSale,
		},
		{
			name: "Error - insufficient stock",
			mockStore: &mockSaleStore{err: &retailerrors.InsufficientStockError{
				ProductName: "Milk 1L", Available: 2, Requested: 5,
			}},
			expectError: &retailerrors.InsufficientStockError{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			publisher := &mockPublisher{}
			svc := NewSaleService(tc.mockStore, publisher)
			dto := SaleCreateDto{
				SaleDateTime: saleTime,
				StoreID:      record.StoreID,
				EmployeeID:   record.EmployeeID,
				SaleItems:    []SaleItemCreateDto{{ProductID: items[0].ProductID, Quantity: 3}},
			}
			// when
			created, err := svc.Create(context.Background(), dto)
			// then
			if tc.expectError != nil {
				var stockErr *retailerrors.InsufficientStockError
				if errors.As(tc.expectError, &stockErr) {
					assert.ErrorAs(t, err, &stockErr)
				} else {
					assert.ErrorIs(t, err, tc.expectError)
				}
				assert.Nil(t, created)
				assert.Empty(t, publisher.events, "No event must be published on failure")
				return
			}
			require.NoError(t, err)
			require.NotNil(t, created)
			assert.Equal(t, record.ID, created.ID)
			assert.Equal(t, "Central", created.StoreName)
			assert.Equal(t, "Jane Doe", created.EmployeeName)
			assert.True(t, decimal.RequireFromString("15.00").Equal(created.TotalAmount))
			require.Len(t, created.SaleItems, 1)
			assert.Equal(t, "Milk 1L", created.SaleItems[0].ProductName)
			assert.True(t, decimal.RequireFromString("5.00").Equal(created.SaleItems[0].UnitPrice))
			assert.True(t, decimal.RequireFromString("15.00").Equal(created.SaleItems[0].Subtotal))

			// the store receives the lines in request order
			require.NotNil(t, tc.mockStore.gotParams)
			require.Len(t, tc.mockStore.gotParams.Items, 1)
			assert.Equal(t, int32(3), tc.mockStore.gotParams.Items[0].Quantity)

			require.Len(t, publisher.events, 1)
			assert.Equal(t, messaging.SalesCompletedSubject, publisher.events[0].Subject())
		})
	}
}

func Test_SaleService_Create_PublishFailureDoesNotFailSale(t *testing.T) {
	saleTime := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	record, items := fixedSaleRecord(saleTime)
	svc := NewSaleService(&mockSaleStore{record: record, items: items}, &mockPublisher{err: errors.New("nats down")})

	created, err := svc.Create(context.Background(), SaleCreateDto{
		SaleDateTime: saleTime,
		StoreID:      record.StoreID,
		EmployeeID:   record.EmployeeID,
		SaleItems:    []SaleItemCreateDto{{ProductID: items[0].ProductID, Quantity: 3}},
	})

	require.NoError(t, err, "A committed sale must not fail because the event could not be published")
	assert.NotNil(t, created)
}

func Test_SaleService_Create_NilPublisher(t *testing.T) {
	saleTime := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	record, items := fixedSaleRecord(saleTime)
	svc := NewSaleService(&mockSaleStore{record: record, items: items}, nil)

	created, err := svc.Create(context.Background(), SaleCreateDto{
		SaleDateTime: saleTime,
		StoreID:      record.StoreID,
		EmployeeID:   record.EmployeeID,
		SaleItems:    []SaleItemCreateDto{{ProductID: items[0].ProductID, Quantity: 3}},
	})

	require.NoError(t, err)
	assert.NotNil(t, created)
}

func Test_SaleService_Create_CountsCommittedSales(t *testing.T) {
	// given a real meter provider so the counter is observable
	reader := sdkmetric.NewManualReader()
	prev := otel.GetMeterProvider()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	t.Cleanup(func() { otel.SetMeterProvider(prev) })

	saleTime := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	record, items := fixedSaleRecord(saleTime)
	mockStore := &mockSaleStore{record: record, items: items}
	svc := NewSaleService(mockStore, nil)
	dto := SaleCreateDto{
		SaleDateTime: saleTime,
		StoreID:      record.StoreID,
		EmployeeID:   record.EmployeeID,
		SaleItems:    []SaleItemCreateDto{{ProductID: items[0].ProductID, Quantity: 3}},
	}

	// when two sales commit and one is rejected
	_, err := svc.Create(context.Background(), dto)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), dto)
	require.NoError(t, err)
	mockStore.err = retailerrors.ErrDuplicateSale
	_, err = svc.Create(context.Background(), dto)
	require.ErrorIs(t, err, retailerrors.ErrDuplicateSale)

	// then the counter reflects the committed sales only
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != "sales_created" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "sales_created must be an int64 sum")
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	assert.Equal(t, int64(2), total)
}

func Test_SaleService_FindByID(t *testing.T) {
	saleTime := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	record, items := fixedSaleRecord(saleTime)

	testCases := []struct {
		name        string
		mockStore   *mockSaleStore
		expectError error
	}{
		{
			name:      "Success - sale found",
			mockStore: &mockSaleStore{record: record, items: items},
		},
		{
			name:        "Error - sale not found",
			mockStore:   &mockSaleStore{err: retailerrors.ErrSaleNotFound},
			expectError: retailerrors.ErrSaleNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewSaleService(tc.mockStore, nil)
			found, err := svc.FindByID(context.Background(), record.ID)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, record.ID, found.ID)
			require.Len(t, found.SaleItems, 1)
			assert.Equal(t, items[0].ProductID, found.SaleItems[0].ProductID)
		})
	}
}

func Test_SaleService_Filters(t *testing.T) {
	saleTime := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	record, items := fixedSaleRecord(saleTime)
	from := saleTime.Add(-time.Hour)
	to := saleTime.Add(time.Hour)

	t.Run("FindByStore forwards the store filter", func(t *testing.T) {
		mockStore := &mockSaleStore{records: []store.SaleRecord{*record}, items: items}
		svc := NewSaleService(mockStore, nil)
		sales, err := svc.FindByStore(context.Background(), record.StoreID)
		require.NoError(t, err)
		require.Len(t, sales, 1)
		require.NotNil(t, mockStore.gotFilter)
		assert.Equal(t, record.StoreID, mockStore.gotFilter.StoreID)
		assert.Equal(t, uuid.Nil, mockStore.gotFilter.EmployeeID)
	})

	t.Run("FindByEmployee forwards the employee filter", func(t *testing.T) {
		mockStore := &mockSaleStore{records: []store.SaleRecord{*record}, items: items}
		svc := NewSaleService(mockStore, nil)
		sales, err := svc.FindByEmployee(context.Background(), record.EmployeeID)
		require.NoError(t, err)
		require.Len(t, sales, 1)
		require.NotNil(t, mockStore.gotFilter)
		assert.Equal(t, record.EmployeeID, mockStore.gotFilter.EmployeeID)
	})

	t.Run("FindByDateRange forwards both bounds", func(t *testing.T) {
		mockStore := &mockSaleStore{records: []store.SaleRecord{*record}, items: items}
		svc := NewSaleService(mockStore, nil)
		sales, err := svc.FindByDateRange(context.Background(), from, to)
		require.NoError(t, err)
		require.Len(t, sales, 1)
		require.NotNil(t, mockStore.gotFilter)
		assert.Equal(t, from, mockStore.gotFilter.From)
		assert.Equal(t, to, mockStore.gotFilter.To)
	})

	t.Run("FindAll uses an empty filter", func(t *testing.T) {
		mockStore := &mockSaleStore{records: []store.SaleRecord{*record}, items: items}
		svc := NewSaleService(mockStore, nil)
		sales, err := svc.FindAll(context.Background())
		require.NoError(t, err)
		require.Len(t, sales, 1)
		require.NotNil(t, mockStore.gotFilter)
		assert.Equal(t, store.SaleFilter{}, *mockStore.gotFilter)
	})
}
