package service

import (
	"context"
	"testing"
	"time"

	fisheryerrors "github.com/finwatch/finwatch/internal/fishery/errors"
	"github.com/finwatch/finwatch/internal/fishery/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShips() *mockShips {
	return &mockShips{
		ships: map[int64]store.Ship{
			1: {ID: 1, Name: "Sea Star", RegistrationNumber: "BG-1001", OwnerID: 3,
				OwnerName: "Stefan Dimitrov", EnginePower: decimal.NewFromInt(400), FuelType: store.FuelDiesel},
		},
		nextID: 1,
	}
}

func Test_PermitService_Create(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name        string
		dto         PermitCreateDto
		expectError error
	}{
		{
			name: "Success - permit created",
			dto:  PermitCreateDto{ShipID: 1, ValidFrom: from, ValidTo: to, AllowedGear: "Trawl"},
		},
		{
			name:        "Error - period inverted",
			dto:         PermitCreateDto{ShipID: 1, ValidFrom: to, ValidTo: from, AllowedGear: "Trawl"},
			expectError: fisheryerrors.ErrInvalidPeriod,
		},
		{
			name:        "Error - period empty",
			dto:         PermitCreateDto{ShipID: 1, ValidFrom: from, ValidTo: from, AllowedGear: "Trawl"},
			expectError: fisheryerrors.ErrInvalidPeriod,
		},
		{
			name:        "Error - ship not found",
			dto:         PermitCreateDto{ShipID: 99, ValidFrom: from, ValidTo: to, AllowedGear: "Trawl"},
			expectError: fisheryerrors.ErrShipNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewPermitService(&mockPermits{}, testShips())
			created, err := svc.Create(context.Background(), tc.dto)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, created)
			assert.Equal(t, int64(1), created.ID)
			assert.Equal(t, "Trawl", created.AllowedGear)
		})
	}
}

func Test_PermitService_ComputedFields(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	permits := &mockPermits{permits: []store.Permit{
		{ID: 1, ShipID: 1, ValidFrom: now.AddDate(-1, 0, 0), ValidTo: now.AddDate(0, 0, 10)},
		{ID: 2, ShipID: 1, ValidFrom: now.AddDate(-1, 0, 0), ValidTo: now.AddDate(0, 0, -3)},
	}}
	svc := NewPermitService(permits, testShips())
	svc.now = func() time.Time { return now }

	dtos, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, dtos, 2)

	assert.False(t, dtos[0].IsExpired)
	assert.Equal(t, int32(10), dtos[0].DaysUntilExpiry)

	assert.True(t, dtos[1].IsExpired)
	assert.Equal(t, int32(0), dtos[1].DaysUntilExpiry, "Expired permits report zero days, not negative")
}

func Test_PermitService_FindExpiring(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	permits := &mockPermits{permits: []store.Permit{
		{ID: 1, ShipID: 1, ValidFrom: now.AddDate(-1, 0, 0), ValidTo: now.AddDate(0, 0, 25)},
		{ID: 2, ShipID: 1, ValidFrom: now.AddDate(-1, 0, 0), ValidTo: now.AddDate(0, 0, 5)},
		{ID: 3, ShipID: 1, ValidFrom: now.AddDate(-1, 0, 0), ValidTo: now.AddDate(0, 0, 90)},
		{ID: 4, ShipID: 1, ValidFrom: now.AddDate(-1, 0, 0), ValidTo: now.AddDate(0, 0, -1)},
	}}
	svc := NewPermitService(permits, testShips())
	svc.now = func() time.Time { return now }

	dtos, err := svc.FindExpiring(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, dtos, 2)
	// soonest expiry first
	assert.Equal(t, int64(2), dtos[0].ID)
	assert.Equal(t, int64(1), dtos[1].ID)
}

func Test_PermitService_Update_InvalidPeriod(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewPermitService(&mockPermits{permits: []store.Permit{{ID: 1, ShipID: 1}}}, testShips())

	updated, err := svc.Update(context.Background(), 1, PermitCreateDto{
		ShipID: 1, ValidFrom: from, ValidTo: from.AddDate(0, 0, -1), AllowedGear: "Nets",
	})
	assert.ErrorIs(t, err, fisheryerrors.ErrInvalidPeriod)
	assert.Nil(t, updated)
}
