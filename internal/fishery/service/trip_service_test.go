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

func Test_TripService_Create(t *testing.T) {
	start := time.Date(2026, 5, 1, 6, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)

	testCases := []struct {
		name        string
		dto         TripCreateDto
		expectError error
	}{
		{
			name: "Success - open trip with catches",
			dto: TripCreateDto{ShipID: 1, StartTime: start, Catches: []CatchCreateDto{
				{FishType: "Sprat", QuantityKg: decimal.NewFromInt(120)},
				{FishType: "Turbot", QuantityKg: decimal.NewFromInt(30)},
			}},
		},
		{
			name: "Success - completed trip",
			dto:  TripCreateDto{ShipID: 1, StartTime: start, EndTime: &end},
		},
		{
			name:        "Error - end before start",
			dto:         TripCreateDto{ShipID: 1, StartTime: end, EndTime: &start},
			expectError: fisheryerrors.ErrInvalidPeriod,
		},
		{
			name:        "Error - ship not found",
			dto:         TripCreateDto{ShipID: 99, StartTime: start},
			expectError: fisheryerrors.ErrShipNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewTripService(&mockTrips{}, testShips())
			created, err := svc.Create(context.Background(), tc.dto)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, created)
			assert.Equal(t, tc.dto.EndTime != nil, created.IsCompleted)
			assert.Len(t, created.Catches, len(tc.dto.Catches))
		})
	}
}

func Test_TripService_ComputedFields(t *testing.T) {
	start := time.Date(2026, 5, 1, 6, 0, 0, 0, time.UTC)
	end := start.Add(10*time.Hour + 30*time.Minute)

	trips := &mockTrips{}
	svc := NewTripService(trips, testShips())
	created, err := svc.Create(context.Background(), TripCreateDto{
		ShipID: 1, StartTime: start, EndTime: &end,
		Catches: []CatchCreateDto{
			{FishType: "Sprat", QuantityKg: decimal.RequireFromString("120.50")},
			{FishType: "Turbot", QuantityKg: decimal.RequireFromString("29.50")},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, created.DurationHours)
	assert.InDelta(t, 10.5, *created.DurationHours, 0.001)
	assert.True(t, decimal.RequireFromString("150").Equal(created.TotalCatchKg))
	assert.True(t, created.IsCompleted)
}

func Test_TripService_Complete(t *testing.T) {
	start := time.Date(2026, 5, 1, 6, 0, 0, 0, time.UTC)
	now := start.Add(9 * time.Hour)
	fuel := decimal.RequireFromString("80.5")

	t.Run("Success - running trip completed", func(t *testing.T) {
		trips := &mockTrips{trips: []store.Trip{{ID: 1, ShipID: 1, StartTime: start}}, nextID: 1}
		svc := NewTripService(trips, testShips())
		svc.now = func() time.Time { return now }

		completed, err := svc.Complete(context.Background(), 1, &fuel)
		require.NoError(t, err)
		require.NotNil(t, completed)
		assert.True(t, completed.IsCompleted)
		require.NotNil(t, completed.EndTime)
		assert.Equal(t, now, *completed.EndTime)
		require.NotNil(t, completed.FuelUsed)
		assert.True(t, fuel.Equal(*completed.FuelUsed))
	})

	t.Run("Error - already completed", func(t *testing.T) {
		end := start.Add(4 * time.Hour)
		trips := &mockTrips{trips: []store.Trip{{ID: 1, ShipID: 1, StartTime: start, EndTime: &end}}, nextID: 1}
		svc := NewTripService(trips, testShips())

		completed, err := svc.Complete(context.Background(), 1, &fuel)
		assert.ErrorIs(t, err, fisheryerrors.ErrTripAlreadyCompleted)
		assert.Nil(t, completed)
	})

	t.Run("Error - trip not found", func(t *testing.T) {
		svc := NewTripService(&mockTrips{}, testShips())
		completed, err := svc.Complete(context.Background(), 42, nil)
		assert.ErrorIs(t, err, fisheryerrors.ErrTripNotFound)
		assert.Nil(t, completed)
	})
}

func Test_TripService_Update(t *testing.T) {
	start := time.Date(2026, 5, 1, 6, 0, 0, 0, time.UTC)

	t.Run("Update replaces the catch list", func(t *testing.T) {
		trips := &mockTrips{}
		svc := NewTripService(trips, testShips())
		created, err := svc.Create(context.Background(), TripCreateDto{
			ShipID: 1, StartTime: start,
			Catches: []CatchCreateDto{{FishType: "Sprat", QuantityKg: decimal.NewFromInt(100)}},
		})
		require.NoError(t, err)

		updated, err := svc.Update(context.Background(), created.ID, TripUpdateDto{
			Catches: []CatchCreateDto{
				{FishType: "Turbot", QuantityKg: decimal.NewFromInt(20)},
				{FishType: "Mackerel", QuantityKg: decimal.NewFromInt(35)},
			},
		})
		require.NoError(t, err)
		require.Len(t, updated.Catches, 2)
		assert.Equal(t, "Turbot", updated.Catches[0].FishType)
		assert.True(t, decimal.NewFromInt(55).Equal(updated.TotalCatchKg))
	})

	t.Run("Error - end before stored start", func(t *testing.T) {
		trips := &mockTrips{trips: []store.Trip{{ID: 1, ShipID: 1, StartTime: start}}, nextID: 1}
		svc := NewTripService(trips, testShips())
		badEnd := start.Add(-time.Hour)

		updated, err := svc.Update(context.Background(), 1, TripUpdateDto{EndTime: &badEnd})
		assert.ErrorIs(t, err, fisheryerrors.ErrInvalidPeriod)
		assert.Nil(t, updated)
	})
}

func Test_TripService_ActiveAndCompleted(t *testing.T) {
	start := time.Date(2026, 5, 1, 6, 0, 0, 0, time.UTC)
	end := start.Add(5 * time.Hour)

	trips := &mockTrips{trips: []store.Trip{
		{ID: 1, ShipID: 1, StartTime: start},
		{ID: 2, ShipID: 1, StartTime: start, EndTime: &end},
	}, nextID: 2}
	svc := NewTripService(trips, testShips())

	active, err := svc.FindActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, int64(1), active[0].ID)
	assert.False(t, active[0].IsCompleted)

	completed, err := svc.FindCompleted(context.Background())
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, int64(2), completed[0].ID)
	assert.True(t, completed[0].IsCompleted)
}
