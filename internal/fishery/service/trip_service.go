package service

import (
	"context"
	"time"

	fisheryerrors "github.com/finwatch/finwatch/internal/fishery/errors"
	"github.com/finwatch/finwatch/internal/fishery/store"
	"github.com/shopspring/decimal"
)

// TripService manages fishing trips and their catches.
type TripService interface {
	Create(ctx context.Context, dto TripCreateDto) (*TripDto, error)
	FindByID(ctx context.Context, id int64) (*TripDto, error)
	FindAll(ctx context.Context) ([]TripDto, error)
	FindByShip(ctx context.Context, shipID int64) ([]TripDto, error)
	FindActive(ctx context.Context) ([]TripDto, error)
	FindCompleted(ctx context.Context) ([]TripDto, error)
	Update(ctx context.Context, id int64, dto TripUpdateDto) (*TripDto, error)
	// Complete stamps the end time with the current moment and records fuel used.
	Complete(ctx context.Context, id int64, fuelUsed *decimal.Decimal) (*TripDto, error)
	Delete(ctx context.Context, id int64) error
}

type TripDto struct {
	ID                     int64            `json:"id"`
	ShipID                 int64            `json:"shipId"`
	ShipName               string           `json:"shipName"`
	ShipRegistrationNumber string           `json:"shipRegistrationNumber"`
	StartTime              time.Time        `json:"startTime"`
	EndTime                *time.Time       `json:"endTime,omitempty"`
	FuelUsed               *decimal.Decimal `json:"fuelUsed,omitempty"`
	IsCompleted            bool             `json:"isCompleted"`
	DurationHours          *float64         `json:"durationHours,omitempty"`
	TotalCatchKg           decimal.Decimal  `json:"totalCatchKg"`
	Catches                []CatchDto       `json:"catches"`
	CreatedAt              time.Time        `json:"createdAt"`
}

type CatchDto struct {
	ID         int64           `json:"id"`
	TripID     int64           `json:"tripId"`
	FishType   string          `json:"fishType"`
	QuantityKg decimal.Decimal `json:"quantityKg"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type TripCreateDto struct {
	ShipID    int64            `json:"shipId" validate:"required,gt=0"`
	StartTime time.Time        `json:"startTime" validate:"required"`
	EndTime   *time.Time       `json:"endTime,omitempty"`
	FuelUsed  *decimal.Decimal `json:"fuelUsed,omitempty"`
	Catches   []CatchCreateDto `json:"catches" validate:"dive"`
}

type TripUpdateDto struct {
	EndTime  *time.Time       `json:"endTime,omitempty"`
	FuelUsed *decimal.Decimal `json:"fuelUsed,omitempty"`
	Catches  []CatchCreateDto `json:"catches" validate:"dive"`
}

type CatchCreateDto struct {
	FishType   string          `json:"fishType" validate:"required"`
	QuantityKg decimal.Decimal `json:"quantityKg" validate:"required"`
}

type Trips struct {
	trips store.Trips
	ships store.Ships
	now   func() time.Time
}

func NewTripService(trips store.Trips, ships store.Ships) *Trips {
	return &Trips{trips: trips, ships: ships, now: time.Now}
}

func (s *Trips) Create(ctx context.Context, dto TripCreateDto) (*TripDto, error) {
	if dto.EndTime != nil && !dto.StartTime.Before(*dto.EndTime) {
		return nil, fisheryerrors.ErrInvalidPeriod
	}
	if _, err := s.ships.FindShipByID(ctx, dto.ShipID); err != nil {
		return nil, err
	}
	trip, catches, err := s.trips.CreateTrip(ctx, store.CreateTripParams{
		ShipID:    dto.ShipID,
		StartTime: dto.StartTime,
		EndTime:   dto.EndTime,
		FuelUsed:  dto.FuelUsed,
		Catches:   toCatchParams(dto.Catches),
	})
	if err != nil {
		return nil, err
	}
	return toTripDto(trip, catches), nil
}

func (s *Trips) FindByID(ctx context.Context, id int64) (*TripDto, error) {
	trip, catches, err := s.trips.FindTripByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTripDto(trip, catches), nil
}

func (s *Trips) FindAll(ctx context.Context) ([]TripDto, error) {
	trips, err := s.trips.FindAllTrips(ctx)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, trips)
}

func (s *Trips) FindByShip(ctx context.Context, shipID int64) ([]TripDto, error) {
	trips, err := s.trips.FindTripsByShip(ctx, shipID)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, trips)
}

func (s *Trips) FindActive(ctx context.Context) ([]TripDto, error) {
	trips, err := s.trips.FindActiveTrips(ctx)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, trips)
}

func (s *Trips) FindCompleted(ctx context.Context) ([]TripDto, error) {
	trips, err := s.trips.FindCompletedTrips(ctx)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, trips)
}

func (s *Trips) Update(ctx context.Context, id int64, dto TripUpdateDto) (*TripDto, error) {
	current, _, err := s.trips.FindTripByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dto.EndTime != nil && !current.StartTime.Before(*dto.EndTime) {
		return nil, fisheryerrors.ErrInvalidPeriod
	}
	trip, catches, err := s.trips.UpdateTrip(ctx, id, store.UpdateTripParams{
		EndTime:  dto.EndTime,
		FuelUsed: dto.FuelUsed,
		Catches:  toCatchParams(dto.Catches),
	})
	if err != nil {
		return nil, err
	}
	return toTripDto(trip, catches), nil
}

func (s *Trips) Complete(ctx context.Context, id int64, fuelUsed *decimal.Decimal) (*TripDto, error) {
	trip, err := s.trips.CompleteTrip(ctx, id, s.now().UTC(), fuelUsed)
	if err != nil {
		return nil, err
	}
	catches, err := s.trips.FindCatchesByTrip(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTripDto(trip, catches), nil
}

func (s *Trips) Delete(ctx context.Context, id int64) error {
	return s.trips.DeleteTrip(ctx, id)
}

func (s *Trips) hydrate(ctx context.Context, trips []store.Trip) ([]TripDto, error) {
	dtos := make([]TripDto, 0, len(trips))
	for i := range trips {
		catches, err := s.trips.FindCatchesByTrip(ctx, trips[i].ID)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *toTripDto(&trips[i], catches))
	}
	return dtos, nil
}

func toCatchParams(catches []CatchCreateDto) []store.CatchParams {
	params := make([]store.CatchParams, 0, len(catches))
	for _, c := range catches {
		params = append(params, store.CatchParams{FishType: c.FishType, QuantityKg: c.QuantityKg})
	}
	return params
}

func toTripDto(trip *store.Trip, catches []store.Catch) *TripDto {
	var durationHours *float64
	if trip.EndTime != nil {
		hours := trip.EndTime.Sub(trip.StartTime).Hours()
		durationHours = &hours
	}

	totalCatch := decimal.Zero
	catchDtos := make([]CatchDto, 0, len(catches))
	for _, c := range catches {
		totalCatch = totalCatch.Add(c.QuantityKg)
		catchDtos = append(catchDtos, CatchDto{
			ID:         c.ID,
			TripID:     c.TripID,
			FishType:   c.FishType,
			QuantityKg: c.QuantityKg,
			CreatedAt:  c.CreatedAt,
		})
	}

	return &TripDto{
		ID:                     trip.ID,
		ShipID:                 trip.ShipID,
		ShipName:               trip.ShipName,
		ShipRegistrationNumber: trip.ShipRegistrationNumber,
		StartTime:              trip.StartTime,
		EndTime:                trip.EndTime,
		FuelUsed:               trip.FuelUsed,
		IsCompleted:            trip.EndTime != nil,
		DurationHours:          durationHours,
		TotalCatchKg:           totalCatch,
		Catches:                catchDtos,
		CreatedAt:              trip.CreatedAt,
	}
}
