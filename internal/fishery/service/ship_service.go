package service

import (
	"context"
	"time"

	"github.com/finwatch/finwatch/internal/fishery/store"
	"github.com/shopspring/decimal"
)

// ShipService manages registered fishing ships.
type ShipService interface {
	Create(ctx context.Context, dto ShipCreateDto) (*ShipDto, error)
	FindByID(ctx context.Context, id int64) (*ShipDto, error)
	FindAll(ctx context.Context) ([]ShipDto, error)
	Update(ctx context.Context, id int64, dto ShipCreateDto) (*ShipDto, error)
	Delete(ctx context.Context, id int64) error
}

type ShipDto struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	RegistrationNumber string          `json:"registrationNumber"`
	OwnerID            int64           `json:"ownerId"`
	OwnerName          string          `json:"ownerName"`
	EnginePower        decimal.Decimal `json:"enginePower"`
	FuelType           store.FuelType  `json:"fuelType"`
	CreatedAt          time.Time       `json:"createdAt"`
}

type ShipCreateDto struct {
	Name               string          `json:"name" validate:"required"`
	RegistrationNumber string          `json:"registrationNumber" validate:"required"`
	OwnerID            int64           `json:"ownerId" validate:"required,gt=0"`
	EnginePower        decimal.Decimal `json:"enginePower" validate:"required"`
	FuelType           store.FuelType  `json:"fuelType" validate:"required,oneof=DIESEL PETROL ELECTRIC HYBRID"`
}

type Ships struct {
	ships store.Ships
	users store.Users
}

func NewShipService(ships store.Ships, users store.Users) *Ships {
	return &Ships{ships: ships, users: users}
}

func (s *Ships) Create(ctx context.Context, dto ShipCreateDto) (*ShipDto, error) {
	if _, err := s.users.FindUserByID(ctx, dto.OwnerID); err != nil {
		return nil, err
	}
	created, err := s.ships.CreateShip(ctx, &store.Ship{
		Name:               dto.Name,
		RegistrationNumber: dto.RegistrationNumber,
		OwnerID:            dto.OwnerID,
		EnginePower:        dto.EnginePower,
		FuelType:           dto.FuelType,
	})
	if err != nil {
		return nil, err
	}
	return toShipDto(created), nil
}

func (s *Ships) FindByID(ctx context.Context, id int64) (*ShipDto, error) {
	found, err := s.ships.FindShipByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toShipDto(found), nil
}

func (s *Ships) FindAll(ctx context.Context) ([]ShipDto, error) {
	ships, err := s.ships.FindAllShips(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]ShipDto, 0, len(ships))
	for i := range ships {
		dtos = append(dtos, *toShipDto(&ships[i]))
	}
	return dtos, nil
}

func (s *Ships) Update(ctx context.Context, id int64, dto ShipCreateDto) (*ShipDto, error) {
	if _, err := s.users.FindUserByID(ctx, dto.OwnerID); err != nil {
		return nil, err
	}
	updated, err := s.ships.UpdateShip(ctx, &store.Ship{
		ID:                 id,
		Name:               dto.Name,
		RegistrationNumber: dto.RegistrationNumber,
		OwnerID:            dto.OwnerID,
		EnginePower:        dto.EnginePower,
		FuelType:           dto.FuelType,
	})
	if err != nil {
		return nil, err
	}
	return toShipDto(updated), nil
}

func (s *Ships) Delete(ctx context.Context, id int64) error {
	return s.ships.DeleteShip(ctx, id)
}

func toShipDto(s *store.Ship) *ShipDto {
	return &ShipDto{
		ID:                 s.ID,
		Name:               s.Name,
		RegistrationNumber: s.RegistrationNumber,
		OwnerID:            s.OwnerID,
		OwnerName:          s.OwnerName,
		EnginePower:        s.EnginePower,
		FuelType:           s.FuelType,
		CreatedAt:          s.CreatedAt,
	}
}
