package service

import (
	"context"
	"time"

	fisheryerrors "github.com/finwatch/finwatch/internal/fishery/errors"
	"github.com/finwatch/finwatch/internal/fishery/store"
)

// PermitService manages commercial fishing permits.
type PermitService interface {
	Create(ctx context.Context, dto PermitCreateDto) (*PermitDto, error)
	FindByID(ctx context.Context, id int64) (*PermitDto, error)
	FindAll(ctx context.Context) ([]PermitDto, error)
	FindByShip(ctx context.Context, shipID int64) ([]PermitDto, error)
	FindExpiring(ctx context.Context, days int32) ([]PermitDto, error)
	FindActive(ctx context.Context) ([]PermitDto, error)
	FindExpired(ctx context.Context) ([]PermitDto, error)
	Update(ctx context.Context, id int64, dto PermitCreateDto) (*PermitDto, error)
	Delete(ctx context.Context, id int64) error
}

type PermitDto struct {
	ID                     int64     `json:"id"`
	ShipID                 int64     `json:"shipId"`
	ShipName               string    `json:"shipName"`
	ShipRegistrationNumber string    `json:"shipRegistrationNumber"`
	ValidFrom              time.Time `json:"validFrom"`
	ValidTo                time.Time `json:"validTo"`
	AllowedGear            string    `json:"allowedGear"`
	IsExpired              bool      `json:"isExpired"`
	DaysUntilExpiry        int32     `json:"daysUntilExpiry"`
	CreatedAt              time.Time `json:"createdAt"`
}

type PermitCreateDto struct {
	ShipID      int64     `json:"shipId" validate:"required,gt=0"`
	ValidFrom   time.Time `json:"validFrom" validate:"required"`
	ValidTo     time.Time `json:"validTo" validate:"required"`
	AllowedGear string    `json:"allowedGear" validate:"required"`
}

type Permits struct {
	permits store.Permits
	ships   store.Ships
	now     func() time.Time
}

func NewPermitService(permits store.Permits, ships store.Ships) *Permits {
	return &Permits{permits: permits, ships: ships, now: time.Now}
}

func (s *Permits) Create(ctx context.Context, dto PermitCreateDto) (*PermitDto, error) {
	if !dto.ValidFrom.Before(dto.ValidTo) {
		return nil, fisheryerrors.ErrInvalidPeriod
	}
	if _, err := s.ships.FindShipByID(ctx, dto.ShipID); err != nil {
		return nil, err
	}
	created, err := s.permits.CreatePermit(ctx, &store.Permit{
		ShipID:      dto.ShipID,
		ValidFrom:   dto.ValidFrom,
		ValidTo:     dto.ValidTo,
		AllowedGear: dto.AllowedGear,
	})
	if err != nil {
		return nil, err
	}
	return s.toPermitDto(created), nil
}

func (s *Permits) FindByID(ctx context.Context, id int64) (*PermitDto, error) {
	found, err := s.permits.FindPermitByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toPermitDto(found), nil
}

func (s *Permits) FindAll(ctx context.Context) ([]PermitDto, error) {
	permits, err := s.permits.FindAllPermits(ctx)
	if err != nil {
		return nil, err
	}
	return s.toPermitDtos(permits), nil
}

func (s *Permits) FindByShip(ctx context.Context, shipID int64) ([]PermitDto, error) {
	permits, err := s.permits.FindPermitsByShip(ctx, shipID)
	if err != nil {
		return nil, err
	}
	return s.toPermitDtos(permits), nil
}

func (s *Permits) FindExpiring(ctx context.Context, days int32) ([]PermitDto, error) {
	permits, err := s.permits.FindExpiringPermits(ctx, s.now().UTC(), days)
	if err != nil {
		return nil, err
	}
	return s.toPermitDtos(permits), nil
}

func (s *Permits) FindActive(ctx context.Context) ([]PermitDto, error) {
	permits, err := s.permits.FindActivePermits(ctx, s.now().UTC())
	if err != nil {
		return nil, err
	}
	return s.toPermitDtos(permits), nil
}

func (s *Permits) FindExpired(ctx context.Context) ([]PermitDto, error) {
	permits, err := s.permits.FindExpiredPermits(ctx, s.now().UTC())
	if err != nil {
		return nil, err
	}
	return s.toPermitDtos(permits), nil
}

func (s *Permits) Update(ctx context.Context, id int64, dto PermitCreateDto) (*PermitDto, error) {
	if !dto.ValidFrom.Before(dto.ValidTo) {
		return nil, fisheryerrors.ErrInvalidPeriod
	}
	updated, err := s.permits.UpdatePermit(ctx, &store.Permit{
		ID:          id,
		ValidFrom:   dto.ValidFrom,
		ValidTo:     dto.ValidTo,
		AllowedGear: dto.AllowedGear,
	})
	if err != nil {
		return nil, err
	}
	return s.toPermitDto(updated), nil
}

func (s *Permits) Delete(ctx context.Context, id int64) error {
	return s.permits.DeletePermit(ctx, id)
}

func (s *Permits) toPermitDto(p *store.Permit) *PermitDto {
	now := s.now().UTC()
	return &PermitDto{
		ID:                     p.ID,
		ShipID:                 p.ShipID,
		ShipName:               p.ShipName,
		ShipRegistrationNumber: p.ShipRegistrationNumber,
		ValidFrom:              p.ValidFrom,
		ValidTo:                p.ValidTo,
		AllowedGear:            p.AllowedGear,
		IsExpired:              p.ValidTo.Before(now),
		DaysUntilExpiry:        daysUntil(now, p.ValidTo),
		CreatedAt:              p.CreatedAt,
	}
}

func (s *Permits) toPermitDtos(permits []store.Permit) []PermitDto {
	dtos := make([]PermitDto, 0, len(permits))
	for i := range permits {
		dtos = append(dtos, *s.toPermitDto(&permits[i]))
	}
	return dtos
}

// daysUntil returns whole days from now until t, clamped at zero.
func daysUntil(now, t time.Time) int32 {
	days := int32(t.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
