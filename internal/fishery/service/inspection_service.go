package service

import (
	"context"
	"fmt"
	"time"

	fisheryerrors "github.com/finwatch/finwatch/internal/fishery/errors"
	"github.com/finwatch/finwatch/internal/fishery/store"
	"github.com/shopspring/decimal"
)

// InspectionService manages inspections and the fines attached to failed ones.
type InspectionService interface {
	Create(ctx context.Context, dto InspectionCreateDto) (*InspectionDto, error)
	FindByID(ctx context.Context, id int64) (*InspectionDto, error)
	FindAll(ctx context.Context) ([]InspectionDto, error)
	FindByInspector(ctx context.Context, inspectorID int64) ([]InspectionDto, error)
	FindByTarget(ctx context.Context, targetType store.TargetType, targetID int64) ([]InspectionDto, error)
	FindByResult(ctx context.Context, result store.InspectionResult) ([]InspectionDto, error)
	FindWithFines(ctx context.Context) ([]InspectionDto, error)
	FindWithUnpaidFines(ctx context.Context) ([]InspectionDto, error)
	Update(ctx context.Context, id int64, dto InspectionUpdateDto) (*InspectionDto, error)
	MarkFinePaid(ctx context.Context, inspectionID int64) (*InspectionDto, error)
	Delete(ctx context.Context, id int64) error
}

type InspectionDto struct {
	ID                int64                  `json:"id"`
	InspectorID       int64                  `json:"inspectorId"`
	InspectorName     string                 `json:"inspectorName"`
	TargetType        store.TargetType       `json:"targetType"`
	TargetID          int64                  `json:"targetId"`
	TargetDescription string                 `json:"targetDescription"`
	InspectionDate    time.Time              `json:"inspectionDate"`
	Result            store.InspectionResult `json:"result"`
	Notes             string                 `json:"notes,omitempty"`
	Fine              *FineDto               `json:"fine,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
}

type FineDto struct {
	ID           int64           `json:"id"`
	InspectionID int64           `json:"inspectionId"`
	Amount       decimal.Decimal `json:"amount"`
	Reason       string          `json:"reason"`
	IsPaid       bool            `json:"isPaid"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type InspectionCreateDto struct {
	InspectorID    int64                  `json:"inspectorId" validate:"required,gt=0"`
	TargetType     store.TargetType       `json:"targetType" validate:"required,oneof=SHIP FISHER FISHING_TRIP"`
	TargetID       int64                  `json:"targetId" validate:"required,gt=0"`
	InspectionDate time.Time              `json:"inspectionDate" validate:"required"`
	Result         store.InspectionResult `json:"result" validate:"required,oneof=PASSED FAILED"`
	Notes          string                 `json:"notes"`
	Fine           *FineCreateDto         `json:"fine,omitempty"`
}

type InspectionUpdateDto struct {
	Result store.InspectionResult `json:"result" validate:"required,oneof=PASSED FAILED"`
	Notes  string                 `json:"notes"`
	Fine   *FineCreateDto         `json:"fine,omitempty"`
}

type FineCreateDto struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Reason string          `json:"reason" validate:"required"`
}

type Inspections struct {
	inspections store.Inspections
	users       store.Users
	ships       store.Ships
	trips       store.Trips
}

func NewInspectionService(inspections store.Inspections, users store.Users, ships store.Ships, trips store.Trips) *Inspections {
	return &Inspections{inspections: inspections, users: users, ships: ships, trips: trips}
}

func (s *Inspections) Create(ctx context.Context, dto InspectionCreateDto) (*InspectionDto, error) {
	inspector, err := s.users.FindUserByID(ctx, dto.InspectorID)
	if err != nil {
		return nil, err
	}
	if inspector.Role != store.RoleInspector {
		return nil, fisheryerrors.ErrInvalidInspector
	}
	if err := s.checkTarget(ctx, dto.TargetType, dto.TargetID); err != nil {
		return nil, err
	}

	var fine *store.FineParams
	if dto.Result == store.ResultFailed && dto.Fine != nil {
		fine = &store.FineParams{Amount: dto.Fine.Amount, Reason: dto.Fine.Reason}
	}
	created, err := s.inspections.CreateInspection(ctx, store.CreateInspectionParams{
		InspectorID:    dto.InspectorID,
		TargetType:     dto.TargetType,
		TargetID:       dto.TargetID,
		InspectionDate: dto.InspectionDate,
		Result:         dto.Result,
		Notes:          dto.Notes,
		Fine:           fine,
	})
	if err != nil {
		return nil, err
	}
	return s.toInspectionDto(ctx, created), nil
}

func (s *Inspections) FindByID(ctx context.Context, id int64) (*InspectionDto, error) {
	found, err := s.inspections.FindInspectionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toInspectionDto(ctx, found), nil
}

func (s *Inspections) FindAll(ctx context.Context) ([]InspectionDto, error) {
	inspections, err := s.inspections.FindAllInspections(ctx)
	if err != nil {
		return nil, err
	}
	return s.toInspectionDtos(ctx, inspections), nil
}

func (s *Inspections) FindByInspector(ctx context.Context, inspectorID int64) ([]InspectionDto, error) {
	if _, err := s.users.FindUserByID(ctx, inspectorID); err != nil {
		return nil, err
	}
	inspections, err := s.inspections.FindInspectionsByInspector(ctx, inspectorID)
	if err != nil {
		return nil, err
	}
	return s.toInspectionDtos(ctx, inspections), nil
}

func (s *Inspections) FindByTarget(ctx context.Context, targetType store.TargetType, targetID int64) ([]InspectionDto, error) {
	inspections, err := s.inspections.FindInspectionsByTarget(ctx, targetType, targetID)
	if err != nil {
		return nil, err
	}
	return s.toInspectionDtos(ctx, inspections), nil
}

func (s *Inspections) FindByResult(ctx context.Context, result store.InspectionResult) ([]InspectionDto, error) {
	inspections, err := s.inspections.FindInspectionsByResult(ctx, result)
	if err != nil {
		return nil, err
	}
	return s.toInspectionDtos(ctx, inspections), nil
}

func (s *Inspections) FindWithFines(ctx context.Context) ([]InspectionDto, error) {
	inspections, err := s.inspections.FindInspectionsWithFines(ctx)
	if err != nil {
		return nil, err
	}
	return s.toInspectionDtos(ctx, inspections), nil
}

func (s *Inspections) FindWithUnpaidFines(ctx context.Context) ([]InspectionDto, error) {
	inspections, err := s.inspections.FindInspectionsWithUnpaidFines(ctx)
	if err != nil {
		return nil, err
	}
	return s.toInspectionDtos(ctx, inspections), nil
}

func (s *Inspections) Update(ctx context.Context, id int64, dto InspectionUpdateDto) (*InspectionDto, error) {
	var fine *store.FineParams
	if dto.Result == store.ResultFailed && dto.Fine != nil {
		fine = &store.FineParams{Amount: dto.Fine.Amount, Reason: dto.Fine.Reason}
	}
	updated, err := s.inspections.UpdateInspection(ctx, id, store.UpdateInspectionParams{
		Result: dto.Result,
		Notes:  dto.Notes,
		Fine:   fine,
	})
	if err != nil {
		return nil, err
	}
	return s.toInspectionDto(ctx, updated), nil
}

func (s *Inspections) MarkFinePaid(ctx context.Context, inspectionID int64) (*InspectionDto, error) {
	updated, err := s.inspections.MarkFinePaid(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	return s.toInspectionDto(ctx, updated), nil
}

func (s *Inspections) Delete(ctx context.Context, id int64) error {
	return s.inspections.DeleteInspection(ctx, id)
}

func (s *Inspections) checkTarget(ctx context.Context, targetType store.TargetType, targetID int64) error {
	switch targetType {
	case store.TargetShip:
		_, err := s.ships.FindShipByID(ctx, targetID)
		return err
	case store.TargetFisher:
		_, err := s.users.FindUserByID(ctx, targetID)
		return err
	case store.TargetFishingTrip:
		_, _, err := s.trips.FindTripByID(ctx, targetID)
		return err
	default:
		return fisheryerrors.ErrInvalidTargetType
	}
}

// targetDescription resolves a human-readable label for the inspected target.
// Targets deleted after the inspection fall back to a bare identifier.
func (s *Inspections) targetDescription(ctx context.Context, targetType store.TargetType, targetID int64) string {
	switch targetType {
	case store.TargetShip:
		if ship, err := s.ships.FindShipByID(ctx, targetID); err == nil {
			return fmt.Sprintf("Ship: %s (%s)", ship.Name, ship.RegistrationNumber)
		}
		return fmt.Sprintf("Ship #%d", targetID)
	case store.TargetFisher:
		if user, err := s.users.FindUserByID(ctx, targetID); err == nil {
			return fmt.Sprintf("Fisher: %s", user.FullName)
		}
		return fmt.Sprintf("Fisher #%d", targetID)
	default:
		return fmt.Sprintf("Fishing Trip #%d", targetID)
	}
}

func (s *Inspections) toInspectionDto(ctx context.Context, i *store.Inspection) *InspectionDto {
	dto := &InspectionDto{
		ID:                i.ID,
		InspectorID:       i.InspectorID,
		InspectorName:     i.InspectorName,
		TargetType:        i.TargetType,
		TargetID:          i.TargetID,
		TargetDescription: s.targetDescription(ctx, i.TargetType, i.TargetID),
		InspectionDate:    i.InspectionDate,
		Result:            i.Result,
		Notes:             i.Notes,
		CreatedAt:         i.CreatedAt,
	}
	if i.Fine != nil {
		dto.Fine = &FineDto{
			ID:           i.Fine.ID,
			InspectionID: i.Fine.InspectionID,
			Amount:       i.Fine.Amount,
			Reason:       i.Fine.Reason,
			IsPaid:       i.Fine.IsPaid,
			CreatedAt:    i.Fine.CreatedAt,
		}
	}
	return dto
}

func (s *Inspections) toInspectionDtos(ctx context.Context, inspections []store.Inspection) []InspectionDto {
	dtos := make([]InspectionDto, 0, len(inspections))
	for i := range inspections {
		dtos = append(dtos, *s.toInspectionDto(ctx, &inspections[i]))
	}
	return dtos
}
