package service

import (
	"context"
	"time"

	fisheryerrors "github.com/finwatch/finwatch/internal/fishery/errors"
	"github.com/finwatch/finwatch/internal/fishery/store"
	"github.com/shopspring/decimal"
)

// TicketService issues and tracks recreational fishing tickets. Prices and
// validity windows are fixed per ticket type.
type TicketService interface {
	Purchase(ctx context.Context, dto TicketPurchaseDto) (*TicketDto, error)
	FindByID(ctx context.Context, id int64) (*TicketDto, error)
	FindAll(ctx context.Context) ([]TicketDto, error)
	FindByUser(ctx context.Context, userID int64) ([]TicketDto, error)
	FindActiveForUser(ctx context.Context, userID int64) (*TicketDto, error)
	FindActive(ctx context.Context) ([]TicketDto, error)
	FindExpired(ctx context.Context) ([]TicketDto, error)
	Delete(ctx context.Context, id int64) error
}

type TicketDto struct {
	ID            int64            `json:"id"`
	UserID        int64            `json:"userId"`
	UserName      string           `json:"userName"`
	UserEmail     string           `json:"userEmail"`
	ValidFrom     time.Time        `json:"validFrom"`
	ValidTo       time.Time        `json:"validTo"`
	TicketType    store.TicketType `json:"ticketType"`
	Price         decimal.Decimal  `json:"price"`
	IsActive      bool             `json:"isActive"`
	DaysRemaining int32            `json:"daysRemaining"`
	CreatedAt     time.Time        `json:"createdAt"`
}

type TicketPurchaseDto struct {
	UserID     int64            `json:"userId" validate:"required,gt=0"`
	TicketType store.TicketType `json:"ticketType" validate:"required,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	ValidFrom  time.Time        `json:"validFrom" validate:"required"`
}

type Tickets struct {
	tickets store.Tickets
	users   store.Users
	now     func() time.Time
}

func NewTicketService(tickets store.Tickets, users store.Users) *Tickets {
	return &Tickets{tickets: tickets, users: users, now: time.Now}
}

func (s *Tickets) Purchase(ctx context.Context, dto TicketPurchaseDto) (*TicketDto, error) {
	user, err := s.users.FindUserByID(ctx, dto.UserID)
	if err != nil {
		return nil, err
	}
	if user.Role != store.RoleRecreationalFisher {
		return nil, fisheryerrors.ErrNotRecreationalFisher
	}

	validTo, price, err := ticketTerms(dto.TicketType, dto.ValidFrom)
	if err != nil {
		return nil, err
	}
	created, err := s.tickets.CreateTicket(ctx, &store.Ticket{
		UserID:     dto.UserID,
		ValidFrom:  dto.ValidFrom,
		ValidTo:    validTo,
		TicketType: dto.TicketType,
		Price:      price,
	})
	if err != nil {
		return nil, err
	}
	return s.toTicketDto(created), nil
}

func (s *Tickets) FindByID(ctx context.Context, id int64) (*TicketDto, error) {
	found, err := s.tickets.FindTicketByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toTicketDto(found), nil
}

func (s *Tickets) FindAll(ctx context.Context) ([]TicketDto, error) {
	tickets, err := s.tickets.FindAllTickets(ctx)
	if err != nil {
		return nil, err
	}
	return s.toTicketDtos(tickets), nil
}

func (s *Tickets) FindByUser(ctx context.Context, userID int64) ([]TicketDto, error) {
	if _, err := s.users.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}
	tickets, err := s.tickets.FindTicketsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toTicketDtos(tickets), nil
}

// FindActiveForUser returns the user's currently valid ticket with the latest
// expiry, or ErrTicketNotFound when none is active.
func (s *Tickets) FindActiveForUser(ctx context.Context, userID int64) (*TicketDto, error) {
	if _, err := s.users.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}
	found, err := s.tickets.FindActiveTicketForUser(ctx, userID, s.now().UTC())
	if err != nil {
		return nil, err
	}
	return s.toTicketDto(found), nil
}

func (s *Tickets) FindActive(ctx context.Context) ([]TicketDto, error) {
	tickets, err := s.tickets.FindActiveTickets(ctx, s.now().UTC())
	if err != nil {
		return nil, err
	}
	return s.toTicketDtos(tickets), nil
}

func (s *Tickets) FindExpired(ctx context.Context) ([]TicketDto, error) {
	tickets, err := s.tickets.FindExpiredTickets(ctx, s.now().UTC())
	if err != nil {
		return nil, err
	}
	return s.toTicketDtos(tickets), nil
}

func (s *Tickets) Delete(ctx context.Context, id int64) error {
	return s.tickets.DeleteTicket(ctx, id)
}

// ticketTerms returns the expiry and price for a ticket type.
func ticketTerms(ticketType store.TicketType, validFrom time.Time) (time.Time, decimal.Decimal, error) {
	switch ticketType {
	case store.TicketDaily:
		return validFrom.AddDate(0, 0, 1), decimal.NewFromInt(10), nil
	case store.TicketWeekly:
		return validFrom.AddDate(0, 0, 7), decimal.NewFromInt(50), nil
	case store.TicketMonthly:
		return validFrom.AddDate(0, 1, 0), decimal.NewFromInt(150), nil
	case store.TicketYearly:
		return validFrom.AddDate(1, 0, 0), decimal.NewFromInt(1200), nil
	default:
		return time.Time{}, decimal.Zero, fisheryerrors.ErrInvalidTicketType
	}
}

func (s *Tickets) toTicketDto(t *store.Ticket) *TicketDto {
	now := s.now().UTC()
	return &TicketDto{
		ID:            t.ID,
		UserID:        t.UserID,
		UserName:      t.UserName,
		UserEmail:     t.UserEmail,
		ValidFrom:     t.ValidFrom,
		ValidTo:       t.ValidTo,
		TicketType:    t.TicketType,
		Price:         t.Price,
		IsActive:      !now.Before(t.ValidFrom) && !now.After(t.ValidTo),
		DaysRemaining: daysUntil(now, t.ValidTo),
		CreatedAt:     t.CreatedAt,
	}
}

func (s *Tickets) toTicketDtos(tickets []store.Ticket) []TicketDto {
	dtos := make([]TicketDto, 0, len(tickets))
	for i := range tickets {
		dtos = append(dtos, *s.toTicketDto(&tickets[i]))
	}
	return dtos
}
