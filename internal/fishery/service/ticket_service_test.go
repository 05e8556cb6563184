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

func ticketUsers() *mockUsers {
	return &mockUsers{users: map[int64]store.User{
		2: {ID: 2, FullName: "Ivan Georgiev", Email: "ivan@example.com", Role: store.RoleInspector},
		4: {ID: 4, FullName: "Elena Ivanova", Email: "elena@example.com", Role: store.RoleRecreationalFisher},
	}}
}

func Test_TicketService_Purchase_Pricing(t *testing.T) {
	validFrom := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name          string
		ticketType    store.TicketType
		expectValidTo time.Time
		expectPrice   string
	}{
		{"Daily", store.TicketDaily, validFrom.AddDate(0, 0, 1), "10"},
		{"Weekly", store.TicketWeekly, validFrom.AddDate(0, 0, 7), "50"},
		{"Monthly", store.TicketMonthly, validFrom.AddDate(0, 1, 0), "150"},
		{"Yearly", store.TicketYearly, validFrom.AddDate(1, 0, 0), "1200"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewTicketService(&mockTickets{}, ticketUsers())
			ticket, err := svc.Purchase(context.Background(), TicketPurchaseDto{
				UserID: 4, TicketType: tc.ticketType, ValidFrom: validFrom,
			})
			require.NoError(t, err)
			require.NotNil(t, ticket)
			assert.Equal(t, tc.expectValidTo, ticket.ValidTo)
			assert.True(t, decimal.RequireFromString(tc.expectPrice).Equal(ticket.Price),
				"expected price %s, got %s", tc.expectPrice, ticket.Price)
		})
	}
}

func Test_TicketService_Purchase_Rejections(t *testing.T) {
	validFrom := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name        string
		dto         TicketPurchaseDto
		expectError error
	}{
		{
			name:        "Error - user not found",
			dto:         TicketPurchaseDto{UserID: 99, TicketType: store.TicketDaily, ValidFrom: validFrom},
			expectError: fisheryerrors.ErrUserNotFound,
		},
		{
			name:        "Error - not a recreational fisher",
			dto:         TicketPurchaseDto{UserID: 2, TicketType: store.TicketDaily, ValidFrom: validFrom},
			expectError: fisheryerrors.ErrNotRecreationalFisher,
		},
		{
			name:        "Error - unknown ticket type",
			dto:         TicketPurchaseDto{UserID: 4, TicketType: store.TicketType("HOURLY"), ValidFrom: validFrom},
			expectError: fisheryerrors.ErrInvalidTicketType,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tickets := &mockTickets{}
			svc := NewTicketService(tickets, ticketUsers())
			ticket, err := svc.Purchase(context.Background(), tc.dto)
			assert.ErrorIs(t, err, tc.expectError)
			assert.Nil(t, ticket)
			assert.Empty(t, tickets.tickets, "Nothing must be persisted on rejection")
		})
	}
}

func Test_TicketService_ComputedFields(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tickets := &mockTickets{tickets: []store.Ticket{
		{ID: 1, UserID: 4, ValidFrom: now.AddDate(0, 0, -2), ValidTo: now.AddDate(0, 0, 5), TicketType: store.TicketWeekly},
		{ID: 2, UserID: 4, ValidFrom: now.AddDate(0, -2, 0), ValidTo: now.AddDate(0, -1, 0), TicketType: store.TicketMonthly},
	}}
	svc := NewTicketService(tickets, ticketUsers())
	svc.now = func() time.Time { return now }

	dtos, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, dtos, 2)

	assert.True(t, dtos[0].IsActive)
	assert.Equal(t, int32(5), dtos[0].DaysRemaining)

	assert.False(t, dtos[1].IsActive)
	assert.Equal(t, int32(0), dtos[1].DaysRemaining)
}

func Test_TicketService_FindActiveAndExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tickets := &mockTickets{tickets: []store.Ticket{
		{ID: 1, UserID: 4, ValidFrom: now.AddDate(0, 0, -1), ValidTo: now.AddDate(0, 0, 6)},
		{ID: 2, UserID: 4, ValidFrom: now.AddDate(0, 0, -40), ValidTo: now.AddDate(0, 0, -10)},
		{ID: 3, UserID: 4, ValidFrom: now.AddDate(0, 0, 2), ValidTo: now.AddDate(0, 0, 9)},
	}}
	svc := NewTicketService(tickets, ticketUsers())
	svc.now = func() time.Time { return now }

	active, err := svc.FindActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, int64(1), active[0].ID)

	expired, err := svc.FindExpired(context.Background())
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, int64(2), expired[0].ID)
}

func Test_TicketService_FindActiveForUser(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tickets := &mockTickets{tickets: []store.Ticket{
		{ID: 1, UserID: 4, ValidFrom: now.AddDate(0, 0, -1), ValidTo: now.AddDate(0, 0, 6)},
		{ID: 2, UserID: 4, ValidFrom: now.AddDate(0, 0, -1), ValidTo: now.AddDate(0, 1, 0)},
	}}
	svc := NewTicketService(tickets, ticketUsers())
	svc.now = func() time.Time { return now }

	t.Run("Latest expiry wins", func(t *testing.T) {
		ticket, err := svc.FindActiveForUser(context.Background(), 4)
		require.NoError(t, err)
		assert.Equal(t, int64(2), ticket.ID)
		assert.True(t, ticket.IsActive)
	})

	t.Run("Error - no active ticket", func(t *testing.T) {
		ticket, err := svc.FindActiveForUser(context.Background(), 2)
		assert.ErrorIs(t, err, fisheryerrors.ErrTicketNotFound)
		assert.Nil(t, ticket)
	})

	t.Run("Error - user not found", func(t *testing.T) {
		ticket, err := svc.FindActiveForUser(context.Background(), 99)
		assert.ErrorIs(t, err, fisheryerrors.ErrUserNotFound)
		assert.Nil(t, ticket)
	})
}
