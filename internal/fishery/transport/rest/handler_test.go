package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	fisheryerrors "github.com/finwatch/finwatch/internal/fishery/errors"
	"github.com/finwatch/finwatch/internal/fishery/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// mockTicketService is a mock implementation of the TicketService interface
type mockTicketService struct {
	ticket  *service.TicketDto
	tickets []service.TicketDto
	error   error
}

func (m *mockTicketService) Purchase(_ context.Context, _ service.TicketPurchaseDto) (*service.TicketDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.ticket, nil
}

func (m *mockTicketService) FindByID(_ context.Context, _ int64) (*service.TicketDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.ticket, nil
}

func (m *mockTicketService) FindAll(_ context.Context) ([]service.TicketDto, error) {
	return m.tickets, m.error
}

func (m *mockTicketService) FindByUser(_ context.Context, _ int64) ([]service.TicketDto, error) {
	return m.tickets, m.error
}

func (m *mockTicketService) FindActiveForUser(_ context.Context, _ int64) (*service.TicketDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.ticket, nil
}

func (m *mockTicketService) FindActive(_ context.Context) ([]service.TicketDto, error) {
	return m.tickets, m.error
}

func (m *mockTicketService) FindExpired(_ context.Context) ([]service.TicketDto, error) {
	return m.tickets, m.error
}

func (m *mockTicketService) Delete(_ context.Context, _ int64) error {
	return m.error
}

// mockTripService is a mock implementation of the TripService interface
type mockTripService struct {
	trip  *service.TripDto
	trips []service.TripDto
	error error
}

func (m *mockTripService) Create(_ context.Context, _ service.TripCreateDto) (*service.TripDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.trip, nil
}

func (m *mockTripService) FindByID(_ context.Context, _ int64) (*service.TripDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.trip, nil
}

func (m *mockTripService) FindAll(_ context.Context) ([]service.TripDto, error) {
	return m.trips, m.error
}

func (m *mockTripService) FindByShip(_ context.Context, _ int64) ([]service.TripDto, error) {
	return m.trips, m.error
}

func (m *mockTripService) FindActive(_ context.Context) ([]service.TripDto, error) {
	return m.trips, m.error
}

func (m *mockTripService) FindCompleted(_ context.Context) ([]service.TripDto, error) {
	return m.trips, m.error
}

func (m *mockTripService) Update(_ context.Context, _ int64, _ service.TripUpdateDto) (*service.TripDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.trip, nil
}

func (m *mockTripService) Complete(_ context.Context, _ int64, _ *decimal.Decimal) (*service.TripDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.trip, nil
}

func (m *mockTripService) Delete(_ context.Context, _ int64) error {
	return m.error
}

type MessageResponse struct {
	Message string `json:"message"`
}

// toJSON is a helper function to convert a struct to JSON string
func toJSON(t *testing.T, v interface{}) string {
	t.Helper()
	bytes, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal to JSON: %v", err)
	}
	return string(bytes)
}

func newTicketHandler(svc service.TicketService) *Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewHandler(nil, nil, nil, nil, nil, svc, nil, logger)
}

func newTripHandler(svc service.TripService) *Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewHandler(nil, nil, nil, svc, nil, nil, nil, logger)
}

func ticketDtoFixture() *service.TicketDto {
	validFrom := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return &service.TicketDto{
		ID:         1,
		UserID:     4,
		UserName:   "Elena Ivanova",
		ValidFrom:  validFrom,
		ValidTo:    validFrom.AddDate(0, 0, 7),
		TicketType: "WEEKLY",
		Price:      decimal.NewFromInt(50),
		IsActive:   true,
	}
}

func Test_TicketAPI_Purchase(t *testing.T) {
	fixture := ticketDtoFixture()
	validBody := toJSON(t, service.TicketPurchaseDto{
		UserID: 4, TicketType: "WEEKLY", ValidFrom: fixture.ValidFrom,
	})

	testCases := []struct {
		name           string
		body           string
		mockService    *mockTicketService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success - ticket issued",
			body:           validBody,
			mockService:    &mockTicketService{ticket: fixture},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Error - user not found",
			body:           validBody,
			mockService:    &mockTicketService{error: fisheryerrors.ErrUserNotFound},
			expectedStatus: http.StatusNotFound,
			expectedBody:   toJSON(t, MessageResponse{Message: fisheryerrors.ErrUserNotFound.Error()}),
		},
		{
			name:           "Error - wrong role",
			body:           validBody,
			mockService:    &mockTicketService{error: fisheryerrors.ErrNotRecreationalFisher},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   toJSON(t, MessageResponse{Message: fisheryerrors.ErrNotRecreationalFisher.Error()}),
		},
		{
			name:           "Error - malformed body",
			body:           `{"userId": `,
			mockService:    &mockTicketService{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   toJSON(t, MessageResponse{Message: "Invalid request body"}),
		},
		{
			name:           "Error - unknown ticket type fails validation",
			body:           toJSON(t, map[string]any{"userId": 4, "ticketType": "HOURLY", "validFrom": fixture.ValidFrom}),
			mockService:    &mockTicketService{ticket: fixture},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Error - service failure",
			body:           validBody,
			mockService:    &mockTicketService{error: errors.New("connection reset")},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   toJSON(t, MessageResponse{Message: "Error purchasing ticket"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTicketHandler(tc.mockService)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			h.PurchaseTicket(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
			if tc.name == "Error - unknown ticket type fails validation" {
				assert.Contains(t, rr.Body.String(), "validation_errors")
			}
		})
	}
}

func Test_TripAPI_Complete(t *testing.T) {
	start := time.Date(2026, 5, 1, 6, 0, 0, 0, time.UTC)
	end := start.Add(9 * time.Hour)
	hours := 9.0
	fixture := &service.TripDto{
		ID: 1, ShipID: 1, ShipName: "Sea Star", StartTime: start, EndTime: &end,
		IsCompleted: true, DurationHours: &hours, TotalCatchKg: decimal.NewFromInt(150),
		Catches: []service.CatchDto{},
	}

	testCases := []struct {
		name           string
		id             string
		mockService    *mockTripService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success - trip completed",
			id:             "1",
			mockService:    &mockTripService{trip: fixture},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Error - already completed",
			id:             "1",
			mockService:    &mockTripService{error: fisheryerrors.ErrTripAlreadyCompleted},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   toJSON(t, MessageResponse{Message: fisheryerrors.ErrTripAlreadyCompleted.Error()}),
		},
		{
			name:           "Error - trip not found",
			id:             "42",
			mockService:    &mockTripService{error: fisheryerrors.ErrTripNotFound},
			expectedStatus: http.StatusNotFound,
			expectedBody:   toJSON(t, MessageResponse{Message: fisheryerrors.ErrTripNotFound.Error()}),
		},
		{
			name:           "Error - invalid id",
			id:             "abc",
			mockService:    &mockTripService{trip: fixture},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   toJSON(t, MessageResponse{Message: "Invalid ID: abc"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTripHandler(tc.mockService)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/trips/"+tc.id+"/complete",
				strings.NewReader(`{"fuelUsed": "75.5"}`))
			req.SetPathValue("id", tc.id)
			rr := httptest.NewRecorder()

			h.CompleteTrip(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}

func Test_TripAPI_FindByID(t *testing.T) {
	start := time.Date(2026, 5, 1, 6, 0, 0, 0, time.UTC)
	fixture := &service.TripDto{
		ID: 1, ShipID: 1, ShipName: "Sea Star", StartTime: start,
		TotalCatchKg: decimal.NewFromInt(0), Catches: []service.CatchDto{},
	}

	t.Run("Success", func(t *testing.T) {
		h := newTripHandler(&mockTripService{trip: fixture})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/trips/1", nil)
		req.SetPathValue("id", "1")
		rr := httptest.NewRecorder()

		h.FindTripByID(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got service.TripDto
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "Sea Star", got.ShipName)
		assert.False(t, got.IsCompleted)
	})

	t.Run("Not found", func(t *testing.T) {
		h := newTripHandler(&mockTripService{error: fisheryerrors.ErrTripNotFound})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/trips/9", nil)
		req.SetPathValue("id", "9")
		rr := httptest.NewRecorder()

		h.FindTripByID(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
