package service

import (
	"context"
	"sort"
	"time"

	fisheryerrors "github.com/finwatch/finwatch/internal/fishery/errors"
	"github.com/finwatch/finwatch/internal/fishery/store"
	"github.com/shopspring/decimal"
)

// mockUsers is an in-memory store.Users.
type mockUsers struct {
	users map[int64]store.User
	err   error
}

func (m *mockUsers) FindUserByID(_ context.Context, id int64) (*store.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, fisheryerrors.ErrUserNotFound
	}
	return &u, nil
}

func (m *mockUsers) FindAllUsers(_ context.Context) ([]store.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	users := make([]store.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *mockUsers) FindUsersByRole(ctx context.Context, role store.UserRole) ([]store.User, error) {
	all, err := m.FindAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]store.User, 0)
	for _, u := range all {
		if u.Role == role {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

// mockShips is an in-memory store.Ships.
type mockShips struct {
	ships  map[int64]store.Ship
	nextID int64
	err    error
}

func (m *mockShips) CreateShip(_ context.Context, s *store.Ship) (*store.Ship, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	created := *s
	created.ID = m.nextID
	if m.ships == nil {
		m.ships = make(map[int64]store.Ship)
	}
	m.ships[created.ID] = created
	return &created, nil
}

func (m *mockShips) FindShipByID(_ context.Context, id int64) (*store.Ship, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.ships[id]
	if !ok {
		return nil, fisheryerrors.ErrShipNotFound
	}
	return &s, nil
}

func (m *mockShips) FindAllShips(_ context.Context) ([]store.Ship, error) {
	if m.err != nil {
		return nil, m.err
	}
	ships := make([]store.Ship, 0, len(m.ships))
	for _, s := range m.ships {
		ships = append(ships, s)
	}
	sort.Slice(ships, func(i, j int) bool { return ships[i].ID < ships[j].ID })
	return ships, nil
}

func (m *mockShips) UpdateShip(_ context.Context, s *store.Ship) (*store.Ship, error) {
	if m.err != nil {
		return nil, m.err
	}
	if _, ok := m.ships[s.ID]; !ok {
		return nil, fisheryerrors.ErrShipNotFound
	}
	m.ships[s.ID] = *s
	updated := *s
	return &updated, nil
}

func (m *mockShips) DeleteShip(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.ships[id]; !ok {
		return fisheryerrors.ErrShipNotFound
	}
	delete(m.ships, id)
	return nil
}

// mockPermits is an in-memory store.Permits mirroring the query semantics of
// the Postgres implementation.
type mockPermits struct {
	permits []store.Permit
	nextID  int64
	err     error
}

func (m *mockPermits) CreatePermit(_ context.Context, p *store.Permit) (*store.Permit, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	created := *p
	created.ID = m.nextID
	m.permits = append(m.permits, created)
	return &created, nil
}

func (m *mockPermits) FindPermitByID(_ context.Context, id int64) (*store.Permit, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.permits {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, fisheryerrors.ErrPermitNotFound
}

func (m *mockPermits) FindAllPermits(_ context.Context) ([]store.Permit, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]store.Permit(nil), m.permits...), nil
}

func (m *mockPermits) FindPermitsByShip(_ context.Context, shipID int64) ([]store.Permit, error) {
	if m.err != nil {
		return nil, m.err
	}
	filtered := make([]store.Permit, 0)
	for _, p := range m.permits {
		if p.ShipID == shipID {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (m *mockPermits) FindExpiringPermits(_ context.Context, now time.Time, days int32) ([]store.Permit, error) {
	if m.err != nil {
		return nil, m.err
	}
	cutoff := now.AddDate(0, 0, int(days))
	filtered := make([]store.Permit, 0)
	for _, p := range m.permits {
		if !p.ValidTo.Before(now) && !p.ValidTo.After(cutoff) {
			filtered = append(filtered, p)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ValidTo.Before(filtered[j].ValidTo) })
	return filtered, nil
}

func (m *mockPermits) FindActivePermits(_ context.Context, now time.Time) ([]store.Permit, error) {
	if m.err != nil {
		return nil, m.err
	}
	filtered := make([]store.Permit, 0)
	for _, p := range m.permits {
		if !now.Before(p.ValidFrom) && !now.After(p.ValidTo) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (m *mockPermits) FindExpiredPermits(_ context.Context, now time.Time) ([]store.Permit, error) {
	if m.err != nil {
		return nil, m.err
	}
	filtered := make([]store.Permit, 0)
	for _, p := range m.permits {
		if p.ValidTo.Before(now) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (m *mockPermits) UpdatePermit(_ context.Context, p *store.Permit) (*store.Permit, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.permits {
		if m.permits[i].ID == p.ID {
			m.permits[i].ValidFrom = p.ValidFrom
			m.permits[i].ValidTo = p.ValidTo
			m.permits[i].AllowedGear = p.AllowedGear
			updated := m.permits[i]
			return &updated, nil
		}
	}
	return nil, fisheryerrors.ErrPermitNotFound
}

func (m *mockPermits) DeletePermit(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	for i := range m.permits {
		if m.permits[i].ID == id {
			m.permits = append(m.permits[:i], m.permits[i+1:]...)
			return nil
		}
	}
	return fisheryerrors.ErrPermitNotFound
}

// mockTrips is an in-memory store.Trips.
type mockTrips struct {
	trips   []store.Trip
	catches map[int64][]store.Catch
	nextID  int64
	err     error
}

func (m *mockTrips) CreateTrip(_ context.Context, params store.CreateTripParams) (*store.Trip, []store.Catch, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	m.nextID++
	trip := store.Trip{
		ID:        m.nextID,
		ShipID:    params.ShipID,
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
		FuelUsed:  params.FuelUsed,
	}
	m.trips = append(m.trips, trip)
	m.setCatches(trip.ID, params.Catches)
	return &trip, m.catches[trip.ID], nil
}

func (m *mockTrips) setCatches(tripID int64, params []store.CatchParams) {
	if m.catches == nil {
		m.catches = make(map[int64][]store.Catch)
	}
	catches := make([]store.Catch, 0, len(params))
	for i, c := range params {
		catches = append(catches, store.Catch{
			ID:         int64(i + 1),
			TripID:     tripID,
			FishType:   c.FishType,
			QuantityKg: c.QuantityKg,
		})
	}
	m.catches[tripID] = catches
}

func (m *mockTrips) FindTripByID(_ context.Context, id int64) (*store.Trip, []store.Catch, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	for _, t := range m.trips {
		if t.ID == id {
			found := t
			return &found, m.catches[id], nil
		}
	}
	return nil, nil, fisheryerrors.ErrTripNotFound
}

func (m *mockTrips) FindAllTrips(_ context.Context) ([]store.Trip, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]store.Trip(nil), m.trips...), nil
}

func (m *mockTrips) FindTripsByShip(_ context.Context, shipID int64) ([]store.Trip, error) {
	if m.err != nil {
		return nil, m.err
	}
	filtered := make([]store.Trip, 0)
	for _, t := range m.trips {
		if t.ShipID == shipID {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (m *mockTrips) FindActiveTrips(_ context.Context) ([]store.Trip, error) {
	filtered := make([]store.Trip, 0)
	for _, t := range m.trips {
		if t.EndTime == nil {
			filtered = append(filtered, t)
		}
	}
	return filtered, m.err
}

func (m *mockTrips) FindCompletedTrips(_ context.Context) ([]store.Trip, error) {
	filtered := make([]store.Trip, 0)
	for _, t := range m.trips {
		if t.EndTime != nil {
			filtered = append(filtered, t)
		}
	}
	return filtered, m.err
}

func (m *mockTrips) FindCatchesByTrip(_ context.Context, tripID int64) ([]store.Catch, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.catches[tripID], nil
}

func (m *mockTrips) UpdateTrip(_ context.Context, id int64, params store.UpdateTripParams) (*store.Trip, []store.Catch, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	for i := range m.trips {
		if m.trips[i].ID == id {
			m.trips[i].EndTime = params.EndTime
			m.trips[i].FuelUsed = params.FuelUsed
			m.setCatches(id, params.Catches)
			updated := m.trips[i]
			return &updated, m.catches[id], nil
		}
	}
	return nil, nil, fisheryerrors.ErrTripNotFound
}

func (m *mockTrips) CompleteTrip(_ context.Context, id int64, endTime time.Time, fuelUsed *decimal.Decimal) (*store.Trip, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.trips {
		if m.trips[i].ID == id {
			if m.trips[i].EndTime != nil {
				return nil, fisheryerrors.ErrTripAlreadyCompleted
			}
			m.trips[i].EndTime = &endTime
			m.trips[i].FuelUsed = fuelUsed
			completed := m.trips[i]
			return &completed, nil
		}
	}
	return nil, fisheryerrors.ErrTripNotFound
}

func (m *mockTrips) DeleteTrip(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	for i := range m.trips {
		if m.trips[i].ID == id {
			m.trips = append(m.trips[:i], m.trips[i+1:]...)
			return nil
		}
	}
	return fisheryerrors.ErrTripNotFound
}

// mockInspections records the parameters it receives and returns canned rows.
type mockInspections struct {
	inspection *store.Inspection
	list       []store.Inspection
	err        error

	gotCreate *store.CreateInspectionParams
	gotUpdate *store.UpdateInspectionParams
}

func (m *mockInspections) CreateInspection(_ context.Context, params store.CreateInspectionParams) (*store.Inspection, error) {
	m.gotCreate = &params
	if m.err != nil {
		return nil, m.err
	}
	return m.inspection, nil
}

func (m *mockInspections) FindInspectionByID(_ context.Context, _ int64) (*store.Inspection, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.inspection == nil {
		return nil, fisheryerrors.ErrInspectionNotFound
	}
	return m.inspection, nil
}

func (m *mockInspections) FindAllInspections(_ context.Context) ([]store.Inspection, error) {
	return m.list, m.err
}

func (m *mockInspections) FindInspectionsByInspector(_ context.Context, _ int64) ([]store.Inspection, error) {
	return m.list, m.err
}

func (m *mockInspections) FindInspectionsByTarget(_ context.Context, _ store.TargetType, _ int64) ([]store.Inspection, error) {
	return m.list, m.err
}

func (m *mockInspections) FindInspectionsByResult(_ context.Context, _ store.InspectionResult) ([]store.Inspection, error) {
	return m.list, m.err
}

func (m *mockInspections) FindInspectionsWithFines(_ context.Context) ([]store.Inspection, error) {
	return m.list, m.err
}

func (m *mockInspections) FindInspectionsWithUnpaidFines(_ context.Context) ([]store.Inspection, error) {
	return m.list, m.err
}

func (m *mockInspections) UpdateInspection(_ context.Context, _ int64, params store.UpdateInspectionParams) (*store.Inspection, error) {
	m.gotUpdate = &params
	if m.err != nil {
		return nil, m.err
	}
	return m.inspection, nil
}

func (m *mockInspections) MarkFinePaid(_ context.Context, _ int64) (*store.Inspection, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.inspection, nil
}

func (m *mockInspections) DeleteInspection(_ context.Context, _ int64) error {
	return m.err
}

// mockTickets is an in-memory store.Tickets.
type mockTickets struct {
	tickets []store.Ticket
	nextID  int64
	err     error
}

func (m *mockTickets) CreateTicket(_ context.Context, t *store.Ticket) (*store.Ticket, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	created := *t
	created.ID = m.nextID
	m.tickets = append(m.tickets, created)
	return &created, nil
}

func (m *mockTickets) FindTicketByID(_ context.Context, id int64) (*store.Ticket, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, t := range m.tickets {
		if t.ID == id {
			found := t
			return &found, nil
		}
	}
	return nil, fisheryerrors.ErrTicketNotFound
}

func (m *mockTickets) FindAllTickets(_ context.Context) ([]store.Ticket, error) {
	return append([]store.Ticket(nil), m.tickets...), m.err
}

func (m *mockTickets) FindTicketsByUser(_ context.Context, userID int64) ([]store.Ticket, error) {
	if m.err != nil {
		return nil, m.err
	}
	filtered := make([]store.Ticket, 0)
	for _, t := range m.tickets {
		if t.UserID == userID {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (m *mockTickets) FindActiveTickets(_ context.Context, now time.Time) ([]store.Ticket, error) {
	if m.err != nil {
		return nil, m.err
	}
	filtered := make([]store.Ticket, 0)
	for _, t := range m.tickets {
		if !now.Before(t.ValidFrom) && !now.After(t.ValidTo) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (m *mockTickets) FindExpiredTickets(_ context.Context, now time.Time) ([]store.Ticket, error) {
	if m.err != nil {
		return nil, m.err
	}
	filtered := make([]store.Ticket, 0)
	for _, t := range m.tickets {
		if t.ValidTo.Before(now) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (m *mockTickets) FindActiveTicketForUser(ctx context.Context, userID int64, now time.Time) (*store.Ticket, error) {
	active, err := m.FindActiveTickets(ctx, now)
	if err != nil {
		return nil, err
	}
	var best *store.Ticket
	for i := range active {
		if active[i].UserID != userID {
			continue
		}
		if best == nil || active[i].ValidTo.After(best.ValidTo) {
			best = &active[i]
		}
	}
	if best == nil {
		return nil, fisheryerrors.ErrTicketNotFound
	}
	found := *best
	return &found, nil
}

func (m *mockTickets) DeleteTicket(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	for i := range m.tickets {
		if m.tickets[i].ID == id {
			m.tickets = append(m.tickets[:i], m.tickets[i+1:]...)
			return nil
		}
	}
	return fisheryerrors.ErrTicketNotFound
}
