// Package store provides the fishery persistence layer: row types, enums and
// the interfaces the service layer depends on.
package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// UserRole classifies a registered user.
type UserRole string

const (
	RoleAdmin              UserRole = "ADMIN"
	RoleInspector          UserRole = "INSPECTOR"
	RoleShipOwner          UserRole = "SHIP_OWNER"
	RoleRecreationalFisher UserRole = "RECREATIONAL_FISHER"
)

// FuelType is the propulsion class of a ship.
type FuelType string

const (
	FuelDiesel   FuelType = "DIESEL"
	FuelPetrol   FuelType = "PETROL"
	FuelElectric FuelType = "ELECTRIC"
	FuelHybrid   FuelType = "HYBRID"
)

// TargetType says what an inspection was carried out against.
type TargetType string

const (
	TargetShip        TargetType = "SHIP"
	TargetFisher      TargetType = "FISHER"
	TargetFishingTrip TargetType = "FISHING_TRIP"
)

// InspectionResult is the outcome of an inspection.
type InspectionResult string

const (
	ResultPassed InspectionResult = "PASSED"
	ResultFailed InspectionResult = "FAILED"
)

// TicketType is the validity class of a recreational fishing ticket.
type TicketType string

const (
	TicketDaily   TicketType = "DAILY"
	TicketWeekly  TicketType = "WEEKLY"
	TicketMonthly TicketType = "MONTHLY"
	TicketYearly  TicketType = "YEARLY"
)

// User is a registered user row. Rows are seeded out of band; the service
// only reads them.
type User struct {
	ID        int64
	FullName  string
	Email     string
	Role      UserRole
	CreatedAt time.Time
}

// Ship is a ship row hydrated with the owner's name.
type Ship struct {
	ID                 int64
	Name               string
	RegistrationNumber string
	OwnerID            int64
	OwnerName          string
	EnginePower        decimal.Decimal
	FuelType           FuelType
	CreatedAt          time.Time
}

// Permit is a fishing permit row hydrated with ship and owner details.
type Permit struct {
	ID                     int64
	ShipID                 int64
	ShipName               string
	ShipRegistrationNumber string
	OwnerName              string
	OwnerEmail             string
	ValidFrom              time.Time
	ValidTo                time.Time
	AllowedGear            string
	CreatedAt              time.Time
}

// Trip is a fishing trip row hydrated with ship details.
type Trip struct {
	ID                     int64
	ShipID                 int64
	ShipName               string
	ShipRegistrationNumber string
	StartTime              time.Time
	EndTime                *time.Time
	FuelUsed               *decimal.Decimal
	CreatedAt              time.Time
}

// Catch is one catch line of a fishing trip.
type Catch struct {
	ID         int64
	TripID     int64
	FishType   string
	QuantityKg decimal.Decimal
	CreatedAt  time.Time
}

// Inspection is an inspection row hydrated with the inspector's name and, when
// present, its fine.
type Inspection struct {
	ID             int64
	InspectorID    int64
	InspectorName  string
	TargetType     TargetType
	TargetID       int64
	InspectionDate time.Time
	Result         InspectionResult
	Notes          string
	Fine           *Fine
	CreatedAt      time.Time
}

// Fine is a fine attached to a failed inspection.
type Fine struct {
	ID           int64
	InspectionID int64
	Amount       decimal.Decimal
	Reason       string
	IsPaid       bool
	CreatedAt    time.Time
}

// Ticket is a recreational fishing ticket row hydrated with user details.
type Ticket struct {
	ID         int64
	UserID     int64
	UserName   string
	UserEmail  string
	ValidFrom  time.Time
	ValidTo    time.Time
	TicketType TicketType
	Price      decimal.Decimal
	CreatedAt  time.Time
}

// CreateTripParams carries a new trip and its catches.
type CreateTripParams struct {
	ShipID    int64
	StartTime time.Time
	EndTime   *time.Time
	FuelUsed  *decimal.Decimal
	Catches   []CatchParams
}

// UpdateTripParams replaces a trip's end time, fuel and catch list.
type UpdateTripParams struct {
	EndTime  *time.Time
	FuelUsed *decimal.Decimal
	Catches  []CatchParams
}

// CatchParams is one proposed catch line.
type CatchParams struct {
	FishType   string
	QuantityKg decimal.Decimal
}

// CreateInspectionParams carries a new inspection and its optional fine.
type CreateInspectionParams struct {
	InspectorID    int64
	TargetType     TargetType
	TargetID       int64
	InspectionDate time.Time
	Result         InspectionResult
	Notes          string
	Fine           *FineParams
}

// UpdateInspectionParams changes an inspection's result, notes and fine.
type UpdateInspectionParams struct {
	Result InspectionResult
	Notes  string
	Fine   *FineParams
}

// FineParams is a proposed fine.
type FineParams struct {
	Amount decimal.Decimal
	Reason string
}

// Users is the read-only access to the user directory.
type Users interface {
	FindUserByID(ctx context.Context, id int64) (*User, error)
	FindAllUsers(ctx context.Context) ([]User, error)
	FindUsersByRole(ctx context.Context, role UserRole) ([]User, error)
}

// Ships is the read/write access to ships.
type Ships interface {
	CreateShip(ctx context.Context, s *Ship) (*Ship, error)
	FindShipByID(ctx context.Context, id int64) (*Ship, error)
	FindAllShips(ctx context.Context) ([]Ship, error)
	UpdateShip(ctx context.Context, s *Ship) (*Ship, error)
	DeleteShip(ctx context.Context, id int64) error
}

// Permits is the read/write access to fishing permits.
type Permits interface {
	CreatePermit(ctx context.Context, p *Permit) (*Permit, error)
	FindPermitByID(ctx context.Context, id int64) (*Permit, error)
	FindAllPermits(ctx context.Context) ([]Permit, error)
	FindPermitsByShip(ctx context.Context, shipID int64) ([]Permit, error)
	// FindExpiringPermits returns permits whose ValidTo falls in [now, now+days].
	FindExpiringPermits(ctx context.Context, now time.Time, days int32) ([]Permit, error)
	FindActivePermits(ctx context.Context, now time.Time) ([]Permit, error)
	FindExpiredPermits(ctx context.Context, now time.Time) ([]Permit, error)
	UpdatePermit(ctx context.Context, p *Permit) (*Permit, error)
	DeletePermit(ctx context.Context, id int64) error
}

// Trips is the read/write access to fishing trips and their catches.
// CreateTrip and UpdateTrip persist the trip and its catch list atomically;
// UpdateTrip replaces the existing catches.
type Trips interface {
	CreateTrip(ctx context.Context, params CreateTripParams) (*Trip, []Catch, error)
	FindTripByID(ctx context.Context, id int64) (*Trip, []Catch, error)
	FindAllTrips(ctx context.Context) ([]Trip, error)
	FindTripsByShip(ctx context.Context, shipID int64) ([]Trip, error)
	FindActiveTrips(ctx context.Context) ([]Trip, error)
	FindCompletedTrips(ctx context.Context) ([]Trip, error)
	FindCatchesByTrip(ctx context.Context, tripID int64) ([]Catch, error)
	UpdateTrip(ctx context.Context, id int64, params UpdateTripParams) (*Trip, []Catch, error)
	// CompleteTrip stamps the end time and fuel used on a still-running trip.
	CompleteTrip(ctx context.Context, id int64, endTime time.Time, fuelUsed *decimal.Decimal) (*Trip, error)
	DeleteTrip(ctx context.Context, id int64) error
}

// Inspections is the read/write access to inspections and their fines.
type Inspections interface {
	CreateInspection(ctx context.Context, params CreateInspectionParams) (*Inspection, error)
	FindInspectionByID(ctx context.Context, id int64) (*Inspection, error)
	FindAllInspections(ctx context.Context) ([]Inspection, error)
	FindInspectionsByInspector(ctx context.Context, inspectorID int64) ([]Inspection, error)
	FindInspectionsByTarget(ctx context.Context, targetType TargetType, targetID int64) ([]Inspection, error)
	FindInspectionsByResult(ctx context.Context, result InspectionResult) ([]Inspection, error)
	FindInspectionsWithFines(ctx context.Context) ([]Inspection, error)
	FindInspectionsWithUnpaidFines(ctx context.Context) ([]Inspection, error)
	// UpdateInspection changes result and notes; a FAILED result with a fine
	// upserts the fine, any other result removes an existing one.
	UpdateInspection(ctx context.Context, id int64, params UpdateInspectionParams) (*Inspection, error)
	MarkFinePaid(ctx context.Context, inspectionID int64) (*Inspection, error)
	DeleteInspection(ctx context.Context, id int64) error
}

// Tickets is the read/write access to recreational fishing tickets.
type Tickets interface {
	CreateTicket(ctx context.Context, t *Ticket) (*Ticket, error)
	FindTicketByID(ctx context.Context, id int64) (*Ticket, error)
	FindAllTickets(ctx context.Context) ([]Ticket, error)
	FindTicketsByUser(ctx context.Context, userID int64) ([]Ticket, error)
	FindActiveTickets(ctx context.Context, now time.Time) ([]Ticket, error)
	FindExpiredTickets(ctx context.Context, now time.Time) ([]Ticket, error)
	// FindActiveTicketForUser returns the active ticket with the latest ValidTo,
	// or ErrTicketNotFound when the user holds none.
	FindActiveTicketForUser(ctx context.Context, userID int64, now time.Time) (*Ticket, error)
	DeleteTicket(ctx context.Context, id int64) error
}
