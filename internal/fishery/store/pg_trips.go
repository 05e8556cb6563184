package store

import (
	"context"
	"errors"
	"time"

	fisheryerrors "github.com/finwatch/finwatch/internal/fishery/errors"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const tripColumns = `t.id, t.ship_id, s.name, s.registration_number,
       t.start_time, t.end_time, t.fuel_used, t.created_at`

const tripJoins = ` FROM fishing_trips t
       JOIN ships s ON s.id = t.ship_id`

func scanTrip(row pgx.Row, t *Trip) error {
	return row.Scan(&t.ID, &t.ShipID, &t.ShipName, &t.ShipRegistrationNumber,
		&t.StartTime, &t.EndTime, &t.FuelUsed, &t.CreatedAt)
}

// CreateTrip persists the trip and its catches in one transaction.
func (p *PgStore) CreateTrip(ctx context.Context, params CreateTripParams) (*Trip, []Catch, error) {
	var tripID int64
	txErr := p.withTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO fishing_trips (ship_id, start_time, end_time, fuel_used)
             VALUES ($1, $2, $3, $4)
             RETURNING id`,
			params.ShipID, params.StartTime, params.EndTime, params.FuelUsed).Scan(&tripID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fisheryerrors.ErrShipNotFound
			}
			return err
		}
		return insertCatches(ctx, tx, tripID, params.Catches)
	})
	if txErr != nil {
		return nil, nil, txErr
	}
	return p.FindTripByID(ctx, tripID)
}

func insertCatches(ctx context.Context, tx pgx.Tx, tripID int64, catches []CatchParams) error {
	for _, c := range catches {
		if _, err := tx.Exec(ctx,
			`INSERT INTO catches (trip_id, fish_type, quantity_kg) VALUES ($1, $2, $3)`,
			tripID, c.FishType, c.QuantityKg); err != nil {
			return err
		}
	}
	return nil
}

func (p *PgStore) FindTripByID(ctx context.Context, id int64) (*Trip, []Catch, error) {
	var t Trip
	err := scanTrip(p.db.QueryRow(ctx, `SELECT `+tripColumns+tripJoins+` WHERE t.id = $1`, id), &t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, fisheryerrors.ErrTripNotFound
		}
		return nil, nil, err
	}
	catches, err := p.FindCatchesByTrip(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return &t, catches, nil
}

func (p *PgStore) FindAllTrips(ctx context.Context) ([]Trip, error) {
	return p.queryTrips(ctx, `SELECT `+tripColumns+tripJoins+` ORDER BY t.start_time DESC`)
}

func (p *PgStore) FindTripsByShip(ctx context.Context, shipID int64) ([]Trip, error) {
	return p.queryTrips(ctx,
		`SELECT `+tripColumns+tripJoins+` WHERE t.ship_id = $1 ORDER BY t.start_time DESC`, shipID)
}

func (p *PgStore) FindActiveTrips(ctx context.Context) ([]Trip, error) {
	return p.queryTrips(ctx,
		`SELECT `+tripColumns+tripJoins+` WHERE t.end_time IS NULL ORDER BY t.start_time DESC`)
}

func (p *PgStore) FindCompletedTrips(ctx context.Context) ([]Trip, error) {
	return p.queryTrips(ctx,
		`SELECT `+tripColumns+tripJoins+` WHERE t.end_time IS NOT NULL ORDER BY t.start_time DESC`)
}

func (p *PgStore) queryTrips(ctx context.Context, query string, args ...any) ([]Trip, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := make([]Trip, 0)
	for rows.Next() {
		var t Trip
		if err := scanTrip(rows, &t); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func (p *PgStore) FindCatchesByTrip(ctx context.Context, tripID int64) ([]Catch, error) {
	rows, err := p.db.Query(ctx,
		`SELECT id, trip_id, fish_type, quantity_kg, created_at
         FROM catches WHERE trip_id = $1 ORDER BY id`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	catches := make([]Catch, 0)
	for rows.Next() {
		var c Catch
		if err := rows.Scan(&c.ID, &c.TripID, &c.FishType, &c.QuantityKg, &c.CreatedAt); err != nil {
			return nil, err
		}
		catches = append(catches, c)
	}
	return catches, rows.Err()
}

// UpdateTrip stamps new end time and fuel and replaces the catch list, all in
// one transaction.
func (p *PgStore) UpdateTrip(ctx context.Context, id int64, params UpdateTripParams) (*Trip, []Catch, error) {
	txErr := p.withTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE fishing_trips SET end_time = $2, fuel_used = $3 WHERE id = $1`,
			id, params.EndTime, params.FuelUsed)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fisheryerrors.ErrTripNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM catches WHERE trip_id = $1`, id); err != nil {
			return err
		}
		return insertCatches(ctx, tx, id, params.Catches)
	})
	if txErr != nil {
		return nil, nil, txErr
	}
	return p.FindTripByID(ctx, id)
}

// CompleteTrip only touches trips that are still running, so a repeated call
// reports ErrTripAlreadyCompleted.
func (p *PgStore) CompleteTrip(ctx context.Context, id int64, endTime time.Time, fuelUsed *decimal.Decimal) (*Trip, error) {
	tag, err := p.db.Exec(ctx,
		`UPDATE fishing_trips SET end_time = $2, fuel_used = $3 WHERE id = $1 AND end_time IS NULL`,
		id, endTime, fuelUsed)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := p.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM fishing_trips WHERE id = $1)`, id).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, fisheryerrors.ErrTripNotFound
		}
		return nil, fisheryerrors.ErrTripAlreadyCompleted
	}
	trip, _, err := p.FindTripByID(ctx, id)
	return trip, err
}

func (p *PgStore) DeleteTrip(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM fishing_trips WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fisheryerrors.ErrTripNotFound
	}
	return nil
}
