package store

import (
	"context"
	"errors"

	fisheryerrors "github.com/finwatch/finwatch/internal/fishery/errors"
	"github.com/jackc/pgx/v5"
)

const shipColumns = `s.id, s.name, s.registration_number, s.owner_id, u.full_name,
       s.engine_power, s.fuel_type, s.created_at`

const shipJoins = ` FROM ships s
       JOIN users u ON u.id = s.owner_id`

func scanShip(row pgx.Row, s *Ship) error {
	return row.Scan(&s.ID, &s.Name, &s.RegistrationNumber, &s.OwnerID, &s.OwnerName,
		&s.EnginePower, &s.FuelType, &s.CreatedAt)
}

func (p *PgStore) CreateShip(ctx context.Context, s *Ship) (*Ship, error) {
	var id int64
	err := p.db.QueryRow(ctx,
		`INSERT INTO ships (name, registration_number, owner_id, engine_power, fuel_type)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING id`,
		s.Name, s.RegistrationNumber, s.OwnerID, s.EnginePower, s.FuelType).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fisheryerrors.ErrRegistrationNumberTaken
		}
		if isForeignKeyViolation(err) {
			return nil, fisheryerrors.ErrUserNotFound
		}
		return nil, err
	}
	return p.FindShipByID(ctx, id)
}

func (p *PgStore) FindShipByID(ctx context.Context, id int64) (*Ship, error) {
	var s Ship
	err := scanShip(p.db.QueryRow(ctx, `SELECT `+shipColumns+shipJoins+` WHERE s.id = $1`, id), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fisheryerrors.ErrShipNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (p *PgStore) FindAllShips(ctx context.Context) ([]Ship, error) {
	rows, err := p.db.Query(ctx, `SELECT `+shipColumns+shipJoins+` ORDER BY s.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ships := make([]Ship, 0)
	for rows.Next() {
		var s Ship
		if err := scanShip(rows, &s); err != nil {
			return nil, err
		}
		ships = append(ships, s)
	}
	return ships, rows.Err()
}

func (p *PgStore) UpdateShip(ctx context.Context, s *Ship) (*Ship, error) {
	tag, err := p.db.Exec(ctx,
		`UPDATE ships
         SET name = $2, registration_number = $3, owner_id = $4, engine_power = $5, fuel_type = $6
         WHERE id = $1`,
		s.ID, s.Name, s.RegistrationNumber, s.OwnerID, s.EnginePower, s.FuelType)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fisheryerrors.ErrRegistrationNumberTaken
		}
		if isForeignKeyViolation(err) {
			return nil, fisheryerrors.ErrUserNotFound
		}
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, fisheryerrors.ErrShipNotFound
	}
	return p.FindShipByID(ctx, s.ID)
}

func (p *PgStore) DeleteShip(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM ships WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fisheryerrors.ErrShipNotFound
	}
	return nil
}
