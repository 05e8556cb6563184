package store

import (
	"context"
	"errors"
	"time"

	fisheryerrors "github.com/finwatch/finwatch/internal/fishery/errors"
	"github.com/jackc/pgx/v5"
)

const permitColumns = `p.id, p.ship_id, s.name, s.registration_number, u.full_name, u.email,
       p.valid_from, p.valid_to, p.allowed_gear, p.created_at`

const permitJoins = ` FROM permits p
       JOIN ships s ON s.id = p.ship_id
       JOIN users u ON u.id = s.owner_id`

func scanPermit(row pgx.Row, p *Permit) error {
	return row.Scan(&p.ID, &p.ShipID, &p.ShipName, &p.ShipRegistrationNumber,
		&p.OwnerName, &p.OwnerEmail, &p.ValidFrom, &p.ValidTo, &p.AllowedGear, &p.CreatedAt)
}

func (p *PgStore) CreatePermit(ctx context.Context, permit *Permit) (*Permit, error) {
	var id int64
	err := p.db.QueryRow(ctx,
		`INSERT INTO permits (ship_id, valid_from, valid_to, allowed_gear)
         VALUES ($1, $2, $3, $4)
         RETURNING id`,
		permit.ShipID, permit.ValidFrom, permit.ValidTo, permit.AllowedGear).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fisheryerrors.ErrShipNotFound
		}
		return nil, err
	}
	return p.FindPermitByID(ctx, id)
}

func (p *PgStore) FindPermitByID(ctx context.Context, id int64) (*Permit, error) {
	var permit Permit
	err := scanPermit(p.db.QueryRow(ctx, `SELECT `+permitColumns+permitJoins+` WHERE p.id = $1`, id), &permit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fisheryerrors.ErrPermitNotFound
		}
		return nil, err
	}
	return &permit, nil
}

func (p *PgStore) FindAllPermits(ctx context.Context) ([]Permit, error) {
	return p.queryPermits(ctx, `SELECT `+permitColumns+permitJoins+` ORDER BY p.valid_to DESC`)
}

func (p *PgStore) FindPermitsByShip(ctx context.Context, shipID int64) ([]Permit, error) {
	return p.queryPermits(ctx,
		`SELECT `+permitColumns+permitJoins+` WHERE p.ship_id = $1 ORDER BY p.valid_to DESC`, shipID)
}

func (p *PgStore) FindExpiringPermits(ctx context.Context, now time.Time, days int32) ([]Permit, error) {
	return p.queryPermits(ctx,
		`SELECT `+permitColumns+permitJoins+`
         WHERE p.valid_to >= $1 AND p.valid_to <= $2
         ORDER BY p.valid_to`, now, now.AddDate(0, 0, int(days)))
}

func (p *PgStore) FindActivePermits(ctx context.Context, now time.Time) ([]Permit, error) {
	return p.queryPermits(ctx,
		`SELECT `+permitColumns+permitJoins+`
         WHERE p.valid_from <= $1 AND p.valid_to >= $1
         ORDER BY p.valid_to`, now)
}

func (p *PgStore) FindExpiredPermits(ctx context.Context, now time.Time) ([]Permit, error) {
	return p.queryPermits(ctx,
		`SELECT `+permitColumns+permitJoins+` WHERE p.valid_to < $1 ORDER BY p.valid_to DESC`, now)
}

func (p *PgStore) queryPermits(ctx context.Context, query string, args ...any) ([]Permit, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	permits := make([]Permit, 0)
	for rows.Next() {
		var permit Permit
		if err := scanPermit(rows, &permit); err != nil {
			return nil, err
		}
		permits = append(permits, permit)
	}
	return permits, rows.Err()
}

func (p *PgStore) UpdatePermit(ctx context.Context, permit *Permit) (*Permit, error) {
	tag, err := p.db.Exec(ctx,
		`UPDATE permits SET valid_from = $2, valid_to = $3, allowed_gear = $4 WHERE id = $1`,
		permit.ID, permit.ValidFrom, permit.ValidTo, permit.AllowedGear)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, fisheryerrors.ErrPermitNotFound
	}
	return p.FindPermitByID(ctx, permit.ID)
}

func (p *PgStore) DeletePermit(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM permits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fisheryerrors.ErrPermitNotFound
	}
	return nil
}
