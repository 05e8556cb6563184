package store

import (
	"context"
	"errors"
	"time"

	fisheryerrors "github.com/finwatch/finwatch/internal/fishery/errors"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const inspectionColumns = `i.id, i.inspector_id, u.full_name, i.target_type, i.target_id,
       i.inspection_date, i.result, i.notes, i.created_at,
       f.id, f.amount, f.reason, f.is_paid, f.created_at`

const inspectionJoins = ` FROM inspections i
       JOIN users u ON u.id = i.inspector_id
       LEFT JOIN fines f ON f.inspection_id = i.id`

func scanInspection(row pgx.Row, i *Inspection) error {
	// The fine columns come from a LEFT JOIN and may all be NULL.
	var fineID *int64
	var amount *decimal.Decimal
	var reason *string
	var isPaid *bool
	var fineCreatedAt *time.Time
	err := row.Scan(&i.ID, &i.InspectorID, &i.InspectorName, &i.TargetType, &i.TargetID,
		&i.InspectionDate, &i.Result, &i.Notes, &i.CreatedAt,
		&fineID, &amount, &reason, &isPaid, &fineCreatedAt)
	if err != nil {
		return err
	}
	if fineID != nil {
		i.Fine = &Fine{
			ID:           *fineID,
			InspectionID: i.ID,
			Amount:       *amount,
			Reason:       *reason,
			IsPaid:       *isPaid,
			CreatedAt:    *fineCreatedAt,
		}
	}
	return nil
}

// CreateInspection persists the inspection and, for a FAILED result, its fine
// in one transaction.
func (p *PgStore) CreateInspection(ctx context.Context, params CreateInspectionParams) (*Inspection, error) {
	var inspectionID int64
	txErr := p.withTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO inspections (inspector_id, target_type, target_id, inspection_date, result, notes)
             VALUES ($1, $2, $3, $4, $5, $6)
             RETURNING id`,
			params.InspectorID, params.TargetType, params.TargetID,
			params.InspectionDate, params.Result, params.Notes).Scan(&inspectionID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fisheryerrors.ErrUserNotFound
			}
			return err
		}
		if params.Result == ResultFailed && params.Fine != nil {
			if _, err := tx.Exec(ctx,
				`INSERT INTO fines (inspection_id, amount, reason) VALUES ($1, $2, $3)`,
				inspectionID, params.Fine.Amount, params.Fine.Reason); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return p.FindInspectionByID(ctx, inspectionID)
}

func (p *PgStore) FindInspectionByID(ctx context.Context, id int64) (*Inspection, error) {
	var i Inspection
	err := scanInspection(p.db.QueryRow(ctx, `SELECT `+inspectionColumns+inspectionJoins+` WHERE i.id = $1`, id), &i)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fisheryerrors.ErrInspectionNotFound
		}
		return nil, err
	}
	return &i, nil
}

func (p *PgStore) FindAllInspections(ctx context.Context) ([]Inspection, error) {
	return p.queryInspections(ctx,
		`SELECT `+inspectionColumns+inspectionJoins+` ORDER BY i.inspection_date DESC`)
}

func (p *PgStore) FindInspectionsByInspector(ctx context.Context, inspectorID int64) ([]Inspection, error) {
	return p.queryInspections(ctx,
		`SELECT `+inspectionColumns+inspectionJoins+`
         WHERE i.inspector_id = $1 ORDER BY i.inspection_date DESC`, inspectorID)
}

func (p *PgStore) FindInspectionsByTarget(ctx context.Context, targetType TargetType, targetID int64) ([]Inspection, error) {
	return p.queryInspections(ctx,
		`SELECT `+inspectionColumns+inspectionJoins+`
         WHERE i.target_type = $1 AND i.target_id = $2 ORDER BY i.inspection_date DESC`, targetType, targetID)
}

func (p *PgStore) FindInspectionsByResult(ctx context.Context, result InspectionResult) ([]Inspection, error) {
	return p.queryInspections(ctx,
		`SELECT `+inspectionColumns+inspectionJoins+`
         WHERE i.result = $1 ORDER BY i.inspection_date DESC`, result)
}

func (p *PgStore) FindInspectionsWithFines(ctx context.Context) ([]Inspection, error) {
	return p.queryInspections(ctx,
		`SELECT `+inspectionColumns+inspectionJoins+`
         WHERE f.id IS NOT NULL ORDER BY i.inspection_date DESC`)
}

func (p *PgStore) FindInspectionsWithUnpaidFines(ctx context.Context) ([]Inspection, error) {
	return p.queryInspections(ctx,
		`SELECT `+inspectionColumns+inspectionJoins+`
         WHERE f.id IS NOT NULL AND f.is_paid = false ORDER BY i.inspection_date DESC`)
}

func (p *PgStore) queryInspections(ctx context.Context, query string, args ...any) ([]Inspection, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inspections := make([]Inspection, 0)
	for rows.Next() {
		var i Inspection
		if err := scanInspection(rows, &i); err != nil {
			return nil, err
		}
		inspections = append(inspections, i)
	}
	return inspections, rows.Err()
}

// UpdateInspection changes result and notes. A FAILED result with a fine
// upserts the fine; any other result deletes an existing one.
func (p *PgStore) UpdateInspection(ctx context.Context, id int64, params UpdateInspectionParams) (*Inspection, error) {
	txErr := p.withTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE inspections SET result = $2, notes = $3 WHERE id = $1`,
			id, params.Result, params.Notes)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fisheryerrors.ErrInspectionNotFound
		}

		if params.Result == ResultFailed && params.Fine != nil {
			// Only amount and reason change on conflict; is_paid keeps its value,
			// so an already settled fine stays settled.
			_, err = tx.Exec(ctx,
				`INSERT INTO fines (inspection_id, amount, reason)
                 VALUES ($1, $2, $3)
                 ON CONFLICT (inspection_id)
                 DO UPDATE SET amount = EXCLUDED.amount, reason = EXCLUDED.reason`,
				id, params.Fine.Amount, params.Fine.Reason)
			return err
		}
		_, err = tx.Exec(ctx, `DELETE FROM fines WHERE inspection_id = $1`, id)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	return p.FindInspectionByID(ctx, id)
}

func (p *PgStore) MarkFinePaid(ctx context.Context, inspectionID int64) (*Inspection, error) {
	inspection, err := p.FindInspectionByID(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	if inspection.Fine == nil {
		return nil, fisheryerrors.ErrFineNotFound
	}
	if _, err := p.db.Exec(ctx,
		`UPDATE fines SET is_paid = true WHERE inspection_id = $1`, inspectionID); err != nil {
		return nil, err
	}
	return p.FindInspectionByID(ctx, inspectionID)
}

func (p *PgStore) DeleteInspection(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM inspections WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fisheryerrors.ErrInspectionNotFound
	}
	return nil
}
