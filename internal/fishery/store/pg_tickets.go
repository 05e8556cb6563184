package store

import (
	"context"
	"errors"
	"time"

	fisheryerrors "github.com/finwatch/finwatch/internal/fishery/errors"
	"github.com/jackc/pgx/v5"
)

const ticketColumns = `t.id, t.user_id, u.full_name, u.email,
       t.valid_from, t.valid_to, t.ticket_type, t.price, t.created_at`

const ticketJoins = ` FROM tickets t
       JOIN users u ON u.id = t.user_id`

func scanTicket(row pgx.Row, t *Ticket) error {
	return row.Scan(&t.ID, &t.UserID, &t.UserName, &t.UserEmail,
		&t.ValidFrom, &t.ValidTo, &t.TicketType, &t.Price, &t.CreatedAt)
}

func (p *PgStore) CreateTicket(ctx context.Context, t *Ticket) (*Ticket, error) {
	var id int64
	err := p.db.QueryRow(ctx,
		`INSERT INTO tickets (user_id, valid_from, valid_to, ticket_type, price)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING id`,
		t.UserID, t.ValidFrom, t.ValidTo, t.TicketType, t.Price).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fisheryerrors.ErrUserNotFound
		}
		return nil, err
	}
	return p.FindTicketByID(ctx, id)
}

func (p *PgStore) FindTicketByID(ctx context.Context, id int64) (*Ticket, error) {
	var t Ticket
	err := scanTicket(p.db.QueryRow(ctx, `SELECT `+ticketColumns+ticketJoins+` WHERE t.id = $1`, id), &t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fisheryerrors.ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (p *PgStore) FindAllTickets(ctx context.Context) ([]Ticket, error) {
	return p.queryTickets(ctx, `SELECT `+ticketColumns+ticketJoins+` ORDER BY t.valid_to DESC`)
}

func (p *PgStore) FindTicketsByUser(ctx context.Context, userID int64) ([]Ticket, error) {
	return p.queryTickets(ctx,
		`SELECT `+ticketColumns+ticketJoins+` WHERE t.user_id = $1 ORDER BY t.valid_to DESC`, userID)
}

func (p *PgStore) FindActiveTickets(ctx context.Context, now time.Time) ([]Ticket, error) {
	return p.queryTickets(ctx,
		`SELECT `+ticketColumns+ticketJoins+`
         WHERE t.valid_from <= $1 AND t.valid_to >= $1
         ORDER BY t.valid_to DESC`, now)
}

func (p *PgStore) FindExpiredTickets(ctx context.Context, now time.Time) ([]Ticket, error) {
	return p.queryTickets(ctx,
		`SELECT `+ticketColumns+ticketJoins+` WHERE t.valid_to < $1 ORDER BY t.valid_to DESC`, now)
}

func (p *PgStore) FindActiveTicketForUser(ctx context.Context, userID int64, now time.Time) (*Ticket, error) {
	var t Ticket
	err := scanTicket(p.db.QueryRow(ctx,
		`SELECT `+ticketColumns+ticketJoins+`
         WHERE t.user_id = $1 AND t.valid_from <= $2 AND t.valid_to >= $2
         ORDER BY t.valid_to DESC
         LIMIT 1`, userID, now), &t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fisheryerrors.ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (p *PgStore) queryTickets(ctx context.Context, query string, args ...any) ([]Ticket, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]Ticket, 0)
	for rows.Next() {
		var t Ticket
		if err := scanTicket(rows, &t); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (p *PgStore) DeleteTicket(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fisheryerrors.ErrTicketNotFound
	}
	return nil
}
