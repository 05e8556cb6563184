package store

import (
	"context"
	"errors"

	fisheryerrors "github.com/finwatch/finwatch/internal/fishery/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `id, full_name, email, role, created_at`

func scanUser(row pgx.Row, u *User) error {
	return row.Scan(&u.ID, &u.FullName, &u.Email, &u.Role, &u.CreatedAt)
}

func (p *PgStore) FindUserByID(ctx context.Context, id int64) (*User, error) {
	var u User
	err := scanUser(p.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id), &u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fisheryerrors.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (p *PgStore) FindAllUsers(ctx context.Context) ([]User, error) {
	return p.queryUsers(ctx, `SELECT `+userColumns+` FROM users ORDER BY full_name`)
}

func (p *PgStore) FindUsersByRole(ctx context.Context, role UserRole) ([]User, error) {
	return p.queryUsers(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY full_name`, role)
}

func (p *PgStore) queryUsers(ctx context.Context, query string, args ...any) ([]User, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var u User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// isForeignKeyViolation reports whether err is a PostgreSQL foreign key constraint violation (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
