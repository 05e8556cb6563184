package store

import (
	"context"
	"errors"

	retailerrors "github.com/finwatch/finwatch/internal/retail/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const storeColumns = `id, name, address, manager, region, territory, district, settlement, created_at, updated_at`

func scanStore(row pgx.Row, s *Store) error {
	return row.Scan(&s.ID, &s.Name, &s.Address, &s.Manager, &s.Region, &s.Territory,
		&s.District, &s.Settlement, &s.CreatedAt, &s.UpdatedAt)
}

func (p *PgStore) CreateStore(ctx context.Context, s *Store) (*Store, error) {
	query := `INSERT INTO stores (id, name, address, manager, region, territory, district, settlement)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
              RETURNING ` + storeColumns
	var created Store
	err := scanStore(p.db.QueryRow(ctx, query, uuid.New(), s.Name, s.Address, s.Manager,
		s.Region, s.Territory, s.District, s.Settlement), &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (p *PgStore) FindStoreByID(ctx context.Context, id uuid.UUID) (*Store, error) {
	var s Store
	err := scanStore(p.db.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, retailerrors.ErrStoreNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (p *PgStore) FindAllStores(ctx context.Context) ([]Store, error) {
	rows, err := p.db.Query(ctx, `SELECT `+storeColumns+` FROM stores ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stores := make([]Store, 0)
	for rows.Next() {
		var s Store
		if err := scanStore(rows, &s); err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

func (p *PgStore) UpdateStore(ctx context.Context, s *Store) (*Store, error) {
	query := `UPDATE stores
              SET name = $2, address = $3, manager = $4, region = $5, territory = $6,
                  district = $7, settlement = $8, updated_at = now()
              WHERE id = $1
              RETURNING ` + storeColumns
	var updated Store
	err := scanStore(p.db.QueryRow(ctx, query, s.ID, s.Name, s.Address, s.Manager,
		s.Region, s.Territory, s.District, s.Settlement), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, retailerrors.ErrStoreNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (p *PgStore) DeleteStore(ctx context.Context, id uuid.UUID) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return retailerrors.ErrStoreNotFound
	}
	return nil
}

const employeeColumns = `id, first_name, last_name, position, monthly_salary, employment_start_date, store_id, created_at, updated_at`

func scanEmployee(row pgx.Row, e *Employee) error {
	return row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Position, &e.MonthlySalary,
		&e.EmploymentStartDate, &e.StoreID, &e.CreatedAt, &e.UpdatedAt)
}

func (p *PgStore) CreateEmployee(ctx context.Context, e *Employee) (*Employee, error) {
	query := `INSERT INTO employees (id, first_name, last_name, position, monthly_salary, employment_start_date, store_id)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              RETURNING ` + employeeColumns
	var created Employee
	err := scanEmployee(p.db.QueryRow(ctx, query, uuid.New(), e.FirstName, e.LastName,
		e.Position, e.MonthlySalary, e.EmploymentStartDate, e.StoreID), &created)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, retailerrors.ErrStoreNotFound
		}
		return nil, err
	}
	return &created, nil
}

func (p *PgStore) FindEmployeeByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var e Employee
	err := scanEmployee(p.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id), &e)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, retailerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (p *PgStore) FindAllEmployees(ctx context.Context) ([]Employee, error) {
	return p.queryEmployees(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY last_name, first_name`)
}

func (p *PgStore) FindEmployeesByStore(ctx context.Context, storeID uuid.UUID) ([]Employee, error) {
	return p.queryEmployees(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE store_id = $1 ORDER BY last_name, first_name`, storeID)
}

func (p *PgStore) queryEmployees(ctx context.Context, query string, args ...any) ([]Employee, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]Employee, 0)
	for rows.Next() {
		var e Employee
		if err := scanEmployee(rows, &e); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (p *PgStore) UpdateEmployee(ctx context.Context, e *Employee) (*Employee, error) {
	query := `UPDATE employees
              SET first_name = $2, last_name = $3, position = $4, monthly_salary = $5,
                  employment_start_date = $6, store_id = $7, updated_at = now()
              WHERE id = $1
              RETURNING ` + employeeColumns
	var updated Employee
	err := scanEmployee(p.db.QueryRow(ctx, query, e.ID, e.FirstName, e.LastName,
		e.Position, e.MonthlySalary, e.EmploymentStartDate, e.StoreID), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, retailerrors.ErrEmployeeNotFound
		}
		if isForeignKeyViolation(err) {
			return nil, retailerrors.ErrStoreNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (p *PgStore) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return retailerrors.ErrEmployeeNotFound
	}
	return nil
}

// isForeignKeyViolation reports whether err is a PostgreSQL foreign key violation (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
