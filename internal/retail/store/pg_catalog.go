package store

import (
	"context"
	"errors"
	"time"

	retailerrors "github.com/finwatch/finwatch/internal/retail/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const categoryColumns = `id, name, description, created_at, updated_at`

func scanCategory(row pgx.Row, c *Category) error {
	return row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
}

func (p *PgStore) CreateCategory(ctx context.Context, c *Category) (*Category, error) {
	query := `INSERT INTO categories (id, name, description)
              VALUES ($1, $2, $3)
              RETURNING ` + categoryColumns
	var created Category
	err := scanCategory(p.db.QueryRow(ctx, query, uuid.New(), c.Name, c.Description), &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (p *PgStore) FindCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	var c Category
	err := scanCategory(p.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, retailerrors.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (p *PgStore) FindAllCategories(ctx context.Context) ([]Category, error) {
	rows, err := p.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (p *PgStore) UpdateCategory(ctx context.Context, c *Category) (*Category, error) {
	query := `UPDATE categories SET name = $2, description = $3, updated_at = now()
              WHERE id = $1
              RETURNING ` + categoryColumns
	var updated Category
	err := scanCategory(p.db.QueryRow(ctx, query, c.ID, c.Name, c.Description), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, retailerrors.ErrCategoryNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (p *PgStore) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return retailerrors.ErrCategoryNotFound
	}
	return nil
}

const productColumns = `id, code, name, category_id, purchase_price, selling_price, available_quantity, expiration_date, created_at, updated_at`

func scanProduct(row pgx.Row, pr *Product) error {
	return row.Scan(&pr.ID, &pr.Code, &pr.Name, &pr.CategoryID, &pr.PurchasePrice,
		&pr.SellingPrice, &pr.AvailableQuantity, &pr.ExpirationDate, &pr.CreatedAt, &pr.UpdatedAt)
}

func (p *PgStore) CreateProduct(ctx context.Context, pr *Product) (*Product, error) {
	query := `INSERT INTO products (id, code, name, category_id, purchase_price, selling_price, available_quantity, expiration_date)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
              RETURNING ` + productColumns
	var created Product
	err := scanProduct(p.db.QueryRow(ctx, query, uuid.New(), pr.Code, pr.Name, pr.CategoryID,
		pr.PurchasePrice, pr.SellingPrice, pr.AvailableQuantity, pr.ExpirationDate), &created)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, retailerrors.ErrProductCodeTaken
		}
		if isForeignKeyViolation(err) {
			return nil, retailerrors.ErrCategoryNotFound
		}
		return nil, err
	}
	return &created, nil
}

func (p *PgStore) FindProductByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	var pr Product
	err := scanProduct(p.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id), &pr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, retailerrors.ErrProductNotFound
		}
		return nil, err
	}
	return &pr, nil
}

func (p *PgStore) FindAllProducts(ctx context.Context) ([]Product, error) {
	return p.queryProducts(ctx, `SELECT `+productColumns+` FROM products ORDER BY name`)
}

func (p *PgStore) FindProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]Product, error) {
	return p.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE category_id = $1 ORDER BY name`, categoryID)
}

func (p *PgStore) FindLowStockProducts(ctx context.Context, threshold int32) ([]Product, error) {
	return p.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE available_quantity < $1 ORDER BY available_quantity`, threshold)
}

func (p *PgStore) FindExpiringProducts(ctx context.Context, before time.Time) ([]Product, error) {
	return p.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products
         WHERE expiration_date IS NOT NULL AND expiration_date <= $1
         ORDER BY expiration_date`, before)
}

func (p *PgStore) queryProducts(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var pr Product
		if err := scanProduct(rows, &pr); err != nil {
			return nil, err
		}
		products = append(products, pr)
	}
	return products, rows.Err()
}

func (p *PgStore) UpdateProduct(ctx context.Context, pr *Product) (*Product, error) {
	query := `UPDATE products
              SET code = $2, name = $3, category_id = $4, purchase_price = $5, selling_price = $6,
                  available_quantity = $7, expiration_date = $8, updated_at = now()
              WHERE id = $1
              RETURNING ` + productColumns
	var updated Product
	err := scanProduct(p.db.QueryRow(ctx, query, pr.ID, pr.Code, pr.Name, pr.CategoryID,
		pr.PurchasePrice, pr.SellingPrice, pr.AvailableQuantity, pr.ExpirationDate), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, retailerrors.ErrProductNotFound
		}
		if isUniqueViolation(err) {
			return nil, retailerrors.ErrProductCodeTaken
		}
		if isForeignKeyViolation(err) {
			return nil, retailerrors.ErrCategoryNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (p *PgStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return retailerrors.ErrProductNotFound
	}
	return nil
}
