package store

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	retailerrors "github.com/finwatch/finwatch/internal/retail/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const saleColumns = `s.id, s.sale_datetime, s.store_id, st.name,
       s.employee_id, e.first_name || ' ' || e.last_name,
       s.total_amount, s.created_at`

const saleJoins = ` FROM sales s
       JOIN stores st ON st.id = s.store_id
       JOIN employees e ON e.id = s.employee_id`

func scanSale(row pgx.Row, s *SaleRecord) error {
	return row.Scan(&s.ID, &s.SaleDateTime, &s.StoreID, &s.StoreName,
		&s.EmployeeID, &s.EmployeeName, &s.TotalAmount, &s.CreatedAt)
}

// CreateSale validates and persists a sale as one atomic unit of work.
//
// Every check runs inside the transaction. Product rows are locked with
// SELECT ... FOR UPDATE before the stock check, so two concurrent sales of the
// same product serialize: the second sees the decremented quantity and fails
// with InsufficientStockError instead of overselling. The duplicate-sale guard
// has two layers: an in-transaction existence check for committed sales, and
// the uq_sales_minute_bucket unique index, which settles two in-flight sales
// racing for the same minute bucket by rejecting the second insert.
func (p *PgStore) CreateSale(ctx context.Context, params CreateSaleParams) (*SaleRecord, []SaleItemRecord, error) {
	var sale *SaleRecord
	var items []SaleItemRecord

	txErr := p.withTransaction(ctx, func(tx pgx.Tx) error {
		var storeName string
		err := tx.QueryRow(ctx, `SELECT name FROM stores WHERE id = $1`, params.StoreID).Scan(&storeName)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return retailerrors.ErrStoreNotFound
			}
			return err
		}

		var firstName, lastName string
		err = tx.QueryRow(ctx, `SELECT first_name, last_name FROM employees WHERE id = $1`, params.EmployeeID).
			Scan(&firstName, &lastName)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return retailerrors.ErrEmployeeNotFound
			}
			return err
		}

		// Duplicate guard, first layer: reject when a committed sale for the
		// same store and employee already sits in this wall-clock minute. A
		// concurrent not-yet-committed sale is invisible here; the unique
		// index on the insert below decides that race.
		bucketStart := params.SaleDateTime.Truncate(time.Minute)
		bucketEnd := bucketStart.Add(time.Minute)
		var duplicate bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (
                SELECT 1 FROM sales
                WHERE store_id = $1 AND employee_id = $2
                  AND sale_datetime >= $3 AND sale_datetime < $4)`,
			params.StoreID, params.EmployeeID, bucketStart, bucketEnd).Scan(&duplicate)
		if err != nil {
			return err
		}
		if duplicate {
			return retailerrors.ErrDuplicateSale
		}

		saleID := uuid.New()
		totalAmount := decimal.Zero
		staged := make([]SaleItemRecord, 0, len(params.Items))

		for _, line := range params.Items {
			var productName string
			var sellingPrice decimal.Decimal
			var available int32
			err := tx.QueryRow(ctx,
				`SELECT name, selling_price, available_quantity FROM products WHERE id = $1 FOR UPDATE`,
				line.ProductID).Scan(&productName, &sellingPrice, &available)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return retailerrors.ErrProductNotFound
				}
				return err
			}

			if available < line.Quantity {
				return &retailerrors.InsufficientStockError{
					ProductName: productName,
					Available:   available,
					Requested:   line.Quantity,
				}
			}

			// Snapshot the current selling price; later price changes must not
			// affect this line.
			subtotal := sellingPrice.Mul(decimal.NewFromInt32(line.Quantity))
			totalAmount = totalAmount.Add(subtotal)

			if _, err := tx.Exec(ctx,
				`UPDATE products SET available_quantity = available_quantity - $2, updated_at = now() WHERE id = $1`,
				line.ProductID, line.Quantity); err != nil {
				return err
			}

			staged = append(staged, SaleItemRecord{
				ID:          uuid.New(),
				SaleID:      saleID,
				ProductID:   line.ProductID,
				ProductName: productName,
				Quantity:    line.Quantity,
				UnitPrice:   sellingPrice,
				Subtotal:    subtotal,
			})
		}

		var createdAt time.Time
		err = tx.QueryRow(ctx,
			`INSERT INTO sales (id, sale_datetime, store_id, employee_id, total_amount)
             VALUES ($1, $2, $3, $4, $5)
             RETURNING created_at`,
			saleID, params.SaleDateTime, params.StoreID, params.EmployeeID, totalAmount).Scan(&createdAt)
		if err != nil {
			if isUniqueViolation(err) {
				return retailerrors.ErrDuplicateSale
			}
			return err
		}

		for i, item := range staged {
			if _, err := tx.Exec(ctx,
				`INSERT INTO sale_items (id, sale_id, line_no, product_id, quantity, unit_price, subtotal)
                 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				item.ID, item.SaleID, i+1, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal); err != nil {
				return err
			}
		}

		sale = &SaleRecord{
			ID:           saleID,
			SaleDateTime: params.SaleDateTime,
			StoreID:      params.StoreID,
			StoreName:    storeName,
			EmployeeID:   params.EmployeeID,
			EmployeeName: firstName + " " + lastName,
			TotalAmount:  totalAmount,
			CreatedAt:    createdAt,
		}
		items = staged
		return nil
	})

	if txErr != nil {
		return nil, nil, txErr
	}
	return sale, items, nil
}

func (p *PgStore) FindSaleByID(ctx context.Context, id uuid.UUID) (*SaleRecord, []SaleItemRecord, error) {
	var s SaleRecord
	err := scanSale(p.db.QueryRow(ctx, `SELECT `+saleColumns+saleJoins+` WHERE s.id = $1`, id), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, retailerrors.ErrSaleNotFound
		}
		return nil, nil, err
	}

	items, err := p.FindSaleItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return &s, items, nil
}

func (p *PgStore) FindSales(ctx context.Context, filter SaleFilter) ([]SaleRecord, error) {
	query := `SELECT ` + saleColumns + saleJoins
	conditions := make([]string, 0, 3)
	args := make([]any, 0, 3)

	addCondition := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, cond+placeholder(len(args)))
	}
	if filter.StoreID != uuid.Nil {
		addCondition("s.store_id = ", filter.StoreID)
	}
	if filter.EmployeeID != uuid.Nil {
		addCondition("s.employee_id = ", filter.EmployeeID)
	}
	if !filter.From.IsZero() {
		addCondition("s.sale_datetime >= ", filter.From)
	}
	if !filter.To.IsZero() {
		addCondition("s.sale_datetime <= ", filter.To)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY s.sale_datetime DESC"

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := make([]SaleRecord, 0)
	for rows.Next() {
		var s SaleRecord
		if err := scanSale(rows, &s); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (p *PgStore) FindSaleItems(ctx context.Context, saleID uuid.UUID) ([]SaleItemRecord, error) {
	rows, err := p.db.Query(ctx,
		`SELECT si.id, si.sale_id, si.product_id, pr.name, si.quantity, si.unit_price, si.subtotal
         FROM sale_items si
         JOIN products pr ON pr.id = si.product_id
         WHERE si.sale_id = $1
         ORDER BY si.line_no`, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]SaleItemRecord, 0)
	for rows.Next() {
		var item SaleItemRecord
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
