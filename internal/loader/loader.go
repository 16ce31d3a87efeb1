package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-ecomload/internal/datagen"
	"github.com/pgEdge/pgedge-ecomload/internal/dataset"
	"github.com/pgEdge/pgedge-ecomload/internal/db"
	"github.com/pgEdge/pgedge-ecomload/internal/logging"
)

// DefaultBatchSize is the number of rows sent per INSERT statement.
const DefaultBatchSize = 1000

// Tables lists the target tables in dependency order.
var Tables = []string{"customers", "products", "orders", "order_items"}

const insertCustomersSQL = `
INSERT INTO customers (customer_id, customer_age, customer_gender, region)
SELECT * FROM unnest($1::varchar[], $2::int4[], $3::varchar[], $4::varchar[])
ON CONFLICT (customer_id) DO NOTHING`

const insertProductsSQL = `
INSERT INTO products (product_id, category, price)
SELECT * FROM unnest($1::varchar[], $2::varchar[], $3::float8[])
ON CONFLICT (product_id) DO NOTHING`

const insertOrdersSQL = `
INSERT INTO orders (order_id, customer_id, order_date, payment_method,
                    shipping_cost, delivery_time_days)
SELECT * FROM unnest($1::varchar[], $2::varchar[], $3::date[], $4::varchar[],
                     $5::float8[], $6::int4[])
ON CONFLICT (order_id) DO NOTHING`

const insertOrderItemsSQL = `
INSERT INTO order_items (order_id, product_id, quantity, discount,
                         total_amount, profit_margin, returned)
SELECT * FROM unnest($1::varchar[], $2::varchar[], $3::int4[], $4::float8[],
                     $5::float8[], $6::float8[], $7::bool[])
ON CONFLICT (order_id, product_id) DO NOTHING`

// TableResult is the outcome of loading one table.
type TableResult struct {
	Table    string
	Rows     int
	Inserted int64
}

// Skipped returns the number of rows that already existed.
func (r TableResult) Skipped() int64 {
	return int64(r.Rows) - r.Inserted
}

// Result is the outcome of a complete load.
type Result struct {
	Tables   []TableResult
	Duration time.Duration
}

// Inserted returns the total number of inserted rows.
func (r *Result) Inserted() int64 {
	var n int64
	for _, t := range r.Tables {
		n += t.Inserted
	}
	return n
}

// Loader inserts entity sets into the target tables.
type Loader struct {
	batchSize int
}

// New creates a Loader. A batchSize below one selects DefaultBatchSize.
func New(batchSize int) *Loader {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &Loader{batchSize: batchSize}
}

// section is one table's insert: a statement and a function producing
// its column arrays for rows [start, end).
type section struct {
	table string
	sql   string
	rows  int
	args  func(start, end int) []any
}

// Load inserts customers, products, orders and order items in that order.
// Each table is loaded and committed in its own transaction; a failure
// rolls back the current table and stops the load, leaving earlier
// tables committed.
func (l *Loader) Load(ctx context.Context, conn db.Conn, e *dataset.Entities) (*Result, error) {
	start := time.Now()
	result := &Result{}

	for _, s := range sections(e) {
		tr, err := l.insert(ctx, conn, s)
		if err != nil {
			return result, err
		}
		result.Tables = append(result.Tables, tr)
	}

	result.Duration = time.Since(start)
	return result, nil
}

func (l *Loader) insert(ctx context.Context, conn db.Conn, s section) (TableResult, error) {
	tr := TableResult{Table: s.table, Rows: s.rows}
	logging.Info().Str("table", s.table).Int("rows", s.rows).Msg("Inserting")

	tx, err := conn.Begin(ctx)
	if err != nil {
		return tr, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	progress := datagen.NewProgressReporter(s.table, int64(s.rows), int64(l.batchSize)*10)
	for _, r := range datagen.Chunks(s.rows, l.batchSize) {
		tag, err := tx.Exec(ctx, s.sql, s.args(r[0], r[1])...)
		if err != nil {
			return tr, fmt.Errorf("failed to insert %s rows %d-%d: %w", s.table, r[0]+1, r[1], err)
		}
		tr.Inserted += tag.RowsAffected()
		progress.Update(int64(r[1] - r[0]))
	}

	if err := tx.Commit(ctx); err != nil {
		return tr, fmt.Errorf("failed to commit %s: %w", s.table, err)
	}

	logging.Info().
		Str("table", s.table).
		Int64("inserted", tr.Inserted).
		Int64("skipped", tr.Skipped()).
		Msg("Table complete")

	return tr, nil
}

func sections(e *dataset.Entities) []section {
	return []section{
		{
			table: "customers",
			sql:   insertCustomersSQL,
			rows:  len(e.Customers),
			args: func(start, end int) []any {
				rows := e.Customers[start:end]
				ids := make([]string, len(rows))
				ages := make([]int32, len(rows))
				genders := make([]string, len(rows))
				regions := make([]string, len(rows))
				for i, c := range rows {
					ids[i], ages[i], genders[i], regions[i] = c.ID, c.Age, c.Gender, c.Region
				}
				return []any{ids, ages, genders, regions}
			},
		},
		{
			table: "products",
			sql:   insertProductsSQL,
			rows:  len(e.Products),
			args: func(start, end int) []any {
				rows := e.Products[start:end]
				ids := make([]string, len(rows))
				categories := make([]string, len(rows))
				prices := make([]float64, len(rows))
				for i, p := range rows {
					ids[i], categories[i], prices[i] = p.ID, p.Category, p.Price
				}
				return []any{ids, categories, prices}
			},
		},
		{
			table: "orders",
			sql:   insertOrdersSQL,
			rows:  len(e.Orders),
			args: func(start, end int) []any {
				rows := e.Orders[start:end]
				ids := make([]string, len(rows))
				customers := make([]string, len(rows))
				dates := make([]time.Time, len(rows))
				payments := make([]string, len(rows))
				shipping := make([]float64, len(rows))
				delivery := make([]int32, len(rows))
				for i, o := range rows {
					ids[i], customers[i], dates[i] = o.ID, o.CustomerID, o.Date
					payments[i], shipping[i], delivery[i] = o.PaymentMethod, o.ShippingCost, o.DeliveryDays
				}
				return []any{ids, customers, dates, payments, shipping, delivery}
			},
		},
		{
			table: "order_items",
			sql:   insertOrderItemsSQL,
			rows:  len(e.OrderItems),
			args: func(start, end int) []any {
				rows := e.OrderItems[start:end]
				orders := make([]string, len(rows))
				products := make([]string, len(rows))
				quantities := make([]int32, len(rows))
				discounts := make([]float64, len(rows))
				totals := make([]float64, len(rows))
				margins := make([]float64, len(rows))
				returned := make([]bool, len(rows))
				for i, it := range rows {
					orders[i], products[i], quantities[i] = it.OrderID, it.ProductID, it.Quantity
					discounts[i], totals[i], margins[i], returned[i] = it.Discount, it.TotalAmount, it.ProfitMargin, it.Returned
				}
				return []any{orders, products, quantities, discounts, totals, margins, returned}
			},
		},
	}
}

// Counts returns the row count of every target table.
func Counts(ctx context.Context, conn db.DB) ([]db.TableCount, error) {
	return db.CountRows(ctx, conn, Tables...)
}
