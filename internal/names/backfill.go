package names

import (
	"context"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-ecomload/internal/datagen"
	"github.com/pgEdge/pgedge-ecomload/internal/db"
	"github.com/pgEdge/pgedge-ecomload/internal/logging"
)

// DefaultBatchSize is the number of UPDATE statements sent per round trip.
const DefaultBatchSize = 1000

// Name columns added by the backfill.
const (
	CustomerNameColumn = "customer_name"
	ProductNameColumn  = "product_name"
)

// Section identifies one half of the backfill.
type Section string

const (
	SectionCustomers Section = "customers"
	SectionProducts  Section = "products"
)

// Result describes one completed section.
type Result struct {
	Section     Section
	Updated     int
	ColumnAdded bool
}

// Backfiller writes synthesized names into the customers and products
// tables over a single connection.
type Backfiller struct {
	synth     *Synthesizer
	batchSize int
}

// NewBackfiller creates a Backfiller using synth. A batchSize below one
// selects DefaultBatchSize.
func NewBackfiller(synth *Synthesizer, batchSize int) *Backfiller {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &Backfiller{synth: synth, batchSize: batchSize}
}

type assignment struct {
	id   string
	name string
}

type customerRow struct {
	ID     string
	Gender string
}

type productRow struct {
	ID       string
	Category string
	Price    float64
}

// Backfill runs the given sections in order, customers before products
// when both are named. No sections selects both.
func (b *Backfiller) Backfill(ctx context.Context, conn db.Conn, sections ...Section) ([]*Result, error) {
	if len(sections) == 0 {
		sections = []Section{SectionCustomers, SectionProducts}
	}

	var results []*Result
	for _, s := range []Section{SectionCustomers, SectionProducts} {
		if !slices.Contains(sections, s) {
			continue
		}
		run := b.Customers
		if s == SectionProducts {
			run = b.Products
		}
		res, err := run(ctx, conn)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Customers names every customer by gender and commits.
func (b *Backfiller) Customers(ctx context.Context, conn db.Conn) (*Result, error) {
	rows, err := conn.Query(ctx, `
        SELECT customer_id::text, COALESCE(customer_gender, '')
        FROM customers
        ORDER BY customer_id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}
	customers, err := pgx.CollectRows(rows, pgx.RowToStructByPos[customerRow])
	if err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}

	logging.Info().Int("count", len(customers)).Msg("Generating customer names")

	assignments := make([]assignment, len(customers))
	for i, c := range customers {
		assignments[i] = assignment{id: c.ID, name: b.synth.CustomerName(c.Gender)}
	}

	return b.apply(ctx, conn, SectionCustomers, CustomerNameColumn, "VARCHAR(100)",
		"UPDATE customers SET customer_name = $1 WHERE customer_id = $2", assignments)
}

// Products names every product by category and price and commits.
func (b *Backfiller) Products(ctx context.Context, conn db.Conn) (*Result, error) {
	rows, err := conn.Query(ctx, `
        SELECT product_id::text, COALESCE(category, ''), COALESCE(price, 0)::float8
        FROM products
        ORDER BY product_id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	products, err := pgx.CollectRows(rows, pgx.RowToStructByPos[productRow])
	if err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}

	logging.Info().Int("count", len(products)).Msg("Generating product names")

	assignments := make([]assignment, len(products))
	for i, p := range products {
		assignments[i] = assignment{id: p.ID, name: b.synth.ProductName(p.Category, p.Price)}
	}

	return b.apply(ctx, conn, SectionProducts, ProductNameColumn, "VARCHAR(150)",
		"UPDATE products SET product_name = $1 WHERE product_id = $2", assignments)
}

// apply adds the name column if needed, then updates every row in one
// transaction.
func (b *Backfiller) apply(ctx context.Context, conn db.Conn, section Section,
	column, columnType, updateSQL string, assignments []assignment) (*Result, error) {
	table := string(section)

	added, err := db.AddColumn(ctx, conn, table, column, columnType)
	if err != nil {
		return nil, err
	}
	if added {
		logging.Info().Str("table", table).Str("column", column).Msg("Added column")
	} else {
		logging.Info().Str("table", table).Str("column", column).Msg("Column already exists")
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	progress := datagen.NewProgressReporter(table, int64(len(assignments)), int64(b.batchSize)*10)
	for _, r := range datagen.Chunks(len(assignments), b.batchSize) {
		batch := &pgx.Batch{}
		for _, a := range assignments[r[0]:r[1]] {
			batch.Queue(updateSQL, a.name, a.id)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return nil, fmt.Errorf("failed to update %s names: %w", table, err)
		}
		progress.Update(int64(r[1] - r[0]))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit %s names: %w", table, err)
	}

	logging.Info().
		Str("table", table).
		Int("updated", len(assignments)).
		Msg("Updated names")

	return &Result{Section: section, Updated: len(assignments), ColumnAdded: added}, nil
}
