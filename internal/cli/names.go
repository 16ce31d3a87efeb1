package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-ecomload/internal/db"
	"github.com/pgEdge/pgedge-ecomload/internal/logging"
	"github.com/pgEdge/pgedge-ecomload/internal/names"
)

var (
	namesSeed      uint64
	namesCustomers bool
	namesProducts  bool
)

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "Backfill synthetic customer and product names",
	Long: `Generate display names for every customer and product and write them to
the customer_name and product_name columns, adding the columns if needed.

Customer names follow customer_gender. Product names combine category word
lists with a quality tier derived from the price:
  > 500  Platinum Edition
  > 200  Gold Edition
  > 100  Silver Edition

Known categories: ` + strings.Join(names.Categories(), ", ") + `

Example:
  pgedge-ecomload names
  pgedge-ecomload names --products --seed 42`,
	RunE: runNames,
}

func init() {
	namesCmd.Flags().Uint64Var(&namesSeed, "seed", 0,
		"random seed for reproducible names (0 = random)")
	namesCmd.Flags().BoolVar(&namesCustomers, "customers", false,
		"only backfill customer names")
	namesCmd.Flags().BoolVar(&namesProducts, "products", false,
		"only backfill product names")
}

func runNames(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if namesSeed > 0 {
		cfg.Names.Seed = namesSeed
	}
	if namesCustomers || namesProducts {
		cfg.Names.Customers = namesCustomers
		cfg.Names.Products = namesProducts
	}

	if err := cfg.ValidateNames(); err != nil {
		return err
	}

	log := logging.Job("names")

	ctx := context.Background()
	conn, err := connect(ctx, "names")
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	b := names.NewBackfiller(names.New(cfg.Names.Seed), cfg.Load.BatchSize)

	var sections []names.Section
	if cfg.Names.Customers {
		sections = append(sections, names.SectionCustomers)
	}
	if cfg.Names.Products {
		sections = append(sections, names.SectionProducts)
	}

	results, err := b.Backfill(ctx, conn, sections...)
	if err != nil {
		return err
	}

	if err := db.SaveMetadata(ctx, conn, map[string]string{
		db.MetaNamesGeneratedAt: now(),
	}); err != nil {
		log.Warn().Err(err).Msg("Could not save metadata")
	}

	for _, res := range results {
		log.Info().
			Str("section", string(res.Section)).
			Int("updated", res.Updated).
			Bool("column_added", res.ColumnAdded).
			Msg("Names generated")
	}

	return nil
}
