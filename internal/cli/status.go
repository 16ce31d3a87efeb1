package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-ecomload/internal/db"
	"github.com/pgEdge/pgedge-ecomload/internal/loader"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show table row counts and load metadata",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	conn, err := connect(ctx, "status")
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	exists, err := db.TableExists(ctx, conn, loader.Tables[0])
	if err != nil {
		return err
	}
	if !exists {
		cmd.Println("Schema not created; run 'pgedge-ecomload load' first.")
		return nil
	}

	counts, err := loader.Counts(ctx, conn)
	if err != nil {
		return err
	}
	cmd.Println("Tables:")
	for _, c := range counts {
		cmd.Printf("  %-12s %d\n", c.Table, c.Rows)
	}

	entries, err := db.GetAllMetadata(ctx, conn)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		cmd.Println()
		cmd.Println("Metadata:")
		for _, e := range entries {
			cmd.Printf("  %-20s %s\n", e.Key, e.Value)
		}
	}

	return nil
}
