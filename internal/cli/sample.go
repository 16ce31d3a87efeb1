package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-ecomload/internal/datagen"
	"github.com/pgEdge/pgedge-ecomload/internal/dataset"
	"github.com/pgEdge/pgedge-ecomload/internal/logging"
)

var (
	sampleRows   int
	sampleOutput string
	sampleSeed   uint64
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write a synthetic CSV dataset",
	Long: `Generate a synthetic dataset in the column layout the load command
expects. Useful for trying the loader without a real dataset.

Example:
  pgedge-ecomload sample --rows 10000 --output data/ecommerce_data.csv`,
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().IntVar(&sampleRows, "rows", 0,
		"number of rows to generate (default: 1000)")
	sampleCmd.Flags().StringVar(&sampleOutput, "output", "",
		"output path (default: data/ecommerce_data.csv)")
	sampleCmd.Flags().Uint64Var(&sampleSeed, "seed", 0,
		"random seed for a reproducible dataset (0 = random)")
}

func runSample(cmd *cobra.Command, args []string) error {
	if sampleRows > 0 {
		cfg.Sample.Rows = sampleRows
	}
	if sampleOutput != "" {
		cfg.Sample.Output = sampleOutput
	}
	if sampleSeed > 0 {
		cfg.Sample.Seed = sampleSeed
	}

	if err := cfg.ValidateSample(); err != nil {
		return err
	}

	records := dataset.Generate(datagen.NewFakerFromSeed(cfg.Sample.Seed), cfg.Sample.Rows)

	if dir := filepath.Dir(cfg.Sample.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(cfg.Sample.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := dataset.Write(f, records); err != nil {
		f.Close()
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	log := logging.Job("sample")
	log.Info().
		Int("rows", len(records)).
		Str("file", cfg.Sample.Output).
		Msg("Sample dataset written")

	return nil
}
