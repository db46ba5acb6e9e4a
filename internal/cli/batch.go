package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kcalvin/solarsizer/internal/calculator"
	"github.com/kcalvin/solarsizer/internal/calculator/batch"
	"github.com/kcalvin/solarsizer/internal/config"
)

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	var (
		concurrency int
		outFile     string
	)

	cmd := &cobra.Command{
		Use:   "batch <items.json>",
		Short: "Evaluate a workflow items file",
		Long: `Evaluates every item of a JSON array and writes the items back with a
solar_calculation field added. Items may be bare objects or {"json": {...}}
envelopes. An item with an invalid rate gets {"error": "Invalid electricity rate"}
and does not affect the others. Use "-" to read from stdin.`,
		Example: `  solarsizer batch items.json
  cat items.json | solarsizer batch - --concurrency 8 > results.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeBatch(cmd, args[0], concurrency, outFile)
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "number of batches evaluated in parallel")
	cmd.Flags().StringVar(&outFile, "out", "", "write results to this file instead of stdout")
	cmd.Flags().Float64("performance-ratio", 0, "DC to AC derate factor (default 0.85)")
	cmd.Flags().Float64("panel-watts", 0, "panel wattage when an item omits it (default 400)")

	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading items: %w", err)
	}
	return data, nil
}

func executeBatch(cmd *cobra.Command, path string, concurrency int, outFile string) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	opts, err := calculatorOptions(cmd, cfg)
	if err != nil {
		return err
	}

	data, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	items, err := calculator.DecodeItems(data)
	if err != nil {
		return err
	}

	var onProgress batch.ProgressFunc
	if f, ok := cmd.ErrOrStderr().(*os.File); ok && isTerminal(f) && len(items) > 0 {
		bar := progressbar.NewOptions(len(items),
			progressbar.OptionSetWriter(f),
			progressbar.OptionSetDescription("evaluating items"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		onProgress = func(s batch.Snapshot) {
			_ = bar.Set(s.ProcessedItems)
		}
		defer func() { _ = bar.Finish() }()
	}

	results, err := calculator.CalculateItems(ctx, items, opts, concurrency, onProgress)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logger.Info().Ctx(ctx).
		Int("items", len(results)).
		Int("failed", failed).
		Msg("batch evaluated")

	w := cmd.OutOrStdout()
	if outFile != "" {
		f, createErr := os.Create(outFile)
		if createErr != nil {
			return fmt.Errorf("creating output file: %w", createErr)
		}
		defer f.Close()
		w = f
	}
	return writeJSON(w, calculator.Wrap(results))
}
