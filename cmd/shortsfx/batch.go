package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/danceshorts/shortsfx/pkg/batch"
	"github.com/danceshorts/shortsfx/pkg/store"
)

var (
	batchConcurrency int
	batchOutputName  string
	batchDryRun      bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [root-dir]",
	Short: "Render every project directory under a root",
	Long: `Batch discovers project directories under the root (any subdirectory
holding a veo_instructions.json) and renders them concurrently. Each
project writes into its own directory, and one failure never stops the
others.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runs := store.NewMemoryStore()
		defer runs.Close()

		pipeline, err := buildPipeline(logger, runs, batchDryRun)
		if err != nil {
			return err
		}

		concurrency := settings.Concurrency
		if batchConcurrency > 0 {
			concurrency = batchConcurrency
		}
		outputName := settings.OutputName
		if batchOutputName != "" {
			outputName = batchOutputName
		}

		processor := batch.New(logger, pipeline, runs,
			batch.WithConcurrency(concurrency),
			batch.WithOutputName(outputName),
		)

		results, err := processor.Run(ctx, root, batchDryRun)
		if err != nil {
			return err
		}

		failed := 0
		for _, res := range results {
			if res.Err != nil {
				failed++
				logger.Error().Err(res.Err).Str("project", res.Project).Msg("project failed")
				continue
			}
			if res.Render.OutputPath != "" {
				logger.Info().
					Str("project", res.Project).
					Str("output", res.Render.OutputPath).
					Msg("project rendered")
			} else {
				logger.Info().Str("project", res.Project).Msg("project planned")
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d projects failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "concurrent renders (default: settings value)")
	batchCmd.Flags().StringVar(&batchOutputName, "output-name", "", "per-project output filename")
	batchCmd.Flags().BoolVar(&batchDryRun, "dry-run", false, "plan every project without writing files")
	rootCmd.AddCommand(batchCmd)
}
