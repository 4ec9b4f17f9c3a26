package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/danceshorts/shortsfx/pkg/config"
	"github.com/danceshorts/shortsfx/pkg/render"
	"github.com/danceshorts/shortsfx/pkg/schemas"
	"github.com/danceshorts/shortsfx/pkg/storage"
	"github.com/danceshorts/shortsfx/pkg/store"
)

var (
	renderOutput string
	renderDryRun bool
)

var renderCmd = &cobra.Command{
	Use:   "render [project-dir]",
	Short: "Render a project into its final short",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		result, err := runProject(cmd.Context(), dir, renderOutput, renderDryRun)
		if err != nil {
			return err
		}

		if result.State == schemas.RunStateDryRunComplete {
			return printPlan(result.Plan)
		}

		logger.Info().
			Str("output", result.OutputPath).
			Dur("elapsed", result.Elapsed).
			Msg("short rendered")
		return nil
	},
}

// runProject loads one project directory and executes a run against it.
func runProject(parent context.Context, dir, output string, dryRun bool) (*schemas.RenderResult, error) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	project, err := config.LoadProject(logger, dir)
	if err != nil {
		return nil, err
	}

	if output == "" {
		output = filepath.Join(dir, settings.OutputName)
	}

	// Remote destinations are rendered to a local scratch file first
	// and published once the encode succeeds.
	publishDest := ""
	scheme, _, err := storage.ParseLocation(output)
	if err != nil {
		return nil, err
	}
	if scheme != "file" && !dryRun {
		publishDest = output
		output = filepath.Join(settings.WorkDir, fmt.Sprintf("shortsfx-%s.mp4", uuid.NewString()))
	}

	req, err := render.NewRequest(project, output, dryRun)
	if err != nil {
		return nil, err
	}
	if req.OptionFell {
		logger.Warn().
			Str("requested", project.Metadata.Recommended).
			Str("used", req.OptionKey).
			Msg("recommended metadata option missing, fell back")
	}

	runs := store.NewMemoryStore()
	defer runs.Close()
	if err := runs.CreateRun(ctx, &store.Run{RunID: req.RunID, Project: project.Name}); err != nil {
		return nil, err
	}

	pipeline, err := buildPipeline(logger, runs, dryRun)
	if err != nil {
		return nil, err
	}

	result, err := pipeline.Run(ctx, req)
	if err != nil {
		if storeErr := runs.SetError(ctx, req.RunID, err.Error()); storeErr != nil {
			logger.Warn().Err(storeErr).Msg("failed to record run error")
		}
		return nil, err
	}

	if publishDest != "" {
		manager := storage.NewManager(logger)
		if err := manager.Publish(ctx, result.OutputPath, publishDest); err != nil {
			return nil, err
		}
		os.Remove(result.OutputPath)
		result.OutputPath = publishDest
	}

	return result, nil
}

func printPlan(plan *schemas.RenderPlan) error {
	out, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file path (default: <project-dir>/"+schemas.DefaultOutputName+")")
	renderCmd.Flags().BoolVar(&renderDryRun, "dry-run", false, "compute and print the render plan without writing a file")
	rootCmd.AddCommand(renderCmd)
}
