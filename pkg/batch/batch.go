// Package batch renders every project directory under a root with
// bounded concurrency. Projects are isolated: one failing render never
// stops or poisons its siblings.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/danceshorts/shortsfx/pkg/config"
	"github.com/danceshorts/shortsfx/pkg/render"
	"github.com/danceshorts/shortsfx/pkg/schemas"
	"github.com/danceshorts/shortsfx/pkg/store"
)

// NoProjectsError reports a batch root with nothing to render.
type NoProjectsError struct {
	Root string
}

func (e *NoProjectsError) Error() string {
	return fmt.Sprintf("no project directories found under %s", e.Root)
}

// PipelineRunner executes one render run.
type PipelineRunner interface {
	Run(ctx context.Context, req schemas.RenderRequest) (*schemas.RenderResult, error)
}

// Result is the outcome of one project in a batch.
type Result struct {
	Project string
	Dir     string
	RunID   string
	Render  *schemas.RenderResult
	Err     error
}

// Discover lists the subdirectories of root that carry a scene
// instruction file, in sorted order.
func Discover(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch root %s: %w", root, err)
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, config.InstructionsFile)); err == nil {
			dirs = append(dirs, dir)
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}

// Processor runs batches.
type Processor struct {
	logger      zerolog.Logger
	pipeline    PipelineRunner
	runs        store.Store
	concurrency int
	outputName  string
}

// Option is a functional option for Processor.
type Option func(*Processor)

// WithConcurrency caps how many projects render at once.
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithOutputName overrides the per-project output filename.
func WithOutputName(name string) Option {
	return func(p *Processor) {
		if name != "" {
			p.outputName = name
		}
	}
}

// New creates a Processor.
func New(logger zerolog.Logger, pipeline PipelineRunner, runs store.Store, opts ...Option) *Processor {
	p := &Processor{
		logger:      logger.With().Str("component", "batch").Logger(),
		pipeline:    pipeline,
		runs:        runs,
		concurrency: 4,
		outputName:  schemas.DefaultOutputName,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run renders every project under root. The returned slice holds one
// Result per discovered project in directory order, failures included.
func (p *Processor) Run(ctx context.Context, root string, dryRun bool) ([]Result, error) {
	dirs, err := Discover(root)
	if err != nil {
		return nil, err
	}
	if len(dirs) == 0 {
		return nil, &NoProjectsError{Root: root}
	}

	p.logger.Info().
		Int("projects", len(dirs)).
		Int("concurrency", p.concurrency).
		Bool("dry_run", dryRun).
		Msg("batch started")

	results := make([]Result, len(dirs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			results[i] = p.runProject(gctx, dir, dryRun)
			return nil
		})
	}
	g.Wait()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	p.logger.Info().
		Int("succeeded", len(results)-failed).
		Int("failed", failed).
		Msg("batch finished")

	return results, nil
}

func (p *Processor) runProject(ctx context.Context, dir string, dryRun bool) Result {
	res := Result{Dir: dir, Project: filepath.Base(dir)}

	project, err := config.LoadProject(p.logger, dir)
	if err != nil {
		res.Err = err
		p.logger.Error().Err(err).Str("project", res.Project).Msg("project skipped")
		return res
	}

	req, err := render.NewRequest(project, filepath.Join(dir, p.outputName), dryRun)
	if err != nil {
		res.Err = err
		p.logger.Error().Err(err).Str("project", res.Project).Msg("project skipped")
		return res
	}
	res.RunID = req.RunID

	if err := p.runs.CreateRun(ctx, &store.Run{RunID: req.RunID, Project: project.Name}); err != nil {
		res.Err = err
		return res
	}

	rendered, err := p.pipeline.Run(ctx, req)
	if err != nil {
		res.Err = err
		if storeErr := p.runs.SetError(ctx, req.RunID, err.Error()); storeErr != nil {
			p.logger.Warn().Err(storeErr).Str("run_id", req.RunID).Msg("failed to record run error")
		}
		return res
	}

	res.Render = rendered
	if err := p.runs.SetResult(ctx, req.RunID, rendered.OutputPath, rendered.Plan); err != nil {
		p.logger.Warn().Err(err).Str("run_id", req.RunID).Msg("failed to record run result")
	}

	return res
}

// StoreHook returns a pipeline state hook that mirrors transitions into
// the run store. The failed state is skipped here so the failure site
// can record its message through SetError instead.
func StoreHook(logger zerolog.Logger, runs store.Store) render.StateHook {
	return func(runID string, state schemas.RunState) {
		if state == schemas.RunStateFailed {
			return
		}
		if err := runs.SetState(context.Background(), runID, state); err != nil {
			logger.Warn().Err(err).
				Str("run_id", runID).
				Str("state", string(state)).
				Msg("failed to record state transition")
		}
	}
}
