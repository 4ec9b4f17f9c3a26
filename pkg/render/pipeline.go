// Package render drives a full run: staging, resolution, composition,
// overlay scheduling and the final encode, or a dry-run plan of the
// same values.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/danceshorts/shortsfx/pkg/executor"
	"github.com/danceshorts/shortsfx/pkg/schemas"
)

// SceneResolver validates scenes against their probed sources.
type SceneResolver interface {
	ResolveAll(ctx context.Context, scenes []schemas.Scene) ([]schemas.Segment, error)
}

// TimelineComposer orders segments and places transitions.
type TimelineComposer interface {
	Compose(segments []schemas.Segment) (*schemas.Timeline, error)
}

// OverlayScheduler distributes overlay text across the timeline.
type OverlayScheduler interface {
	Schedule(total time.Duration, texts []string, style schemas.StyleOption) ([]schemas.OverlayText, error)
}

// CommandRunner executes an assembled ffmpeg invocation.
type CommandRunner interface {
	Run(ctx context.Context, opts executor.RunOptions) error
}

// ClipStager makes a clip available on the local filesystem.
type ClipStager interface {
	Stage(ctx context.Context, source, workDir string) (string, error)
}

// Deps are the collaborators a Pipeline drives.
type Deps struct {
	Resolver  SceneResolver
	Composer  TimelineComposer
	Scheduler OverlayScheduler
	Runner    CommandRunner
	Stager    ClipStager
}

// StateHook observes run state transitions, including the terminal
// failed state. Hooks run synchronously on the pipeline goroutine.
type StateHook func(runID string, state schemas.RunState)

// Pipeline executes render runs.
type Pipeline struct {
	logger  zerolog.Logger
	deps    Deps
	workDir string
	hooks   []StateHook
}

// Option is a functional option for Pipeline.
type Option func(*Pipeline)

// WithWorkDir sets the directory staged clips and scratch files live in.
func WithWorkDir(dir string) Option {
	return func(p *Pipeline) {
		p.workDir = dir
	}
}

// WithStateHook registers a transition observer.
func WithStateHook(hook StateHook) Option {
	return func(p *Pipeline) {
		p.hooks = append(p.hooks, hook)
	}
}

// New creates a Pipeline.
func New(logger zerolog.Logger, deps Deps, opts ...Option) *Pipeline {
	p := &Pipeline{
		logger:  logger.With().Str("component", "render").Logger(),
		deps:    deps,
		workDir: os.TempDir(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one render run end to end. The request carries already
// loaded and selected configuration, so the run enters config_loaded
// immediately. A dry run stops after planning with no file written; a
// real run encodes to a scratch name and renames into place only after
// ffmpeg succeeds, so no partial output is ever observable at the
// requested path.
func (p *Pipeline) Run(ctx context.Context, req schemas.RenderRequest) (*schemas.RenderResult, error) {
	start := time.Now()
	log := p.logger.With().Str("run_id", req.RunID).Logger()

	fail := func(err error) (*schemas.RenderResult, error) {
		p.announce(req.RunID, schemas.RunStateFailed)
		log.Error().Err(err).Msg("run failed")
		return nil, err
	}

	p.announce(req.RunID, schemas.RunStateConfigLoaded)
	log.Info().
		Int("scenes", len(req.Scenes)).
		Str("style", req.StyleKey).
		Str("option", req.OptionKey).
		Bool("dry_run", req.DryRun).
		Msg("run started")

	runDir := filepath.Join(p.workDir, "run-"+req.RunID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fail(&IOError{Op: "create workdir", Path: runDir, Err: err})
	}
	defer os.RemoveAll(runDir)

	scenes, err := p.stageScenes(ctx, req.Scenes, runDir)
	if err != nil {
		return fail(err)
	}

	segments, err := p.deps.Resolver.ResolveAll(ctx, scenes)
	if err != nil {
		return fail(err)
	}
	p.announce(req.RunID, schemas.RunStateScenesResolved)

	tl, err := p.deps.Composer.Compose(segments)
	if err != nil {
		return fail(err)
	}
	p.announce(req.RunID, schemas.RunStateTimelineComposed)
	log.Info().
		Float64("total_seconds", tl.TotalDuration.Seconds()).
		Int("transitions", len(tl.Transitions)).
		Msg("timeline composed")

	overlays, err := p.deps.Scheduler.Schedule(tl.TotalDuration, req.Texts, req.Style)
	if err != nil {
		return fail(err)
	}
	p.announce(req.RunID, schemas.RunStateOverlaysScheduled)

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = schemas.DefaultOutputName
	}

	plan := buildPlan(req, tl, overlays, outputPath)

	if req.DryRun {
		p.announce(req.RunID, schemas.RunStateDryRunComplete)
		log.Info().Msg("dry run complete, no file written")
		return &schemas.RenderResult{
			RunID:   req.RunID,
			State:   schemas.RunStateDryRunComplete,
			Plan:    plan,
			Elapsed: time.Since(start),
		}, nil
	}

	if err := p.encode(ctx, log, tl, overlays, req.RunID, outputPath); err != nil {
		return fail(err)
	}

	p.announce(req.RunID, schemas.RunStateRendered)
	log.Info().
		Str("output", outputPath).
		Dur("elapsed", time.Since(start)).
		Msg("render complete")

	return &schemas.RenderResult{
		RunID:      req.RunID,
		State:      schemas.RunStateRendered,
		OutputPath: outputPath,
		Plan:       plan,
		Elapsed:    time.Since(start),
	}, nil
}

// stageScenes downloads remote sources and rewrites each scene to its
// local path. Local sources pass through untouched.
func (p *Pipeline) stageScenes(ctx context.Context, scenes []schemas.Scene, runDir string) ([]schemas.Scene, error) {
	staged := make([]schemas.Scene, len(scenes))
	for i, scene := range scenes {
		local, err := p.deps.Stager.Stage(ctx, scene.Source, runDir)
		if err != nil {
			return nil, fmt.Errorf("failed to stage scene %d: %w", scene.ID, err)
		}
		staged[i] = scene
		staged[i].Source = local
	}
	return staged, nil
}

// encode runs ffmpeg against a scratch path beside the final output and
// renames into place on success. The scratch file is removed on any
// failure.
func (p *Pipeline) encode(ctx context.Context, log zerolog.Logger, tl *schemas.Timeline, overlays []schemas.OverlayText, runID, outputPath string) error {
	outDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return &IOError{Op: "create output dir", Path: outDir, Err: err}
	}

	scratch := filepath.Join(outDir, fmt.Sprintf(".%s.%s.part", filepath.Base(outputPath), runID))

	args, err := BuildArgs(tl, overlays, scratch)
	if err != nil {
		return err
	}

	runErr := p.deps.Runner.Run(ctx, executor.RunOptions{
		Args: args,
		OnProgress: func(prog *executor.Progress) {
			log.Debug().
				Float64("percent", prog.Percentage(tl.TotalDuration)).
				Float64("speed", prog.Speed).
				Msg("encoding")
		},
	})
	if runErr != nil {
		os.Remove(scratch)
		return &EncodeError{RunID: runID, Err: runErr}
	}

	if err := os.Rename(scratch, outputPath); err != nil {
		os.Remove(scratch)
		return &IOError{Op: "finalize output", Path: outputPath, Err: err}
	}

	return nil
}

func (p *Pipeline) announce(runID string, state schemas.RunState) {
	for _, hook := range p.hooks {
		hook(runID, state)
	}
}

func buildPlan(req schemas.RenderRequest, tl *schemas.Timeline, overlays []schemas.OverlayText, outputPath string) *schemas.RenderPlan {
	windows := make([]schemas.OverlayWindow, len(overlays))
	for i, o := range overlays {
		windows[i] = schemas.OverlayWindow{
			Text:  o.Text,
			Start: o.Start.Seconds(),
			End:   o.End.Seconds(),
		}
	}

	return &schemas.RenderPlan{
		RunID:          req.RunID,
		SceneCount:     len(tl.Segments),
		TotalDuration:  tl.TotalDuration.Seconds(),
		StyleUsed:      req.StyleKey,
		OptionUsed:     req.OptionKey,
		OptionFellBack: req.OptionFell,
		OverlayWindows: windows,
		WouldWritePath: outputPath,
	}
}
