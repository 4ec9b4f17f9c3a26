package main

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/danceshorts/shortsfx/pkg/batch"
	"github.com/danceshorts/shortsfx/pkg/executor"
	"github.com/danceshorts/shortsfx/pkg/overlay"
	"github.com/danceshorts/shortsfx/pkg/prober"
	"github.com/danceshorts/shortsfx/pkg/render"
	"github.com/danceshorts/shortsfx/pkg/resolver"
	"github.com/danceshorts/shortsfx/pkg/storage"
	"github.com/danceshorts/shortsfx/pkg/store"
	"github.com/danceshorts/shortsfx/pkg/timeline"
)

// buildPipeline wires the full render stack from the loaded settings.
// With dryRun set a missing ffmpeg binary is tolerated, since a dry run
// never encodes.
func buildPipeline(log zerolog.Logger, runs store.Store, dryRun bool) (*render.Pipeline, error) {
	var proberOpts []prober.Option
	if settings.FFprobePath != "" {
		proberOpts = append(proberOpts, prober.WithFFprobePath(settings.FFprobePath))
	}

	var executorOpts []executor.Option
	if settings.FFmpegPath != "" {
		executorOpts = append(executorOpts, executor.WithFFmpegPath(settings.FFmpegPath))
	}

	deps := render.Deps{
		Resolver:  resolver.New(log, prober.New(proberOpts...)),
		Composer:  timeline.New(log, timeline.WithTransitionDuration(time.Duration(settings.TransitionMs)*time.Millisecond)),
		Scheduler: overlay.NewScheduler(log),
		Stager:    storage.NewManager(log),
	}

	exec, err := executor.New(log, executorOpts...)
	if err != nil {
		if !dryRun {
			return nil, err
		}
		log.Warn().Err(err).Msg("ffmpeg unavailable, continuing because this is a dry run")
	} else {
		deps.Runner = exec
	}

	return render.New(log, deps,
		render.WithWorkDir(settings.WorkDir),
		render.WithStateHook(batch.StoreHook(log, runs)),
	), nil
}
