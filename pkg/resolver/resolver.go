// Package resolver turns configured scenes into validated, trimmed,
// normalization-annotated segments.
package resolver

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/danceshorts/shortsfx/pkg/schemas"
)

// ClipProber reports metadata for a local media file. Satisfied by
// prober.Prober; narrowed here so tests can substitute a fake.
type ClipProber interface {
	Probe(ctx context.Context, filePath string) (*schemas.ClipInfo, error)
}

// Resolver validates scenes against their source clips and produces
// segments. It never mutates the source files.
type Resolver struct {
	logger zerolog.Logger
	prober ClipProber
}

// New creates a Resolver.
func New(logger zerolog.Logger, prober ClipProber) *Resolver {
	return &Resolver{
		logger: logger.With().Str("component", "resolver").Logger(),
		prober: prober,
	}
}

// Resolve validates one scene and returns its segment. The scene's source
// must already be a local path (remote sources are staged upstream).
func (r *Resolver) Resolve(ctx context.Context, scene schemas.Scene) (*schemas.Segment, error) {
	if _, err := os.Stat(scene.Source); err != nil {
		return nil, &SourceNotFoundError{SceneID: scene.ID, Path: scene.Source}
	}

	info, err := r.prober.Probe(ctx, scene.Source)
	if err != nil {
		return nil, err
	}

	start := scene.Start.Duration
	duration := scene.Duration.Duration

	switch {
	case start < 0:
		return nil, &InvalidTimeRangeError{
			SceneID: scene.ID, Start: start, Duration: duration,
			SourceDuration: info.Duration, Reason: "start is negative",
		}
	case duration <= 0:
		return nil, &InvalidTimeRangeError{
			SceneID: scene.ID, Start: start, Duration: duration,
			SourceDuration: info.Duration, Reason: "duration must be positive",
		}
	case start+duration > info.Duration:
		return nil, &InvalidTimeRangeError{
			SceneID: scene.ID, Start: start, Duration: duration,
			SourceDuration: info.Duration, Reason: "range exceeds source duration",
		}
	}

	seg := &schemas.Segment{
		SceneID:        scene.ID,
		Source:         scene.Source,
		Start:          start,
		Duration:       duration,
		Info:           *info,
		NeedsNormalize: info.Width != schemas.TargetWidth || info.Height != schemas.TargetHeight,
	}

	r.logger.Debug().
		Int("scene", scene.ID).
		Str("source", scene.Source).
		Dur("start", start).
		Dur("duration", duration).
		Bool("normalize", seg.NeedsNormalize).
		Msg("scene resolved")

	return seg, nil
}

// ResolveAll resolves every scene in order, failing fast on the first
// invalid one.
func (r *Resolver) ResolveAll(ctx context.Context, scenes []schemas.Scene) ([]schemas.Segment, error) {
	segments := make([]schemas.Segment, 0, len(scenes))
	for _, scene := range scenes {
		seg, err := r.Resolve(ctx, scene)
		if err != nil {
			return nil, err
		}
		segments = append(segments, *seg)
	}

	r.logger.Info().Int("segments", len(segments)).Msg("all scenes resolved")
	return segments, nil
}
