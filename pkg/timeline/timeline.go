// Package timeline composes resolved segments into one continuous track
// with cross-dissolve transitions at interior boundaries.
package timeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/danceshorts/shortsfx/pkg/schemas"
)

// EmptyTimelineError reports a composition attempt with zero segments.
// An empty scene list is a configuration error, never a zero-length video.
type EmptyTimelineError struct{}

func (e *EmptyTimelineError) Error() string {
	return "cannot compose a timeline from zero segments"
}

// DuplicateSceneIDError reports two segments claiming the same scene id.
type DuplicateSceneIDError struct {
	SceneID int
}

func (e *DuplicateSceneIDError) Error() string {
	return fmt.Sprintf("duplicate scene id %d in scene list", e.SceneID)
}

// Compositor merges segments into a Timeline.
type Compositor struct {
	logger             zerolog.Logger
	transitionDuration time.Duration
}

// Option is a functional option for Compositor.
type Option func(*Compositor)

// WithTransitionDuration overrides the fixed dissolve length.
func WithTransitionDuration(d time.Duration) Option {
	return func(c *Compositor) {
		c.transitionDuration = d
	}
}

// New creates a Compositor with the default 0.5s dissolve.
func New(logger zerolog.Logger, opts ...Option) *Compositor {
	c := &Compositor{
		logger:             logger.With().Str("component", "timeline").Logger(),
		transitionDuration: schemas.DefaultTransitionDuration,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compose orders segments by ascending scene id and inserts a dissolve
// at every interior boundary. The reported total duration is the simple
// sum of segment durations: each dissolve blends the tail of one segment
// with the head of the next inside existing footage, so the overlay
// scheduler and the encoded output both see the same length. A single
// segment composes without transitions.
func (c *Compositor) Compose(segments []schemas.Segment) (*schemas.Timeline, error) {
	if len(segments) == 0 {
		return nil, &EmptyTimelineError{}
	}

	ordered := make([]schemas.Segment, len(segments))
	copy(ordered, segments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SceneID < ordered[j].SceneID
	})

	for i := 1; i < len(ordered); i++ {
		if ordered[i].SceneID == ordered[i-1].SceneID {
			return nil, &DuplicateSceneIDError{SceneID: ordered[i].SceneID}
		}
	}

	var total time.Duration
	transitions := make([]schemas.Transition, 0, len(ordered)-1)

	for i, seg := range ordered {
		total += seg.Duration
		if i == len(ordered)-1 {
			break
		}
		transitions = append(transitions, schemas.Transition{
			FromSceneID: seg.SceneID,
			ToSceneID:   ordered[i+1].SceneID,
			Offset:      total,
			Duration:    c.transitionDuration,
		})
	}

	tl := &schemas.Timeline{
		Segments:      ordered,
		Transitions:   transitions,
		TotalDuration: total,
		FrameWidth:    schemas.TargetWidth,
		FrameHeight:   schemas.TargetHeight,
	}

	c.logger.Info().
		Int("segments", len(ordered)).
		Int("transitions", len(transitions)).
		Dur("total", total).
		Msg("timeline composed")

	return tl, nil
}
