// Package overlay schedules beat-style text overlays across a composed
// timeline and selects which metadata/style option a run uses.
package overlay

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/danceshorts/shortsfx/pkg/schemas"
)

// InvalidDurationError reports a non-positive timeline duration.
type InvalidDurationError struct {
	Total time.Duration
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("cannot schedule overlays across non-positive duration %.3fs", e.Total.Seconds())
}

// NoOverlayTextError reports a metadata option with an empty or missing
// overlay text list. A silently text-free render is never produced from
// a selected option.
type NoOverlayTextError struct {
	OptionKey string
}

func (e *NoOverlayTextError) Error() string {
	return fmt.Sprintf("metadata option %q has no overlay text", e.OptionKey)
}

// Scheduler distributes overlay windows across a timeline duration.
type Scheduler struct {
	logger zerolog.Logger
}

// NewScheduler creates a Scheduler.
func NewScheduler(logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		logger: logger.With().Str("component", "overlay").Logger(),
	}
}

// Schedule divides total into len(texts) equal contiguous windows, one
// per text. Windows are exhaustive: the first starts at zero, each window
// ends where the next begins, and the final end is clamped to exactly
// total so float arithmetic never drifts past the timeline. Zero texts
// yields an empty schedule without error. The style is copied by value
// into every overlay, so later style edits cannot reach back into an
// already-scheduled run.
func (s *Scheduler) Schedule(total time.Duration, texts []string, style schemas.StyleOption) ([]schemas.OverlayText, error) {
	if total <= 0 {
		return nil, &InvalidDurationError{Total: total}
	}

	if len(texts) == 0 {
		return []schemas.OverlayText{}, nil
	}

	n := len(texts)
	boundaries := make([]time.Duration, n+1)
	for i := 1; i < n; i++ {
		boundaries[i] = time.Duration(float64(total) * float64(i) / float64(n))
	}
	boundaries[n] = total

	overlays := make([]schemas.OverlayText, n)
	for i, text := range texts {
		overlays[i] = schemas.OverlayText{
			Text:  text,
			Start: schemas.DurationOf(boundaries[i]),
			End:   schemas.DurationOf(boundaries[i+1]),
			Style: style,
		}
	}

	s.logger.Debug().
		Int("overlays", n).
		Dur("total", total).
		Msg("overlay windows scheduled")

	return overlays, nil
}

// TextsFor extracts the overlay text list from a selected metadata
// option, rejecting empty lists.
func TextsFor(optionKey string, option schemas.MetadataOption) ([]string, error) {
	if len(option.TextOverlay) == 0 {
		return nil, &NoOverlayTextError{OptionKey: optionKey}
	}
	return option.TextOverlay, nil
}
