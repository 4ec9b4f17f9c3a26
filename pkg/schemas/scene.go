// Package schemas defines the shared data model for the shorts pipeline.
package schemas

import "time"

// Scene is one configured excerpt from a source clip, as parsed from the
// scene list configuration. Scenes are immutable; processing order is
// ascending ID regardless of input order.
type Scene struct {
	ID       int      `json:"id"`
	Source   string   `json:"source"`
	Start    Duration `json:"start"`
	Duration Duration `json:"duration"`
}

// End returns the exclusive end offset of the scene within its source.
func (s Scene) End() time.Duration {
	return s.Start.Duration + s.Duration.Duration
}

// ClipInfo summarizes the probed properties of a source clip.
type ClipInfo struct {
	Path       string        `json:"path"`
	Duration   time.Duration `json:"duration"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	FrameRate  float64       `json:"frame_rate"`
	VideoCodec string        `json:"video_codec"`
	HasAudio   bool          `json:"has_audio"`
	AudioCodec string        `json:"audio_codec,omitempty"`
}

// Segment is a resolved, trimmed, normalization-annotated media unit
// derived from exactly one Scene. It exists only within one pipeline run.
type Segment struct {
	SceneID  int           `json:"scene_id"`
	Source   string        `json:"source"` // local path after staging
	Start    time.Duration `json:"start"`
	Duration time.Duration `json:"duration"`
	Info     ClipInfo      `json:"info"`

	// NeedsNormalize is true when the native frame does not already
	// match the target aspect and a scale-to-fill + center-crop applies.
	NeedsNormalize bool `json:"needs_normalize"`
}

// Transition is a cross-dissolve boundary between two adjacent segments.
// Offset is the position on the composed timeline where the boundary sits.
type Transition struct {
	FromSceneID int           `json:"from_scene_id"`
	ToSceneID   int           `json:"to_scene_id"`
	Offset      time.Duration `json:"offset"`
	Duration    time.Duration `json:"duration"`
}

// Timeline is the ordered concatenation of all segments with transitions
// at each interior boundary. TotalDuration is the simple sum of segment
// durations: dissolves blend within existing footage and never shrink the
// reported length, so overlay scheduling consumes the same number.
type Timeline struct {
	Segments      []Segment     `json:"segments"`
	Transitions   []Transition  `json:"transitions"`
	TotalDuration time.Duration `json:"total_duration"`
	FrameWidth    int           `json:"frame_width"`
	FrameHeight   int           `json:"frame_height"`
}
