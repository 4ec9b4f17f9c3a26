package schemas

import "time"

// Target output profile. Fixed for vertical short-form delivery.
const (
	TargetWidth  = 1080
	TargetHeight = 1920

	TargetVideoCodec = "libx264"
	TargetAudioCodec = "aac"
	TargetCRF        = 23
	TargetPreset     = "medium"
	TargetPixFmt     = "yuv420p"
	TargetFPS        = 30.0

	// DefaultTransitionDuration is the fixed cross-dissolve length
	// applied at every interior segment boundary.
	DefaultTransitionDuration = 500 * time.Millisecond

	// DefaultOutputName is the historical output filename, used only
	// when the caller does not supply an explicit path.
	DefaultOutputName = "final_dance_short.mp4"
)

// RunState tracks one pipeline run through its stages.
type RunState string

const (
	RunStateInit              RunState = "init"
	RunStateConfigLoaded      RunState = "config_loaded"
	RunStateScenesResolved    RunState = "scenes_resolved"
	RunStateTimelineComposed  RunState = "timeline_composed"
	RunStateOverlaysScheduled RunState = "overlays_scheduled"
	RunStateRendered          RunState = "rendered"
	RunStateDryRunComplete    RunState = "dry_run_complete"
	RunStateFailed            RunState = "failed"
)

// Terminal reports whether the state ends a run.
func (s RunState) Terminal() bool {
	switch s {
	case RunStateRendered, RunStateDryRunComplete, RunStateFailed:
		return true
	}
	return false
}

// RenderRequest carries everything one render needs. OutputPath is an
// explicit parameter so concurrent runs never collide on a shared name.
type RenderRequest struct {
	RunID      string   `json:"run_id"`
	Scenes     []Scene  `json:"scenes"`
	Texts      []string `json:"texts"`
	Style      StyleOption `json:"style"`
	StyleKey   string   `json:"style_key"`
	OptionKey  string   `json:"option_key"`
	OptionFell bool     `json:"option_fallback"`
	OutputPath string   `json:"output_path"`
	DryRun     bool     `json:"dry_run"`
}

// OverlayWindow is one overlay entry in a plan report.
type OverlayWindow struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// RenderPlan is the structured dry-run report: the same computed values a
// real render would use, with no file written.
type RenderPlan struct {
	RunID          string          `json:"run_id"`
	SceneCount     int             `json:"scene_count"`
	TotalDuration  float64         `json:"total_duration"`
	StyleUsed      string          `json:"style_used"`
	OptionUsed     string          `json:"option_used"`
	OptionFellBack bool            `json:"option_fell_back"`
	OverlayWindows []OverlayWindow `json:"overlay_windows"`
	WouldWritePath string          `json:"would_write_path"`
}

// RenderResult is the outcome of one pipeline run.
type RenderResult struct {
	RunID      string      `json:"run_id"`
	State      RunState    `json:"state"`
	OutputPath string      `json:"output_path,omitempty"`
	Plan       *RenderPlan `json:"plan,omitempty"`
	Elapsed    time.Duration `json:"elapsed"`
}
