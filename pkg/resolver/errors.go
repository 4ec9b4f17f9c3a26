package resolver

import (
	"fmt"
	"time"
)

// SourceNotFoundError reports a scene whose source clip is missing on disk.
type SourceNotFoundError struct {
	SceneID int
	Path    string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("scene %d: source clip not found: %s", e.SceneID, e.Path)
}

// InvalidTimeRangeError reports a scene whose trim range does not fit
// inside the measured source duration.
type InvalidTimeRangeError struct {
	SceneID        int
	Start          time.Duration
	Duration       time.Duration
	SourceDuration time.Duration
	Reason         string
}

func (e *InvalidTimeRangeError) Error() string {
	return fmt.Sprintf("scene %d: invalid time range [%.3fs +%.3fs) against source of %.3fs: %s",
		e.SceneID, e.Start.Seconds(), e.Duration.Seconds(), e.SourceDuration.Seconds(), e.Reason)
}
