package render

import "fmt"

// IOError reports a filesystem failure while finalizing an output. The
// pipeline never leaves a partial file behind when it returns one.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("render %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// EncodeError reports a failed ffmpeg invocation.
type EncodeError struct {
	RunID string
	Err   error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode failed for run %s: %v", e.RunID, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
