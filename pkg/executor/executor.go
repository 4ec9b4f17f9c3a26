// Package executor runs ffmpeg commands and streams encode progress.
package executor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// Executor wraps the ffmpeg binary with progress streaming.
type Executor struct {
	logger     zerolog.Logger
	ffmpegPath string
}

// Option is a functional option for Executor.
type Option func(*Executor)

// WithFFmpegPath sets a custom ffmpeg binary path.
func WithFFmpegPath(path string) Option {
	return func(e *Executor) {
		e.ffmpegPath = path
	}
}

// New creates an Executor, requiring ffmpeg on PATH unless overridden.
func New(logger zerolog.Logger, opts ...Option) (*Executor, error) {
	e := &Executor{
		logger: logger.With().Str("component", "ffmpeg").Logger(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.ffmpegPath == "" {
		path, err := exec.LookPath("ffmpeg")
		if err != nil {
			return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
		}
		e.ffmpegPath = path
	}

	return e, nil
}

// RunOptions configures one ffmpeg invocation.
type RunOptions struct {
	Args       []string
	OnProgress func(*Progress)
	OnLog      func(string)
}

// Run executes ffmpeg with the given arguments. Progress lines parsed
// from stderr are delivered through OnProgress; all output also flows to
// OnLog. On failure the last stderr lines are folded into the error.
func (e *Executor) Run(ctx context.Context, opts RunOptions) error {
	if len(opts.Args) == 0 {
		return fmt.Errorf("no ffmpeg arguments provided")
	}

	args := append([]string{"-y", "-hide_banner", "-loglevel", "info"}, opts.Args...)

	e.logger.Debug().Strs("args", args).Msg("executing ffmpeg")

	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	tail := e.streamStderr(stderr, opts)

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg failed: %w: %s", err, strings.Join(tail, " | "))
	}

	e.logger.Debug().Msg("ffmpeg completed")
	return nil
}

// streamStderr parses progress from ffmpeg's stderr and keeps a short
// tail of recent lines for error reporting.
func (e *Executor) streamStderr(r io.Reader, opts RunOptions) []string {
	const tailLines = 5

	parser := NewProgressParser()
	scanner := bufio.NewScanner(r)
	tail := make([]string, 0, tailLines)

	for scanner.Scan() {
		line := scanner.Text()

		if opts.OnLog != nil {
			opts.OnLog(line)
		}

		if progress := parser.ParseLine(line); progress != nil {
			if opts.OnProgress != nil {
				opts.OnProgress(progress)
			}
			continue
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(tail) == tailLines {
			tail = append(tail[1:], line)
		} else {
			tail = append(tail, line)
		}
	}

	return tail
}
