package executor

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithExplicitPath(t *testing.T) {
	e, err := New(zerolog.Nop(), WithFFmpegPath("/opt/ffmpeg/bin/ffmpeg"))
	require.NoError(t, err)
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", e.ffmpegPath)
}

func TestRun_RequiresArgs(t *testing.T) {
	e, err := New(zerolog.Nop(), WithFFmpegPath("/opt/ffmpeg/bin/ffmpeg"))
	require.NoError(t, err)

	err = e.Run(context.Background(), RunOptions{})
	assert.ErrorContains(t, err, "no ffmpeg arguments")
}

func TestRun_MissingBinary(t *testing.T) {
	e, err := New(zerolog.Nop(), WithFFmpegPath("/nonexistent/ffmpeg"))
	require.NoError(t, err)

	err = e.Run(context.Background(), RunOptions{Args: []string{"-i", "in.mp4", "out.mp4"}})
	assert.ErrorContains(t, err, "failed to start ffmpeg")
}

func TestRun_CancelledContext(t *testing.T) {
	e, err := New(zerolog.Nop(), WithFFmpegPath("/nonexistent/ffmpeg"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = e.Run(ctx, RunOptions{Args: []string{"-i", "in.mp4", "out.mp4"}})
	assert.Error(t, err)
}
