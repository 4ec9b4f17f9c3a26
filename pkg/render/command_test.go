package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danceshorts/shortsfx/pkg/schemas"
)

func twoSegmentTimeline(withAudio bool) *schemas.Timeline {
	return &schemas.Timeline{
		Segments: []schemas.Segment{
			{
				SceneID:        1,
				Source:         "/work/clip1.mp4",
				Start:          0,
				Duration:       5 * time.Second,
				Info:           schemas.ClipInfo{HasAudio: withAudio, Width: 1920, Height: 1080},
				NeedsNormalize: true,
			},
			{
				SceneID:  2,
				Source:   "/work/clip2.mp4",
				Start:    2 * time.Second,
				Duration: 3 * time.Second,
				Info:     schemas.ClipInfo{HasAudio: true, Width: 1080, Height: 1920},
			},
		},
		Transitions: []schemas.Transition{
			{FromSceneID: 1, ToSceneID: 2, Offset: 5 * time.Second, Duration: 500 * time.Millisecond},
		},
		TotalDuration: 8 * time.Second,
		FrameWidth:    schemas.TargetWidth,
		FrameHeight:   schemas.TargetHeight,
	}
}

func argsAfter(t *testing.T, args []string, flag string) string {
	t.Helper()
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatalf("flag %s not found in %v", flag, args)
	return ""
}

func TestBuildArgs_TrimmedInputs(t *testing.T) {
	args, err := BuildArgs(twoSegmentTimeline(true), nil, "/out/final.mp4")
	require.NoError(t, err)

	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "-ss 0.000 -t 5.000 -i /work/clip1.mp4")
	assert.Contains(t, joined, "-ss 2.000 -t 3.000 -i /work/clip2.mp4")
	assert.Equal(t, "/out/final.mp4", args[len(args)-1], "output path must be the final argument")
}

func TestBuildArgs_NormalizesOnlyWhereNeeded(t *testing.T) {
	args, err := BuildArgs(twoSegmentTimeline(true), nil, "/out/final.mp4")
	require.NoError(t, err)

	graph := argsAfter(t, args, "-filter_complex")
	assert.Contains(t, graph, "[0:v]scale=1080:1920:force_original_aspect_ratio=increase,crop=1080:1920,")
	assert.Contains(t, graph, "[1:v]setsar=1,", "native vertical clip must skip scale and crop")
}

func TestBuildArgs_DissolveFadePair(t *testing.T) {
	args, err := BuildArgs(twoSegmentTimeline(true), nil, "/out/final.mp4")
	require.NoError(t, err)

	graph := argsAfter(t, args, "-filter_complex")
	// Leading segment fades out over the last 500ms of its 5s.
	assert.Contains(t, graph, "fade=t=out:st=4.500:d=0.500")
	// Following segment fades in over the same window.
	assert.Contains(t, graph, "fade=t=in:st=0:d=0.500")
}

func TestBuildArgs_ConcatWithAudio(t *testing.T) {
	args, err := BuildArgs(twoSegmentTimeline(true), nil, "/out/final.mp4")
	require.NoError(t, err)

	graph := argsAfter(t, args, "-filter_complex")
	assert.Contains(t, graph, "[v0][0:a][v1][1:a]concat=n=2:v=1:a=1[vcat][aout]")

	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "-map [aout]")
	assert.Contains(t, joined, "-c:a aac")
}

func TestBuildArgs_VideoOnlyWhenAnyClipIsSilent(t *testing.T) {
	args, err := BuildArgs(twoSegmentTimeline(false), nil, "/out/final.mp4")
	require.NoError(t, err)

	graph := argsAfter(t, args, "-filter_complex")
	assert.Contains(t, graph, "[v0][v1]concat=n=2:v=1:a=0[vcat]")

	joined := strings.Join(args, " ")
	assert.NotContains(t, joined, "-map [aout]")
	assert.NotContains(t, joined, "-c:a")
}

func TestBuildArgs_OverlayChain(t *testing.T) {
	overlays := []schemas.OverlayText{
		{Text: "Feel the beat", Start: schemas.Seconds(0), End: schemas.Seconds(4)},
		{Text: "Amazing!", Start: schemas.Seconds(4), End: schemas.Seconds(8)},
	}

	args, err := BuildArgs(twoSegmentTimeline(true), overlays, "/out/final.mp4")
	require.NoError(t, err)

	graph := argsAfter(t, args, "-filter_complex")
	assert.Equal(t, 2, strings.Count(graph, "drawtext="))
	assert.Contains(t, graph, "enable='between(t,0.000,4.000)'")
	assert.Contains(t, graph, "enable='between(t,4.000,8.000)'")
	assert.True(t, strings.HasSuffix(graph, "[vout]"))
}

func TestBuildArgs_NoOverlays(t *testing.T) {
	args, err := BuildArgs(twoSegmentTimeline(true), nil, "/out/final.mp4")
	require.NoError(t, err)

	graph := argsAfter(t, args, "-filter_complex")
	assert.Contains(t, graph, "[vcat]null[vout]")
}

func TestBuildArgs_EncodingProfile(t *testing.T) {
	args, err := BuildArgs(twoSegmentTimeline(true), nil, "/out/final.mp4")
	require.NoError(t, err)

	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "-c:v libx264")
	assert.Contains(t, joined, "-preset medium")
	assert.Contains(t, joined, "-crf 23")
	assert.Contains(t, joined, "-movflags +faststart")
}

func TestBuildArgs_Validation(t *testing.T) {
	_, err := BuildArgs(&schemas.Timeline{}, nil, "/out/final.mp4")
	assert.ErrorContains(t, err, "no segments")

	_, err = BuildArgs(twoSegmentTimeline(true), nil, "")
	assert.ErrorContains(t, err, "output path")

	_, err = BuildArgs(nil, nil, "/out/final.mp4")
	assert.Error(t, err)
}
