package render

import (
	"fmt"
	"strings"

	"github.com/danceshorts/shortsfx/pkg/filters"
	"github.com/danceshorts/shortsfx/pkg/schemas"
)

// BuildArgs assembles the single ffmpeg invocation that trims every
// segment, normalizes frames to the vertical target, blends dissolve
// fades at interior boundaries, concatenates, burns in overlay text and
// encodes to outputPath.
//
// Each segment becomes one trimmed input (-ss/-t before -i), so ffmpeg
// seeks in the source instead of decoding it whole.
func BuildArgs(t *schemas.Timeline, overlays []schemas.OverlayText, outputPath string) ([]string, error) {
	if t == nil || len(t.Segments) == 0 {
		return nil, fmt.Errorf("timeline has no segments")
	}
	if outputPath == "" {
		return nil, fmt.Errorf("output path is required")
	}

	args := make([]string, 0, 8*len(t.Segments)+24)

	for _, seg := range t.Segments {
		args = append(args,
			"-ss", formatSeconds(seg.Start.Seconds()),
			"-t", formatSeconds(seg.Duration.Seconds()),
			"-i", seg.Source,
		)
	}

	withAudio := true
	for _, seg := range t.Segments {
		if !seg.Info.HasAudio {
			withAudio = false
			break
		}
	}

	graph := buildGraph(t, overlays, withAudio)

	args = append(args, "-filter_complex", graph, "-map", "[vout]")
	if withAudio {
		args = append(args, "-map", "[aout]")
	}

	args = append(args,
		"-c:v", schemas.TargetVideoCodec,
		"-preset", schemas.TargetPreset,
		"-crf", fmt.Sprintf("%d", schemas.TargetCRF),
	)
	if withAudio {
		args = append(args, "-c:a", schemas.TargetAudioCodec, "-b:a", "192k")
	}
	args = append(args, "-movflags", "+faststart", outputPath)

	return args, nil
}

// buildGraph produces the filter_complex expression: one normalization
// and fade chain per segment, a concat node, then the drawtext chain.
func buildGraph(t *schemas.Timeline, overlays []schemas.OverlayText, withAudio bool) string {
	var parts []string

	for i, seg := range t.Segments {
		chain := filters.NewBuilder()
		if seg.NeedsNormalize {
			chain.ScaleToFill(t.FrameWidth, t.FrameHeight).
				CenterCrop(t.FrameWidth, t.FrameHeight)
		}
		chain.SquarePixels().
			FPS(schemas.TargetFPS).
			PixelFormat(schemas.TargetPixFmt)

		// A dissolve at each interior boundary: the leading segment
		// fades out over the transition window, the following one fades
		// in. Fades blend within existing footage, so segment and
		// timeline durations are unchanged.
		if i > 0 {
			chain.FadeIn(t.Transitions[i-1].Duration)
		}
		if i < len(t.Segments)-1 {
			// A dissolve never outlasts the segment it fades out of.
			fd := t.Transitions[i].Duration
			if fd > seg.Duration {
				fd = seg.Duration
			}
			chain.FadeOut(seg.Duration-fd, fd)
		}

		parts = append(parts, fmt.Sprintf("[%d:v]%s[v%d]", i, chain.Build(), i))
	}

	var concatInputs strings.Builder
	for i := range t.Segments {
		fmt.Fprintf(&concatInputs, "[v%d]", i)
		if withAudio {
			fmt.Fprintf(&concatInputs, "[%d:a]", i)
		}
	}

	concatOut := "[vcat]"
	if withAudio {
		concatOut = "[vcat][aout]"
	}
	parts = append(parts, concatInputs.String()+filters.Concat(len(t.Segments), withAudio)+concatOut)

	if len(overlays) == 0 {
		parts = append(parts, "[vcat]null[vout]")
	} else {
		texts := make([]string, len(overlays))
		for i, o := range overlays {
			texts[i] = filters.Drawtext(o)
		}
		parts = append(parts, "[vcat]"+strings.Join(texts, ",")+"[vout]")
	}

	return strings.Join(parts, ";")
}

func formatSeconds(s float64) string {
	return fmt.Sprintf("%.3f", s)
}
