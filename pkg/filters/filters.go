// Package filters builds ffmpeg filtergraph expressions for the render
// pipeline: frame normalization, dissolve fades, concatenation and timed
// drawtext overlays.
package filters

import (
	"fmt"
	"strings"
	"time"

	"github.com/danceshorts/shortsfx/pkg/schemas"
)

// Builder accumulates a comma-joined chain of per-stream filters.
type Builder struct {
	filters []string
}

// NewBuilder creates an empty filter chain builder.
func NewBuilder() *Builder {
	return &Builder{filters: make([]string, 0, 8)}
}

// ScaleToFill scales the frame so it covers the target box completely,
// preserving aspect ratio. Combined with CenterCrop this implements
// fill-and-crop normalization without distortion.
func (b *Builder) ScaleToFill(width, height int) *Builder {
	if width <= 0 || height <= 0 {
		return b
	}
	b.filters = append(b.filters,
		fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase", width, height))
	return b
}

// CenterCrop crops the frame to the target box around its center.
func (b *Builder) CenterCrop(width, height int) *Builder {
	if width <= 0 || height <= 0 {
		return b
	}
	b.filters = append(b.filters, fmt.Sprintf("crop=%d:%d", width, height))
	return b
}

// SquarePixels resets the sample aspect ratio so concat inputs agree.
func (b *Builder) SquarePixels() *Builder {
	b.filters = append(b.filters, "setsar=1")
	return b
}

// FPS forces a constant frame rate.
func (b *Builder) FPS(fps float64) *Builder {
	if fps <= 0 {
		return b
	}
	b.filters = append(b.filters, fmt.Sprintf("fps=%g", fps))
	return b
}

// PixelFormat pins the pixel format.
func (b *Builder) PixelFormat(format string) *Builder {
	if format == "" {
		return b
	}
	b.filters = append(b.filters, "format="+format)
	return b
}

// FadeIn blends the head of the segment in over the given duration.
func (b *Builder) FadeIn(d time.Duration) *Builder {
	if d <= 0 {
		return b
	}
	b.filters = append(b.filters, fmt.Sprintf("fade=t=in:st=0:d=%.3f", d.Seconds()))
	return b
}

// FadeOut blends the tail of the segment out, starting at st.
func (b *Builder) FadeOut(st, d time.Duration) *Builder {
	if d <= 0 {
		return b
	}
	b.filters = append(b.filters,
		fmt.Sprintf("fade=t=out:st=%.3f:d=%.3f", st.Seconds(), d.Seconds()))
	return b
}

// Custom appends a raw filter expression.
func (b *Builder) Custom(filter string) *Builder {
	b.filters = append(b.filters, filter)
	return b
}

// Build joins the chain with commas. Empty chains yield "null" so the
// expression stays valid inside a filter_complex graph.
func (b *Builder) Build() string {
	if len(b.filters) == 0 {
		return "null"
	}
	return strings.Join(b.filters, ",")
}

// Concat returns a concat filter expression for n video+audio pairs.
func Concat(n int, withAudio bool) string {
	audio := 0
	if withAudio {
		audio = 1
	}
	return fmt.Sprintf("concat=n=%d:v=1:a=%d", n, audio)
}

// Drawtext renders one overlay window: centered horizontally, anchored
// in the lower third of a vertical frame, visible only inside [start,end).
func Drawtext(o schemas.OverlayText) string {
	var sb strings.Builder

	sb.WriteString("drawtext=text='")
	sb.WriteString(EscapeText(o.Text))
	sb.WriteString("'")

	if o.Style.Font != "" {
		fmt.Fprintf(&sb, ":font='%s'", EscapeText(o.Style.Font))
	}

	size := o.Style.FontSize
	if size <= 0 {
		size = 70
	}
	fmt.Fprintf(&sb, ":fontsize=%d", size)

	color := o.Style.Color
	if color == "" {
		color = "white"
	}
	fmt.Fprintf(&sb, ":fontcolor=%s", color)

	sb.WriteString(":bordercolor=black:borderw=3")
	sb.WriteString(":x=(w-text_w)/2:y=h-text_h-260")

	fmt.Fprintf(&sb, ":enable='between(t,%.3f,%.3f)'",
		o.Start.Duration.Seconds(), o.End.Duration.Seconds())

	return sb.String()
}

// drawtext treats these as syntax inside a single-quoted value.
var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\\\'`,
	`:`, `\:`,
	`%`, `\%`,
	"\n", " ",
	"\r", " ",
)

// EscapeText sanitizes user text for use inside a drawtext value.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}
