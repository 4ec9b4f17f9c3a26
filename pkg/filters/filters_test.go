package filters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/danceshorts/shortsfx/pkg/schemas"
)

func TestBuilder_NormalizeChain(t *testing.T) {
	chain := NewBuilder().
		ScaleToFill(1080, 1920).
		CenterCrop(1080, 1920).
		SquarePixels().
		FPS(30).
		PixelFormat("yuv420p").
		Build()

	assert.Equal(t,
		"scale=1080:1920:force_original_aspect_ratio=increase,crop=1080:1920,setsar=1,fps=30,format=yuv420p",
		chain)
}

func TestBuilder_Fades(t *testing.T) {
	chain := NewBuilder().
		FadeIn(500 * time.Millisecond).
		FadeOut(4500*time.Millisecond, 500*time.Millisecond).
		Build()

	assert.Equal(t, "fade=t=in:st=0:d=0.500,fade=t=out:st=4.500:d=0.500", chain)
}

func TestBuilder_SkipsInvalidArgs(t *testing.T) {
	chain := NewBuilder().
		ScaleToFill(0, 1920).
		FPS(-1).
		FadeIn(0).
		Build()

	assert.Equal(t, "null", chain)
}

func TestConcat(t *testing.T) {
	assert.Equal(t, "concat=n=3:v=1:a=1", Concat(3, true))
	assert.Equal(t, "concat=n=2:v=1:a=0", Concat(2, false))
}

func TestDrawtext(t *testing.T) {
	o := schemas.OverlayText{
		Text:  "Feel the beat",
		Start: schemas.Seconds(0),
		End:   schemas.Seconds(2.5),
		Style: schemas.StyleOption{Font: "Impact", Color: "yellow", FontSize: 70},
	}

	expr := Drawtext(o)
	assert.Contains(t, expr, "drawtext=text='Feel the beat'")
	assert.Contains(t, expr, "font='Impact'")
	assert.Contains(t, expr, "fontsize=70")
	assert.Contains(t, expr, "fontcolor=yellow")
	assert.Contains(t, expr, "enable='between(t,0.000,2.500)'")
}

func TestDrawtext_Defaults(t *testing.T) {
	o := schemas.OverlayText{
		Text:  "hi",
		Start: schemas.Seconds(1),
		End:   schemas.Seconds(2),
	}

	expr := Drawtext(o)
	assert.Contains(t, expr, "fontsize=70")
	assert.Contains(t, expr, "fontcolor=white")
	assert.NotContains(t, expr, ":font='")
}

func TestEscapeText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"50% power", `50\% power`},
		{"a:b", `a\:b`},
		{"line\nbreak", "line break"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, EscapeText(tt.input), "input %q", tt.input)
	}
}
