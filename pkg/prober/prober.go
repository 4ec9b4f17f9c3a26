// Package prober probes source clips with ffprobe.
package prober

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/danceshorts/shortsfx/pkg/schemas"
)

// Prober extracts clip metadata using ffprobe.
type Prober struct {
	ffprobePath string
}

// Option is a functional option for Prober.
type Option func(*Prober)

// WithFFprobePath sets a custom ffprobe binary path.
func WithFFprobePath(path string) Option {
	return func(p *Prober) {
		p.ffprobePath = path
	}
}

// New creates a Prober, locating ffprobe on PATH by default.
func New(opts ...Option) *Prober {
	p := &Prober{
		ffprobePath: findFFprobe(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Probe returns the clip summary for a local media file: container
// duration, first video stream geometry and whether audio is present.
func (p *Prober) Probe(ctx context.Context, filePath string) (*schemas.ClipInfo, error) {
	if p.ffprobePath == "" {
		return nil, fmt.Errorf("ffprobe not found in PATH")
	}

	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	}

	cmd := exec.CommandContext(ctx, p.ffprobePath, args...)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("ffprobe failed: %s", string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("ffprobe execution error: %w", err)
	}

	return parseFFprobeOutput(filePath, output)
}

// findFFprobe locates ffprobe in PATH or the usual install locations.
func findFFprobe() string {
	candidates := []string{
		"ffprobe",
		"/usr/local/bin/ffprobe",
		"/opt/homebrew/bin/ffprobe",
		"/usr/bin/ffprobe",
	}

	for _, path := range candidates {
		if _, err := exec.LookPath(path); err == nil {
			return path
		}
	}

	return ""
}

// ffprobeOutput matches the raw ffprobe JSON shape.
type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
	Duration   string `json:"duration"`
}

// parseFFprobeOutput reduces the ffprobe report to the ClipInfo the
// resolver needs: one video geometry and an audio presence flag.
func parseFFprobeOutput(path string, data []byte) (*schemas.ClipInfo, error) {
	var output ffprobeOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &schemas.ClipInfo{
		Path:     path,
		Duration: parseSeconds(output.Format.Duration),
	}

	for _, stream := range output.Streams {
		switch stream.CodecType {
		case "video":
			if info.Width == 0 {
				info.Width = stream.Width
				info.Height = stream.Height
				info.FrameRate = parseFrameRate(stream.RFrameRate)
				info.VideoCodec = stream.CodecName
			}
			// Some containers only report duration per stream.
			if info.Duration == 0 {
				info.Duration = parseSeconds(stream.Duration)
			}
		case "audio":
			info.HasAudio = true
			if info.AudioCodec == "" {
				info.AudioCodec = stream.CodecName
			}
		}
	}

	if info.Duration <= 0 {
		return nil, fmt.Errorf("ffprobe reported no duration for %s", path)
	}

	return info, nil
}

// parseSeconds parses ffprobe's fractional-second duration strings.
func parseSeconds(s string) time.Duration {
	if s == "" {
		return 0
	}

	seconds, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return time.Duration(seconds * float64(time.Second))
}

// parseFrameRate parses "30/1" or "30000/1001" rational frame rates.
func parseFrameRate(s string) float64 {
	if s == "" {
		return 0
	}

	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		rate, _ := strconv.ParseFloat(s, 64)
		return rate
	}

	numerator, err1 := strconv.ParseFloat(parts[0], 64)
	denominator, err2 := strconv.ParseFloat(parts[1], 64)

	if err1 != nil || err2 != nil || denominator == 0 {
		return 0
	}

	return numerator / denominator
}
