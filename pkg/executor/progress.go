package executor

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Progress is one parsed ffmpeg status line.
type Progress struct {
	Frame   int           // current frame number
	FPS     float64       // encode frames per second
	Time    time.Duration // current position in the output
	Size    int64         // output size in bytes
	Bitrate float64       // kbits/s
	Speed   float64       // encode speed multiplier (1.0 = realtime)
}

// ProgressParser extracts Progress from ffmpeg stderr lines.
type ProgressParser struct {
	frameRe   *regexp.Regexp
	fpsRe     *regexp.Regexp
	timeRe    *regexp.Regexp
	sizeRe    *regexp.Regexp
	bitrateRe *regexp.Regexp
	speedRe   *regexp.Regexp
}

// NewProgressParser creates a parser for ffmpeg's status format.
func NewProgressParser() *ProgressParser {
	return &ProgressParser{
		frameRe:   regexp.MustCompile(`frame=\s*(\d+)`),
		fpsRe:     regexp.MustCompile(`fps=\s*([\d.]+)`),
		timeRe:    regexp.MustCompile(`time=(\d{2}):(\d{2}):(\d{2})\.(\d{2})`),
		sizeRe:    regexp.MustCompile(`size=\s*(\d+)kB`),
		bitrateRe: regexp.MustCompile(`bitrate=\s*([\d.]+)kbits/s`),
		speedRe:   regexp.MustCompile(`speed=\s*([\d.]+)x`),
	}
}

// ParseLine parses one stderr line, returning nil for non-progress lines.
func (pp *ProgressParser) ParseLine(line string) *Progress {
	if !strings.Contains(line, "frame=") {
		return nil
	}

	progress := &Progress{}

	if m := pp.frameRe.FindStringSubmatch(line); len(m) > 1 {
		progress.Frame, _ = strconv.Atoi(m[1])
	}

	if m := pp.fpsRe.FindStringSubmatch(line); len(m) > 1 {
		progress.FPS, _ = strconv.ParseFloat(m[1], 64)
	}

	if m := pp.timeRe.FindStringSubmatch(line); len(m) > 4 {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		seconds, _ := strconv.Atoi(m[3])
		centis, _ := strconv.Atoi(m[4])

		progress.Time = time.Duration(hours)*time.Hour +
			time.Duration(minutes)*time.Minute +
			time.Duration(seconds)*time.Second +
			time.Duration(centis)*10*time.Millisecond
	}

	if m := pp.sizeRe.FindStringSubmatch(line); len(m) > 1 {
		sizeKB, _ := strconv.ParseInt(m[1], 10, 64)
		progress.Size = sizeKB * 1024
	}

	if m := pp.bitrateRe.FindStringSubmatch(line); len(m) > 1 {
		progress.Bitrate, _ = strconv.ParseFloat(m[1], 64)
	}

	if m := pp.speedRe.FindStringSubmatch(line); len(m) > 1 {
		progress.Speed, _ = strconv.ParseFloat(m[1], 64)
	}

	return progress
}

// Percentage reports completion against a known total output duration.
func (p *Progress) Percentage(total time.Duration) float64 {
	if total <= 0 {
		return 0
	}

	pct := float64(p.Time) / float64(total) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}
