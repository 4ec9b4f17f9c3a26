package schemas

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration with JSON support for the formats scene
// configurations use in the wild: bare numbers of seconds ("start": 7.5),
// Go duration strings ("90s", "1m30s") and timecodes ("00:01:30.500").
type Duration struct {
	time.Duration
}

// DurationOf converts a time.Duration into the JSON wrapper.
func DurationOf(d time.Duration) Duration {
	return Duration{Duration: d}
}

// Seconds builds a Duration from fractional seconds.
func Seconds(s float64) Duration {
	return Duration{Duration: time.Duration(s * float64(time.Second))}
}

// MarshalJSON encodes the duration as fractional seconds, matching the
// scene list file format.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.Seconds())
}

// UnmarshalJSON accepts a JSON number (seconds) or a string duration.
func (d *Duration) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] != '"' {
		var secs float64
		if err := json.Unmarshal(b, &secs); err != nil {
			return err
		}
		d.Duration = time.Duration(secs * float64(time.Second))
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	parsed, err := ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

var timecodeRe = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})(?:\.(\d{1,3}))?$`)

// ParseDuration parses "90s"/"1m30s" Go durations, "01:30:00" timecodes
// and plain decimal seconds ("7.5").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	if d, err := parseTimecode(s); err == nil {
		return d, nil
	}

	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}

	return 0, fmt.Errorf("invalid duration format: %s", s)
}

// parseTimecode parses "HH:MM:SS" or "HH:MM:SS.mmm"
func parseTimecode(s string) (time.Duration, error) {
	matches := timecodeRe.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid timecode format")
	}

	hours, _ := strconv.Atoi(matches[1])
	minutes, _ := strconv.Atoi(matches[2])
	seconds, _ := strconv.Atoi(matches[3])

	d := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second

	if matches[4] != "" {
		// Pad milliseconds to 3 digits
		ms := matches[4]
		for len(ms) < 3 {
			ms += "0"
		}
		millis, _ := strconv.Atoi(ms)
		d += time.Duration(millis) * time.Millisecond
	}

	return d, nil
}
