package schemas

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
	}{
		{"90s", 90 * time.Second},
		{"1m30s", 90 * time.Second},
		{"00:01:30", 90 * time.Second},
		{"00:00:05.500", 5500 * time.Millisecond},
		{"7.5", 7500 * time.Millisecond},
		{"  10s  ", 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDuration(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestParseDuration_Invalid(t *testing.T) {
	_, err := ParseDuration("not-a-duration")
	assert.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	var scene Scene
	payload := `{"id": 1, "source": "clip1.mp4", "start": 0, "duration": 5}`
	require.NoError(t, json.Unmarshal([]byte(payload), &scene))
	assert.Equal(t, time.Duration(0), scene.Start.Duration)
	assert.Equal(t, 5*time.Second, scene.Duration.Duration)

	payload = `{"id": 2, "source": "clip2.mp4", "start": "00:00:02.500", "duration": "7.5"}`
	require.NoError(t, json.Unmarshal([]byte(payload), &scene))
	assert.Equal(t, 2500*time.Millisecond, scene.Start.Duration)
	assert.Equal(t, 7500*time.Millisecond, scene.Duration.Duration)
}

func TestDuration_MarshalJSON(t *testing.T) {
	d := Seconds(2.5)
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, "2.5", string(out))
}
