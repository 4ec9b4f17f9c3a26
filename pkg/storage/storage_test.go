package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		loc     string
		scheme  string
		path    string
		wantErr bool
	}{
		{"clips/dance1.mp4", "file", "clips/dance1.mp4", false},
		{"/abs/path/dance2.mp4", "file", "/abs/path/dance2.mp4", false},
		{"file:///tmp/dance3.mp4", "file", "/tmp/dance3.mp4", false},
		{"https://example.com/clip.mp4", "https", "example.com/clip.mp4", false},
		{"http://example.com/clip.mp4", "http", "example.com/clip.mp4", false},
		{"s3://bucket/key/clip.mp4", "s3", "bucket/key/clip.mp4", false},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.loc, func(t *testing.T) {
			scheme, path, err := ParseLocation(tt.loc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.scheme, scheme)
			assert.Equal(t, tt.path, path)
		})
	}
}

func TestParseLocation_UnsupportedScheme(t *testing.T) {
	_, _, err := ParseLocation("gs://bucket/clip.mp4")

	var schemeErr *UnsupportedSchemeError
	require.ErrorAs(t, err, &schemeErr)
	assert.Equal(t, "gs", schemeErr.Scheme)
}
