package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitS3(t *testing.T) {
	tests := []struct {
		name        string
		loc         string
		wantBucket  string
		wantKey     string
		errContains string
	}{
		{
			name:       "bucket and key",
			loc:        "s3://shorts-bucket/renders/final_dance_short.mp4",
			wantBucket: "shorts-bucket",
			wantKey:    "renders/final_dance_short.mp4",
		},
		{
			name:       "single key segment",
			loc:        "s3://bucket/clip.mp4",
			wantBucket: "bucket",
			wantKey:    "clip.mp4",
		},
		{
			name:        "missing bucket",
			loc:         "s3:///renders/out.mp4",
			errContains: "missing bucket name",
		},
		{
			name:        "missing key",
			loc:         "s3://bucket/",
			errContains: "missing object key",
		},
		{
			name:        "bucket only",
			loc:         "s3://bucket",
			errContains: "missing object key",
		},
		{
			name:        "wrong scheme",
			loc:         "https://bucket/clip.mp4",
			errContains: "cannot serve",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, key, err := splitS3(tt.loc)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}
