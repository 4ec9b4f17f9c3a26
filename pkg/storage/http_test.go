package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPBackend_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/clip.mp4" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		io.WriteString(w, "clip bytes")
	}))
	defer server.Close()

	backend := NewHTTPBackend()
	ctx := context.Background()

	reader, err := backend.Get(ctx, server.URL+"/clip.mp4")
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "clip bytes", string(content))

	_, err = backend.Get(ctx, server.URL+"/missing.mp4")
	assert.ErrorContains(t, err, "status 404")
}

func TestHTTPBackend_PutIsReadOnly(t *testing.T) {
	backend := NewHTTPBackend()

	err := backend.Put(context.Background(), "https://example.com/out.mp4", strings.NewReader("x"))
	assert.ErrorContains(t, err, "read only")
}

func TestHTTPBackend_Exists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/clip.mp4" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	backend := NewHTTPBackend()
	ctx := context.Background()

	exists, err := backend.Exists(ctx, server.URL+"/clip.mp4")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = backend.Exists(ctx, server.URL+"/missing.mp4")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestHTTPBackend_RejectsLocalPaths(t *testing.T) {
	backend := NewHTTPBackend()

	_, err := backend.Get(context.Background(), "/tmp/clip.mp4")
	assert.Error(t, err)
}
