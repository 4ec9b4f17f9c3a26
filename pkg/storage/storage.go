// Package storage moves dance clips and rendered shorts between the
// local workspace and remote locations. Source clips may live on the
// local filesystem, behind HTTP, or in S3; rendered outputs can be
// published to any writable backend.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// Backend reads and writes files addressed by a location string.
type Backend interface {
	// Get opens the file at the given location for reading.
	Get(ctx context.Context, loc string) (io.ReadCloser, error)

	// Put writes data to the given location.
	Put(ctx context.Context, loc string, data io.Reader) error

	// Exists reports whether a file exists at the given location.
	Exists(ctx context.Context, loc string) (bool, error)
}

// UnsupportedSchemeError reports a location scheme no backend serves.
type UnsupportedSchemeError struct {
	Scheme string
}

func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("unsupported storage scheme %q", e.Scheme)
}

// ParseLocation splits a clip or output location into scheme and path.
// Bare filesystem paths carry no scheme and map to "file", so scene
// sources in project configs can be written as plain paths.
func ParseLocation(loc string) (scheme string, path string, err error) {
	if loc == "" {
		return "", "", fmt.Errorf("location cannot be empty")
	}

	if !strings.Contains(loc, "://") {
		return "file", loc, nil
	}

	parsed, err := url.Parse(loc)
	if err != nil {
		return "", "", fmt.Errorf("invalid location %q: %w", loc, err)
	}

	switch parsed.Scheme {
	case "file":
		return "file", parsed.Path, nil
	case "http", "https", "s3":
		path = parsed.Host
		if parsed.Path != "" {
			path = path + parsed.Path
		}
		return parsed.Scheme, path, nil
	default:
		return "", "", &UnsupportedSchemeError{Scheme: parsed.Scheme}
	}
}
