package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPBackend downloads clips over HTTP/HTTPS. It is read only.
type HTTPBackend struct {
	client *http.Client
}

// NewHTTPBackend creates an HTTP download backend.
func NewHTTPBackend() *HTTPBackend {
	return &HTTPBackend{
		client: &http.Client{Timeout: 10 * time.Minute},
	}
}

func (hb *HTTPBackend) check(loc string) error {
	scheme, _, err := ParseLocation(loc)
	if err != nil {
		return err
	}
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("http backend cannot serve %s:// locations", scheme)
	}
	return nil
}

// Get downloads a clip over HTTP/HTTPS.
func (hb *HTTPBackend) Get(ctx context.Context, loc string) (io.ReadCloser, error) {
	if err := hb.check(loc); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := hb.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// Put always fails: rendered shorts cannot be published over plain HTTP.
func (hb *HTTPBackend) Put(ctx context.Context, loc string, data io.Reader) error {
	return fmt.Errorf("http locations are read only")
}

// Exists probes a clip URL with a HEAD request.
func (hb *HTTPBackend) Exists(ctx context.Context, loc string) (bool, error) {
	if err := hb.check(loc); err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, loc, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := hb.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
