package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Manager stages source clips into a run's working directory and
// publishes rendered shorts to their destination. The S3 backend is
// built lazily so local-only runs never touch AWS configuration.
type Manager struct {
	logger zerolog.Logger
	local  *LocalBackend
	http   *HTTPBackend

	s3Once sync.Once
	s3     *S3Backend
	s3Err  error
}

// NewManager creates a storage Manager.
func NewManager(logger zerolog.Logger) *Manager {
	return &Manager{
		logger: logger.With().Str("component", "storage").Logger(),
		local:  NewLocalBackend(),
		http:   NewHTTPBackend(),
	}
}

func (m *Manager) backendFor(ctx context.Context, scheme string) (Backend, error) {
	switch scheme {
	case "file":
		return m.local, nil
	case "http", "https":
		return m.http, nil
	case "s3":
		m.s3Once.Do(func() {
			m.s3, m.s3Err = NewS3Backend(ctx)
		})
		if m.s3Err != nil {
			return nil, fmt.Errorf("failed to initialize S3 backend: %w", m.s3Err)
		}
		return m.s3, nil
	default:
		return nil, &UnsupportedSchemeError{Scheme: scheme}
	}
}

// Stage makes a clip available on the local filesystem. Local clips are
// used in place; remote clips are downloaded into workDir under a
// unique name so clips with identical basenames cannot collide.
func (m *Manager) Stage(ctx context.Context, source, workDir string) (string, error) {
	scheme, path, err := ParseLocation(source)
	if err != nil {
		return "", err
	}

	if scheme == "file" {
		return path, nil
	}

	backend, err := m.backendFor(ctx, scheme)
	if err != nil {
		return "", err
	}

	body, err := backend.Get(ctx, source)
	if err != nil {
		return "", fmt.Errorf("failed to fetch clip %s: %w", source, err)
	}
	defer body.Close()

	name := fmt.Sprintf("%s-%s", uuid.NewString()[:8], filepath.Base(path))
	staged := filepath.Join(workDir, name)

	if err := m.local.Put(ctx, staged, body); err != nil {
		return "", fmt.Errorf("failed to stage clip %s: %w", source, err)
	}

	m.logger.Debug().
		Str("source", source).
		Str("staged", staged).
		Msg("clip staged")

	return staged, nil
}

// Publish copies a rendered short from its local path to dest. A bare
// or file:// dest is a plain filesystem copy; s3:// uploads the file.
func (m *Manager) Publish(ctx context.Context, localPath, dest string) error {
	scheme, _, err := ParseLocation(dest)
	if err != nil {
		return err
	}

	backend, err := m.backendFor(ctx, scheme)
	if err != nil {
		return err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open rendered output: %w", err)
	}
	defer file.Close()

	if err := backend.Put(ctx, dest, file); err != nil {
		return fmt.Errorf("failed to publish output to %s: %w", dest, err)
	}

	m.logger.Info().Str("dest", dest).Msg("output published")
	return nil
}
