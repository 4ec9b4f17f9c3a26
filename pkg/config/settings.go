package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/danceshorts/shortsfx/pkg/schemas"
)

// Settings configure the tool itself, as opposed to a project. They are
// read from an optional YAML file and then overridden by SHORTSFX_*
// environment variables.
type Settings struct {
	FFmpegPath   string `yaml:"ffmpeg_path"`
	FFprobePath  string `yaml:"ffprobe_path"`
	WorkDir      string `yaml:"work_dir"`
	OutputName   string `yaml:"output_name"`
	TransitionMs int    `yaml:"transition_ms"`
	Concurrency  int    `yaml:"concurrency"`
	LogLevel     string `yaml:"log_level"`
}

// DefaultSettings returns the settings used when no file or environment
// overrides are present.
func DefaultSettings() Settings {
	return Settings{
		WorkDir:      os.TempDir(),
		OutputName:   schemas.DefaultOutputName,
		TransitionMs: int(schemas.DefaultTransitionDuration.Milliseconds()),
		Concurrency:  4,
		LogLevel:     "info",
	}
}

// LoadSettings builds Settings from defaults, then the YAML file at
// path if it exists, then environment variables. An empty path skips
// the file layer.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return settings, fmt.Errorf("failed to read settings file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &settings); err != nil {
				return settings, fmt.Errorf("failed to parse settings file %s: %w", path, err)
			}
		}
	}

	applyEnv(&settings)

	if settings.Concurrency < 1 {
		return settings, fmt.Errorf("concurrency must be at least 1, got %d", settings.Concurrency)
	}
	if settings.TransitionMs < 0 {
		return settings, fmt.Errorf("transition_ms cannot be negative, got %d", settings.TransitionMs)
	}

	return settings, nil
}

func applyEnv(s *Settings) {
	if v := os.Getenv("SHORTSFX_FFMPEG"); v != "" {
		s.FFmpegPath = v
	}
	if v := os.Getenv("SHORTSFX_FFPROBE"); v != "" {
		s.FFprobePath = v
	}
	if v := os.Getenv("SHORTSFX_WORK_DIR"); v != "" {
		s.WorkDir = v
	}
	if v := os.Getenv("SHORTSFX_OUTPUT_NAME"); v != "" {
		s.OutputName = v
	}
	if v := os.Getenv("SHORTSFX_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv("SHORTSFX_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.Concurrency = n
		}
	}
}
