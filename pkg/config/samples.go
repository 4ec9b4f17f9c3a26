package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const sampleInstructions = `{
  "scenes": [
    {"id": 1, "source": "clip1.mp4", "start": 0, "duration": 5},
    {"id": 2, "source": "clip2.mp4", "start": 0, "duration": 5}
  ]
}
`

const sampleMetadata = `{
  "option_1": {
    "title": "Demo Dance Video 💃",
    "description": "Sample dance video with text overlays.",
    "tags": ["dance", "demo", "sample"],
    "emotional_hook": "Energetic and fun.",
    "text_hook": "Feel the rhythm! 🎵",
    "text_overlay": [
      "Feel the beat",
      "Dance with passion",
      "Move your body",
      "Amazing!"
    ]
  },
  "option_2": {
    "title": "Elegant Dance ✨",
    "description": "Graceful movements and classic style.",
    "tags": ["dance", "elegant", "classy"],
    "emotional_hook": "Sophisticated and timeless.",
    "text_hook": "Pure elegance ✨",
    "text_overlay": [
      "Grace in motion",
      "Classic style",
      "Timeless beauty",
      "Simply stunning"
    ]
  },
  "recommended": 1
}
`

const sampleStyles = `{
  "options": {
    "1": {"style": "Minimal", "font": "Arial", "color": "white", "font_size": 70},
    "2": {"style": "Recommended", "font": "Impact", "color": "yellow", "font_size": 70},
    "3": {"style": "Cinematic", "font": "Serif", "color": "white", "font_size": 60}
  },
  "default": "2"
}
`

// WriteSamples creates sample configuration files in dir for any of the
// three that are missing, so a fresh checkout is runnable immediately.
// Existing files are never overwritten.
func WriteSamples(logger zerolog.Logger, dir string) error {
	log := logger.With().Str("component", "config").Logger()

	samples := map[string]string{
		InstructionsFile: sampleInstructions,
		MetadataFile:     sampleMetadata,
		StylesFile:       sampleStyles,
	}

	for name, content := range samples {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			log.Debug().Str("file", name).Msg("sample skipped, file exists")
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to check %s: %w", path, err)
		}

		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write sample %s: %w", path, err)
		}
		log.Info().Str("file", name).Msg("sample configuration created")
	}

	return nil
}
