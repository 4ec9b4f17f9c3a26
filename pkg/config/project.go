// Package config loads tool settings and per-project configuration for
// dance short renders. A project directory carries three JSON files:
// scene instructions, metadata options, and overlay style options.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/danceshorts/shortsfx/pkg/schemas"
)

// Project configuration file names.
const (
	InstructionsFile = "veo_instructions.json"
	MetadataFile     = "metadata_options.json"
	StylesFile       = "style_options.json"
)

// MissingFileError reports an absent project configuration file.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("configuration file %s not found", e.Path)
}

// InvalidConfigError reports a configuration file that parsed but fails
// validation.
type InvalidConfigError struct {
	File   string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.File, e.Reason)
}

// Instructions is the parsed scene instruction file.
type Instructions struct {
	Scenes []schemas.Scene `json:"scenes"`
}

// Metadata is the parsed metadata option file. The file stores options
// under option_N keys next to a "recommended" selector, so it needs a
// custom unmarshal.
type Metadata struct {
	Options     map[string]schemas.MetadataOption
	Recommended string
}

// UnmarshalJSON splits option entries from the recommended selector.
// The selector may be a number (1 means option_1) or a full key string.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.Options = make(map[string]schemas.MetadataOption)
	for key, value := range raw {
		if key == "recommended" {
			var num json.Number
			if err := json.Unmarshal(value, &num); err == nil {
				m.Recommended = "option_" + num.String()
				continue
			}
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return fmt.Errorf("invalid recommended selector: %w", err)
			}
			m.Recommended = s
			continue
		}

		var option schemas.MetadataOption
		if err := json.Unmarshal(value, &option); err != nil {
			return fmt.Errorf("invalid metadata option %q: %w", key, err)
		}
		m.Options[key] = option
	}

	return nil
}

// Styles is the parsed style option file.
type Styles struct {
	Options map[string]schemas.StyleOption `json:"options"`
	Default string                         `json:"default"`
}

// Project is a fully loaded project configuration.
type Project struct {
	Name     string
	Dir      string
	Scenes   []schemas.Scene
	Metadata Metadata
	Styles   Styles
}

// LoadProject reads and validates the three configuration files in dir.
func LoadProject(logger zerolog.Logger, dir string) (*Project, error) {
	log := logger.With().Str("component", "config").Logger()

	project := &Project{
		Name: filepath.Base(dir),
		Dir:  dir,
	}

	var instructions Instructions
	if err := readJSON(filepath.Join(dir, InstructionsFile), &instructions); err != nil {
		return nil, err
	}
	project.Scenes = instructions.Scenes

	if err := readJSON(filepath.Join(dir, MetadataFile), &project.Metadata); err != nil {
		return nil, err
	}

	if err := readJSON(filepath.Join(dir, StylesFile), &project.Styles); err != nil {
		return nil, err
	}

	if err := project.validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("project", project.Name).
		Int("scenes", len(project.Scenes)).
		Int("metadata_options", len(project.Metadata.Options)).
		Int("style_options", len(project.Styles.Options)).
		Msg("project configuration loaded")

	return project, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &MissingFileError{Path: path}
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// validate rejects configurations no render could ever succeed from,
// so a doomed run fails before any clip is probed.
func (p *Project) validate() error {
	if len(p.Scenes) == 0 {
		return &InvalidConfigError{File: InstructionsFile, Reason: "scene list is empty"}
	}
	for _, scene := range p.Scenes {
		if scene.Source == "" {
			return &InvalidConfigError{
				File:   InstructionsFile,
				Reason: fmt.Sprintf("scene %d has no source", scene.ID),
			}
		}
	}

	if len(p.Metadata.Options) == 0 {
		return &InvalidConfigError{File: MetadataFile, Reason: "no metadata options defined"}
	}

	if len(p.Styles.Options) == 0 {
		return &InvalidConfigError{File: StylesFile, Reason: "no style options defined"}
	}

	return nil
}
