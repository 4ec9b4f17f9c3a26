package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProjectFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func validProjectFiles() map[string]string {
	return map[string]string{
		InstructionsFile: `{
			"scenes": [
				{"id": 2, "source": "clip2.mp4", "start": 0, "duration": 5},
				{"id": 1, "source": "clip1.mp4", "start": 1.5, "duration": 3}
			]
		}`,
		MetadataFile: `{
			"option_1": {
				"title": "Demo Dance Video",
				"text_overlay": ["Feel the beat", "Amazing!"]
			},
			"option_2": {
				"title": "Elegant Dance",
				"text_overlay": ["Grace in motion"]
			},
			"recommended": 1
		}`,
		StylesFile: `{
			"options": {
				"1": {"style": "Minimal", "font": "Arial", "color": "white", "font_size": 70},
				"2": {"style": "Recommended", "font": "Impact", "color": "yellow", "font_size": 70}
			},
			"default": "2"
		}`,
	}
}

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()
	writeProjectFiles(t, dir, validProjectFiles())

	project, err := LoadProject(zerolog.Nop(), dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(dir), project.Name)
	require.Len(t, project.Scenes, 2)
	assert.Equal(t, 2, project.Scenes[0].ID, "scene file order is preserved at load time")
	assert.Equal(t, 1500*time.Millisecond, project.Scenes[1].Start.Duration)

	assert.Equal(t, "option_1", project.Metadata.Recommended)
	assert.Len(t, project.Metadata.Options, 2)
	assert.Equal(t, "Demo Dance Video", project.Metadata.Options["option_1"].Title)

	assert.Equal(t, "2", project.Styles.Default)
	assert.Equal(t, "Impact", project.Styles.Options["2"].Font)
}

func TestLoadProject_RecommendedAsString(t *testing.T) {
	dir := t.TempDir()
	files := validProjectFiles()
	files[MetadataFile] = `{
		"option_1": {"title": "a", "text_overlay": ["x"]},
		"recommended": "option_1"
	}`
	writeProjectFiles(t, dir, files)

	project, err := LoadProject(zerolog.Nop(), dir)
	require.NoError(t, err)
	assert.Equal(t, "option_1", project.Metadata.Recommended)
}

func TestLoadProject_MissingFile(t *testing.T) {
	dir := t.TempDir()
	files := validProjectFiles()
	delete(files, MetadataFile)
	writeProjectFiles(t, dir, files)

	_, err := LoadProject(zerolog.Nop(), dir)
	var missing *MissingFileError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Path, MetadataFile)
}

func TestLoadProject_EmptySceneList(t *testing.T) {
	dir := t.TempDir()
	files := validProjectFiles()
	files[InstructionsFile] = `{"scenes": []}`
	writeProjectFiles(t, dir, files)

	_, err := LoadProject(zerolog.Nop(), dir)
	var invalid *InvalidConfigError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, InstructionsFile, invalid.File)
}

func TestLoadProject_SceneWithoutSource(t *testing.T) {
	dir := t.TempDir()
	files := validProjectFiles()
	files[InstructionsFile] = `{"scenes": [{"id": 1, "start": 0, "duration": 5}]}`
	writeProjectFiles(t, dir, files)

	_, err := LoadProject(zerolog.Nop(), dir)
	var invalid *InvalidConfigError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Reason, "scene 1")
}

func TestLoadProject_NoStyleOptions(t *testing.T) {
	dir := t.TempDir()
	files := validProjectFiles()
	files[StylesFile] = `{"options": {}, "default": "2"}`
	writeProjectFiles(t, dir, files)

	_, err := LoadProject(zerolog.Nop(), dir)
	var invalid *InvalidConfigError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, StylesFile, invalid.File)
}

func TestLoadProject_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	files := validProjectFiles()
	files[InstructionsFile] = `{"scenes": [`
	writeProjectFiles(t, dir, files)

	_, err := LoadProject(zerolog.Nop(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}
