package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSamples_ProducesLoadableProject(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteSamples(zerolog.Nop(), dir))

	project, err := LoadProject(zerolog.Nop(), dir)
	require.NoError(t, err)

	assert.Len(t, project.Scenes, 2)
	assert.Equal(t, "option_1", project.Metadata.Recommended)
	assert.Equal(t, "2", project.Styles.Default)
	assert.Len(t, project.Metadata.Options["option_1"].TextOverlay, 4)
}

func TestWriteSamples_NeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, InstructionsFile)
	require.NoError(t, os.WriteFile(existing, []byte(`{"scenes":[{"id":9,"source":"mine.mp4","start":0,"duration":1}]}`), 0644))

	require.NoError(t, WriteSamples(zerolog.Nop(), dir))

	content, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Contains(t, string(content), "mine.mp4")
	assert.FileExists(t, filepath.Join(dir, MetadataFile))
	assert.FileExists(t, filepath.Join(dir, StylesFile))
}
