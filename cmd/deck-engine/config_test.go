// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configTestYAML = `model: shared-model
api_key: config-api-key
outline:
  model: text-model-from-config
  num_slides: 7
  outlines_dir: my-outlines
images:
  model: image-model-from-config
  assets_dir: my-assets
assembly:
  decks_dir: my-decks
library:
  library_dir: my-library
  max_results: 3
`

func loadTestConfig(t *testing.T, yaml string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "deck-engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())
}

// stageFlags builds a command carrying the stage flag set the subcommands
// declare, at their defaults.
func stageFlags(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int("slides", defaultNumSlides, "")
	cmd.Flags().String("outlines-dir", "outlines", "")
	cmd.Flags().String("assets-dir", "assets", "")
	cmd.Flags().String("decks-dir", "decks", "")
	cmd.Flags().String("library-dir", "library", "")
	return cmd
}

func TestConfigFileReachesStages(t *testing.T) {
	loadTestConfig(t, configTestYAML)
	cmd := stageFlags(t)

	oc := outlineConfig(cmd, "")
	assert.Equal(t, "text-model-from-config", oc.Model)
	assert.Equal(t, "config-api-key", oc.APIKey)
	assert.Equal(t, 7, oc.NumSlides)
	assert.Equal(t, "my-outlines", oc.OutlinesDir)

	ic := imageConfig(cmd, "")
	assert.Equal(t, "image-model-from-config", ic.Model)
	assert.Equal(t, "my-assets", ic.AssetsDir)

	ac := assemblyConfig(cmd)
	assert.Equal(t, "my-decks", ac.DecksDir)

	lc := libraryConfig(cmd)
	assert.Equal(t, "my-library", lc.LibraryDir)
	assert.Equal(t, 3, lc.MaxResults)
}

func TestStageModelKeysAreIndependent(t *testing.T) {
	loadTestConfig(t, "outline:\n  model: text-only-model\n")
	cmd := stageFlags(t)

	// The outline stage picks up its key; the image stage keeps its default.
	assert.Equal(t, "text-only-model", outlineConfig(cmd, "").Model)
	assert.Equal(t, defaultImageModel, imageConfig(cmd, "").Model)
}

func TestSharedModelKeyCoversBothStages(t *testing.T) {
	loadTestConfig(t, "model: shared-model\n")
	cmd := stageFlags(t)

	assert.Equal(t, "shared-model", outlineConfig(cmd, "").Model)
	assert.Equal(t, "shared-model", imageConfig(cmd, "").Model)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	loadTestConfig(t, configTestYAML)
	cmd := stageFlags(t)
	require.NoError(t, cmd.Flags().Set("slides", "9"))
	require.NoError(t, cmd.Flags().Set("outlines-dir", "flag-outlines"))

	oc := outlineConfig(cmd, "flag-model")
	assert.Equal(t, "flag-model", oc.Model)
	assert.Equal(t, 9, oc.NumSlides)
	assert.Equal(t, "flag-outlines", oc.OutlinesDir)
}

func TestDefaultsWithoutConfigFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	cmd := stageFlags(t)

	oc := outlineConfig(cmd, "")
	assert.Equal(t, defaultTextModel, oc.Model)
	assert.Equal(t, defaultNumSlides, oc.NumSlides)
	assert.Equal(t, "outlines", oc.OutlinesDir)
}
