// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/deck-engine/pkg/types"
)

// Settings resolve in precedence order: an explicitly set flag, the stage's
// key in the config file, then the flag's default.

func stringSetting(cmd *cobra.Command, flag, key string) string {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

func intSetting(cmd *cobra.Command, flag, key string) int {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetInt(key)
	}
	v, _ := cmd.Flags().GetInt(flag)
	return v
}

func outlineConfig(cmd *cobra.Command, model string) types.OutlineConfig {
	return types.OutlineConfig{
		AIConfig:    stageAIConfig("outline", model, defaultTextModel),
		NumSlides:   intSetting(cmd, "slides", "outline.num_slides"),
		OutlinesDir: stringSetting(cmd, "outlines-dir", "outline.outlines_dir"),
	}
}

func imageConfig(cmd *cobra.Command, model string) types.ImageConfig {
	return types.ImageConfig{
		AIConfig:  stageAIConfig("images", model, defaultImageModel),
		AssetsDir: stringSetting(cmd, "assets-dir", "images.assets_dir"),
	}
}

func assemblyConfig(cmd *cobra.Command) types.AssemblyConfig {
	return types.AssemblyConfig{
		DecksDir: stringSetting(cmd, "decks-dir", "assembly.decks_dir"),
	}
}

func libraryConfig(cmd *cobra.Command) types.LibraryConfig {
	return types.LibraryConfig{
		LibraryDir: stringSetting(cmd, "library-dir", "library.library_dir"),
		MaxResults: viper.GetInt("library.max_results"),
	}
}
