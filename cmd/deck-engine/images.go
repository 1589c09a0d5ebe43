package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deck-engine/internal/imagegen"
	"github.com/pdiddy/deck-engine/internal/outline"
)

var imagesCmd = &cobra.Command{
	Use:   "images [outline.yaml]",
	Short: "Generate one illustration per slide of an outline",
	Long: `Images reads an outline file and asks the image model for one
illustration per slide, using each slide's image prompt. Assets and a
manifest are written under the assets directory; a slide whose image fails
is recorded in the manifest without an asset and the deck renders it
without a picture.`,
	RunE: runImages,
}

func init() {
	imagesCmd.Flags().String("model", "", "image model identifier (default "+defaultImageModel+")")
	imagesCmd.Flags().String("assets-dir", "assets", "base directory for generated images")

	rootCmd.AddCommand(imagesCmd)
}

func runImages(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide the outline file to illustrate")
	}
	outlinePath := args[0]
	slug := strings.TrimSuffix(filepath.Base(outlinePath), ".yaml")

	model, _ := cmd.Flags().GetString("model")
	cfg := imageConfig(cmd, model)

	o, err := outline.Read(outlinePath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newGenaiClient(ctx, cfg.AIConfig)
	if err != nil {
		return err
	}

	backend := &imagegen.GeminiBackend{Client: client, Model: cfg.Model}

	images := imagegen.GenerateAll(ctx, backend, o, os.Stdout)

	manifestPath, err := imagegen.WriteAssets(cfg.AssetsDir, slug, images)
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d/%d images)\n", manifestPath, images.Generated(), len(o.Slides))
	return nil
}
