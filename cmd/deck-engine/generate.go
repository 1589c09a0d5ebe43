// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deck-engine/internal/deck"
	"github.com/pdiddy/deck-engine/internal/imagegen"
	"github.com/pdiddy/deck-engine/internal/library"
	"github.com/pdiddy/deck-engine/internal/outline"
	"github.com/pdiddy/deck-engine/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate [topic...]",
	Short: "Run the full pipeline: outline, images, and deck assembly",
	Long: `Generate runs all three stages for a topic in one go. The outline and
image assets are persisted like the individual stages would, the deck is
written to the decks directory, and the run is recorded in the deck
library.

An outline failure aborts the run; individual image failures only leave
the affected slides without a picture.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Int("slides", defaultNumSlides, "number of content slides to generate")
	generateCmd.Flags().String("text-model", "", "text model identifier (default "+defaultTextModel+")")
	generateCmd.Flags().String("image-model", "", "image model identifier (default "+defaultImageModel+")")
	generateCmd.Flags().String("outlines-dir", "outlines", "directory for outline files")
	generateCmd.Flags().String("assets-dir", "assets", "base directory for generated images")
	generateCmd.Flags().String("decks-dir", "decks", "directory for assembled decks")
	generateCmd.Flags().String("library-dir", "library", "directory for the deck library database")
	generateCmd.Flags().String("output", "", "output .pptx path (default <decks-dir>/<topic-slug>.pptx)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a presentation topic")
	}
	topic := strings.Join(args, " ")
	slug := outline.Slug(topic)

	textModel, _ := cmd.Flags().GetString("text-model")
	imageModel, _ := cmd.Flags().GetString("image-model")
	cfg := types.PipelineConfig{
		Outline:  outlineConfig(cmd, textModel),
		Images:   imageConfig(cmd, imageModel),
		Assembly: assemblyConfig(cmd),
		Library:  libraryConfig(cmd),
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = filepath.Join(cfg.Assembly.DecksDir, slug+".pptx")
	}

	ctx := context.Background()

	// One client for the whole run; both stages share credentials.
	client, err := newGenaiClient(ctx, cfg.Outline.AIConfig)
	if err != nil {
		return err
	}

	textBackend := &outline.GeminiBackend{Client: client, Model: cfg.Outline.Model}
	imageBackend := &imagegen.GeminiBackend{Client: client, Model: cfg.Images.Model}

	o, err := outline.Generate(ctx, textBackend, topic, cfg.Outline.NumSlides, os.Stdout)
	if err != nil {
		return err
	}

	if _, err := outline.Write(cfg.Outline.OutlinesDir, slug, o); err != nil {
		return err
	}

	images := imagegen.GenerateAll(ctx, imageBackend, o, os.Stdout)

	if _, err := imagegen.WriteAssets(cfg.Images.AssetsDir, slug, images); err != nil {
		return err
	}

	if err := deck.Assemble(o, images, output, os.Stdout); err != nil {
		return err
	}

	// A library failure does not fail the run: the deck is already on disk.
	if err := recordDeck(ctx, cfg.Library, slug, topic, o, images, output); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record deck in library: %v\n", err)
	}

	return nil
}

func recordDeck(ctx context.Context, cfg types.LibraryConfig, slug, topic string, o *types.Outline, images types.ImageMap, path string) error {
	store, err := library.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Record(ctx, &types.DeckRecord{
		ID:        slug,
		Topic:     topic,
		Title:     o.Title,
		Slides:    len(o.Slides),
		Images:    images.Generated(),
		Path:      path,
		CreatedAt: time.Now(),
	})
}
