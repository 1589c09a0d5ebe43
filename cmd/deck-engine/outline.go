package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deck-engine/internal/outline"
)

const defaultNumSlides = 5

var outlineCmd = &cobra.Command{
	Use:   "outline [topic...]",
	Short: "Generate a structured presentation outline for a topic",
	Long: `Outline prompts the text model for a presentation outline: a title plus
one entry per slide with a slide title, 3-5 key points, and an image prompt.
The outline is written to the outlines directory as YAML for the images and
assemble stages.`,
	RunE: runOutline,
}

func init() {
	outlineCmd.Flags().Int("slides", defaultNumSlides, "number of content slides to generate")
	outlineCmd.Flags().String("model", "", "text model identifier (default "+defaultTextModel+")")
	outlineCmd.Flags().String("outlines-dir", "outlines", "directory for outline files")

	rootCmd.AddCommand(outlineCmd)
}

func runOutline(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a presentation topic")
	}
	topic := strings.Join(args, " ")

	model, _ := cmd.Flags().GetString("model")
	cfg := outlineConfig(cmd, model)

	ctx := context.Background()
	client, err := newGenaiClient(ctx, cfg.AIConfig)
	if err != nil {
		return err
	}

	backend := &outline.GeminiBackend{Client: client, Model: cfg.Model}

	o, err := outline.Generate(ctx, backend, topic, cfg.NumSlides, os.Stdout)
	if err != nil {
		return err
	}

	path, err := outline.Write(cfg.OutlinesDir, outline.Slug(topic), o)
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s (%q, %d slides)\n", path, o.Title, len(o.Slides))
	return nil
}
