package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deck-engine/internal/deck"
	"github.com/pdiddy/deck-engine/internal/imagegen"
	"github.com/pdiddy/deck-engine/internal/outline"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble [outline.yaml]",
	Short: "Assemble an outline and its images into a .pptx deck",
	Long: `Assemble renders an outline file into a PowerPoint deck: a title slide
followed by one content slide per outline entry. Images generated by the
images stage are read from the assets directory; slides without an asset
render without a picture.`,
	RunE: runAssemble,
}

func init() {
	assembleCmd.Flags().String("assets-dir", "assets", "base directory for generated images")
	assembleCmd.Flags().String("decks-dir", "decks", "directory for assembled decks")
	assembleCmd.Flags().String("output", "", "output .pptx path (default <decks-dir>/<outline>.pptx)")

	rootCmd.AddCommand(assembleCmd)
}

func runAssemble(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide the outline file to assemble")
	}
	outlinePath := args[0]
	slug := strings.TrimSuffix(filepath.Base(outlinePath), ".yaml")

	assetsDir := stringSetting(cmd, "assets-dir", "images.assets_dir")
	cfg := assemblyConfig(cmd)
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = filepath.Join(cfg.DecksDir, slug+".pptx")
	}

	o, err := outline.Read(outlinePath)
	if err != nil {
		return err
	}

	images, err := imagegen.ReadAssets(assetsDir, slug)
	if err != nil {
		return err
	}

	return deck.Assemble(o, images, output, os.Stdout)
}
