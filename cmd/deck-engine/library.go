// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deck-engine/internal/library"
	"github.com/pdiddy/deck-engine/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Query the deck library",
	Long: `Library queries the record of past generation runs: which decks were
built, for which topics, and where the .pptx files live.`,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded decks, newest first",
	RunE:  runLibraryList,
}

var librarySearchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Full-text search decks by topic and title",
	RunE:  runLibrarySearch,
}

var libraryShowCmd = &cobra.Command{
	Use:   "show [deck-id]",
	Short: "Show the full record for one deck",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryShow,
}

func init() {
	libraryCmd.PersistentFlags().String("library-dir", "library", "directory for the deck library database")
	libraryCmd.PersistentFlags().Bool("json", false, "output JSON instead of a table")
	libraryListCmd.Flags().Int("limit", 0, "maximum number of decks to list")
	librarySearchCmd.Flags().Int("limit", 0, "maximum number of decks to return")

	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(librarySearchCmd)
	libraryCmd.AddCommand(libraryShowCmd)
	rootCmd.AddCommand(libraryCmd)
}

func openStore(cmd *cobra.Command) (*library.Store, error) {
	return library.NewStore(libraryConfig(cmd))
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	decks, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatDeckOutput(decks, jsonOutput)
}

func runLibrarySearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	decks, err := store.Search(context.Background(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatDeckOutput(decks, jsonOutput)
}

func runLibraryShow(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	fmt.Printf("ID:       %s\n", rec.ID)
	fmt.Printf("Topic:    %s\n", rec.Topic)
	fmt.Printf("Title:    %s\n", rec.Title)
	fmt.Printf("Slides:   %d\n", rec.Slides)
	fmt.Printf("Images:   %d\n", rec.Images)
	fmt.Printf("Path:     %s\n", rec.Path)
	fmt.Printf("Created:  %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	return nil
}

func formatDeckOutput(decks []types.DeckRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(decks)
	}

	if len(decks) == 0 {
		fmt.Println("No decks found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-24s  %-35s  %-6s  %-6s  %s\n",
		"ID", "Title", "Slides", "Images", "Created")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 92))

	for _, d := range decks {
		id := d.ID
		if len(id) > 24 {
			id = id[:21] + "..."
		}
		title := d.Title
		if len(title) > 35 {
			title = title[:32] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-24s  %-35s  %-6d  %-6d  %s\n",
			id, title, d.Slides, d.Images, d.CreatedAt.Format("2006-01-02"))
	}

	fmt.Fprintf(os.Stdout, "\n%d decks\n", len(decks))
	return nil
}
