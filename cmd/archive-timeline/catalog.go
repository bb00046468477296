// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/archive-timeline/internal/catalog"
	"github.com/pdiddy/archive-timeline/internal/pipeline"
	"github.com/pdiddy/archive-timeline/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Load timeline events into SQLite and query them",
	Long: `Catalog keeps the events produced by scrape in a local SQLite database
that the timeline UI pages through. Use subcommands to load an events file,
list events, or count events per era.`,
}

// --- load subcommand ---

var catalogLoadCmd = &cobra.Command{
	Use:   "load [events.json]",
	Short: "Replace the catalog contents with an events file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogLoad,
}

func runCatalogLoad(cmd *cobra.Command, args []string) error {
	path := pipeline.DefaultOutputFile
	if len(args) > 0 {
		path = args[0]
	}

	events, err := catalog.ReadEvents(path)
	if err != nil {
		return err
	}

	store, err := catalog.Open(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Load(context.Background(), events)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "loaded %d events from %s\n", n, path)
	return nil
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List catalogued events in timeline order",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := catalog.Open(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	opts := listOptsFromFlags(cmd, args)
	entries, err := store.List(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatListOutput(cmd.OutOrStdout(), entries, jsonOutput)
}

func formatListOutput(w io.Writer, entries []catalog.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-6s  %-4s  %-50s  %s\n", "Pos", "Era", "Year", "Title", "Image")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, e := range entries {
		title := e.Title
		if r := []rune(title); len(r) > 50 {
			title = string(r[:47]) + "..."
		}
		fmt.Fprintf(w, "%-4d  %-6s  %-4d  %-50s  %s\n", e.Position, e.Era, e.Year, title, e.ImageURL)
	}
	fmt.Fprintf(w, "\n%d events\n", len(entries))
	return nil
}

// --- eras subcommand ---

var catalogErasCmd = &cobra.Command{
	Use:   "eras",
	Short: "Count catalogued events per era",
	Args:  cobra.NoArgs,
	RunE:  runCatalogEras,
}

func runCatalogEras(cmd *cobra.Command, args []string) error {
	store, err := catalog.Open(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	eras, err := store.Eras(context.Background())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(eras)
	}
	for _, ec := range eras {
		fmt.Fprintf(w, "%-8s %d\n", ec.Era, ec.Count)
	}
	return nil
}

// --- shared helpers ---

func catalogConfig() types.CatalogConfig {
	return types.CatalogConfig{
		Dir:        viper.GetString("catalog.dir"),
		MaxResults: viper.GetInt("catalog.max_results"),
	}
}

func listOptsFromFlags(cmd *cobra.Command, args []string) catalog.QueryOptions {
	query, _ := cmd.Flags().GetString("query")
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}
	eraLabel, _ := cmd.Flags().GetString("era")
	from, _ := cmd.Flags().GetInt("from")
	to, _ := cmd.Flags().GetInt("to")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	return catalog.QueryOptions{
		Era:      eraLabel,
		YearFrom: from,
		YearTo:   to,
		Query:    query,
		Limit:    limit,
		Offset:   offset,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("catalog-dir", "catalog", "directory holding timeline.db")
	catalogCmd.PersistentFlags().Int("max-results", 25, "default page size for listings")
	viper.BindPFlag("catalog.dir", catalogCmd.PersistentFlags().Lookup("catalog-dir"))
	viper.BindPFlag("catalog.max_results", catalogCmd.PersistentFlags().Lookup("max-results"))

	// List flags.
	catalogListCmd.Flags().String("query", "", "match title or description")
	catalogListCmd.Flags().String("era", "", "filter by era, e.g. 1920s")
	catalogListCmd.Flags().Int("from", 0, "earliest year")
	catalogListCmd.Flags().Int("to", 0, "latest year")
	catalogListCmd.Flags().Int("limit", 0, "page size (0 = use default)")
	catalogListCmd.Flags().Int("offset", 0, "events to skip")
	catalogListCmd.Flags().Bool("json", false, "output events as JSON")

	// Eras flags.
	catalogErasCmd.Flags().Bool("json", false, "output counts as JSON")

	// Wire subcommands.
	catalogCmd.AddCommand(catalogLoadCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogErasCmd)

	rootCmd.AddCommand(catalogCmd)
}
