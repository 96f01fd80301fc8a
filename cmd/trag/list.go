package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tgweon/trag/internal/ingest"
	"github.com/tgweon/trag/internal/manifest"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List manifest records, newest first",
	Long: `List prints what the ingestion manifests contain. By default it shows
ingested documents; --news switches to the news manifest, which also holds
skipped_similar records for blacklisted near-duplicates.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().Bool("news", false, "list the news manifest instead of documents")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()

	path := cfg.Ingest.ManifestPath
	if showNews, _ := cmd.Flags().GetBool("news"); showNews {
		path = cfg.News.ManifestPath
	}

	entries := ingest.ListIngested(path)
	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "No records.")
		return nil
	}

	for _, e := range entries {
		switch {
		case e.OriginalName != "":
			fmt.Fprintf(os.Stdout, "%s  %s  %s  %s\n", e.IngestedAt, e.Status, shortID(e.ID), e.OriginalName)
		case e.Status == manifest.StatusSkippedSimilar:
			fmt.Fprintf(os.Stdout, "%s  %s  %s  [%s] %s\n", e.SeenAt, e.Status, shortID(e.ID), e.Keyword, e.Title)
		default:
			fmt.Fprintf(os.Stdout, "%s  %s  %s  [%s] %s\n", e.IngestedAt, e.Status, shortID(e.ID), e.Keyword, e.Title)
		}
	}
	fmt.Fprintf(os.Stdout, "\n%d record(s)\n", len(entries))
	return nil
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
