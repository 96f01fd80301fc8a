package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tgweon/trag/internal/index"
	"github.com/tgweon/trag/internal/ingest"
	"github.com/tgweon/trag/internal/normalize"
)

var syncCmd = &cobra.Command{
	Use:   "sync [dir]",
	Args:  cobra.MaximumNArgs(1),
	Short: "Ingest all new PDFs from the data directory",
	Long: `Sync scans the data directory for PDF files and ingests every file whose
content has not been seen before. Renamed copies of known files are skipped.
A failing file is reported and does not stop the rest of the batch.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().String("data-dir", "", "directory scanned for PDFs (default from config)")

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.Ingest.DataDir = dir
	}
	if len(args) == 1 {
		cfg.Ingest.DataDir = args[0]
	}

	ctx := cmd.Context()
	idx, err := index.OpenWithEmbedding(ctx, cfg.Index, cfg.Embedding)
	if err != nil {
		return err
	}
	defer idx.Close()

	ing := ingest.NewIngestor(normalize.NewPdftotext(), idx, cfg.Ingest)
	result, err := ing.SyncDirectory(ctx, cfg.Ingest.DataDir, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed ingestion", len(result.Failed))
	}
	return nil
}
