package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tgweon/trag/internal/index"
	"github.com/tgweon/trag/internal/ingest"
	"github.com/tgweon/trag/internal/normalize"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Ingest one or more PDF files by path",
	Long: `Ingest adds the named PDF files to the index. A file whose content is
already indexed is reported as a duplicate and skipped; the command still
succeeds. Use sync to process the whole data directory instead.`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more PDF paths")
	}

	cfg := pipelineConfig()
	ctx := cmd.Context()
	idx, err := index.OpenWithEmbedding(ctx, cfg.Index, cfg.Embedding)
	if err != nil {
		return err
	}
	defer idx.Close()

	ing := ingest.NewIngestor(normalize.NewPdftotext(), idx, cfg.Ingest)

	failed := 0
	for _, path := range args {
		ingested, uid, err := ing.IngestFile(ctx, path, os.Stdout)
		switch {
		case err != nil:
			fmt.Fprintf(os.Stdout, "failed:  %s (%v)\n", path, err)
			failed++
		case ingested:
			fmt.Fprintf(os.Stdout, "added:   %s (%s)\n", path, uid)
		default:
			fmt.Fprintf(os.Stdout, "skipped: %s (already ingested as %s)\n", path, uid)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed ingestion", failed)
	}
	return nil
}
