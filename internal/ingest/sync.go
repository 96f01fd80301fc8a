// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/tgweon/trag/internal/chunk"
	"github.com/tgweon/trag/internal/manifest"
	"github.com/tgweon/trag/internal/normalize"
	"github.com/tgweon/trag/pkg/types"
)

// timeFormat is the second-precision timestamp written to manifest records.
const timeFormat = "2006-01-02T15:04:05"

// FileError pairs a file name with the error that stopped its ingestion.
type FileError struct {
	Name string
	Err  string
}

// SyncResult holds the outcome of a directory sync.
type SyncResult struct {
	DataDir  string
	TotalPDF int
	Added    []string
	Skipped  []string
	Failed   []FileError
}

// HasFailures reports whether any file failed.
func (r SyncResult) HasFailures() bool {
	return len(r.Failed) > 0
}

// Ingestor drives document ingestion against one index handle and one
// manifest per pass.
type Ingestor struct {
	loader   normalize.PageLoader
	idx      VectorIndex
	splitter *chunk.Splitter
	cfg      types.IngestConfig
}

// NewIngestor wires an orchestrator from its collaborators.
func NewIngestor(loader normalize.PageLoader, idx VectorIndex, cfg types.IngestConfig) *Ingestor {
	return &Ingestor{
		loader:   loader,
		idx:      idx,
		splitter: chunk.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap),
		cfg:      cfg,
	}
}

// SyncDirectory ingests every new PDF under dir. Files are processed in
// name order for reproducible runs. One failing file is recorded and does
// not abort the batch; the index is persisted and the manifest saved once,
// after the loop.
func (ing *Ingestor) SyncDirectory(ctx context.Context, dir string, w io.Writer) (SyncResult, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return SyncResult{}, fmt.Errorf("creating data directory %s: %w", dir, err)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return SyncResult{}, fmt.Errorf("listing %s: %w", dir, err)
	}
	sort.Strings(paths)

	man := manifest.Load(ing.cfg.ManifestPath)

	result := SyncResult{DataDir: dir, TotalPDF: len(paths)}
	for _, p := range paths {
		name := filepath.Base(p)
		ingested, _, err := ing.ingestOne(ctx, man, p, w)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			result.Failed = append(result.Failed, FileError{Name: name, Err: err.Error()})
		case ingested:
			fmt.Fprintf(w, "added:   %s\n", name)
			result.Added = append(result.Added, name)
		default:
			fmt.Fprintf(w, "skipped: %s (already ingested)\n", name)
			result.Skipped = append(result.Skipped, name)
		}
	}

	if err := ing.idx.Persist(ctx); err != nil {
		fmt.Fprintf(w, "warning: index persist failed: %v\n", err)
	}
	if err := man.Save(ing.cfg.ManifestPath); err != nil {
		return result, fmt.Errorf("saving manifest: %w", err)
	}

	fmt.Fprintf(w, "\nSync summary: %d added, %d skipped, %d failed (total: %d)\n",
		len(result.Added), len(result.Skipped), len(result.Failed), result.TotalPDF)
	return result, nil
}

// IngestFile ingests a single PDF on demand, for user-triggered uploads.
// It reports whether the file was newly ingested and its identity.
func (ing *Ingestor) IngestFile(ctx context.Context, path string, w io.Writer) (bool, string, error) {
	man := manifest.Load(ing.cfg.ManifestPath)

	ingested, uid, err := ing.ingestOne(ctx, man, path, w)
	if err != nil {
		return false, "", err
	}
	if !ingested {
		return false, uid, nil
	}

	if err := ing.idx.Persist(ctx); err != nil {
		fmt.Fprintf(w, "warning: index persist failed: %v\n", err)
	}
	if err := man.Save(ing.cfg.ManifestPath); err != nil {
		return true, uid, fmt.Errorf("saving manifest: %w", err)
	}
	return true, uid, nil
}

// ingestOne runs one file through the pipeline: identity, manifest check,
// page extraction, chunking, embedding, manifest record.
func (ing *Ingestor) ingestOne(ctx context.Context, man *manifest.Manifest, path string, w io.Writer) (bool, string, error) {
	uid, err := normalize.FileID(path)
	if err != nil {
		return false, "", err
	}
	if man.Contains(uid) {
		return false, uid, nil
	}

	pages, err := ing.loader.LoadPages(ctx, path)
	if err != nil {
		return false, uid, err
	}

	base := filepath.Base(path)
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	var chunks []types.Chunk
	for _, page := range pages {
		for seq, piece := range ing.splitter.Split(page.Text) {
			chunks = append(chunks, types.Chunk{
				UID:     uid,
				Kind:    types.KindPDF,
				Source:  base,
				Path:    abs,
				Page:    page.Number,
				Seq:     seq,
				Content: piece,
			})
		}
	}

	if err := ing.idx.Add(ctx, chunks); err != nil {
		return false, uid, err
	}

	man.Record(uid, manifest.Record{
		Status:       manifest.StatusAdded,
		OriginalName: base,
		StoredPath:   abs,
		IngestedAt:   time.Now().Format(timeFormat),
	})

	if err := ing.writeMetadata(uid, base, abs, len(pages)); err != nil {
		fmt.Fprintf(w, "warning: metadata write failed for %s: %v\n", base, err)
	}

	return true, uid, nil
}

// writeMetadata records a YAML sidecar for an ingested document.
func (ing *Ingestor) writeMetadata(uid, name, path string, pages int) error {
	if ing.cfg.MetadataDir == "" {
		return nil
	}
	if err := os.MkdirAll(ing.cfg.MetadataDir, 0o755); err != nil {
		return fmt.Errorf("creating metadata directory: %w", err)
	}

	meta := types.DocumentMeta{
		ID:           uid,
		OriginalName: name,
		StoredPath:   path,
		Pages:        pages,
		IngestedAt:   time.Now().Format(timeFormat),
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(filepath.Join(ing.cfg.MetadataDir, uid+".yaml"), data, 0o644)
}

// ListEntry is one manifest record with its identity, for display.
type ListEntry struct {
	ID string
	manifest.Record
}

// ListIngested returns all manifest records, newest first.
func ListIngested(manifestPath string) []ListEntry {
	man := manifest.Load(manifestPath)

	entries := make([]ListEntry, 0, man.Len())
	for id, rec := range man.Items {
		entries = append(entries, ListEntry{ID: id, Record: rec})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IngestedAt != entries[j].IngestedAt {
			return entries[i].IngestedAt > entries[j].IngestedAt
		}
		return entries[i].ID < entries[j].ID
	})
	return entries
}
