// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest persists the record of every identity the pipeline has
// ever processed. The manifest is the source of truth for "already
// ingested": an identity recorded as added is never embedded again.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// currentVersion is the manifest file format version.
const currentVersion = 1

// Record statuses.
const (
	// StatusAdded marks an identity whose content was embedded into the index.
	StatusAdded = "added"

	// StatusSkippedSimilar marks an identity rejected by the semantic
	// similarity probe. It permanently blacklists the identity.
	StatusSkippedSimilar = "skipped_similar"
)

// Record is the ingestion outcome persisted per identity. Records are
// created once and never mutated or deleted afterwards. Optional fields
// stay empty depending on the candidate kind; unknown fields in the file
// are ignored on load so the format stays forward-readable.
type Record struct {
	Status string `json:"status"`

	// Document fields.
	OriginalName string `json:"original_name,omitempty"`
	StoredPath   string `json:"stored_path,omitempty"`

	// News fields.
	Keyword   string `json:"keyword,omitempty"`
	Title     string `json:"title,omitempty"`
	Link      string `json:"link,omitempty"`
	Published string `json:"published,omitempty"`

	// Timestamps, ISO-8601 with second precision.
	IngestedAt string `json:"ingested_at,omitempty"`
	SeenAt     string `json:"seen_at,omitempty"`
}

// Manifest maps identity hashes to their ingestion records. It is loaded
// fully into memory per orchestration pass and written back as a whole;
// mutations between Load and Save are invisible to other passes. Callers
// must serialize concurrent passes themselves.
type Manifest struct {
	Version int               `json:"version"`
	Items   map[string]Record `json:"items"`
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{Version: currentVersion, Items: map[string]Record{}}
}

// Load reads the manifest at path. A missing, unreadable, or corrupt file
// yields a fresh empty manifest rather than an error: losing the manifest
// costs re-embedding work, while crashing would block the whole pipeline.
func Load(path string) *Manifest {
	data, err := os.ReadFile(path)
	if err != nil {
		return New()
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return New()
	}
	if m.Version == 0 {
		m.Version = currentVersion
	}
	if m.Items == nil {
		m.Items = map[string]Record{}
	}
	return &m
}

// Save writes the manifest to path, creating parent directories as needed.
// The write goes through a temp file renamed into place so a crash never
// leaves a half-written manifest behind.
func (m *Manifest) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating manifest directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".manifest-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp manifest: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing manifest: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp manifest: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming manifest into place: %w", err)
	}
	return nil
}

// Contains reports whether the identity has a record.
func (m *Manifest) Contains(id string) bool {
	_, ok := m.Items[id]
	return ok
}

// Record stores the record for an identity.
func (m *Manifest) Record(id string, rec Record) {
	m.Items[id] = rec
}

// Len returns the number of recorded identities.
func (m *Manifest) Len() int {
	return len(m.Items)
}
