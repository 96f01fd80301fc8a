// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared between pipeline stages.
package types

// ChunkKind distinguishes the origin of an indexed chunk.
type ChunkKind string

const (
	// KindPDF marks a chunk sliced from a PDF page.
	KindPDF ChunkKind = "pdf"

	// KindNews marks a chunk holding a news representative sentence.
	KindNews ChunkKind = "news"
)

// Chunk is a bounded slice of normalized text stored with metadata in the
// vector index. Chunks are write-once: re-ingestion of the same UID never
// happens because the manifest blocks it.
type Chunk struct {
	// UID is the identity hash of the document or news item the chunk
	// belongs to.
	UID string `json:"uid" yaml:"uid"`

	Kind ChunkKind `json:"kind" yaml:"kind"`

	// Source is the original file name for PDFs, or the feed name for news.
	Source string `json:"source" yaml:"source"`

	// Path is the absolute file path for PDFs, or the article URL for news.
	Path string `json:"path" yaml:"path"`

	// Page is the 1-based PDF page the chunk was sliced from. Zero for news.
	Page int `json:"page,omitempty" yaml:"page,omitempty"`

	// Seq is the chunk's position within its page or item.
	Seq int `json:"seq" yaml:"seq"`

	// Keyword, Title, and Published carry news metadata. Empty for PDFs.
	Keyword   string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Published string `json:"published,omitempty" yaml:"published,omitempty"`

	// Content is the chunk text that was embedded.
	Content string `json:"content" yaml:"content"`
}

// NewsItem is one entry fetched from a news feed, not yet deduplicated.
type NewsItem struct {
	Keyword   string `json:"keyword" yaml:"keyword"`
	Title     string `json:"title" yaml:"title"`
	Link      string `json:"link" yaml:"link"`
	Published string `json:"published" yaml:"published"`
	Summary   string `json:"summary" yaml:"summary"`
}

// DocumentMeta is the YAML metadata record written next to the index for
// each ingested document.
type DocumentMeta struct {
	ID           string `json:"id" yaml:"id"`
	OriginalName string `json:"original_name" yaml:"original_name"`
	StoredPath   string `json:"stored_path" yaml:"stored_path"`
	Pages        int    `json:"pages" yaml:"pages"`
	IngestedAt   string `json:"ingested_at" yaml:"ingested_at"`
}
