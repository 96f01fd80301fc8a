package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "trag/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EmbeddingConfig holds settings for the embedding provider. The provider
// speaks the OpenAI embeddings API; with the default base URL this is a
// local Ollama instance.
type EmbeddingConfig struct {
	// BaseURL is the OpenAI-compatible API base (default "http://localhost:11434/v1").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey authenticates against the API. Ollama ignores it; hosted
	// providers require it.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Model is the preferred embedding model (default "qwen3-embedding").
	Model string `json:"model" yaml:"model"`

	// FallbackModel is used when Model is unavailable (default "nomic-embed-text").
	FallbackModel string `json:"fallback_model" yaml:"fallback_model"`
}

// IndexConfig holds settings for the persisted vector index.
type IndexConfig struct {
	// Path is the directory holding the index database. Created on first run.
	Path string `json:"path" yaml:"path"`

	// Collection names the chunk collection inside the index (default "rag_collection").
	Collection string `json:"collection" yaml:"collection"`
}

// IngestConfig holds settings for document ingestion.
type IngestConfig struct {
	// DataDir is the directory scanned for PDF files (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// ManifestPath is the document ingestion manifest file. Defaults to
	// ingested_manifest.json inside the index directory.
	ManifestPath string `json:"manifest_path" yaml:"manifest_path"`

	// MetadataDir receives one YAML metadata record per ingested document.
	MetadataDir string `json:"metadata_dir" yaml:"metadata_dir"`

	// ChunkSize is the maximum chunk length in runes (default 1000).
	ChunkSize int `json:"chunk_size" yaml:"chunk_size"`

	// ChunkOverlap is the overlap between consecutive chunks in runes (default 100).
	ChunkOverlap int `json:"chunk_overlap" yaml:"chunk_overlap"`
}

// NewsConfig holds settings for the news polling service.
type NewsConfig struct {
	HTTPConfig `yaml:",inline"`

	// Enabled controls whether poll ticks do any work.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Keywords are the search terms polled against the news feed.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// PollInterval is the delay between ticks. Clamped to a 30s floor.
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval"`

	// HL, GL, and CEID are the Google News RSS locale parameters.
	HL   string `json:"hl" yaml:"hl"`
	GL   string `json:"gl" yaml:"gl"`
	CEID string `json:"ceid" yaml:"ceid"`

	// MaxItemsPerKeyword caps entries taken from each feed (default 20).
	MaxItemsPerKeyword int `json:"max_items_per_keyword" yaml:"max_items_per_keyword"`

	// DupDistanceThreshold is the nearest-neighbour distance below which a
	// candidate counts as a duplicate of existing content (default 0.15).
	DupDistanceThreshold float64 `json:"dup_distance_threshold" yaml:"dup_distance_threshold"`

	// ManifestPath is the news ingestion manifest file. Defaults to
	// news_manifest.json inside the index directory.
	ManifestPath string `json:"manifest_path" yaml:"manifest_path"`

	// TextDir receives one plain-text snapshot file per added news item.
	TextDir string `json:"text_dir" yaml:"text_dir"`

	// LogPath is the append-only poller log file.
	LogPath string `json:"log_path" yaml:"log_path"`

	// PIDPath is the poller PID file used for the single-instance guard.
	PIDPath string `json:"pid_path" yaml:"pid_path"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Embedding EmbeddingConfig `json:"embedding" yaml:"embedding"`
	Index     IndexConfig     `json:"index" yaml:"index"`
	Ingest    IngestConfig    `json:"ingest" yaml:"ingest"`
	News      NewsConfig      `json:"news" yaml:"news"`
}
