// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/tgweon/trag/pkg/types"
)

const defaultUserAgent = "trag/0.1"

func strDefault(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

func intDefault(key string, fallback int) int {
	if v := viper.GetInt(key); v != 0 {
		return v
	}
	return fallback
}

func floatDefault(key string, fallback float64) float64 {
	if v := viper.GetFloat64(key); v != 0 {
		return v
	}
	return fallback
}

func durationDefault(key string, fallback time.Duration) time.Duration {
	if v := viper.GetDuration(key); v != 0 {
		return v
	}
	return fallback
}

// pipelineConfig assembles the full stage configuration from the config
// file, environment, and built-in defaults. Manifest paths and supporting
// directories default to locations inside or next to the index directory.
func pipelineConfig() types.PipelineConfig {
	indexPath := strDefault("index.path", "index")

	cfg := types.PipelineConfig{
		Embedding: types.EmbeddingConfig{
			BaseURL:       strDefault("embedding.base_url", "http://localhost:11434/v1"),
			APIKey:        secretDefault("embedding-api-key", viper.GetString("embedding.api_key")),
			Model:         strDefault("embedding.model", "qwen3-embedding"),
			FallbackModel: strDefault("embedding.fallback_model", "nomic-embed-text"),
		},
		Index: types.IndexConfig{
			Path:       indexPath,
			Collection: strDefault("index.collection", "rag_collection"),
		},
		Ingest: types.IngestConfig{
			DataDir:      strDefault("ingest.data_dir", "data"),
			ManifestPath: strDefault("ingest.manifest_path", filepath.Join(indexPath, "ingested_manifest.json")),
			MetadataDir:  strDefault("ingest.metadata_dir", filepath.Join(indexPath, "metadata")),
			ChunkSize:    intDefault("ingest.chunk_size", 1000),
			ChunkOverlap: intDefault("ingest.chunk_overlap", 100),
		},
		News: types.NewsConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   durationDefault("news.timeout", 20*time.Second),
				UserAgent: strDefault("news.user_agent", defaultUserAgent),
			},
			Enabled:              viper.GetBool("news.enabled"),
			Keywords:             viper.GetStringSlice("news.keywords"),
			PollInterval:         durationDefault("news.poll_interval", 10*time.Minute),
			HL:                   strDefault("news.hl", "ko"),
			GL:                   strDefault("news.gl", "KR"),
			CEID:                 strDefault("news.ceid", "KR:ko"),
			MaxItemsPerKeyword:   intDefault("news.max_items_per_keyword", 20),
			DupDistanceThreshold: floatDefault("news.dup_distance_threshold", 0.15),
			ManifestPath:         strDefault("news.manifest_path", filepath.Join(indexPath, "news_manifest.json")),
			TextDir:              strDefault("news.text_dir", "news_texts"),
			LogPath:              strDefault("news.log_path", filepath.Join("logs", "news_poller.log")),
			PIDPath:              strDefault("news.pid_path", filepath.Join("run", "news_poller.pid")),
		},
	}
	return cfg
}
