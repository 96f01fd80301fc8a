// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index wraps the persisted embedding store. Chunks and their
// vectors live in a local SQLite database; similarity queries scan the
// collection computing cosine distance.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tgweon/trag/internal/embed"
	"github.com/tgweon/trag/pkg/types"
)

const dbFile = "vectors.db"

// Match is the nearest entry returned by a similarity query. Distance is
// cosine distance: smaller means more similar.
type Match struct {
	Chunk    types.Chunk
	Distance float64
}

// Index is a handle on the persisted vector store. Open it once per
// orchestration pass and reuse it across the batch.
type Index struct {
	db         *sql.DB
	embedder   embed.Embedder
	collection string
}

// Open creates the index directory and database on first run and returns a
// handle bound to the configured collection. The embedder must already be
// resolved (see embed.NewWithFallback).
func Open(cfg types.IndexConfig, embedder embed.Embedder) (*Index, error) {
	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Path, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}

	collection := cfg.Collection
	if collection == "" {
		collection = "rag_collection"
	}

	ix := &Index{db: db, embedder: embedder, collection: collection}
	if err := ix.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating index schema: %w", err)
	}
	return ix, nil
}

// OpenWithEmbedding resolves the embedding model (primary with fallback)
// and opens the index in one step. If no embedding model is reachable the
// error is fatal; nothing downstream can ingest or query without one.
func OpenWithEmbedding(ctx context.Context, indexCfg types.IndexConfig, embCfg types.EmbeddingConfig) (*Index, error) {
	embedder, err := embed.NewWithFallback(ctx, embCfg)
	if err != nil {
		return nil, err
	}
	return Open(indexCfg, embedder)
}

// Close releases the database connection.
func (ix *Index) Close() error {
	return ix.db.Close()
}

func (ix *Index) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS chunks (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			collection TEXT NOT NULL,
			uid TEXT NOT NULL,
			kind TEXT NOT NULL,
			source TEXT,
			path TEXT,
			page INTEGER,
			seq INTEGER,
			keyword TEXT,
			title TEXT,
			published TEXT,
			content TEXT NOT NULL,
			embedding BLOB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_collection ON chunks(collection)`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_uid ON chunks(uid)`,
	}
	for _, stmt := range statements {
		if _, err := ix.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Add embeds each chunk and appends it to the collection in a single
// transaction. Calling with no chunks is a no-op.
func (ix *Index) Add(ctx context.Context, chunks []types.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chunks (collection, uid, kind, source, path, page, seq, keyword, title, published, content, embedding)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range chunks {
		vec, err := ix.embedder.Embed(ctx, c.Content)
		if err != nil {
			return fmt.Errorf("embedding chunk %s/%d: %w", c.UID, c.Seq, err)
		}
		_, err = stmt.ExecContext(ctx,
			ix.collection, c.UID, string(c.Kind), c.Source, c.Path,
			c.Page, c.Seq, c.Keyword, c.Title, c.Published,
			c.Content, vectorToBytes(vec),
		)
		if err != nil {
			return fmt.Errorf("inserting chunk %s/%d: %w", c.UID, c.Seq, err)
		}
	}

	return tx.Commit()
}

// Nearest embeds text and returns the single closest entry in the
// collection, or nil if the collection is empty.
func (ix *Index) Nearest(ctx context.Context, text string) (*Match, error) {
	queryVec, err := ix.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	rows, err := ix.db.QueryContext(ctx,
		`SELECT uid, kind, source, path, page, seq, keyword, title, published, content, embedding
		 FROM chunks WHERE collection = ?`, ix.collection)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var best *Match
	for rows.Next() {
		var (
			c    types.Chunk
			kind string
			blob []byte
		)
		if err := rows.Scan(&c.UID, &kind, &c.Source, &c.Path, &c.Page, &c.Seq,
			&c.Keyword, &c.Title, &c.Published, &c.Content, &blob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		c.Kind = types.ChunkKind(kind)

		vec, err := bytesToVector(blob)
		if err != nil || len(vec) != len(queryVec) {
			// Rows embedded under a different model dimension cannot be
			// compared against this query.
			continue
		}

		dist := cosineDistance(queryVec, vec)
		if best == nil || dist < best.Distance {
			best = &Match{Chunk: c, Distance: dist}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return best, nil
}

// Count returns the number of entries in the collection.
func (ix *Index) Count(ctx context.Context) (int, error) {
	var n int
	err := ix.db.QueryRowContext(ctx,
		`SELECT count(*) FROM chunks WHERE collection = ?`, ix.collection).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}

// Persist flushes the write-ahead log into the main database file. The
// flush is best effort: SQLite checkpoints on its own, so a failure here
// only delays durability.
func (ix *Index) Persist(ctx context.Context) error {
	if _, err := ix.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("checkpointing index: %w", err)
	}
	return nil
}
