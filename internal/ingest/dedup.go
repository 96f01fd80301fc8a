// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest drives incremental ingestion: it decides which candidates
// are new, chunks and embeds them, and records the outcome in the manifest
// so nothing is ever embedded twice.
package ingest

import (
	"context"

	"github.com/tgweon/trag/internal/index"
	"github.com/tgweon/trag/internal/manifest"
	"github.com/tgweon/trag/internal/normalize"
	"github.com/tgweon/trag/pkg/types"
)

// VectorIndex is the orchestrator's view of the vector store.
type VectorIndex interface {
	Add(ctx context.Context, chunks []types.Chunk) error
	Nearest(ctx context.Context, text string) (*index.Match, error)
	Persist(ctx context.Context) error
}

// Decision is the outcome of the deduplication policy for one candidate.
type Decision int

const (
	// DecisionIngest means the candidate is new and should be embedded.
	DecisionIngest Decision = iota

	// DecisionKnown means the identity already has a manifest record.
	DecisionKnown

	// DecisionUnusable means no representative sentence could be
	// extracted. The candidate is dropped without a manifest record, so a
	// later poll retries it.
	DecisionUnusable

	// DecisionSimilar means an existing index entry is semantically too
	// close. Recorded as skipped_similar, permanently blacklisting the
	// identity.
	DecisionSimilar
)

func (d Decision) String() string {
	switch d {
	case DecisionIngest:
		return "ingest"
	case DecisionKnown:
		return "known"
	case DecisionUnusable:
		return "unusable"
	case DecisionSimilar:
		return "similar"
	}
	return "unknown"
}

// DecideNews runs the news deduplication policy against a loaded manifest.
// It returns the candidate's identity, its representative sentence (empty
// unless usable), and the decision. The manifest check comes first, so a
// blacklisted identity never reaches the similarity probe.
//
// probeErr reports a failed similarity query. The failure downgrades to
// "not similar" — an index fault must not block ingestion — but callers
// should log it.
func DecideNews(ctx context.Context, man *manifest.Manifest, idx VectorIndex, item types.NewsItem, threshold float64) (uid, sentence string, d Decision, probeErr error) {
	uid = normalize.StableID(item.Title, item.Link)
	if man.Contains(uid) {
		return uid, "", DecisionKnown, nil
	}

	sentence = normalize.RepresentativeSentence(item.Title, item.Summary)
	if sentence == "" {
		return uid, "", DecisionUnusable, nil
	}

	match, err := idx.Nearest(ctx, sentence)
	if err != nil {
		return uid, sentence, DecisionIngest, err
	}
	if match != nil && match.Distance < threshold {
		return uid, sentence, DecisionSimilar, nil
	}
	return uid, sentence, DecisionIngest, nil
}
