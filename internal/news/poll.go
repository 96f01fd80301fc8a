// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package news

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/tgweon/trag/internal/ingest"
	"github.com/tgweon/trag/internal/manifest"
	"github.com/tgweon/trag/pkg/types"
)

// minPollInterval is the floor for the tick interval, guarding against a
// misconfigured value hot-looping against the feed endpoint.
const minPollInterval = 30 * time.Second

const timeFormat = "2006-01-02T15:04:05"

// feedSource is the source tag stored on news chunks and snapshots.
const feedSource = "google_news_rss"

// fetchFunc matches Fetch; tests substitute it.
type fetchFunc func(ctx context.Context, client *http.Client, keyword string, cfg types.NewsConfig) ([]types.NewsItem, error)

// TickResult holds per-tick counters surfaced to logs and the CLI.
type TickResult struct {
	Added   int
	Skipped int
	Errors  int
}

// Poller periodically fetches news candidates and ingests the new ones.
type Poller struct {
	idx    ingest.VectorIndex
	cfg    types.NewsConfig
	client *http.Client
	logger *zap.Logger
	fetch  fetchFunc
}

// NewPoller wires a poller against an open index handle.
func NewPoller(idx ingest.VectorIndex, cfg types.NewsConfig, logger *zap.Logger) *Poller {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		idx:    idx,
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger,
		fetch:  Fetch,
	}
}

// RunOnce executes one poll tick: fetch per keyword, deduplicate, one
// batched index add, one manifest save. A fetch failure for one keyword is
// counted and the others continue; a failed batched add or manifest save
// aborts the tick with the manifest unsaved, so nothing is blacklisted
// without being embedded.
func (p *Poller) RunOnce(ctx context.Context) (TickResult, error) {
	var res TickResult
	if !p.cfg.Enabled {
		return res, nil
	}

	man := manifest.Load(p.cfg.ManifestPath)
	now := time.Now().Format(timeFormat)

	var added []types.Chunk
	for _, kw := range p.cfg.Keywords {
		items, err := p.fetch(ctx, p.client, kw, p.cfg)
		if err != nil {
			p.logger.Warn("fetch failed", zap.String("keyword", kw), zap.Error(err))
			res.Errors++
			continue
		}
		p.logger.Info("fetched", zap.String("keyword", kw), zap.Int("items", len(items)))

		for _, item := range items {
			uid, sentence, decision, probeErr := ingest.DecideNews(ctx, man, p.idx, item, p.cfg.DupDistanceThreshold)
			if probeErr != nil {
				p.logger.Warn("similarity probe failed", zap.String("uid", uid), zap.Error(probeErr))
			}

			switch decision {
			case ingest.DecisionKnown, ingest.DecisionUnusable:
				res.Skipped++

			case ingest.DecisionSimilar:
				man.Record(uid, manifest.Record{
					Status:    manifest.StatusSkippedSimilar,
					Keyword:   kw,
					Title:     item.Title,
					Link:      item.Link,
					Published: item.Published,
					SeenAt:    now,
				})
				res.Skipped++

			case ingest.DecisionIngest:
				added = append(added, types.Chunk{
					UID:       uid,
					Kind:      types.KindNews,
					Source:    feedSource,
					Path:      item.Link,
					Keyword:   kw,
					Title:     item.Title,
					Published: item.Published,
					Content:   sentence,
				})
				man.Record(uid, manifest.Record{
					Status:     manifest.StatusAdded,
					Keyword:    kw,
					Title:      item.Title,
					Link:       item.Link,
					Published:  item.Published,
					IngestedAt: now,
				})
				p.writeSnapshot(uid, sentence, item)
				res.Added++
			}
		}
	}

	if len(added) > 0 {
		if err := p.idx.Add(ctx, added); err != nil {
			return res, fmt.Errorf("adding %d news chunks: %w", len(added), err)
		}
		if err := p.idx.Persist(ctx); err != nil {
			p.logger.Warn("index persist failed", zap.Error(err))
		}
	}

	if err := man.Save(p.cfg.ManifestPath); err != nil {
		return res, fmt.Errorf("saving news manifest: %w", err)
	}
	return res, nil
}

// Run polls forever, one tick per interval. The interval is floor-clamped
// to 30s. A failed tick is logged and the loop continues; only context
// cancellation stops it.
func (p *Poller) Run(ctx context.Context) error {
	interval := clampInterval(p.cfg.PollInterval)
	p.logger.Info("poller started",
		zap.Int("pid", os.Getpid()),
		zap.Duration("interval", interval),
		zap.Int("keywords", len(p.cfg.Keywords)),
	)

	for tick := 1; ; tick++ {
		res, err := p.RunOnce(ctx)
		if err != nil {
			p.logger.Error("tick failed", zap.Int("tick", tick), zap.Error(err))
		} else {
			p.logger.Info("tick complete",
				zap.Int("tick", tick),
				zap.Int("added", res.Added),
				zap.Int("skipped", res.Skipped),
				zap.Int("errors", res.Errors),
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// clampInterval enforces the polling floor.
func clampInterval(d time.Duration) time.Duration {
	if d < minPollInterval {
		return minPollInterval
	}
	return d
}

// writeSnapshot stores one added news item as a plain-text file named by
// its identity, so snapshots are never duplicated. Best effort: snapshot
// failures are logged and the item still counts as added.
func (p *Poller) writeSnapshot(uid, sentence string, item types.NewsItem) {
	if p.cfg.TextDir == "" {
		return
	}
	if err := os.MkdirAll(p.cfg.TextDir, 0o755); err != nil {
		p.logger.Warn("snapshot directory", zap.Error(err))
		return
	}

	path := filepath.Join(p.cfg.TextDir, "news_"+uid+".txt")
	if _, err := os.Stat(path); err == nil {
		return
	}

	content := fmt.Sprintf("keyword: %s\ntitle: %s\npublished: %s\nurl: %s\n\n%s\n",
		item.Keyword, item.Title, item.Published, item.Link, sentence)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		p.logger.Warn("snapshot write failed", zap.String("uid", uid), zap.Error(err))
	}
}
