// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package news polls the Google News RSS endpoint for fresh articles and
// runs them through the deduplication pipeline on a fixed interval.
package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tgweon/trag/internal/httputil"
	"github.com/tgweon/trag/pkg/types"
)

// rssBase is the Google News RSS search endpoint. Declared as a var so
// tests can substitute an httptest server.
var rssBase = "https://news.google.com/rss/search"

// FeedURL builds the RSS search URL for a query and locale.
func FeedURL(query, hl, gl, ceid string) string {
	params := url.Values{
		"q":    {query},
		"hl":   {hl},
		"gl":   {gl},
		"ceid": {ceid},
	}
	return rssBase + "?" + params.Encode()
}

// RSS feed XML structures.
type rssFeed struct {
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
}

// Fetch retrieves up to MaxItemsPerKeyword entries for one keyword. The
// request is bounded by the client timeout; a non-2xx status is an error.
func Fetch(ctx context.Context, client *http.Client, keyword string, cfg types.NewsConfig) ([]types.NewsItem, error) {
	reqURL := FeedURL(keyword, cfg.HL, cfg.GL, cfg.CEID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("feed request for %q: %w", keyword, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("feed for %q returned HTTP %d", keyword, resp.StatusCode)
	}

	var feed rssFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing feed for %q: %w", keyword, err)
	}

	maxItems := cfg.MaxItemsPerKeyword
	if maxItems <= 0 {
		maxItems = 20
	}

	var items []types.NewsItem
	for _, e := range feed.Channel.Items {
		if len(items) >= maxItems {
			break
		}
		items = append(items, types.NewsItem{
			Keyword:   keyword,
			Title:     strings.TrimSpace(e.Title),
			Link:      strings.TrimSpace(e.Link),
			Published: strings.TrimSpace(e.PubDate),
			Summary:   e.Description,
		})
	}
	return items, nil
}
