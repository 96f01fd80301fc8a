// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/tgweon/trag/internal/httputil"
	"github.com/tgweon/trag/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>search results</title>
    <item>
      <title>  Robot arm ships  </title>
      <link> https://a.example/1 </link>
      <pubDate>Mon, 24 Aug 2026 09:00:00 GMT</pubDate>
      <description>&lt;b&gt;A new robot arm&lt;/b&gt; shipped this week.</description>
    </item>
    <item>
      <title>Gripper update</title>
      <link>https://a.example/2</link>
      <pubDate>Tue, 25 Aug 2026 10:00:00 GMT</pubDate>
      <description>Firmware got a stability update.</description>
    </item>
  </channel>
</rss>`

// withFeedServer points rssBase at a local server for the test's duration.
func withFeedServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(handler)
	orig := rssBase
	rssBase = ts.URL
	t.Cleanup(func() {
		rssBase = orig
		ts.Close()
	})
	return ts
}

func TestFeedURL(t *testing.T) {
	got := FeedURL("machine learning", "ko", "KR", "KR:ko")
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("FeedURL produced unparseable URL %q: %v", got, err)
	}
	q := u.Query()
	if q.Get("q") != "machine learning" {
		t.Errorf("q = %q", q.Get("q"))
	}
	if q.Get("hl") != "ko" || q.Get("gl") != "KR" || q.Get("ceid") != "KR:ko" {
		t.Errorf("locale params = hl %q gl %q ceid %q", q.Get("hl"), q.Get("gl"), q.Get("ceid"))
	}
}

func TestFetchParsesFeed(t *testing.T) {
	var gotUA string
	withFeedServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, sampleFeed)
	})

	cfg := types.NewsConfig{HTTPConfig: types.HTTPConfig{UserAgent: "trag/0.1"}}
	items, err := Fetch(context.Background(), http.DefaultClient, "robotics", cfg)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if gotUA != "trag/0.1" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	first := items[0]
	if first.Keyword != "robotics" {
		t.Errorf("Keyword = %q", first.Keyword)
	}
	if first.Title != "Robot arm ships" {
		t.Errorf("Title = %q, want trimmed", first.Title)
	}
	if first.Link != "https://a.example/1" {
		t.Errorf("Link = %q, want trimmed", first.Link)
	}
	if first.Published != "Mon, 24 Aug 2026 09:00:00 GMT" {
		t.Errorf("Published = %q", first.Published)
	}
	if !strings.Contains(first.Summary, "<b>A new robot arm</b>") {
		t.Errorf("Summary lost markup: %q", first.Summary)
	}
}

func TestFetchCapsItems(t *testing.T) {
	withFeedServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<rss><channel>`)
		for i := 0; i < 5; i++ {
			fmt.Fprintf(w, `<item><title>n%d</title><link>https://a.example/%d</link></item>`, i, i)
		}
		fmt.Fprint(w, `</channel></rss>`)
	})

	cfg := types.NewsConfig{MaxItemsPerKeyword: 2}
	items, err := Fetch(context.Background(), http.DefaultClient, "robotics", cfg)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want cap of 2", len(items))
	}
}

func TestFetchHTTPError(t *testing.T) {
	withFeedServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := Fetch(context.Background(), http.DefaultClient, "robotics", types.NewsConfig{})
	if err == nil {
		t.Fatal("Fetch() expected error for HTTP 404")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error %q does not mention the status", err)
	}
}

func TestFetchBadXML(t *testing.T) {
	withFeedServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "this is not xml")
	})

	_, err := Fetch(context.Background(), http.DefaultClient, "robotics", types.NewsConfig{})
	if err == nil {
		t.Fatal("Fetch() expected error for malformed feed")
	}
}
