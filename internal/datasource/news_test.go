package datasource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rahulsm/coinsight/pkg/models"
)

// stubSource is a canned primary provider for aggregator tests.
type stubSource struct {
	items []models.NewsItem
	err   error
}

func (s *stubSource) CompanyNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.items) > limit {
		return s.items[:limit], nil
	}
	return s.items, nil
}

func rssFeed(items string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Search results</title>%s</channel></rss>`, items)
}

func newFallbackServer(t *testing.T, feed string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feed))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func primaryItems(n int) []models.NewsItem {
	items := make([]models.NewsItem, n)
	for i := range items {
		items[i] = models.NewsItem{
			Title:     fmt.Sprintf("Primary headline %d", i+1),
			Publisher: "Yahoo",
			Link:      fmt.Sprintf("https://example.com/p%d", i+1),
		}
	}
	return items
}

func TestGetHeadlinesPrimaryOnly(t *testing.T) {
	primary := &stubSource{items: primaryItems(4)}
	srv := newFallbackServer(t, rssFeed("")) // must not be consulted

	n := NewNews(primary, NewsOptions{FallbackURL: srv.URL}, zerolog.Nop())
	items := n.GetHeadlines(context.Background(), "BTC-USD")

	if len(items) != 4 {
		t.Fatalf("expected 4 primary items, got %d", len(items))
	}
	if items[0].Publisher != "Yahoo" {
		t.Errorf("expected primary publisher, got %q", items[0].Publisher)
	}
}

func TestGetHeadlinesAppendsFallback(t *testing.T) {
	feed := rssFeed(`
<item><title>Fallback one</title><link>https://example.com/f1</link></item>
<item><title></title><link>https://example.com/broken</link></item>
<item><title>Fallback two</title><link>https://example.com/f2</link></item>
<item><title>No link item</title></item>
<item><title>Fallback three</title><link>https://example.com/f3</link></item>`)
	srv := newFallbackServer(t, feed)

	primary := &stubSource{items: primaryItems(1)}
	n := NewNews(primary, NewsOptions{FallbackURL: srv.URL}, zerolog.Nop())
	items := n.GetHeadlines(context.Background(), "BTC-USD")

	// 1 primary + 3 valid fallback items; the two malformed ones are skipped.
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}
	if items[0].Title != "Primary headline 1" {
		t.Errorf("expected primary first, got %q", items[0].Title)
	}
	if items[1].Title != "Fallback one" {
		t.Errorf("expected fallback appended after primary, got %q", items[1].Title)
	}
}

func TestGetHeadlinesPrimaryFailureSoft(t *testing.T) {
	feed := rssFeed(`<item><title>Only fallback</title><link>https://example.com/f1</link></item>`)
	srv := newFallbackServer(t, feed)

	primary := &stubSource{err: errors.New("upstream down")}
	n := NewNews(primary, NewsOptions{FallbackURL: srv.URL}, zerolog.Nop())
	items := n.GetHeadlines(context.Background(), "BTC-USD")

	if len(items) != 1 {
		t.Fatalf("expected 1 fallback item, got %d", len(items))
	}
	if items[0].Title != "Only fallback" {
		t.Errorf("got %q", items[0].Title)
	}
}

func TestGetHeadlinesBothSourcesDown(t *testing.T) {
	srv := newFallbackServer(t, "not xml at all")

	primary := &stubSource{err: errors.New("upstream down")}
	n := NewNews(primary, NewsOptions{FallbackURL: srv.URL}, zerolog.Nop())
	items := n.GetHeadlines(context.Background(), "BTC-USD")

	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
}

func TestGetHeadlinesFallbackCapped(t *testing.T) {
	var feedItems string
	for i := 0; i < 10; i++ {
		feedItems += fmt.Sprintf(`<item><title>Feed %d</title><link>https://example.com/%d</link></item>`, i, i)
	}
	srv := newFallbackServer(t, rssFeed(feedItems))

	primary := &stubSource{}
	n := NewNews(primary, NewsOptions{FallbackLimit: 3, FallbackURL: srv.URL}, zerolog.Nop())
	items := n.GetHeadlines(context.Background(), "ETH-USD")

	if len(items) != 3 {
		t.Fatalf("expected fallback capped at 3, got %d", len(items))
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Plain headline", "Plain headline"},
		{"<b>Bold</b> move for BTC", "Bold move for BTC"},
		{"Fear &amp; greed index spikes", "Fear & greed index spikes"},
		{"  padded  ", "padded"},
	}
	for _, tt := range tests {
		if got := cleanText(tt.in); got != tt.want {
			t.Errorf("cleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
