package datasource

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"

	"github.com/rahulsm/coinsight/pkg/models"
	"github.com/rahulsm/coinsight/pkg/utils"
)

// DefaultFallbackURL is the Google News host serving the RSS search feed
// used as the secondary headline source.
const DefaultFallbackURL = "https://news.google.com"

// headlineSource is the primary provider contract (Yahoo company news).
type headlineSource interface {
	CompanyNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error)
}

// NewsOptions configures the aggregator's limits and fallback query.
type NewsOptions struct {
	PrimaryLimit  int    // max headlines from the primary source
	FallbackLimit int    // max headlines appended from the fallback feed
	MinPrimary    int    // below this count the fallback kicks in
	Qualifier     string // fixed qualifier appended to the fallback query
	FallbackURL   string // Google News host override (tests)
}

// News aggregates headlines from a primary provider with an RSS fallback.
// Both sources are best-effort: failures degrade to whatever was collected,
// never to an error. Insertion order is preserved and duplicates across the
// two sources are tolerated.
type News struct {
	primary headlineSource
	parser  *gofeed.Parser
	opts    NewsOptions
	log     zerolog.Logger
}

// NewNews creates a news aggregator over the given primary source.
func NewNews(primary headlineSource, opts NewsOptions, log zerolog.Logger) *News {
	if opts.PrimaryLimit <= 0 {
		opts.PrimaryLimit = 6
	}
	if opts.FallbackLimit <= 0 {
		opts.FallbackLimit = 5
	}
	if opts.MinPrimary <= 0 {
		opts.MinPrimary = 2
	}
	if opts.Qualifier == "" {
		opts.Qualifier = "crypto"
	}
	if opts.FallbackURL == "" {
		opts.FallbackURL = DefaultFallbackURL
	}
	return &News{
		primary: primary,
		parser:  gofeed.NewParser(),
		opts:    opts,
		log:     log,
	}
}

// GetHeadlines collects recent headlines for the symbol. It first queries
// the primary source; when fewer than the configured minimum come back it
// appends (not replaces) items from the fallback feed. Never fails; the
// worst case is an empty slice.
func (n *News) GetHeadlines(ctx context.Context, symbol string) []models.NewsItem {
	var items []models.NewsItem

	primary, err := n.primary.CompanyNews(ctx, symbol, n.opts.PrimaryLimit)
	if err != nil {
		n.log.Warn().Err(err).Str("symbol", symbol).Msg("primary news source unavailable")
	} else {
		items = primary
	}

	if len(items) < n.opts.MinPrimary {
		items = append(items, n.fetchFallback(ctx, symbol)...)
	}

	if max := n.opts.PrimaryLimit + n.opts.FallbackLimit; len(items) > max {
		items = items[:max]
	}
	return items
}

// fetchFallback queries the Google News RSS search feed keyed by the bare
// symbol plus the fixed qualifier. Items missing a title or link are
// skipped; any feed error yields zero items.
func (n *News) fetchFallback(ctx context.Context, symbol string) []models.NewsItem {
	query := utils.BaseSymbol(symbol) + " " + n.opts.Qualifier
	feedURL := fmt.Sprintf("%s/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en",
		n.opts.FallbackURL, url.QueryEscape(query))

	feed, err := n.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		n.log.Warn().Err(err).Str("symbol", symbol).Msg("fallback news feed unavailable")
		return nil
	}

	items := make([]models.NewsItem, 0, n.opts.FallbackLimit)
	for _, fi := range feed.Items {
		if fi == nil || fi.Title == "" || fi.Link == "" {
			continue
		}
		items = append(items, models.NewsItem{
			Title:     cleanText(fi.Title),
			Publisher: feedPublisher(fi),
			Link:      fi.Link,
		})
		if len(items) >= n.opts.FallbackLimit {
			break
		}
	}
	return items
}

// feedPublisher extracts a publisher name from a feed item when present.
func feedPublisher(fi *gofeed.Item) string {
	if fi.Custom != nil {
		if src, ok := fi.Custom["source"]; ok && src != "" {
			return src
		}
	}
	if fi.Author != nil {
		return fi.Author.Name
	}
	return ""
}

// cleanText strips HTML markup from feed-sourced text using goquery.
func cleanText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}
