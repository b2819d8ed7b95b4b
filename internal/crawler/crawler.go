package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Melvillian/navi/internal/model"
)

// Excluder decides whether a discovered page is skipped.
type Excluder interface {
	ShouldExclude(title, url string) bool
}

// ExcludeFunc adapts a function to the Excluder interface.
type ExcludeFunc func(title, url string) bool

// ShouldExclude calls f.
func (f ExcludeFunc) ShouldExclude(title, url string) bool {
	return f(title, url)
}

// Crawler runs discovery, root location and expansion for every page edited
// within a window.
type Crawler struct {
	discovery *Discovery
	locator   *RootLocator
	expander  *TreeExpander
	excluder  Excluder
	now       func() time.Time
	logger    *slog.Logger
}

// New creates a Crawler on top of api.
func New(api API, opts ...Option) *Crawler {
	o := newOptions(opts)
	fetcher := NewChildFetcher(api, opts...)

	return &Crawler{
		discovery: NewDiscovery(api, fetcher, opts...),
		locator:   NewRootLocator(fetcher, opts...),
		expander:  NewTreeExpander(fetcher, opts...),
		excluder:  o.excluder,
		now:       o.now,
		logger:    o.logger,
	}
}

// CrawlSince crawls everything edited during the last window.
func (c *Crawler) CrawlSince(ctx context.Context, window time.Duration) ([]model.ParsedPage, error) {
	return c.Crawl(ctx, c.now().Add(-window))
}

// Crawl returns one ParsedPage for each page that has at least one non-empty
// block edited at or after cutoff, most recently edited page first.
//
// Pages are processed one at a time. Root discovery and expansion each keep
// one visited set for the whole run, so a block reached from two pages is
// reported once.
func (c *Crawler) Crawl(ctx context.Context, cutoff time.Time) ([]model.ParsedPage, error) {
	pages, err := c.discovery.LastEditedPages(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	discovered := model.NewVisitedSet()
	expanded := model.NewVisitedSet()
	results := make([]model.ParsedPage, 0, len(pages))

	for _, page := range pages {
		if c.excluder != nil && c.excluder.ShouldExclude(page.Title, page.URL) {
			c.logger.Debug("excluding page", "page", page.Title, "url", page.URL)
			continue
		}

		located, err := c.locator.Locate(ctx, page, cutoff, discovered)
		if err != nil {
			return nil, fmt.Errorf("failed to locate changes in page %q: %w", page.Title, err)
		}
		if len(located.Roots) == 0 {
			continue
		}

		trees, err := c.expander.Expand(ctx, located.Roots, expanded)
		if err != nil {
			return nil, fmt.Errorf("failed to expand page %q: %w", page.Title, err)
		}

		results = append(results, model.ParsedPage{
			PageID:    page.ID,
			Title:     page.Title,
			URL:       page.URL,
			Trees:     trees,
			Truncated: located.Truncated,
		})
	}

	c.logger.Debug("crawl finished",
		"cutoff", cutoff,
		"pages_discovered", len(pages),
		"pages_changed", len(results))

	return results, nil
}
