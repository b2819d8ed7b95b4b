package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Melvillian/navi/internal/model"
	"github.com/Melvillian/navi/internal/notion"
)

// Discovery lists the pages edited since a cutoff.
type Discovery struct {
	api      API
	fetcher  *ChildFetcher
	pageSize int
	logger   *slog.Logger
}

// NewDiscovery creates a Discovery that hydrates pages with fetcher.
func NewDiscovery(api API, fetcher *ChildFetcher, opts ...Option) *Discovery {
	o := newOptions(opts)
	return &Discovery{
		api:      api,
		fetcher:  fetcher,
		pageSize: o.pageSize,
		logger:   o.logger,
	}
}

// LastEditedPages returns every page edited at or after cutoff, most
// recently edited first, each with its immediate children.
//
// Search results are sorted by edit time, so pagination stops at the first
// page older than cutoff. Databases are skipped.
func (d *Discovery) LastEditedPages(ctx context.Context, cutoff time.Time) ([]model.Page, error) {
	records, err := d.search(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	pages := make([]model.Page, 0, len(records))
	for _, record := range records {
		id := model.PageID(record.ID)

		children, err := d.fetcher.Fetch(ctx, id.AsBlock(), id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch children of page %s: %w", id, err)
		}

		pages = append(pages, model.Page{
			ID:          id,
			Title:       model.TitleFromURL(record.URL),
			URL:         record.URL,
			CreatedAt:   record.CreatedTime,
			UpdatedAt:   record.LastEditedTime,
			ChildBlocks: children,
		})
	}

	d.logger.Debug("discovered edited pages", "count", len(pages), "cutoff", cutoff)
	return pages, nil
}

func (d *Discovery) search(ctx context.Context, cutoff time.Time) ([]notion.PageRecord, error) {
	var records []notion.PageRecord
	cursor := ""

	for {
		resp, err := d.api.Search(ctx, notion.SearchRequest{
			Filter: &notion.SearchFilter{
				Property: notion.FilterPropertyObject,
				Value:    notion.FilterValuePage,
			},
			Sort: &notion.SearchSort{
				Timestamp: notion.SortTimestampLastEdited,
				Direction: notion.SortDescending,
			},
			StartCursor: cursor,
			PageSize:    d.pageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to search pages: %w", err)
		}

		batch, reachedCutoff := editedSince(resp.Results, cutoff)
		records = append(records, batch...)

		if reachedCutoff || !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	return records, nil
}

// editedSince keeps the page records of a batch up to the first one edited
// before cutoff. It reports whether such a record was found.
func editedSince(results []notion.PageRecord, cutoff time.Time) ([]notion.PageRecord, bool) {
	kept := make([]notion.PageRecord, 0, len(results))
	for _, r := range results {
		if !r.IsPage() {
			continue
		}
		if r.LastEditedTime.Before(cutoff) {
			return kept, true
		}
		kept = append(kept, r)
	}
	return kept, false
}
