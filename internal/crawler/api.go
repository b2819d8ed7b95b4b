package crawler

import (
	"context"

	"github.com/Melvillian/navi/internal/notion"
)

// API is the part of the Notion client used by the crawler.
// *notion.Client implements it.
type API interface {
	// Search returns one page of search results.
	Search(ctx context.Context, req notion.SearchRequest) (*notion.SearchResponse, error)

	// BlockChildren returns one page of a block's immediate children.
	BlockChildren(ctx context.Context, req notion.BlockChildrenRequest) (*notion.BlockChildrenResponse, error)
}

var _ API = (*notion.Client)(nil)
