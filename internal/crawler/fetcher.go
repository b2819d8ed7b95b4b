package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Melvillian/navi/internal/model"
	"github.com/Melvillian/navi/internal/notion"
)

// ChildFetcher retrieves the immediate children of a page or block across
// every page of the paginated API response.
type ChildFetcher struct {
	api      API
	pageSize int
	logger   *slog.Logger
}

// NewChildFetcher creates a ChildFetcher. It honors WithPageSize and
// WithLogger.
func NewChildFetcher(api API, opts ...Option) *ChildFetcher {
	o := newOptions(opts)
	return &ChildFetcher{
		api:      api,
		pageSize: o.pageSize,
		logger:   o.logger,
	}
}

// Fetch returns the children of id in server order. Every returned block is
// stamped with pageID as its owning page.
//
// A response the client cannot decode is parsed again with
// notion.ParseBlockChildrenLenient. If that fails too, Fetch returns an error
// matching notion.ErrDecode.
func (f *ChildFetcher) Fetch(ctx context.Context, id model.BlockID, pageID model.PageID) ([]model.Block, error) {
	blocks := make([]model.Block, 0)
	cursor := ""

	for {
		resp, err := f.fetchPage(ctx, id, cursor)
		if err != nil {
			return nil, err
		}

		for _, record := range resp.Results {
			blocks = append(blocks, record.ToBlock(pageID))
		}

		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	return blocks, nil
}

// fetchPage requests one page of children, falling back to the lenient
// decoder when the typed one fails.
func (f *ChildFetcher) fetchPage(ctx context.Context, id model.BlockID, cursor string) (*notion.BlockChildrenResponse, error) {
	resp, err := f.api.BlockChildren(ctx, notion.BlockChildrenRequest{
		BlockID:     id.String(),
		StartCursor: cursor,
		PageSize:    f.pageSize,
	})
	if err == nil {
		return resp, nil
	}

	var decodeErr *notion.DecodeError
	if !errors.As(err, &decodeErr) {
		return nil, err
	}

	resp, lenientErr := notion.ParseBlockChildrenLenient(decodeErr.Body)
	if lenientErr != nil {
		return nil, notion.NewError(notion.KindDecode, "block children",
			fmt.Errorf("children of %s: %w (lenient decode: %v)", id, decodeErr, lenientErr))
	}

	f.logger.Debug("recovered children with lenient decoder",
		"block_id", id,
		"count", len(resp.Results),
		"error", decodeErr.Err)

	return resp, nil
}
