package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Melvillian/navi/internal/model"
)

// RootsResult is the outcome of root discovery for one page.
type RootsResult struct {
	// Roots are the shallowest non-empty blocks edited at or after the
	// cutoff. Their order is unspecified.
	Roots []model.Block

	// Truncated is true when the time budget ran out before the walk
	// finished. Roots then holds what was found up to that point.
	Truncated bool
}

// RootLocator finds the blocks of a page that changed since a cutoff.
type RootLocator struct {
	fetcher *ChildFetcher
	budget  time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

// NewRootLocator creates a RootLocator. It honors WithRootBudget, WithClock
// and WithLogger.
func NewRootLocator(fetcher *ChildFetcher, opts ...Option) *RootLocator {
	o := newOptions(opts)
	return &RootLocator{
		fetcher: fetcher,
		budget:  o.rootBudget,
		now:     o.now,
		logger:  o.logger,
	}
}

// Locate walks page breadth-first, starting from its immediate children.
//
// A block edited at or after cutoff is a root when it is non-empty, and its
// children are never fetched in this phase. An older block with children is
// expanded. Blocks already in visited are skipped, and every block processed
// is added to it.
//
// The deadline is checked before each block, so the walk can overrun the
// budget by one fetch at most.
func (l *RootLocator) Locate(ctx context.Context, page model.Page, cutoff time.Time, visited *model.VisitedSet) (RootsResult, error) {
	var result RootsResult

	deadline := l.now().Add(l.budget)
	queue := make([]model.Block, len(page.ChildBlocks))
	copy(queue, page.ChildBlocks)

	for len(queue) > 0 {
		if l.now().After(deadline) {
			result.Truncated = true
			l.logger.Info("root discovery ran out of time",
				"page", page.Title,
				"budget", l.budget,
				"roots", len(result.Roots),
				"pending", len(queue))
			return result, nil
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		block := queue[0]
		queue = queue[1:]

		if !visited.Add(block.Key()) {
			l.logger.Debug("skipping visited block", "block_id", block.ID, "page", page.Title)
			continue
		}

		if block.EditedSince(cutoff) {
			if !block.IsEmpty() {
				result.Roots = append(result.Roots, block)
			}
			continue
		}

		if !block.HasChildren {
			continue
		}

		children, err := l.fetcher.Fetch(ctx, block.ID, page.ID)
		if err != nil {
			return result, fmt.Errorf("failed to fetch children of block %s: %w", block.ID, err)
		}
		queue = append(queue, children...)
	}

	return result, nil
}
