package crawler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Melvillian/navi/internal/model"
)

// TreeExpander builds the full subtree below root blocks.
type TreeExpander struct {
	fetcher *ChildFetcher
	logger  *slog.Logger
}

// NewTreeExpander creates a TreeExpander.
func NewTreeExpander(fetcher *ChildFetcher, opts ...Option) *TreeExpander {
	o := newOptions(opts)
	return &TreeExpander{
		fetcher: fetcher,
		logger:  o.logger,
	}
}

// Expand returns one tree per root, in the order of roots.
//
// Descendants are fetched regardless of their edit time. A child that is
// already in visited or has no text is dropped together with its subtree.
// Siblings keep the order returned by the API.
func (e *TreeExpander) Expand(ctx context.Context, roots []model.Block, visited *model.VisitedSet) ([]*model.BlockTree, error) {
	trees := make([]*model.BlockTree, 0, len(roots))
	for _, root := range roots {
		tree, err := e.expand(ctx, root, visited)
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

func (e *TreeExpander) expand(ctx context.Context, root model.Block, visited *model.VisitedSet) (*model.BlockTree, error) {
	tree := model.NewBlockTree(root)
	queue := []*model.TreeNode{tree.Root}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		node := queue[0]
		queue = queue[1:]

		if !visited.Add(node.Block.Key()) {
			e.logger.Debug("skipping visited block", "block_id", node.Block.ID)
			continue
		}

		if !node.Block.HasChildren {
			continue
		}

		children, err := e.fetcher.Fetch(ctx, node.Block.ID, node.Block.PageID)
		if err != nil {
			return nil, fmt.Errorf("failed to expand block %s: %w", node.Block.ID, err)
		}

		for _, child := range children {
			if visited.Has(child.Key()) {
				e.logger.Debug("skipping visited block", "block_id", child.ID)
				continue
			}
			// Empty blocks take their whole subtree with them.
			if child.IsEmpty() {
				e.logger.Debug("dropping empty block", "block_id", child.ID, "has_children", child.HasChildren)
				continue
			}
			queue = append(queue, node.AddChild(child))
		}
	}

	return tree, nil
}
