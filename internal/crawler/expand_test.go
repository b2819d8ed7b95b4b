package crawler

import (
	"context"
	"errors"
	"testing"

	"github.com/Melvillian/navi/internal/model"
	"github.com/Melvillian/navi/internal/notion"
)

// rootBlock builds a root block owned by page "page".
func rootBlock(id string, hasChildren bool) model.Block {
	return block(id, id+" text", newer, hasChildren).ToBlock("page")
}

// TestTreeExpanderExpand tests subtree expansion.
func TestTreeExpanderExpand(t *testing.T) {
	t.Parallel()

	t.Run("empty children are pruned with their subtree", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI()
		api.setChildren("root",
			block("A", "a", older, false),
			block("B", "", older, true),
			block("C", "c", older, true),
		)
		api.setChildren("B", block("E", "under empty", older, false))
		api.setChildren("C", block("D", "d", older, false))

		e := NewTreeExpander(NewChildFetcher(api))
		trees, err := e.Expand(context.Background(), []model.Block{rootBlock("root", true)}, model.NewVisitedSet())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(trees) != 1 {
			t.Fatalf("expected 1 tree, got %d", len(trees))
		}
		if got := treeShape(t, trees[0]); got != "root(A,C(D))" {
			t.Errorf("expected root(A,C(D)), got %s", got)
		}
		if api.fetchCount("B") != 0 {
			t.Error("expected children of an empty block not to be fetched")
		}
	})

	t.Run("descendants are expanded regardless of edit time", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI()
		api.setChildren("root", block("a", "old", older.AddDate(-1, 0, 0), true))
		api.setChildren("a", block("b", "older", older.AddDate(-2, 0, 0), false))

		e := NewTreeExpander(NewChildFetcher(api))
		trees, err := e.Expand(context.Background(), []model.Block{rootBlock("root", true)}, model.NewVisitedSet())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := treeShape(t, trees[0]); got != "root(a(b))" {
			t.Errorf("expected root(a(b)), got %s", got)
		}
	})

	t.Run("sibling order follows the API", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI()
		api.setChildren("root", block("z", "z", older, false), block("m", "m", older, false), block("a", "a", older, false))

		e := NewTreeExpander(NewChildFetcher(api))
		trees, err := e.Expand(context.Background(), []model.Block{rootBlock("root", true)}, model.NewVisitedSet())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := treeShape(t, trees[0]); got != "root(z,m,a)" {
			t.Errorf("expected root(z,m,a), got %s", got)
		}
	})

	t.Run("cycles terminate", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI()
		api.setChildren("root", block("a", "a", older, true))
		api.setChildren("a", block("root", "root", older, true), block("b", "b", older, true))
		api.setChildren("b", block("a", "a", older, true))

		e := NewTreeExpander(NewChildFetcher(api))
		trees, err := e.Expand(context.Background(), []model.Block{rootBlock("root", true)}, model.NewVisitedSet())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := treeShape(t, trees[0]); got != "root(a(b))" {
			t.Errorf("expected root(a(b)), got %s", got)
		}
		for _, id := range []string{"root", "a", "b"} {
			if n := api.fetchCount(id); n != 1 {
				t.Errorf("expected %s fetched once, got %d", id, n)
			}
		}
	})

	t.Run("one tree per root with a shared visited set", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI()
		api.setChildren("r1", block("shared", "shared", older, false))
		api.setChildren("r2", block("shared", "shared", older, false), block("own", "own", older, false))

		e := NewTreeExpander(NewChildFetcher(api))
		trees, err := e.Expand(context.Background(),
			[]model.Block{rootBlock("r1", true), rootBlock("r2", true)}, model.NewVisitedSet())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(trees) != 2 {
			t.Fatalf("expected 2 trees, got %d", len(trees))
		}
		if got := treeShape(t, trees[0]); got != "r1(shared)" {
			t.Errorf("expected r1(shared), got %s", got)
		}
		if got := treeShape(t, trees[1]); got != "r2(own)" {
			t.Errorf("expected r2(own), got %s", got)
		}
	})

	t.Run("root without children is a single node tree", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI()
		e := NewTreeExpander(NewChildFetcher(api))
		trees, err := e.Expand(context.Background(), []model.Block{rootBlock("solo", false)}, model.NewVisitedSet())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if trees[0].Len() != 1 {
			t.Errorf("expected 1 node, got %d", trees[0].Len())
		}
		if api.fetchCount("solo") != 0 {
			t.Error("expected no fetch for a block without children")
		}
	})

	t.Run("fetch failure is returned", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI()
		api.failures["root"] = notion.NewError(notion.KindNetwork, "block children", errors.New("timeout"))

		e := NewTreeExpander(NewChildFetcher(api))
		_, err := e.Expand(context.Background(), []model.Block{rootBlock("root", true)}, model.NewVisitedSet())
		if !errors.Is(err, notion.ErrNetwork) {
			t.Errorf("expected ErrNetwork, got %v", err)
		}
	})
}
