package crawler

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/Melvillian/navi/internal/model"
	"github.com/Melvillian/navi/internal/notion"
)

// cutoff is the window boundary used by most tests.
var cutoff = time.Date(2024, 8, 19, 9, 30, 0, 0, time.UTC)

var (
	newer = cutoff.Add(30 * time.Minute)
	older = cutoff.Add(-30 * time.Minute)
)

// fakeAPI is an in-memory Notion workspace.
type fakeAPI struct {
	mu sync.Mutex

	// pages are the search results, newest first, databases included.
	pages []notion.PageRecord

	// children maps a block or page id to its children in server order.
	children map[string][]notion.BlockRecord

	// malformed maps a block id to a raw body the typed decoder rejects.
	malformed map[string][]byte

	// failures maps a block id to the error its children request returns.
	failures map[string]error

	// onFetch runs before every children request.
	onFetch func(blockID string)

	searchRequests []notion.SearchRequest
	fetches        map[string]int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		children:  make(map[string][]notion.BlockRecord),
		malformed: make(map[string][]byte),
		failures:  make(map[string]error),
		fetches:   make(map[string]int),
	}
}

func (f *fakeAPI) Search(_ context.Context, req notion.SearchRequest) (*notion.SearchResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.searchRequests = append(f.searchRequests, req)
	results, next, more, err := paginate(f.pages, req.StartCursor, req.PageSize)
	if err != nil {
		return nil, err
	}
	return &notion.SearchResponse{Results: results, NextCursor: next, HasMore: more}, nil
}

func (f *fakeAPI) BlockChildren(_ context.Context, req notion.BlockChildrenRequest) (*notion.BlockChildrenResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.onFetch != nil {
		f.onFetch(req.BlockID)
	}
	f.fetches[req.BlockID]++

	if err, ok := f.failures[req.BlockID]; ok {
		return nil, err
	}
	if body, ok := f.malformed[req.BlockID]; ok {
		return nil, notion.NewError(notion.KindDecode, "block children",
			&notion.DecodeError{Body: body, Err: errors.New("cannot unmarshal string")})
	}

	results, next, more, err := paginate(f.children[req.BlockID], req.StartCursor, req.PageSize)
	if err != nil {
		return nil, err
	}
	return &notion.BlockChildrenResponse{Results: results, NextCursor: next, HasMore: more}, nil
}

// fetchCount returns how many children requests were made for id.
func (f *fakeAPI) fetchCount(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches[id]
}

// paginate slices items using the decimal offset cursor format of the fake.
func paginate[T any](items []T, cursor string, pageSize int) ([]T, string, bool, error) {
	start := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil {
			return nil, "", false, notion.NewError(notion.KindFatal, "paginate", err)
		}
		start = n
	}
	if pageSize <= 0 {
		pageSize = notion.MaxPageSize
	}
	if start > len(items) {
		start = len(items)
	}

	end := min(start+pageSize, len(items))
	page := append([]T(nil), items[start:end]...)
	if end < len(items) {
		return page, strconv.Itoa(end), true, nil
	}
	return page, "", false, nil
}

// addPage registers a page search result.
func (f *fakeAPI) addPage(id, slug string, edited time.Time) {
	f.pages = append(f.pages, notion.PageRecord{
		Object:         "page",
		ID:             id,
		URL:            "https://www.notion.so/" + slug,
		CreatedTime:    edited.Add(-24 * time.Hour),
		LastEditedTime: edited,
	})
}

// setChildren registers the children of parent.
func (f *fakeAPI) setChildren(parent string, children ...notion.BlockRecord) {
	f.children[parent] = children
}

// block builds a paragraph record. Empty text produces an empty block.
func block(id, text string, edited time.Time, hasChildren bool) notion.BlockRecord {
	r := notion.BlockRecord{
		Object:         "block",
		ID:             id,
		Type:           string(model.BlockTypeParagraph),
		CreatedTime:    edited.Add(-time.Hour),
		LastEditedTime: edited,
		HasChildren:    hasChildren,
	}
	if text != "" {
		r.Content.RichText = []notion.RichText{{PlainText: text}}
	}
	return r
}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// blockIDs returns the ids of blocks in order.
func blockIDs(blocks []model.Block) []string {
	ids := make([]string, 0, len(blocks))
	for _, b := range blocks {
		ids = append(ids, b.ID.String())
	}
	return ids
}

// treeShape renders a tree as "root(a,c(d))" for compact assertions.
func treeShape(t *testing.T, tree *model.BlockTree) string {
	t.Helper()

	if tree == nil || tree.Root == nil {
		return ""
	}
	return nodeShape(tree.Root)
}

func nodeShape(n *model.TreeNode) string {
	s := n.Block.ID.String()
	if len(n.Children) == 0 {
		return s
	}
	s += "("
	for i, c := range n.Children {
		if i > 0 {
			s += ","
		}
		s += nodeShape(c)
	}
	return s + ")"
}
