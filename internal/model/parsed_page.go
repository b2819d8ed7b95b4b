package model

// ParsedPage is the crawl result for one page: the trees of every block that
// changed within the window, ready to be rendered.
type ParsedPage struct {
	PageID PageID       `json:"page_id"`
	Title  string       `json:"title"`
	URL    string       `json:"url"`
	Trees  []*BlockTree `json:"trees"`

	// Truncated is true when root discovery for this page ran out of its
	// time budget, so some changed blocks may be missing.
	Truncated bool `json:"truncated,omitempty"`
}

// RootCount returns the number of trees, one per changed root block.
func (p ParsedPage) RootCount() int {
	return len(p.Trees)
}
