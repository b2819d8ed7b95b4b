// Package crawler finds the blocks of a Notion workspace that changed within
// a recent time window and expands each of them into a full block tree.
//
// # Phases
//
// A crawl runs four components in sequence, all on one goroutine:
//
//   - Discovery lists the pages edited at or after the cutoff, newest first,
//     and fetches each page's immediate children.
//   - RootLocator walks a page breadth-first and returns the shallowest
//     non-empty blocks edited at or after the cutoff. It stops after a fixed
//     time budget and reports the result as truncated.
//   - TreeExpander fetches the whole subtree below every root, regardless of
//     edit time, and drops empty blocks together with everything below them.
//   - Crawler ties the phases together and applies the page exclusion filter.
//
// Every phase that walks blocks takes a model.VisitedSet. The Crawler shares
// one set across all pages for root discovery and another one for expansion,
// so the Notion graph may contain cycles and duplicated results.
//
// # Usage
//
//	client, _ := notion.NewClient(token)
//	c := crawler.New(client, crawler.WithExcluder(exclusions))
//	pages, err := c.CrawlSince(ctx, 7*24*time.Hour)
//
// # Errors
//
// Failures reported by the API client keep their notion.ErrNetwork,
// notion.ErrDecode or notion.ErrFatal category when they reach the caller.
// Running out of the root discovery budget is not an error.
package crawler
