// Package model defines the core data structures used throughout navi.
//
// This package contains the following main types:
//   - Block: A single node of the remote content graph (one Notion block)
//   - Page: A top-level container with its flat list of immediate children
//   - BlockTree: An ordered tree of Blocks rooted at a recently edited block
//   - VisitedSet: Block identities already processed during one traversal phase
//   - ParsedPage: The per-page output of a crawl, ready for rendering
//
// Models live in their own package so that the notion client, the crawler
// and the report writers can share them without import cycles.
//
// Page and Block values are built fresh from each API response and are not
// modified after construction. Only tree nodes acquire children.
package model
