// Package database stores crawl run history for navi in a single SQLite
// file (modernc.org/sqlite, no cgo).
//
// Each run records the workspace, the window it covered, counters and the
// crawled pages as JSON, so a later invocation can print an earlier digest or
// reuse it instead of crawling again. The crawler itself never reads from
// this store.
package database
