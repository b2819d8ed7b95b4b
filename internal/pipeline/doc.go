// Package pipeline runs the per-workspace crawl as a sequence of steps and
// processes several workspaces concurrently.
//
// A Job carries one workspace through the pipeline: the cache step may fill
// it from run history, the crawl step walks Notion, and the record step
// stores the result. BatchProcessor runs one pipeline per workspace with an
// errgroup concurrency limit.
package pipeline
