// Package main provides the entry point for the navi CLI.
//
// navi crawls a Notion workspace for blocks edited within a recent window
// and prints them, with their nested content, as text ready to be handed to
// an assistant.
//
// Usage:
//
//	navi crawl --days 7
//	navi history
//	navi serve
//
// See --help for all available options.
package main

func main() {
	Execute()
}
