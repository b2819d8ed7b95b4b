// Package report renders crawl results.
//
// BlockMarkdown and PromptText turn block trees into the plain markdown
// handed to a language model. The Writer implementations wrap a Digest in
// an output format:
//   - PromptWriter: "Page Title: ..." sections, one per changed page
//   - MarkdownWriter: a standalone markdown document with a summary table
//   - JSONWriter: the parsed pages as JSON for other tools
package report
