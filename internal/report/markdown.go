package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/Melvillian/navi/internal/model"
)

// MarkdownWriter outputs a digest as a markdown document with a summary
// table and one section per changed page.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the digest in Markdown format.
func (w *MarkdownWriter) Write(d *Digest) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, d)
	w.writeAlert(md, d)
	w.writePages(md, d.Pages)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, d *Digest) {
	md.H1("Notion changes")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Workspace", d.Workspace},
			{"Since", d.Cutoff.Format("2006-01-02 15:04 MST")},
			{"Generated", d.GeneratedAt.Format("2006-01-02 15:04 MST")},
			{"Pages changed", strconv.Itoa(len(d.Pages))},
			{"Changed blocks", strconv.Itoa(d.RootCount())},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, d *Digest) {
	switch n := d.TruncatedCount(); {
	case len(d.Pages) == 0:
		md.Note("No pages were edited in this window.")
	case n > 0:
		md.Warningf("%d page(s) were too large to search completely; some changes may be missing.", n)
	default:
		return
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writePages(md *markdown.Markdown, pages []model.ParsedPage) {
	for _, page := range pages {
		md.H2(page.Title)
		md.PlainText("")
		if page.URL != "" {
			md.PlainTextf("[Open in Notion](%s)", page.URL)
			md.PlainText("")
		}
		md.PlainText(PageMarkdown(page))
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Generated by navi*")
}
