package report

import (
	"time"

	"github.com/Melvillian/navi/internal/model"
)

// Digest is the result of one crawl of one workspace, ready to be written.
type Digest struct {
	Workspace   string
	Window      time.Duration
	Cutoff      time.Time
	GeneratedAt time.Time
	Pages       []model.ParsedPage
}

// NewDigest creates a digest for pages crawled at now over window.
func NewDigest(workspace string, window time.Duration, now time.Time, pages []model.ParsedPage) *Digest {
	return &Digest{
		Workspace:   workspace,
		Window:      window,
		Cutoff:      now.Add(-window),
		GeneratedAt: now,
		Pages:       pages,
	}
}

// RootCount returns the number of changed roots across all pages.
func (d *Digest) RootCount() int {
	n := 0
	for _, p := range d.Pages {
		n += p.RootCount()
	}
	return n
}

// TruncatedCount returns the number of pages whose root discovery ran out
// of time.
func (d *Digest) TruncatedCount() int {
	n := 0
	for _, p := range d.Pages {
		if p.Truncated {
			n++
		}
	}
	return n
}

// PromptText renders the digest pages with PromptText.
func (d *Digest) PromptText() string {
	return PromptText(d.Pages)
}
