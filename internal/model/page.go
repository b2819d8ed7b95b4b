package model

import (
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// UnknownPageTitle is used when no title can be derived from a page URL.
const UnknownPageTitle = "Unknown Page Title"

// Page is a top-level container of Blocks, modelled on the Notion API's page
// object. ChildBlocks holds only the immediate children, in server order;
// deeper descendants are fetched by the crawler on demand.
type Page struct {
	ID          PageID    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ChildBlocks []Block   `json:"child_blocks"`
}

// TitleFromURL derives a page title from its canonical URL slug.
//
// For example https://www.notion.so/August-19-2024-651d530e07a14f9c97b4084614c5049b
// becomes "August 19 2024": the last path segment is split on hyphens and the
// final part, the page id, is dropped. This is a heuristic and misreads titles
// that contain hyphens themselves.
func TitleFromURL(pageURL string) string {
	segment := lastPathSegment(pageURL)
	if segment == "" {
		return UnknownPageTitle
	}

	if unescaped, err := url.PathUnescape(segment); err == nil {
		segment = unescaped
	}
	segment = norm.NFC.String(segment)

	parts := strings.Split(segment, "-")
	title := strings.TrimSpace(strings.Join(parts[:len(parts)-1], " "))
	if title == "" {
		return UnknownPageTitle
	}
	return title
}

// lastPathSegment returns the final non-empty path segment of a URL.
// Query strings and fragments are ignored.
func lastPathSegment(pageURL string) string {
	path := pageURL
	if u, err := url.Parse(pageURL); err == nil {
		path = u.EscapedPath()
	}

	path = strings.TrimRight(path, "/")
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return ""
	}
	return path[idx+1:]
}
