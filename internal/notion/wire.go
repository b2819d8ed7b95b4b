package notion

import (
	"encoding/json"
	"fmt"
	"time"
)

// Search filter and sort values used by navi.
const (
	FilterPropertyObject = "object"
	FilterValuePage      = "page"

	SortTimestampLastEdited = "last_edited_time"
	SortDescending          = "descending"
)

// MaxPageSize is the largest page size the API accepts.
const MaxPageSize = 100

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query       string        `json:"query,omitempty"`
	Filter      *SearchFilter `json:"filter,omitempty"`
	Sort        *SearchSort   `json:"sort,omitempty"`
	StartCursor string        `json:"start_cursor,omitempty"`
	PageSize    int           `json:"page_size,omitempty"`
}

// SearchFilter restricts search results to one object kind.
type SearchFilter struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// SearchSort orders search results by a timestamp.
type SearchSort struct {
	Timestamp string `json:"timestamp"`
	Direction string `json:"direction"`
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	Results    []PageRecord `json:"results"`
	NextCursor string       `json:"next_cursor"`
	HasMore    bool         `json:"has_more"`
}

// PageRecord is a search result. Object is "page" or "database"; only pages
// carry meaningful values in the other fields for navi.
type PageRecord struct {
	Object         string    `json:"object"`
	ID             string    `json:"id"`
	URL            string    `json:"url"`
	CreatedTime    time.Time `json:"created_time"`
	LastEditedTime time.Time `json:"last_edited_time"`
	Archived       bool      `json:"archived"`
}

// IsPage reports whether the record is a page rather than a database.
func (r PageRecord) IsPage() bool {
	return r.Object == FilterValuePage
}

// BlockChildrenRequest identifies one page of GET /blocks/{id}/children.
type BlockChildrenRequest struct {
	BlockID     string
	StartCursor string
	PageSize    int
}

// BlockChildrenResponse is one page of a block's children.
type BlockChildrenResponse struct {
	Results    []BlockRecord `json:"results"`
	NextCursor string        `json:"next_cursor"`
	HasMore    bool          `json:"has_more"`
}

// ParentRecord is the API's parent object.
type ParentRecord struct {
	Type       string `json:"type"`
	PageID     string `json:"page_id,omitempty"`
	BlockID    string `json:"block_id,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
	Workspace  bool   `json:"workspace,omitempty"`
}

// RichText is one inline text span. Only its plain text is kept.
type RichText struct {
	PlainText string `json:"plain_text"`
}

// BlockContent holds the fields of a block's type-specific payload that
// navi reads. The payload lives under a key named after the block type.
type BlockContent struct {
	RichText   []RichText   `json:"rich_text"`
	Caption    []RichText   `json:"caption"`
	Cells      [][]RichText `json:"cells"`
	Expression string       `json:"expression"`
	URL        string       `json:"url"`
	Title      string       `json:"title"`
	Checked    bool         `json:"checked"`
	Language   string       `json:"language"`
}

// BlockRecord is a block object as returned by the API.
type BlockRecord struct {
	Object         string        `json:"object"`
	ID             string        `json:"id"`
	Type           string        `json:"type"`
	CreatedTime    time.Time     `json:"created_time"`
	LastEditedTime time.Time     `json:"last_edited_time"`
	HasChildren    bool          `json:"has_children"`
	Archived       bool          `json:"archived"`
	Parent         *ParentRecord `json:"parent"`

	// Content is decoded from the payload keyed by Type.
	Content BlockContent `json:"-"`
}

// UnmarshalJSON decodes the common block fields and then the payload found
// under the key named by "type".
func (r *BlockRecord) UnmarshalJSON(data []byte) error {
	type plain BlockRecord
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields[p.Type]; ok && p.Type != "" && string(raw) != "null" {
		if err := json.Unmarshal(raw, &p.Content); err != nil {
			return fmt.Errorf("decode %s payload of block %s: %w", p.Type, p.ID, err)
		}
	}

	*r = BlockRecord(p)
	return nil
}
