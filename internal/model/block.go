package model

import (
	"strings"
	"time"
)

// Parent is the structural back-reference of a block as reported by the API.
// It is used for lookup only and never as an ownership edge.
type Parent struct {
	// Type is the API parent kind: "page_id", "block_id", "database_id" or "workspace".
	Type string `json:"type"`

	PageID     PageID  `json:"page_id,omitempty"`
	BlockID    BlockID `json:"block_id,omitempty"`
	DatabaseID string  `json:"database_id,omitempty"`
	Workspace  bool    `json:"workspace,omitempty"`
}

// Block represents a single unit of notetaking, modelled on the Notion API's
// block object.
//
// A Block always belongs to a Page. Its plain text is the concatenation of all
// inline text spans of the block joined by a single space; styling and inline
// links are discarded. A Block can have children, but they must be fetched
// separately: HasChildren is only what the API claims.
//
// Two Blocks with the same ID are the same node, regardless of any other
// field. Use Key when storing blocks in sets or maps.
type Block struct {
	ID     BlockID   `json:"id"`
	PageID PageID    `json:"page_id"`
	Type   BlockType `json:"type"`
	Text   string    `json:"text"`

	// Checked is the state of a to_do block. Always false for other types.
	Checked bool `json:"checked,omitempty"`

	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Parent      *Parent   `json:"parent,omitempty"`
	HasChildren bool      `json:"has_children"`
}

// Key returns the identity of the block.
func (b Block) Key() BlockID {
	return b.ID
}

// IsEmpty reports whether the block carries no text once surrounding
// whitespace is removed.
func (b Block) IsEmpty() bool {
	return strings.TrimSpace(b.Text) == ""
}

// EditedSince reports whether the block was last edited at or after cutoff.
func (b Block) EditedSince(cutoff time.Time) bool {
	return !b.UpdatedAt.Before(cutoff)
}

// JoinText joins inline text spans the way block text is built.
func JoinText(spans []string) string {
	return strings.Join(spans, " ")
}
