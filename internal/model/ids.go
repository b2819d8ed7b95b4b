package model

// PageID identifies a Notion page. It is a distinct type from BlockID so that
// page and block identifiers cannot be mixed up at compile time.
type PageID string

// String returns the raw identifier.
func (id PageID) String() string {
	return string(id)
}

// BlockID identifies a Notion block.
type BlockID string

// String returns the raw identifier.
func (id BlockID) String() string {
	return string(id)
}

// AsBlock returns the page identifier as a BlockID.
// The Notion API treats a page as a block when listing its children.
func (id PageID) AsBlock() BlockID {
	return BlockID(id)
}
