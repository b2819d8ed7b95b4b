package model

// BlockType is the structural kind of a block, as reported by the Notion API
// in the block's "type" field.
type BlockType string

// Known block types. Anything else is reported as BlockTypeUnsupported.
const (
	BlockTypeParagraph        BlockType = "paragraph"
	BlockTypeHeading1         BlockType = "heading_1"
	BlockTypeHeading2         BlockType = "heading_2"
	BlockTypeHeading3         BlockType = "heading_3"
	BlockTypeBulletedListItem BlockType = "bulleted_list_item"
	BlockTypeNumberedListItem BlockType = "numbered_list_item"
	BlockTypeToDo             BlockType = "to_do"
	BlockTypeToggle           BlockType = "toggle"
	BlockTypeCode             BlockType = "code"
	BlockTypeCallout          BlockType = "callout"
	BlockTypeQuote            BlockType = "quote"
	BlockTypeImage            BlockType = "image"
	BlockTypeBookmark         BlockType = "bookmark"
	BlockTypeDivider          BlockType = "divider"
	BlockTypeTable            BlockType = "table"
	BlockTypeTableRow         BlockType = "table_row"
	BlockTypeColumnList       BlockType = "column_list"
	BlockTypeColumn           BlockType = "column"
	BlockTypeTableOfContents  BlockType = "table_of_contents"
	BlockTypeEmbed            BlockType = "embed"
	BlockTypeVideo            BlockType = "video"
	BlockTypeAudio            BlockType = "audio"
	BlockTypeFile             BlockType = "file"
	BlockTypePDF              BlockType = "pdf"
	BlockTypeSyncedBlock      BlockType = "synced_block"
	BlockTypeTemplate         BlockType = "template"
	BlockTypeLinkPreview      BlockType = "link_preview"
	BlockTypeLinkToPage       BlockType = "link_to_page"
	BlockTypeChildPage        BlockType = "child_page"
	BlockTypeChildDatabase    BlockType = "child_database"
	BlockTypeEquation         BlockType = "equation"
	BlockTypeBreadcrumb       BlockType = "breadcrumb"
	BlockTypeUnsupported      BlockType = "unsupported"
)

var knownBlockTypes = map[BlockType]bool{
	BlockTypeParagraph:        true,
	BlockTypeHeading1:         true,
	BlockTypeHeading2:         true,
	BlockTypeHeading3:         true,
	BlockTypeBulletedListItem: true,
	BlockTypeNumberedListItem: true,
	BlockTypeToDo:             true,
	BlockTypeToggle:           true,
	BlockTypeCode:             true,
	BlockTypeCallout:          true,
	BlockTypeQuote:            true,
	BlockTypeImage:            true,
	BlockTypeBookmark:         true,
	BlockTypeDivider:          true,
	BlockTypeTable:            true,
	BlockTypeTableRow:         true,
	BlockTypeColumnList:       true,
	BlockTypeColumn:           true,
	BlockTypeTableOfContents:  true,
	BlockTypeEmbed:            true,
	BlockTypeVideo:            true,
	BlockTypeAudio:            true,
	BlockTypeFile:             true,
	BlockTypePDF:              true,
	BlockTypeSyncedBlock:      true,
	BlockTypeTemplate:         true,
	BlockTypeLinkPreview:      true,
	BlockTypeLinkToPage:       true,
	BlockTypeChildPage:        true,
	BlockTypeChildDatabase:    true,
	BlockTypeEquation:         true,
	BlockTypeBreadcrumb:       true,
	BlockTypeUnsupported:      true,
}

// ParseBlockType converts the API's type tag into a BlockType.
// Tags this package does not know about become BlockTypeUnsupported.
func ParseBlockType(s string) BlockType {
	bt := BlockType(s)
	if knownBlockTypes[bt] {
		return bt
	}
	return BlockTypeUnsupported
}

// String returns the API tag.
func (t BlockType) String() string {
	return string(t)
}

// IsHeading reports whether the block is one of the three heading levels.
func (t BlockType) IsHeading() bool {
	return t == BlockTypeHeading1 || t == BlockTypeHeading2 || t == BlockTypeHeading3
}
