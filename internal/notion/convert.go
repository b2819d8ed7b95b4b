package notion

import (
	"strings"

	"github.com/Melvillian/navi/internal/model"
)

// ToBlock converts the record into a model.Block owned by pageID.
func (r BlockRecord) ToBlock(pageID model.PageID) model.Block {
	bt := model.ParseBlockType(r.Type)

	b := model.Block{
		ID:          model.BlockID(r.ID),
		PageID:      pageID,
		Type:        bt,
		Text:        blockText(bt, r.Content),
		CreatedAt:   r.CreatedTime,
		UpdatedAt:   r.LastEditedTime,
		HasChildren: r.HasChildren,
	}
	if bt == model.BlockTypeToDo {
		b.Checked = r.Content.Checked
	}
	if r.Parent != nil {
		b.Parent = &model.Parent{
			Type:       r.Parent.Type,
			PageID:     model.PageID(r.Parent.PageID),
			BlockID:    model.BlockID(r.Parent.BlockID),
			DatabaseID: r.Parent.DatabaseID,
			Workspace:  r.Parent.Workspace,
		}
	}
	return b
}

// blockText extracts the plain text of a block payload.
func blockText(bt model.BlockType, c BlockContent) string {
	switch bt {
	case model.BlockTypeParagraph,
		model.BlockTypeHeading1,
		model.BlockTypeHeading2,
		model.BlockTypeHeading3,
		model.BlockTypeBulletedListItem,
		model.BlockTypeNumberedListItem,
		model.BlockTypeQuote,
		model.BlockTypeToDo,
		model.BlockTypeToggle,
		model.BlockTypeCallout,
		model.BlockTypeCode:
		return joinRichText(c.RichText)
	case model.BlockTypeImage,
		model.BlockTypeFile,
		model.BlockTypePDF,
		model.BlockTypeVideo,
		model.BlockTypeAudio,
		model.BlockTypeEmbed,
		model.BlockTypeBookmark:
		return joinRichText(c.Caption)
	case model.BlockTypeTableRow:
		cells := make([]string, 0, len(c.Cells))
		for _, cell := range c.Cells {
			cells = append(cells, joinRichText(cell))
		}
		return strings.Join(cells, " | ")
	case model.BlockTypeEquation:
		return c.Expression
	case model.BlockTypeLinkPreview:
		return c.URL
	case model.BlockTypeChildPage, model.BlockTypeChildDatabase:
		return c.Title
	default:
		return ""
	}
}

func joinRichText(spans []RichText) string {
	texts := make([]string, 0, len(spans))
	for _, s := range spans {
		texts = append(texts, s.PlainText)
	}
	return model.JoinText(texts)
}
