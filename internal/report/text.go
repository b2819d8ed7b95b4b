package report

import (
	"strings"

	"github.com/Melvillian/navi/internal/model"
)

// indentUnit is prepended once per tree depth.
const indentUnit = "  "

// BlockMarkdown renders a single block as one markdown line, or a fenced
// block for code.
func BlockMarkdown(b model.Block) string {
	switch b.Type {
	case model.BlockTypeHeading1:
		return "# " + b.Text
	case model.BlockTypeHeading2:
		return "## " + b.Text
	case model.BlockTypeHeading3:
		return "### " + b.Text
	case model.BlockTypeBulletedListItem:
		return "- " + b.Text
	case model.BlockTypeNumberedListItem:
		return "1. " + b.Text
	case model.BlockTypeToDo:
		if b.Checked {
			return "- [x] " + b.Text
		}
		return "- [ ] " + b.Text
	case model.BlockTypeToggle, model.BlockTypeQuote:
		return "> " + b.Text
	case model.BlockTypeCode:
		return "```\n" + b.Text + "\n```"
	default:
		return b.Text
	}
}

// TreeMarkdown renders a tree in pre-order, one block per line, children
// indented two spaces per level.
func TreeMarkdown(tree *model.BlockTree) string {
	var lines []string
	tree.Walk(func(node *model.TreeNode, depth int) bool {
		indent := strings.Repeat(indentUnit, depth)
		for _, line := range strings.Split(BlockMarkdown(node.Block), "\n") {
			lines = append(lines, indent+line)
		}
		return true
	})
	return strings.Join(lines, "\n")
}

// PageMarkdown renders every tree of a page, separated by newlines.
func PageMarkdown(page model.ParsedPage) string {
	parts := make([]string, 0, len(page.Trees))
	for _, tree := range page.Trees {
		parts = append(parts, TreeMarkdown(tree))
	}
	return strings.Join(parts, "\n")
}

// PromptText renders pages as "Page Title: <title>" sections separated by a
// blank line.
func PromptText(pages []model.ParsedPage) string {
	sections := make([]string, 0, len(pages))
	for _, page := range pages {
		sections = append(sections, "Page Title: "+page.Title+"\n"+PageMarkdown(page))
	}
	return strings.Join(sections, "\n\n")
}
