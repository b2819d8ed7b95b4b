package report

import (
	"testing"
	"time"

	"github.com/Melvillian/navi/internal/model"
)

func textBlock(id string, bt model.BlockType, text string) model.Block {
	return model.Block{ID: model.BlockID(id), Type: bt, Text: text, UpdatedAt: time.Date(2024, 8, 19, 10, 0, 0, 0, time.UTC)}
}

// TestBlockMarkdown tests the per-type prefixes.
func TestBlockMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		block model.Block
		want  string
	}{
		{"heading 1", textBlock("1", model.BlockTypeHeading1, "Heading 1"), "# Heading 1"},
		{"heading 2", textBlock("2", model.BlockTypeHeading2, "Heading 2"), "## Heading 2"},
		{"heading 3", textBlock("3", model.BlockTypeHeading3, "Heading 3"), "### Heading 3"},
		{"bulleted list item", textBlock("4", model.BlockTypeBulletedListItem, "Bullet point"), "- Bullet point"},
		{"numbered list item", textBlock("5", model.BlockTypeNumberedListItem, "Step"), "1. Step"},
		{"unchecked to-do", textBlock("6", model.BlockTypeToDo, "Task"), "- [ ] Task"},
		{"toggle", textBlock("7", model.BlockTypeToggle, "More"), "> More"},
		{"quote", textBlock("8", model.BlockTypeQuote, "Said"), "> Said"},
		{"code", textBlock("9", model.BlockTypeCode, "go test ./..."), "```\ngo test ./...\n```"},
		{"paragraph", textBlock("10", model.BlockTypeParagraph, "Normal text"), "Normal text"},
		{"unsupported", textBlock("11", model.BlockTypeUnsupported, "x"), "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := BlockMarkdown(tt.block); got != tt.want {
				t.Errorf("BlockMarkdown() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("checked to-do", func(t *testing.T) {
		t.Parallel()

		b := textBlock("12", model.BlockTypeToDo, "Done")
		b.Checked = true
		if got := BlockMarkdown(b); got != "- [x] Done" {
			t.Errorf("BlockMarkdown() = %q, want %q", got, "- [x] Done")
		}
	})
}

// sampleTree builds:
//
//	# Plan
//	  - one
//	    - nested
//	  - two
func sampleTree() *model.BlockTree {
	tree := model.NewBlockTree(textBlock("h", model.BlockTypeHeading1, "Plan"))
	one := tree.Root.AddChild(textBlock("a", model.BlockTypeBulletedListItem, "one"))
	one.AddChild(textBlock("b", model.BlockTypeBulletedListItem, "nested"))
	tree.Root.AddChild(textBlock("c", model.BlockTypeBulletedListItem, "two"))
	return tree
}

// TestTreeMarkdown tests indentation of nested blocks.
func TestTreeMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("children are indented two spaces per level", func(t *testing.T) {
		t.Parallel()

		want := "# Plan\n  - one\n    - nested\n  - two"
		if got := TreeMarkdown(sampleTree()); got != want {
			t.Errorf("TreeMarkdown() =\n%s\nwant\n%s", got, want)
		}
	})

	t.Run("every line of a nested code block is indented", func(t *testing.T) {
		t.Parallel()

		tree := model.NewBlockTree(textBlock("p", model.BlockTypeParagraph, "Snippet"))
		tree.Root.AddChild(textBlock("c", model.BlockTypeCode, "x := 1"))

		want := "Snippet\n  ```\n  x := 1\n  ```"
		if got := TreeMarkdown(tree); got != want {
			t.Errorf("TreeMarkdown() =\n%s\nwant\n%s", got, want)
		}
	})
}

// TestPromptText tests the page sections handed to the assistant.
func TestPromptText(t *testing.T) {
	t.Parallel()

	t.Run("pages are titled and separated by a blank line", func(t *testing.T) {
		t.Parallel()

		pages := []model.ParsedPage{
			{PageID: "p1", Title: "Weekly Review", Trees: []*model.BlockTree{sampleTree()}},
			{PageID: "p2", Title: "Ideas", Trees: []*model.BlockTree{
				model.NewBlockTree(textBlock("x", model.BlockTypeParagraph, "first")),
				model.NewBlockTree(textBlock("y", model.BlockTypeToDo, "second")),
			}},
		}

		want := "Page Title: Weekly Review\n# Plan\n  - one\n    - nested\n  - two" +
			"\n\n" +
			"Page Title: Ideas\nfirst\n- [ ] second"
		if got := PromptText(pages); got != want {
			t.Errorf("PromptText() =\n%s\nwant\n%s", got, want)
		}
	})

	t.Run("no pages gives empty text", func(t *testing.T) {
		t.Parallel()

		if got := PromptText(nil); got != "" {
			t.Errorf("expected empty text, got %q", got)
		}
	})
}
