package notion

import (
	"testing"
	"time"
)

// TestParseBlockChildrenLenient tests the fallback decoder.
func TestParseBlockChildrenLenient(t *testing.T) {
	t.Parallel()

	t.Run("recovers blocks with mistyped fields", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{
			"results": [
				{"object": "block", "id": "a", "type": "paragraph", "has_children": "true",
				 "created_time": "2024-08-19T10:00:00.000Z", "last_edited_time": 12345,
				 "paragraph": {"rich_text": [{"plain_text": "Hello"}, {"text": {"content": "world"}}]}},
				{"object": "block", "type": "paragraph"},
				"not an object",
				{"object": "block", "id": "b", "type": "table_row",
				 "table_row": {"cells": [[{"plain_text": "x"}], [{"plain_text": "y"}, {"plain_text": "z"}]]}}
			],
			"next_cursor": "next",
			"has_more": true
		}`)

		resp, err := ParseBlockChildrenLenient(body)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Results) != 2 {
			t.Fatalf("expected 2 recovered blocks, got %d", len(resp.Results))
		}

		a := resp.Results[0]
		if a.ID != "a" || !a.HasChildren {
			t.Errorf("unexpected block a: %+v", a)
		}
		if !a.LastEditedTime.IsZero() {
			t.Errorf("expected mistyped time to fall back to zero, got %v", a.LastEditedTime)
		}
		if want := time.Date(2024, 8, 19, 10, 0, 0, 0, time.UTC); !a.CreatedTime.Equal(want) {
			t.Errorf("expected created time %v, got %v", want, a.CreatedTime)
		}
		if len(a.Content.RichText) != 2 || a.Content.RichText[1].PlainText != "world" {
			t.Errorf("unexpected rich text: %+v", a.Content.RichText)
		}

		b := resp.Results[1]
		if len(b.Content.Cells) != 2 || len(b.Content.Cells[1]) != 2 {
			t.Errorf("unexpected cells: %+v", b.Content.Cells)
		}
		if resp.NextCursor != "next" || !resp.HasMore {
			t.Errorf("unexpected pagination: %+v", resp)
		}
	})

	t.Run("body without results fails", func(t *testing.T) {
		t.Parallel()

		if _, err := ParseBlockChildrenLenient([]byte(`{"object":"list"}`)); err == nil {
			t.Error("expected error for missing results")
		}
	})

	t.Run("results that is not an array fails", func(t *testing.T) {
		t.Parallel()

		if _, err := ParseBlockChildrenLenient([]byte(`{"results":{}}`)); err == nil {
			t.Error("expected error for non-array results")
		}
	})

	t.Run("non JSON body fails", func(t *testing.T) {
		t.Parallel()

		if _, err := ParseBlockChildrenLenient([]byte(`<html>bad gateway</html>`)); err == nil {
			t.Error("expected error for non JSON body")
		}
	})
}
