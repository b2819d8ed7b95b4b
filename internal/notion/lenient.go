package notion

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/buger/jsonparser"
)

// errNoResults is returned when a body has no usable "results" array.
var errNoResults = errors.New("response has no results array")

// ParseBlockChildrenLenient decodes a block children response field by field.
//
// It is the fallback for bodies the typed decoder rejects. Fields with an
// unexpected type fall back to their zero value, and results that are not
// objects or have no id are skipped. It fails only when the body is not JSON
// or has no results array.
func ParseBlockChildrenLenient(body []byte) (*BlockChildrenResponse, error) {
	results, dataType, _, err := jsonparser.Get(body, "results")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNoResults, err)
	}
	if dataType != jsonparser.Array {
		return nil, fmt.Errorf("%w: got %s", errNoResults, dataType)
	}

	resp := &BlockChildrenResponse{
		Results:    make([]BlockRecord, 0),
		NextCursor: lenientString(body, "next_cursor"),
		HasMore:    lenientBool(body, "has_more"),
	}

	_, err = jsonparser.ArrayEach(results, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if err != nil || dataType != jsonparser.Object {
			return
		}
		if record, ok := lenientBlock(value); ok {
			resp.Results = append(resp.Results, record)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("lenient decode of results: %w", err)
	}

	return resp, nil
}

// lenientBlock extracts one block object. It reports false when the object
// has no id.
func lenientBlock(data []byte) (BlockRecord, bool) {
	id := lenientString(data, "id")
	if id == "" {
		return BlockRecord{}, false
	}

	r := BlockRecord{
		Object:         lenientString(data, "object"),
		ID:             id,
		Type:           lenientString(data, "type"),
		CreatedTime:    lenientTime(data, "created_time"),
		LastEditedTime: lenientTime(data, "last_edited_time"),
		HasChildren:    lenientBool(data, "has_children"),
		Archived:       lenientBool(data, "archived"),
	}

	if parent, dataType, _, err := jsonparser.Get(data, "parent"); err == nil && dataType == jsonparser.Object {
		r.Parent = &ParentRecord{
			Type:       lenientString(parent, "type"),
			PageID:     lenientString(parent, "page_id"),
			BlockID:    lenientString(parent, "block_id"),
			DatabaseID: lenientString(parent, "database_id"),
			Workspace:  lenientBool(parent, "workspace"),
		}
	}

	if r.Type != "" {
		if payload, dataType, _, err := jsonparser.Get(data, r.Type); err == nil && dataType == jsonparser.Object {
			r.Content = lenientContent(payload)
		}
	}

	return r, true
}

func lenientContent(payload []byte) BlockContent {
	c := BlockContent{
		RichText:   lenientRichText(payload, "rich_text"),
		Caption:    lenientRichText(payload, "caption"),
		Expression: lenientString(payload, "expression"),
		URL:        lenientString(payload, "url"),
		Title:      lenientString(payload, "title"),
		Checked:    lenientBool(payload, "checked"),
		Language:   lenientString(payload, "language"),
	}

	_, _ = jsonparser.ArrayEach(payload, func(cell []byte, dataType jsonparser.ValueType, _ int, err error) {
		if err != nil || dataType != jsonparser.Array {
			return
		}
		c.Cells = append(c.Cells, lenientSpans(cell))
	}, "cells")

	return c
}

// lenientRichText reads an array of rich text spans under key.
func lenientRichText(data []byte, key string) []RichText {
	spans, dataType, _, err := jsonparser.Get(data, key)
	if err != nil || dataType != jsonparser.Array {
		return nil
	}
	return lenientSpans(spans)
}

// lenientSpans reads the plain text of every span in a JSON array. Spans
// missing plain_text fall back to text.content.
func lenientSpans(array []byte) []RichText {
	var out []RichText
	_, _ = jsonparser.ArrayEach(array, func(span []byte, dataType jsonparser.ValueType, _ int, err error) {
		if err != nil || dataType != jsonparser.Object {
			return
		}
		text := lenientString(span, "plain_text")
		if text == "" {
			text = lenientString(span, "text", "content")
		}
		out = append(out, RichText{PlainText: text})
	})
	return out
}

func lenientString(data []byte, keys ...string) string {
	value, dataType, _, err := jsonparser.Get(data, keys...)
	if err != nil {
		return ""
	}
	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return string(value)
		}
		return s
	case jsonparser.Number, jsonparser.Boolean:
		return string(value)
	default:
		return ""
	}
}

func lenientBool(data []byte, keys ...string) bool {
	value, dataType, _, err := jsonparser.Get(data, keys...)
	if err != nil {
		return false
	}
	switch dataType {
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(value)
		return err == nil && b
	case jsonparser.String:
		b, err := strconv.ParseBool(string(value))
		return err == nil && b
	case jsonparser.Number:
		f, err := jsonparser.ParseFloat(value)
		return err == nil && f != 0
	default:
		return false
	}
}

func lenientTime(data []byte, keys ...string) time.Time {
	s := lenientString(data, keys...)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.000Z07:00", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
