package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// rejectedToken is refused by fakeNotion with a server error.
const rejectedToken = "secret_rejected"

// fakeNotion serves a workspace with one page "Journal" holding one block
// "today" edited an hour ago.
type fakeNotion struct {
	*httptest.Server

	requests atomic.Int32
	fail     atomic.Bool
}

func newFakeNotion(t *testing.T) *fakeNotion {
	t.Helper()

	edited := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	f := &fakeNotion{}

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		w.Header().Set("Content-Type", "application/json")

		if f.fail.Load() || r.Header.Get("Authorization") == "Bearer "+rejectedToken {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"object":"error","status":500,"code":"internal_server_error","message":"down"}`)
			return
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"object":"error","status":401,"code":"unauthorized","message":"no token"}`)
			return
		}

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/search":
			fmt.Fprintf(w, `{"results":[{"object":"page","id":"p1","url":"https://www.notion.so/Journal-p1","created_time":%q,"last_edited_time":%q}],"has_more":false,"next_cursor":null}`, edited, edited)
		case r.URL.Path == "/blocks/p1/children":
			fmt.Fprintf(w, `{"results":[{"object":"block","id":"b1","type":"paragraph","created_time":%q,"last_edited_time":%q,"has_children":false,"paragraph":{"rich_text":[{"plain_text":"today"}]}}],"has_more":false,"next_cursor":null}`, edited, edited)
		default:
			fmt.Fprint(w, `{"results":[],"has_more":false,"next_cursor":null}`)
		}
	}))
	t.Cleanup(f.Close)

	return f
}

// env returns a getenv func backed by vars.
func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}
