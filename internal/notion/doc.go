// Package notion is a small client for the parts of the Notion REST API that
// navi needs: searching for recently edited pages and listing the children of
// a block.
//
// # Decoding
//
// Responses are decoded into typed structs first. The API occasionally sends
// block payloads that do not match the documented schema; when that happens
// the client returns a *DecodeError that keeps the raw body, and callers can
// retry with ParseBlockChildrenLenient, which walks the JSON field by field
// and tolerates missing or mistyped values.
//
// # Errors
//
// Every error returned by the client is an *Error whose Kind tells network
// failures, decode failures and anything else apart:
//
//	if errors.Is(err, notion.ErrNetwork) { ... }
//
// Nothing is retried inside this package.
//
// # Rate limiting
//
// Notion allows an average of three requests per second per integration.
// Requests wait on a token bucket (golang.org/x/time/rate) before they are
// sent, so a long crawl slows down instead of collecting 429 responses.
package notion
