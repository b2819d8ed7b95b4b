package config

import "errors"

// Configuration errors. Validate and ResolveWorkspaces return them, possibly
// wrapped, so callers can match them with errors.Is.
var (
	// ErrNoToken is returned when a workspace has no integration token in
	// its environment variable.
	ErrNoToken = errors.New("no Notion integration token: set NOTION_TOKEN or the workspace's token_env")

	// ErrInvalidWindow is returned when the crawl window is not positive.
	ErrInvalidWindow = errors.New("invalid window: must be positive")

	// ErrInvalidPageSize is returned when the page size is outside 1..100.
	ErrInvalidPageSize = errors.New("invalid page size: must be between 1 and 100")

	// ErrInvalidRootBudget is returned when the root discovery budget is
	// not positive.
	ErrInvalidRootBudget = errors.New("invalid root budget: must be positive")

	// ErrInvalidRequestRate is returned when the API request rate is not
	// positive.
	ErrInvalidRequestRate = errors.New("invalid request rate: must be positive")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingOutputFormats is returned when both --json and
	// --markdown are given.
	ErrConflictingOutputFormats = errors.New("conflicting output formats: --json and --markdown cannot be used together")

	// ErrInvalidProxyAddress is returned when the proxy is not host:port.
	ErrInvalidProxyAddress = errors.New("invalid proxy address: expected host:port")
)
