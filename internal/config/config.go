package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/Melvillian/navi/internal/notion"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "navi"

	// DefaultWindow is how far back a crawl looks for edits.
	DefaultWindow = 7 * 24 * time.Hour

	// DefaultPageSize is the page size of paginated API requests. The API
	// rejects anything above 100.
	DefaultPageSize = notion.MaxPageSize

	// DefaultRootBudget bounds root discovery within one page.
	DefaultRootBudget = 30 * time.Second

	// DefaultRequestsPerSecond matches the average rate Notion allows per
	// integration.
	DefaultRequestsPerSecond = notion.DefaultRequestsPerSecond

	// DefaultTimeout applies to each HTTP request.
	DefaultTimeout = notion.DefaultTimeout

	// DefaultBatchSize is the number of workspaces crawled concurrently.
	DefaultBatchSize = 2

	// DefaultTokenEnv is the environment variable holding the integration
	// token of a workspace that does not name its own.
	DefaultTokenEnv = "NOTION_TOKEN"

	// DefaultWorkspace is the workspace name used when none is given.
	DefaultWorkspace = "default"
)

// Config holds all configuration options for navi. It is filled from CLI
// flags and passed down explicitly.
type Config struct {
	// APIBaseURL is the root of the Notion REST API.
	APIBaseURL string

	// APIVersion is sent as the Notion-Version header.
	APIVersion string

	// Window is how far back from now a crawl looks for edits.
	Window time.Duration

	// PageSize is the page size of search and block children requests.
	PageSize int

	// RootBudget bounds the time spent locating changed blocks in one page.
	// The result for that page is marked truncated when it runs out.
	RootBudget time.Duration

	// RequestsPerSecond throttles API calls per workspace.
	RequestsPerSecond float64

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// ProxyAddress is an optional SOCKS5 proxy in "host:port" form.
	ProxyAddress string

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is an explicit .navi file path. When empty,
	// FindConfigFile searches the current and home directories.
	ConfigFilePath string

	// File is the parsed configuration file, if any.
	File *File

	// Workspaces lists the workspace names to crawl. Empty means
	// DefaultWorkspace.
	Workspaces []string

	// BatchSize is the number of workspaces crawled concurrently.
	BatchSize int

	// JSONOutput prints parsed pages as JSON instead of prompt text.
	JSONOutput bool

	// MarkdownOutput prints a markdown digest instead of prompt text.
	MarkdownOutput bool

	// OutputFile receives the output instead of stdout when set.
	OutputFile string

	// Tee also prints prompt text to stdout while OutputFile is written.
	Tee bool

	// UseCache reuses the latest stored digest for the same workspace and
	// window instead of crawling.
	UseCache bool

	// DBDir is the directory of the run history database. Empty disables
	// the history.
	DBDir string
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		APIBaseURL:        notion.DefaultBaseURL,
		APIVersion:        notion.DefaultVersion,
		Window:            DefaultWindow,
		PageSize:          DefaultPageSize,
		RootBudget:        DefaultRootBudget,
		RequestsPerSecond: DefaultRequestsPerSecond,
		Timeout:           DefaultTimeout,
		BatchSize:         DefaultBatchSize,
		DBDir:             XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for navi.
// On Linux: ~/.local/share/navi
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for navi.
// On Linux: ~/.config/navi
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// WorkspaceNames returns the workspaces to crawl.
func (c *Config) WorkspaceNames() []string {
	if len(c.Workspaces) == 0 {
		return []string{DefaultWorkspace}
	}
	return c.Workspaces
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if c.Window <= 0 {
		return ErrInvalidWindow
	}
	if c.PageSize < 1 || c.PageSize > notion.MaxPageSize {
		return ErrInvalidPageSize
	}
	if c.RootBudget <= 0 {
		return ErrInvalidRootBudget
	}
	if c.RequestsPerSecond <= 0 {
		return ErrInvalidRequestRate
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.JSONOutput && c.MarkdownOutput {
		return ErrConflictingOutputFormats
	}
	if c.ProxyAddress != "" && !notion.IsValidProxyAddress(c.ProxyAddress) {
		return ErrInvalidProxyAddress
	}
	return nil
}
