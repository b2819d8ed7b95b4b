package crawler

import (
	"log/slog"
	"time"

	"github.com/Melvillian/navi/internal/notion"
)

const (
	// DefaultPageSize is the number of results requested per API call.
	DefaultPageSize = notion.MaxPageSize

	// DefaultRootBudget bounds the time RootLocator spends on one page.
	DefaultRootBudget = 30 * time.Second
)

// options holds the settings shared by every component of the package.
type options struct {
	logger     *slog.Logger
	pageSize   int
	rootBudget time.Duration
	now        func() time.Time
	excluder   Excluder
}

// Option configures a crawler component.
type Option func(*options)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPageSize sets the page size of paginated requests. Values outside
// 1..100 are ignored.
func WithPageSize(size int) Option {
	return func(o *options) {
		if size > 0 && size <= notion.MaxPageSize {
			o.pageSize = size
		}
	}
}

// WithRootBudget sets the time budget of root discovery for one page.
func WithRootBudget(budget time.Duration) Option {
	return func(o *options) {
		if budget > 0 {
			o.rootBudget = budget
		}
	}
}

// WithClock replaces time.Now, which tests use to drive the time budget.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithExcluder sets the filter that drops pages before they are walked.
func WithExcluder(excluder Excluder) Option {
	return func(o *options) {
		o.excluder = excluder
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:     slog.Default(),
		pageSize:   DefaultPageSize,
		rootBudget: DefaultRootBudget,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
