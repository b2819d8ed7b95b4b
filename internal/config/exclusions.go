package config

import (
	"log/slog"
	"regexp"
)

// PageFilter drops pages whose title or URL matches an exclusion pattern.
type PageFilter struct {
	patterns []*regexp.Regexp
	logger   *slog.Logger
}

// NewPageFilter compiles patterns. Invalid patterns are logged and skipped,
// so they never exclude anything.
func NewPageFilter(patterns []string, logger *slog.Logger) *PageFilter {
	if logger == nil {
		logger = slog.Default()
	}

	f := &PageFilter{logger: logger}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			logger.Warn("ignoring invalid page pattern", "pattern", p, "error", err)
			continue
		}
		f.patterns = append(f.patterns, re)
	}
	return f
}

// ShouldExclude reports whether any pattern matches title or url.
func (f *PageFilter) ShouldExclude(title, url string) bool {
	if f == nil {
		return false
	}
	for _, re := range f.patterns {
		if re.MatchString(title) || re.MatchString(url) {
			f.logger.Debug("page excluded",
				"pattern", re.String(),
				"title", title,
				"url", url)
			return true
		}
	}
	return false
}

// Len returns the number of usable patterns.
func (f *PageFilter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.patterns)
}
