package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Melvillian/navi/internal/database"
	"github.com/Melvillian/navi/internal/model"
)

// Crawler crawls one workspace for changes within a window.
type Crawler interface {
	CrawlSince(ctx context.Context, window time.Duration) ([]model.ParsedPage, error)
}

// CrawlerFactory builds the crawler for a workspace.
type CrawlerFactory func(workspace string) (Crawler, error)

// RunStore is the run history used by the cache and record steps.
type RunStore interface {
	SaveRun(ctx context.Context, run *database.Run) (int64, error)
	LatestRun(ctx context.Context, workspace string, window time.Duration) (*database.Run, error)
	HasDigest(ctx context.Context, workspace, hash string) (bool, error)
}

var _ RunStore = (*database.RunDB)(nil)

// CacheStep fills a job from the most recent stored run with the same
// workspace and window.
type CacheStep struct {
	store  RunStore
	logger *slog.Logger
}

// NewCacheStep creates a cache step reading from store.
func NewCacheStep(store RunStore, logger *slog.Logger) *CacheStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &CacheStep{store: store, logger: logger}
}

// Name returns the step name.
func (s *CacheStep) Name() string {
	return "cache"
}

// Do loads the cached run. A missing run is not an error; the crawl step
// runs instead.
func (s *CacheStep) Do(ctx context.Context, job *Job) error {
	run, err := s.store.LatestRun(ctx, job.Workspace, job.Window)
	if errors.Is(err, database.ErrNotFound) {
		s.logger.Info("no cached run, crawling", "workspace", job.Workspace, "window", job.Window)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load cached run: %w", err)
	}

	job.Pages = run.Pages
	job.Cached = true
	job.RunID = run.ID
	s.logger.Info("using cached run",
		"workspace", job.Workspace,
		"run", run.ID,
		"started_at", run.StartedAt,
	)
	return nil
}

// CrawlStep crawls the job's workspace.
type CrawlStep struct {
	factory CrawlerFactory
	logger  *slog.Logger
}

// NewCrawlStep creates a crawl step building crawlers with factory.
func NewCrawlStep(factory CrawlerFactory, logger *slog.Logger) *CrawlStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &CrawlStep{factory: factory, logger: logger}
}

// Name returns the step name.
func (s *CrawlStep) Name() string {
	return "crawl"
}

// Do executes the crawl unless the job was already filled from cache.
func (s *CrawlStep) Do(ctx context.Context, job *Job) error {
	if job.Cached {
		s.logger.Debug("skipping crawl, result cached", "workspace", job.Workspace)
		return nil
	}

	c, err := s.factory(job.Workspace)
	if err != nil {
		return fmt.Errorf("workspace %s: %w", job.Workspace, err)
	}

	start := time.Now()
	pages, err := c.CrawlSince(ctx, job.Window)
	if err != nil {
		return fmt.Errorf("workspace %s: %w", job.Workspace, err)
	}
	job.Pages = pages

	roots := 0
	for _, p := range pages {
		roots += p.RootCount()
	}
	s.logger.Info("crawl completed",
		"workspace", job.Workspace,
		"pages", len(pages),
		"roots", roots,
		"elapsed", time.Since(start),
	)
	return nil
}

// RecordStep stores crawl results in run history.
type RecordStep struct {
	store  RunStore
	logger *slog.Logger
}

// NewRecordStep creates a record step writing to store.
func NewRecordStep(store RunStore, logger *slog.Logger) *RecordStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordStep{store: store, logger: logger}
}

// Name returns the step name.
func (s *RecordStep) Name() string {
	return "record"
}

// Do saves the job as a run. Cached jobs are not stored again.
func (s *RecordStep) Do(ctx context.Context, job *Job) error {
	if job.Cached {
		return nil
	}

	hash, err := database.DigestHash(job.Pages)
	if err != nil {
		return err
	}
	seen, err := s.store.HasDigest(ctx, job.Workspace, hash)
	if err != nil {
		return err
	}
	job.Unchanged = seen

	id, err := s.store.SaveRun(ctx, &database.Run{
		Workspace: job.Workspace,
		Window:    job.Window,
		StartedAt: job.StartedAt,
		Pages:     job.Pages,
	})
	if err != nil {
		return err
	}
	job.RunID = id

	s.logger.Debug("run recorded", "workspace", job.Workspace, "run", id, "unchanged", seen)
	return nil
}

// Config selects the steps of a workspace pipeline.
type Config struct {
	// Factory builds crawlers. Required.
	Factory CrawlerFactory

	// Store is the run history. Nil disables the cache and record steps.
	Store RunStore

	// UseCache adds the cache step in front of the crawl.
	UseCache bool
}

// Default builds the standard workspace pipeline: cache (optional), crawl,
// record (when a store is configured).
func Default(cfg Config, opts ...Option) *Pipeline {
	p := New(opts...)

	if cfg.UseCache && cfg.Store != nil {
		p.AddStep(NewCacheStep(cfg.Store, p.logger))
	}
	p.AddStep(NewCrawlStep(cfg.Factory, p.logger))
	if cfg.Store != nil {
		p.AddStep(NewRecordStep(cfg.Store, p.logger))
	}

	return p
}
