package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of workspaces crawled at once. Each
// workspace has its own token and its own API rate limit.
const DefaultConcurrency = 2

// BatchProcessor runs one pipeline per workspace concurrently.
type BatchProcessor struct {
	// pipelineFactory creates a fresh pipeline for each job.
	pipelineFactory func() *Pipeline

	concurrency int
	logger      *slog.Logger
	onJobDone   func(job *Job, index int)
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent jobs.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithJobDone sets a callback invoked from the worker goroutine after each
// job finishes, failed or not. The callback must be safe for concurrent use.
func WithJobDone(fn func(job *Job, index int)) BatchOption {
	return func(b *BatchProcessor) {
		b.onJobDone = fn
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch executes a pipeline for every job and returns the jobs in
// input order. A failed job keeps its error on the job and does not stop the
// others; the returned error is only set when the context ended.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, jobs []*Job) ([]*Job, error) {
	bp.logger.Info("starting batch processing",
		"workspaces", len(jobs),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				job.Canceled = true
				return ctx.Err()
			default:
			}

			bp.logger.Info("crawling workspace",
				"workspace", job.Workspace,
				"index", i+1,
				"total", len(jobs),
			)

			if err := bp.pipelineFactory().Execute(ctx, job); err != nil {
				bp.logger.Warn("workspace failed",
					"workspace", job.Workspace,
					"error", err,
				)
			}

			if bp.onJobDone != nil {
				bp.onJobDone(job, i)
			}
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch processing complete",
		"workspaces", len(jobs),
		"elapsed", time.Since(startTime),
	)

	return jobs, err
}
