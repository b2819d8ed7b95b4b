package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Melvillian/navi/internal/config"
	"github.com/Melvillian/navi/internal/pipeline"
	"github.com/Melvillian/navi/internal/report"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Print the Notion blocks edited in the last days",
		Long: `Crawl searches the workspace for pages edited within the window, finds the
blocks in those pages that changed, and prints each changed block with
everything nested under it.

Each page becomes a section starting with "Page Title:". Use --markdown for a
digest document or --json for structured output.

Examples:
  # Changes of the last week
  navi crawl

  # Changes of the last two days, as markdown, into a file
  navi crawl -d 2 --markdown -o notes/today.md

  # Two configured workspaces
  navi crawl -w work -w personal

  # Structured output of two workspaces, also printed as prompt text
  navi crawl -w work -w personal --json -o digest.json --tee

  # Print the last stored result for this window without calling Notion
  navi crawl -u`,
		Args: cobra.NoArgs,
		RunE: runCrawlCmd,
	}

	addCrawlFlags(cmd)
	cmd.Flags().BoolP("json", "j", false,
		"Output parsed pages as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output a markdown digest (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write output to the given file path (creates directories if needed)")
	cmd.Flags().Bool("tee", false,
		"Also print prompt text to stdout when --output is set")

	return cmd
}

func runCrawlCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.JSONOutput, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownOutput, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	if cfg.OutputFile, err = cmd.Flags().GetString("output"); err != nil {
		return err
	}
	if cfg.Tee, err = cmd.Flags().GetBool("tee"); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runCrawl(ctx, cfg, os.Getenv, cmd.OutOrStdout(), logger)
}

// runCrawl crawls every configured workspace and writes one digest per
// workspace, in configuration order.
func runCrawl(ctx context.Context, cfg *config.Config, getenv func(string) string, stdout io.Writer, logger *slog.Logger) (err error) {
	workspaces, err := cfg.ResolveWorkspaces(getenv)
	if err != nil {
		return err
	}

	db, err := openHistory(cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	factory := newCrawlerFactory(cfg, workspaces, logger)
	pc := pipelineConfig(cfg, factory, db)

	jobs := make([]*pipeline.Job, 0, len(workspaces))
	for _, ws := range workspaces {
		jobs = append(jobs, pipeline.NewJob(ws.Name, cfg.Window))
	}

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.Default(pc, pipeline.WithLogger(logger))
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
		pipeline.WithJobDone(func(job *pipeline.Job, _ int) {
			logJobDone(logger, job)
		}),
	)
	if _, err := bp.ProcessBatch(ctx, jobs); err != nil {
		return err
	}

	out, closeOut, err := openOutput(cfg, stdout)
	if err != nil {
		return err
	}
	defer func() { err = closeWith(err, closeOut) }()

	return writeJobs(jobs, newCrawlWriter(cfg, out, stdout), logger)
}

// closeWith calls closeFn and returns its error when err is nil. A file
// whose final flush fails is not a successful write.
func closeWith(err error, closeFn func() error) error {
	if cerr := closeFn(); cerr != nil && err == nil {
		return fmt.Errorf("failed to close output: %w", cerr)
	}
	return err
}

// newCrawlWriter is newReportWriter plus a prompt text copy on stdout when
// --tee is set and the output goes to a file.
func newCrawlWriter(cfg *config.Config, out, stdout io.Writer) report.Writer {
	writer := newReportWriter(cfg, out)
	if !cfg.Tee || cfg.OutputFile == "" {
		return writer
	}
	return report.NewMultiWriter(writer, report.NewPromptWriter(stdout))
}

// logJobDone logs the outcome of one finished workspace.
func logJobDone(logger *slog.Logger, job *pipeline.Job) {
	if job.Err != nil {
		return
	}
	roots := 0
	for _, p := range job.Pages {
		roots += p.RootCount()
	}
	logger.Info("workspace done",
		"workspace", job.Workspace,
		"pages", len(job.Pages),
		"roots", roots,
		"cached", job.Cached,
		"run_id", job.RunID,
	)
}

// writeJobs writes the digests of the successful jobs in one batch. Failed
// jobs are logged; the error is only returned when no job succeeded.
func writeJobs(jobs []*pipeline.Job, writer report.Writer, logger *slog.Logger) error {
	var errs []error
	digests := make([]*report.Digest, 0, len(jobs))
	for _, job := range jobs {
		if job.Err != nil {
			errs = append(errs, job.Err)
			continue
		}

		if job.Unchanged {
			logger.Info("nothing new since an earlier run", "workspace", job.Workspace)
		}

		digest := report.NewDigest(job.Workspace, job.Window, job.StartedAt, job.Pages)
		if n := digest.TruncatedCount(); n > 0 {
			logger.Warn("some pages were too large to search completely",
				"workspace", job.Workspace,
				"pages", n,
			)
		}
		digests = append(digests, digest)
	}

	if len(digests) == 0 && len(errs) > 0 {
		return errors.Join(append([]error{errNoResults}, errs...)...)
	}
	for _, err := range errs {
		logger.Warn("workspace skipped", "error", err)
	}

	if _, err := report.WriteAll(writer, digests); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
