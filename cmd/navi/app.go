package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Melvillian/navi/internal/config"
	"github.com/Melvillian/navi/internal/crawler"
	"github.com/Melvillian/navi/internal/database"
	navilog "github.com/Melvillian/navi/internal/log"
	"github.com/Melvillian/navi/internal/notion"
	"github.com/Melvillian/navi/internal/pipeline"
	"github.com/Melvillian/navi/internal/report"
)

// addCrawlFlags registers the flags shared by crawl and serve.
func addCrawlFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("days", "d", int(config.DefaultWindow/(24*time.Hour)),
		"How many days back to look for edited blocks")
	cmd.Flags().StringArrayP("workspace", "w", nil,
		"Workspace from the configuration file to crawl (repeatable, default \"default\")")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .navi in current or home directory)")
	cmd.Flags().BoolP("use-cache", "u", false,
		"Reuse the latest stored result for the same window instead of crawling")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of workspaces crawled concurrently")
	cmd.Flags().Int("page-size", config.DefaultPageSize,
		"Page size of Notion API requests (1-100)")
	cmd.Flags().Duration("root-budget", config.DefaultRootBudget,
		"Time allowed to search one page for changed blocks")
	cmd.Flags().Float64("rate", config.DefaultRequestsPerSecond,
		"Maximum Notion API requests per second per workspace")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each API request")
	cmd.Flags().String("proxy", "",
		"SOCKS5 proxy address for API requests (host:port)")
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a redacting text logger on stderr.
func setupLogger(verbose bool) *slog.Logger {
	return navilog.NewSecureLogger(os.Stderr, verbose)
}

// buildConfig creates a Config from the crawl flags of cmd.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	days, err := flags.GetInt("days")
	if err != nil {
		return nil, err
	}
	cfg.Window = time.Duration(days) * 24 * time.Hour

	if cfg.Workspaces, err = flags.GetStringArray("workspace"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	if cfg.UseCache, err = flags.GetBool("use-cache"); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
		return nil, err
	}
	if cfg.PageSize, err = flags.GetInt("page-size"); err != nil {
		return nil, err
	}
	if cfg.RootBudget, err = flags.GetDuration("root-budget"); err != nil {
		return nil, err
	}
	if cfg.RequestsPerSecond, err = flags.GetFloat64("rate"); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.ProxyAddress, err = flags.GetString("proxy"); err != nil {
		return nil, err
	}

	noHistory, err := flags.GetBool("no-history")
	if err != nil {
		return nil, err
	}
	if noHistory {
		cfg.DBDir = ""
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// A missing file is only an error when the user named one.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		if cfg.File, err = config.LoadConfigFile(configPath); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	default:
		cfg.File = &config.File{Workspaces: make(map[string]config.WorkspaceConfig)}
	}

	return cfg, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// newCrawlerFactory builds one Notion client and crawler per workspace.
func newCrawlerFactory(cfg *config.Config, workspaces []config.Workspace, logger *slog.Logger) pipeline.CrawlerFactory {
	byName := make(map[string]config.Workspace, len(workspaces))
	for _, ws := range workspaces {
		byName[ws.Name] = ws
	}

	return func(name string) (pipeline.Crawler, error) {
		ws, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown workspace %q", name)
		}

		wsLogger := logger.With("workspace", name)
		clientOpts := []notion.ClientOption{
			notion.WithBaseURL(cfg.APIBaseURL),
			notion.WithVersion(cfg.APIVersion),
			notion.WithRateLimit(cfg.RequestsPerSecond),
			notion.WithTimeout(cfg.Timeout),
			notion.WithLogger(wsLogger),
		}
		if cfg.ProxyAddress != "" {
			clientOpts = append(clientOpts, notion.WithSOCKS5Proxy(cfg.ProxyAddress))
		}

		client, err := notion.NewClient(ws.Token, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create Notion client: %w", err)
		}

		return crawler.New(client,
			crawler.WithLogger(wsLogger),
			crawler.WithPageSize(cfg.PageSize),
			crawler.WithRootBudget(cfg.RootBudget),
			crawler.WithExcluder(config.NewPageFilter(ws.PagePatterns, wsLogger)),
		), nil
	}
}

// openHistory opens the run history, or returns nil when it is disabled.
func openHistory(cfg *config.Config, logger *slog.Logger) (*database.RunDB, error) {
	if cfg.DBDir == "" {
		return nil, nil
	}
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	logger.Debug("history database opened", "path", db.Path())
	return db, nil
}

// pipelineConfig wires the crawler factory and optional history into the
// workspace pipeline.
func pipelineConfig(cfg *config.Config, factory pipeline.CrawlerFactory, db *database.RunDB) pipeline.Config {
	pc := pipeline.Config{Factory: factory, UseCache: cfg.UseCache}
	if db != nil {
		pc.Store = db
	}
	return pc
}

// openOutput returns the file named by cfg.OutputFile, or stdout.
func openOutput(cfg *config.Config, stdout io.Writer) (io.Writer, func() error, error) {
	if cfg.OutputFile == "" {
		return stdout, func() error { return nil }, nil
	}

	if dir := filepath.Dir(cfg.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Notes may be private; only the owner can read the file.
	f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// newReportWriter selects the output format.
func newReportWriter(cfg *config.Config, w io.Writer) report.Writer {
	switch {
	case cfg.JSONOutput:
		return report.NewJSONWriter(w, report.WithPrettyPrint())
	case cfg.MarkdownOutput:
		return report.NewMarkdownWriter(w)
	default:
		return report.NewPromptWriter(w)
	}
}

// errNoResults is returned when every workspace failed.
var errNoResults = errors.New("no workspace could be crawled")
