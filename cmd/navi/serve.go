package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/Melvillian/navi/internal/config"
	"github.com/Melvillian/navi/internal/database"
	navilog "github.com/Melvillian/navi/internal/log"
	"github.com/Melvillian/navi/internal/mcpserver"
	"github.com/Melvillian/navi/internal/pipeline"
	"github.com/Melvillian/navi/internal/report"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve recent Notion changes to MCP clients",
		Long: `Serve starts a Model Context Protocol server with a recent_notes tool that
returns the same output as "navi crawl", and a crawl_history tool listing
earlier runs.

The server speaks MCP over stdio by default. Use --http to serve the
streamable HTTP transport instead.

Examples:
  # stdio, for assistants that launch navi themselves
  navi serve

  # HTTP on localhost
  navi serve --http 127.0.0.1:8080`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	addCrawlFlags(cmd)
	cmd.Flags().String("http", "", "Serve streamable HTTP on this address instead of stdio")

	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	httpAddr, err := cmd.Flags().GetString("http")
	if err != nil {
		return err
	}

	// stdout carries the protocol; logs go to stderr only.
	logger := setupLogger(cfg.Verbose)
	if httpAddr != "" {
		logger = navilog.NewSecureJSONLogger(os.Stderr, cfg.Verbose)
	}
	slog.SetDefault(logger)

	workspaces, err := cfg.ResolveWorkspaces(os.Getenv)
	if err != nil {
		return err
	}

	db, err := openHistory(cfg, logger)
	if err != nil {
		return err
	}

	source := newDigestSource(cfg, workspaces, db, logger)
	opts := mcpserver.Options{
		Version:   getVersion(),
		Workspace: workspaces[0].Name,
		Window:    cfg.Window,
	}
	if db != nil {
		defer db.Close()
		opts.History = db
	}
	s := mcpserver.New(source, opts)

	if httpAddr != "" {
		logger.Info("serving MCP over HTTP", "addr", httpAddr)
		return server.NewStreamableHTTPServer(s).Start(httpAddr)
	}
	return server.ServeStdio(s)
}

// digestSource runs the workspace pipeline on demand for MCP calls.
type digestSource struct {
	names  []string
	pc     pipeline.Config
	logger *slog.Logger
}

var _ mcpserver.DigestSource = (*digestSource)(nil)

func newDigestSource(cfg *config.Config, workspaces []config.Workspace, db *database.RunDB, logger *slog.Logger) *digestSource {
	names := make([]string, 0, len(workspaces))
	for _, ws := range workspaces {
		names = append(names, ws.Name)
	}
	return &digestSource{
		names:  names,
		pc:     pipelineConfig(cfg, newCrawlerFactory(cfg, workspaces, logger), db),
		logger: logger,
	}
}

// Digest crawls (or reads from cache) one configured workspace.
func (s *digestSource) Digest(ctx context.Context, workspace string, window time.Duration) (*report.Digest, error) {
	if !slices.Contains(s.names, workspace) {
		return nil, fmt.Errorf("unknown workspace %q (configured: %v)", workspace, s.names)
	}

	job := pipeline.NewJob(workspace, window)
	if err := pipeline.Default(s.pc, pipeline.WithLogger(s.logger)).Execute(ctx, job); err != nil {
		return nil, err
	}
	return report.NewDigest(job.Workspace, job.Window, job.StartedAt, job.Pages), nil
}
