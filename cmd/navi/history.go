package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/Melvillian/navi/internal/config"
	"github.com/Melvillian/navi/internal/database"
	"github.com/Melvillian/navi/internal/report"
)

const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List earlier crawl runs or print one of them",
		Long: `History lists the crawl runs stored in the history database
($XDG_DATA_HOME/navi/navi.db), newest first.

Examples:
  # List recent runs
  navi history

  # Only runs of one workspace
  navi history -w work

  # Print the output of run 12 again
  navi history --show 12`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("workspace", "w", "", "Only list runs of this workspace")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Maximum number of runs to list")
	cmd.Flags().Int64("show", 0, "Print the stored result of the run with this ID")
	cmd.Flags().BoolP("json", "j", false, "Print the shown run as JSON")
	cmd.Flags().BoolP("markdown", "m", false, "Print the shown run as a markdown digest")

	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()

	workspace, err := cmd.Flags().GetString("workspace")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	show, err := cmd.Flags().GetInt64("show")
	if err != nil {
		return err
	}
	if cfg.JSONOutput, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownOutput, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	if cfg.JSONOutput && cfg.MarkdownOutput {
		return config.ErrConflictingOutputFormats
	}

	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return err
	}
	defer db.Close()

	if show > 0 {
		return showRun(cmd.Context(), db, show, newReportWriter(cfg, cmd.OutOrStdout()))
	}
	return listRuns(cmd.Context(), db, workspace, limit, cmd.OutOrStdout())
}

// listRuns prints run metadata as a markdown table.
func listRuns(ctx context.Context, db *database.RunDB, workspace string, limit int, out io.Writer) error {
	runs, err := db.ListRuns(ctx, workspace, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		_, err := fmt.Fprintln(out, "No runs recorded yet.")
		return err
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.Workspace,
			r.Window.String(),
			strconv.Itoa(r.PageCount),
			strconv.Itoa(r.RootCount),
			strconv.Itoa(r.TruncatedPages),
			shortHash(r.DigestHash),
		})
	}

	return markdown.NewMarkdown(out).
		Table(markdown.TableSet{
			Header: []string{"ID", "Started", "Workspace", "Window", "Pages", "Blocks", "Truncated", "Digest"},
			Rows:   rows,
		}).
		Build()
}

// showRun writes a stored run with w.
func showRun(ctx context.Context, db *database.RunDB, id int64, w report.Writer) error {
	run, err := db.GetRun(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("run %d: %w", id, err)
	}
	if err != nil {
		return err
	}

	_, err = w.Write(report.NewDigest(run.Workspace, run.Window, run.StartedAt, run.Pages))
	return err
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
