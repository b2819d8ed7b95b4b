package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Melvillian/navi/internal/config"
)

// NewRootCmd creates the root command for navi.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "navi",
		Short: "Summarize what changed in your Notion workspace",
		Long: `navi finds the Notion blocks you edited recently and prints them with
their nested content, one section per page.

The integration token is read from NOTION_TOKEN (or the variable a workspace
names in .navi). .env.local and .env in the current directory are loaded
first; set ENV_FILE to load a different file instead.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return config.LoadEnvFiles()
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
