// Package cli defines the command-line interface for reviewdeck.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// Options stores global CLI options shared between commands. Flag values
// override their environment counterparts when set.
type Options struct {
	LogLevel  string
	OutputDir string
	Repo      string
}

// Execute builds the root command, runs it with the provided args under ctx,
// and returns any error.
func Execute(ctx context.Context, args []string) error {
	rootCmd := newRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "reviewdeck",
		Short: "reviewdeck exports automated PR review threads into local markdown files",
		Long: "reviewdeck downloads the review threads and comments an automated reviewer " +
			"left on a GitHub pull request, renders one markdown file per finding, and lets " +
			"you resolve threads remotely with a matching local state transition.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides REVIEWDECK_LOG_LEVEL")
	cmd.PersistentFlags().StringVar(&opts.OutputDir, "output-dir", "", "Export root directory; overrides REVIEWDECK_OUTPUT_DIR")
	cmd.PersistentFlags().StringVar(&opts.Repo, "repo", "", "owner/repo slug; overrides REVIEWDECK_REPO")

	cmd.AddCommand(
		newDownloadCommand(opts),
		newResolveCommand(opts),
		newReadCommand(opts),
	)

	return cmd
}
