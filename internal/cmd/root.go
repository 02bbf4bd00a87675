package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for smtprogress
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smtprogress",
		Short: "Terminal progress bars for parallel computations",
		Long: `smtprogress draws a self-overwriting progress bar on stderr while
goroutines report completed units of work into a sharded counter.

Set SMT_QUIET=true (or any positive integer) to suppress the bar.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewRenderCommand())
	cmd.AddCommand(NewConfigCommand())

	return cmd
}
