package cmd

import (
	"fmt"

	"github.com/harrison/smtprogress/internal/display"
	"github.com/spf13/cobra"
)

// NewRenderCommand creates the render command
func NewRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print a single progress line for the given state",
		Long: `Render prints the line the progress reporter would draw for --sum units
done out of --total, followed by a newline, to stdout.

Examples:
  smtprogress render --sum 1 --total 4
  smtprogress render --sum 200 --total 200 --name Loading`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, _ := cmd.Flags().GetUint64("sum")
			total, _ := cmd.Flags().GetUint64("total")
			name, _ := cmd.Flags().GetString("name")

			_, err := fmt.Fprintln(cmd.OutOrStdout(), display.RenderBar(sum, total, name))
			return err
		},
	}

	cmd.Flags().Uint64("sum", 0, "Units of work completed")
	cmd.Flags().Uint64("total", 100, "Total units of work")
	cmd.Flags().String("name", "Progress", "Label drawn in front of the bar")

	return cmd
}
