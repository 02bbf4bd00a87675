package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/harrison/smtprogress/internal/config"
	"github.com/harrison/smtprogress/internal/filelock"
	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage .smtprogress/config.yaml",
	}

	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := targetDir(cmd)
			if err != nil {
				return err
			}
			force, _ := cmd.Flags().GetBool("force")

			data, err := config.DefaultConfig().Marshal()
			if err != nil {
				return err
			}

			path := config.ConfigPath(dir)
			if force {
				err = filelock.LockAndWrite(path, data)
			} else {
				err = filelock.WriteIfAbsent(path, data)
			}
			if errors.Is(err, filelock.ErrExists) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			if err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().String("dir", "", "Project directory (default: current directory)")
	cmd.Flags().Bool("force", false, "Overwrite an existing config file")

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := targetDir(cmd)
			if err != nil {
				return err
			}

			cfg, err := config.LoadConfigFromDir(dir)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			data, err := cfg.Marshal()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, string(data))
			fmt.Fprintf(out, "# %s: quiet=%t\n", config.QuietEnvVar, config.QuietFromEnv())
			return nil
		},
	}

	cmd.Flags().String("dir", "", "Project directory (default: current directory)")

	return cmd
}

func targetDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("dir")
	if dir != "" {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return cwd, nil
}
