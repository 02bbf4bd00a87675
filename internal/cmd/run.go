package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/smtprogress/internal/config"
	"github.com/harrison/smtprogress/internal/counter"
	"github.com/harrison/smtprogress/internal/display"
	"github.com/harrison/smtprogress/internal/logger"
	"github.com/harrison/smtprogress/internal/progress"
	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulated parallel workload behind a progress bar",
		Long: `Run splits --total units of work across --workers goroutines. Each worker
owns one counter lane and sleeps --work per unit before reporting it.

Configuration is loaded from .smtprogress/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  smtprogress run --total 200 --name Loading --workers 2
  smtprogress run --total 1000 --work 2ms --interval 50ms
  SMT_QUIET=1 smtprogress run --total 500   # no bar, summary only`,
		Args: cobra.NoArgs,
		RunE: runCommand,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .smtprogress/config.yaml)")
	cmd.Flags().Uint64("total", 100, "Number of units of work")
	cmd.Flags().String("name", "", "Label drawn in front of the bar")
	cmd.Flags().Int("workers", runtime.GOMAXPROCS(0), "Number of worker goroutines")
	cmd.Flags().Duration("work", 10*time.Millisecond, "Simulated time spent on each unit")
	cmd.Flags().Duration("interval", 0, "Delay between redraws (e.g., 100ms)")
	cmd.Flags().Int("lanes", -1, "Counter lanes (0 = GOMAXPROCS, -1 = use config)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().Bool("quiet", false, "Suppress the progress bar")

	return cmd
}

// runCommand implements the run command logic
func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadCommandConfig(cmd)
	if err != nil {
		return err
	}
	mergeRunFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	total, _ := cmd.Flags().GetUint64("total")
	workers, _ := cmd.Flags().GetInt("workers")
	work, _ := cmd.Flags().GetDuration("work")
	if workers < 1 {
		return fmt.Errorf("--workers must be >= 1, got %d", workers)
	}
	if work < 0 {
		return fmt.Errorf("--work must be >= 0, got %v", work)
	}

	stderr := cmd.ErrOrStderr()
	log := logger.NewConsoleLogger(stderr, cfg.LogLevel)

	lanes := cfg.Lanes
	if lanes == 0 {
		lanes = counter.DefaultSlots()
	}
	if workers > lanes {
		display.WarnWidenedLanes(fmt.Sprintf("%d workers requested, %d lanes available; using %d lanes", workers, lanes, workers)).Display(stderr)
		lanes = workers
	}

	verbosity := progress.VerbosityEnv
	if cfg.Quiet {
		verbosity = progress.VerbosityOff
	}

	runID := uuid.New().String()
	log.LogInfo(fmt.Sprintf("Run %s: %d units across %d workers", runID, total, workers))

	start := time.Now()
	ind := progress.NewWithOptions(total, progress.Options{
		Name:      cfg.Name,
		Output:    stderr,
		Interval:  cfg.Interval,
		Lanes:     lanes,
		Verbosity: verbosity,
		Logger:    log,
	})

	runWorkload(cmd.Context(), ind, total, workers, work)

	if err := ind.Close(); err != nil {
		return fmt.Errorf("progress output failed: %w", err)
	}

	log.LogRunSummary(logger.RunSummary{
		RunID:    runID,
		Name:     ind.Name(),
		Total:    total,
		Done:     ind.Sum(),
		Workers:  workers,
		Lanes:    ind.Lanes(),
		Duration: time.Since(start),
	})

	return nil
}

// runWorkload splits total units across workers as evenly as possible.
// Worker w owns lane w for the whole run.
func runWorkload(ctx context.Context, ind *progress.Indicator, total uint64, workers int, work time.Duration) {
	var wg sync.WaitGroup
	for w := range workers {
		units := total / uint64(workers)
		if uint64(w) < total%uint64(workers) {
			units++
		}

		wg.Add(1)
		go func(ctx context.Context) {
			defer wg.Done()
			for range units {
				if work > 0 {
					time.Sleep(work)
				}
				ind.AdvanceContext(ctx)
			}
		}(progress.WithLane(ctx, w))
	}
	wg.Wait()
}

// loadCommandConfig loads --config if given, otherwise .smtprogress/config.yaml
// in the working directory.
func loadCommandConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		return cfg, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.LoadConfigFromDir(cwd)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// mergeRunFlags applies only the flags the user actually set.
func mergeRunFlags(cmd *cobra.Command, cfg *config.Config) {
	var (
		name     *string
		interval *time.Duration
		lanes    *int
		logLevel *string
		quiet    *bool
	)

	flags := cmd.Flags()
	if flags.Changed("name") {
		v, _ := flags.GetString("name")
		name = &v
	}
	if flags.Changed("interval") {
		v, _ := flags.GetDuration("interval")
		interval = &v
	}
	if v, _ := flags.GetInt("lanes"); v >= 0 {
		lanes = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		logLevel = &v
	}
	if flags.Changed("quiet") {
		v, _ := flags.GetBool("quiet")
		quiet = &v
	}

	cfg.MergeWithFlags(name, interval, lanes, logLevel, quiet)
}
