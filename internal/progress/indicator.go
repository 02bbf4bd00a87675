package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/harrison/smtprogress/internal/config"
	"github.com/harrison/smtprogress/internal/counter"
)

// DefaultName labels bars created without a name.
const DefaultName = "Progress"

// Verbosity selects whether an Indicator draws its bar.
type Verbosity int

const (
	// VerbosityEnv resolves SMT_QUIET once at construction.
	VerbosityEnv Verbosity = iota
	// VerbosityOn always draws the bar.
	VerbosityOn
	// VerbosityOff never draws the bar and starts no reporter.
	VerbosityOff
)

// Logger receives reporter lifecycle messages.
type Logger interface {
	LogDebug(message string)
}

// Options configures an Indicator. Zero values select the defaults.
type Options struct {
	// Name is the bar label. Default: "Progress"
	Name string

	// Output receives the bar. Default: os.Stderr
	Output io.Writer

	// Interval is the delay between redraws. Default: 100ms
	Interval time.Duration

	// Lanes is the number of counter slots. Default: GOMAXPROCS
	Lanes int

	// Verbosity decides whether the reporter runs. Default: VerbosityEnv
	Verbosity Verbosity

	// Logger receives debug messages from the reporter. Default: none
	Logger Logger
}

// Indicator tracks progress toward a fixed total.
type Indicator struct {
	total    uint64
	name     string
	interval time.Duration
	out      io.Writer
	logger   Logger
	verbose  bool
	counter  *counter.Sharded

	// done is closed when the reporter exits; nil in quiet mode.
	done chan struct{}
	// err holds the reporter's write failure. Only read after done is closed.
	err error
}

// New creates an Indicator for total units of work with the default options.
func New(total uint64, name string) *Indicator {
	return NewWithOptions(total, Options{Name: name})
}

// NewWithOptions creates an Indicator and, when verbose, starts its reporter.
func NewWithOptions(total uint64, opts Options) *Indicator {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.Interval <= 0 {
		opts.Interval = config.DefaultInterval
	}
	if opts.Lanes <= 0 {
		opts.Lanes = counter.DefaultSlots()
	}

	ind := &Indicator{
		total:    total,
		name:     opts.Name,
		interval: opts.Interval,
		out:      opts.Output,
		logger:   opts.Logger,
		verbose:  resolveVerbose(opts.Verbosity),
		counter:  counter.New(opts.Lanes),
	}

	if ind.verbose {
		ind.done = make(chan struct{})
		ind.logDebug(fmt.Sprintf("reporter starting: %q, %d units on %d lanes, every %s",
			ind.name, ind.total, ind.counter.Len(), ind.interval))
		go ind.run()
	}

	return ind
}

func resolveVerbose(v Verbosity) bool {
	switch v {
	case VerbosityOn:
		return true
	case VerbosityOff:
		return false
	default:
		return !config.QuietFromEnv()
	}
}

// Advance records one unit of work on lane 0. Use it when a single goroutine
// does all the work.
func (ind *Indicator) Advance() {
	ind.counter.Advance(0)
}

// AdvanceLane records one unit of work on the given lane. Each lane must be
// owned by one goroutine for the Indicator's lifetime; lanes outside
// [0, Lanes()) panic.
func (ind *Indicator) AdvanceLane(lane int) {
	ind.counter.Advance(lane)
}

// AdvanceContext records one unit of work on the lane stored in ctx by
// WithLane, or lane 0 if there is none.
func (ind *Indicator) AdvanceContext(ctx context.Context) {
	ind.counter.Advance(LaneFromContext(ctx))
}

// Close waits for the reporter to draw the final frame and returns the first
// write error it hit. In quiet mode it returns immediately. Close blocks for
// as long as the counter stays below the total.
func (ind *Indicator) Close() error {
	if ind.done == nil {
		return nil
	}
	<-ind.done
	return ind.err
}

// Sum returns the units recorded so far.
func (ind *Indicator) Sum() uint64 {
	return ind.counter.Sum()
}

// Total returns the target unit count.
func (ind *Indicator) Total() uint64 {
	return ind.total
}

// Name returns the bar label.
func (ind *Indicator) Name() string {
	return ind.name
}

// Lanes returns the number of counter lanes.
func (ind *Indicator) Lanes() int {
	return ind.counter.Len()
}

// Verbose reports whether a reporter was started.
func (ind *Indicator) Verbose() bool {
	return ind.verbose
}

func (ind *Indicator) logDebug(message string) {
	if ind.logger != nil {
		ind.logger.LogDebug(message)
	}
}

type laneKey struct{}

// WithLane returns a copy of ctx carrying the worker's lane.
func WithLane(ctx context.Context, lane int) context.Context {
	return context.WithValue(ctx, laneKey{}, lane)
}

// LaneFromContext returns the lane stored by WithLane, or 0.
func LaneFromContext(ctx context.Context) int {
	if lane, ok := ctx.Value(laneKey{}).(int); ok {
		return lane
	}
	return 0
}
