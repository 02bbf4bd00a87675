package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/harrison/smtprogress/internal/display"
)

// flusher is implemented by buffered writers such as *bufio.Writer.
type flusher interface {
	Flush() error
}

// run redraws the bar every interval until the counter reaches the total,
// then ends the line and closes done.
func (ind *Indicator) run() {
	defer close(ind.done)

	start := time.Now()
	ticker := time.NewTicker(ind.interval)
	defer ticker.Stop()

	for {
		sum := ind.counter.Sum()
		finished := sum >= ind.total

		frame := display.RenderBar(sum, ind.total, ind.name) + "\r"
		if finished {
			frame += "\n"
		}

		if err := ind.emit(frame); err != nil {
			ind.err = err
			ind.logDebug(fmt.Sprintf("reporter stopped: %v", err))
			return
		}

		if finished {
			ind.logDebug(fmt.Sprintf("reporter finished: %q after %s", ind.name, time.Since(start).Round(time.Millisecond)))
			return
		}

		<-ticker.C
	}
}

// emit writes one frame in a single Write and flushes buffered writers.
func (ind *Indicator) emit(frame string) error {
	if _, err := io.WriteString(ind.out, frame); err != nil {
		return fmt.Errorf("write progress frame: %w", err)
	}
	if f, ok := ind.out.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush progress frame: %w", err)
		}
	}
	return nil
}
