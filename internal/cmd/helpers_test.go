package cmd

import "github.com/harrison/smtprogress/internal/progress"

func newQuietIndicator(total uint64, lanes int) *progress.Indicator {
	return progress.NewWithOptions(total, progress.Options{
		Lanes:     lanes,
		Verbosity: progress.VerbosityOff,
	})
}
