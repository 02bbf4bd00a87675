package display

import (
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string // Main warning title
	Message    string // Detailed explanation (optional)
	Suggestion string // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion: ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	// fatih/color drops the escape codes when NO_COLOR is set or stdout is not a TTY
	color.New(color.FgYellow).Fprint(out, b.String())
}

// WarnWidenedLanes creates the warning printed when more workers are requested
// than the runtime can run in parallel.
func WarnWidenedLanes(message string) Warning {
	return Warning{
		Title:      "Workers exceed available lanes",
		Message:    message,
		Suggestion: "Lower --workers or raise GOMAXPROCS",
	}
}
