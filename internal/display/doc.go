// Package display renders the terminal text shown by smtprogress.
//
// RenderBar produces the fixed-width progress line drawn by the reporter:
//
//	line := display.RenderBar(done, total, "Loading")
//	// Loading ............ [============>                                     ]  25%
//
// It is a pure function of its arguments so it can be tested and reused
// (the render command prints it directly).
//
// Warning formats user-facing warnings for the CLI:
//
//	display.Warning{
//	    Title:      "Workers exceed available lanes",
//	    Message:    "12 workers requested, GOMAXPROCS is 8",
//	    Suggestion: "Lower --workers or raise GOMAXPROCS",
//	}.Display(os.Stderr)
//
// All functions accept io.Writer interfaces for testability.
package display
