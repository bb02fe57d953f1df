// Package emoji provides symbol constants for CLI output.
package emoji

// Symbols used as status markers in the diagnostic report.
const (
	// Success marks a completed stage or a valid document.
	Success = "✓"

	// Error marks a failed stage.
	Error = "✗"

	// Stop marks an interrupted run.
	Stop = "✗"

	// Warning marks a non-fatal condition such as a missing input directory.
	Warning = "!"

	// Skipped marks a run that did nothing.
	Skipped = "-"

	// Info marks progress lines.
	Info = "i"

	// Arrow joins the segments of a document path.
	Arrow = "->"
)
