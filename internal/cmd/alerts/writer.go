package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// TextWriter writes alerts as human-readable lines.
type TextWriter struct {
	writer io.Writer
	config WriterConfig
}

// WriterConfig configures alert output behavior.
type WriterConfig struct {
	ShowDetails bool
	UseColor    bool
}

// NewTextWriter creates a TextWriter.
func NewTextWriter(w io.Writer, config WriterConfig) *TextWriter {
	return &TextWriter{writer: w, config: config}
}

// NewTerminalWriter creates a TextWriter that colours output when w is a
// terminal and noColor is false.
func NewTerminalWriter(w io.Writer, noColor bool) *TextWriter {
	return NewTextWriter(w, WriterConfig{
		ShowDetails: true,
		UseColor:    !noColor && !color.NoColor && isTerminal(w),
	})
}

// WriteAlert writes the alert line followed by indented details.
func (tw *TextWriter) WriteAlert(alert *Alert) error {
	line := alert.String()
	if tw.config.UseColor {
		c := alert.Level.Color()
		c.EnableColor()
		line = c.Sprint(line)
	}

	if _, err := fmt.Fprintln(tw.writer, line); err != nil {
		return err
	}
	if !tw.config.ShowDetails {
		return nil
	}
	for _, detail := range alert.Details {
		if _, err := fmt.Fprintf(tw.writer, "  %s\n", detail); err != nil {
			return err
		}
	}
	return nil
}

// isTerminal checks if the writer is a terminal (for color support).
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}
