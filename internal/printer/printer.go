// Package printer writes colored one-line status messages for finished runs.
package printer

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen, color.Bold).SprintFunc()
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// Printer writes status lines to a single writer, normally stderr.
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Success reports a command that exited with status zero.
func (p *Printer) Success(elapsed time.Duration) {
	fmt.Fprintf(p.w, "%s done %s\n", green("✓"), dim("in "+FormatDuration(elapsed)))
}

// Failure reports a command that exited with a non-zero status.
func (p *Printer) Failure(code int, elapsed time.Duration) {
	fmt.Fprintf(p.w, "%s exit %d %s\n", red("✗"), code, dim("after "+FormatDuration(elapsed)))
}

// Interrupted reports a command cancelled by a signal.
func (p *Printer) Interrupted(elapsed time.Duration) {
	fmt.Fprintf(p.w, "%s interrupted %s\n", yellow("!"), dim("after "+FormatDuration(elapsed)))
}

// Error reports an error that prevented the command from running.
func (p *Printer) Error(err error) {
	fmt.Fprintf(p.w, "%s %v\n", red("Error:"), err)
}

// FormatDuration renders d in milliseconds below one second and in tenths of
// a second above it.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
