package spinner

import (
	"io"

	"github.com/mattn/go-isatty"
)

// fder is implemented by sinks backed by a file descriptor, such as *os.File.
type fder interface {
	Fd() uintptr
}

// terminaler lets a sink report its own interactivity.
type terminaler interface {
	IsTerminal() bool
}

// flusher is implemented by buffered sinks such as *bufio.Writer.
type flusher interface {
	Flush() error
}

// isTerminal reports whether w is attached to an interactive terminal.
// Sinks that are neither file descriptors nor self-reporting are treated as
// redirected output.
func isTerminal(w io.Writer) bool {
	switch v := w.(type) {
	case terminaler:
		return v.IsTerminal()
	case fder:
		fd := v.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	default:
		return false
	}
}

// flush pushes buffered output to its destination. *os.File is unbuffered and
// is left alone.
func flush(w io.Writer) {
	if f, ok := w.(flusher); ok {
		_ = f.Flush()
	}
}
