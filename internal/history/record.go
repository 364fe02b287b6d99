package history

import (
	"strconv"
	"strings"
	"time"
)

// Record describes one command run under the spinner.
type Record struct {
	ID        string        `json:"id"`
	Command   []string      `json:"command"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	ExitCode  int           `json:"exit_code"`
	Error     string        `json:"error,omitempty"` // set when the command could not run or was interrupted

	path string // file the record was read from
}

// Finish fills in the outcome of the run.
func (r *Record) Finish(exitCode int, err error, end time.Time) {
	r.Duration = end.Sub(r.StartedAt)
	r.ExitCode = exitCode
	if err != nil {
		r.Error = err.Error()
	}
}

// Succeeded reports whether the command ran and exited with status zero.
func (r *Record) Succeeded() bool {
	return r.ExitCode == 0 && r.Error == ""
}

// CommandLine renders Command as a single shell-like string, quoting
// arguments that would otherwise be ambiguous.
func (r *Record) CommandLine() string {
	parts := make([]string, len(r.Command))
	for i, arg := range r.Command {
		if arg == "" || strings.ContainsAny(arg, " \t\n\"'\\") {
			arg = strconv.Quote(arg)
		}
		parts[i] = arg
	}
	return strings.Join(parts, " ")
}
