package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"whirl/internal/config"
	"whirl/internal/history"
	"whirl/internal/printer"
	"whirl/internal/spinner"
)

// Exit codes used when the command never produced its own status.
const (
	exitNotRunnable = 127
	exitInterrupted = 130
)

// waitDelay bounds how long a cancelled command may keep its output pipes open.
const waitDelay = 2 * time.Second

// runner executes one command under a spinner scope.
type runner struct {
	cfg *config.Config

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	records *history.Manager // nil when history is disabled
	printer *printer.Printer
	now     func() time.Time
}

func runCommand(cmd *cobra.Command, opts *options, args []string) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	stderr := guard(errOut)
	stdout := stderr
	if out != errOut {
		stdout = guard(out)
	}

	r := &runner{
		cfg:     opts.cfg,
		stdin:   cmd.InOrStdin(),
		stdout:  stdout,
		stderr:  stderr,
		printer: printer.New(stderr),
		now:     time.Now,
	}

	if !opts.cfg.History.Disabled {
		records, err := history.NewManager(opts.cfg.History.Dir)
		if err != nil {
			// History is best effort; the command still runs.
			fmt.Fprintf(r.stderr, "Error: %v\n", err)
		} else {
			r.records = records
		}
	}

	code := r.run(cmd.Context(), args)
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// sink returns the stream the spinner draws on.
func (r *runner) sink() io.Writer {
	if r.cfg.Spinner.Stream == config.StreamStdout {
		return r.stdout
	}
	return r.stderr
}

// run executes argv inside a spinner scope, records the outcome and reports
// it. It returns the exit status whirl should exit with.
func (r *runner) run(ctx context.Context, argv []string) int {
	var rec *history.Record
	if r.records != nil {
		rec = r.records.NewRecord(argv)
	}
	start := r.now()

	spin := spinner.New(spinner.Options{
		Sound:    r.cfg.Spinner.Sound,
		Disabled: r.cfg.Spinner.Disabled,
		Force:    r.cfg.Spinner.Force,
		Sink:     r.sink(),
	})

	err := spin.Do(func(*spinner.Spinner) error {
		c := exec.CommandContext(ctx, argv[0], argv[1:]...)
		c.Stdin = r.stdin
		c.Stdout = r.stdout
		c.Stderr = r.stderr
		c.WaitDelay = waitDelay
		return c.Run()
	})

	end := r.now()
	elapsed := end.Sub(start)
	code, runErr := r.classify(ctx, err)

	switch {
	case err != nil && ctx.Err() != nil:
		r.printer.Interrupted(elapsed)
	case runErr != nil:
		r.printer.Error(runErr)
	case code != 0:
		r.printer.Failure(code, elapsed)
	default:
		r.printer.Success(elapsed)
	}

	if rec != nil {
		rec.Finish(code, runErr, end)
		r.save(rec)
	}

	return code
}

// classify maps the error from exec.Cmd.Run to an exit status. The returned
// error is non-nil only when the command did not produce a status of its own.
func (r *runner) classify(ctx context.Context, err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	if ctx.Err() != nil {
		return exitInterrupted, fmt.Errorf("interrupted: %w", ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return exitInterrupted, err // killed by a signal
	}
	return exitNotRunnable, err
}

func (r *runner) save(rec *history.Record) {
	if err := r.records.Save(rec); err != nil {
		fmt.Fprintf(r.stderr, "Error: %v\n", err)
		return
	}
	if _, err := r.records.Prune(r.cfg.History.Keep); err != nil {
		fmt.Fprintf(r.stderr, "Error: %v\n", err)
	}
}

// lockedWriter serializes writes from the spinner goroutine and the copy
// goroutines exec.Cmd starts for writers that are not files.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// guard wraps w in a lockedWriter unless it is a file. Files are handed to
// the child directly, so no copy goroutine writes to them, and they must stay
// unwrapped for the spinner's terminal check.
func guard(w io.Writer) io.Writer {
	if _, ok := w.(*os.File); ok {
		return w
	}
	return &lockedWriter{w: w}
}
