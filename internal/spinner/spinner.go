// Package spinner provides a minimal activity indicator for command-line tools.
//
// A Spinner animates a short glyph cycle on its sink in a background goroutine
// while the caller does its own work. It stays silent when the sink is not an
// interactive terminal unless forced, so redirected or captured output is never
// polluted with animation frames.
//
//	s := spinner.New(spinner.Options{Sink: os.Stderr})
//	err := s.Do(func(*spinner.Spinner) error {
//		return doWork()
//	})
package spinner

import (
	"context"
	"io"
	"os"
	"time"
)

// DefaultInterval is the time each glyph stays on screen.
const DefaultInterval = 200 * time.Millisecond

// Options configures a Spinner. The zero value is a valid configuration.
type Options struct {
	// Sound writes a terminal bell to the sink when the spinner scope exits.
	Sound bool

	// Disabled turns the spinner into a no-op.
	Disabled bool

	// Force animates even when the sink is not an interactive terminal.
	Force bool

	// Sink receives the animation. Defaults to os.Stdout when nil.
	// The spinner never closes it.
	Sink io.Writer
}

// Spinner is a background activity indicator. It may be started and stopped
// any number of times. A Spinner is meant to be driven from a single
// goroutine; concurrent calls to Start and Stop are not supported.
type Spinner struct {
	sound    bool
	disabled bool
	force    bool
	sink     io.Writer

	interval time.Duration
	frames   cycle

	cancel context.CancelFunc // cancels the animation goroutine; nil when idle
	done   chan struct{}      // closed when the animation goroutine has exited
}

// New creates a Spinner. Nothing is written until Start is called.
func New(opts Options) *Spinner {
	sink := opts.Sink
	if sink == nil {
		sink = os.Stdout
	}

	return &Spinner{
		sound:    opts.Sound,
		disabled: opts.Disabled,
		force:    opts.Force,
		sink:     sink,
		interval: DefaultInterval,
	}
}

// Start begins the animation in a background goroutine.
// It does nothing if the spinner is disabled, already running, or its sink is
// not an interactive terminal and Force is unset.
func (s *Spinner) Start() {
	if s.disabled {
		return
	}
	if !s.force && !isTerminal(s.sink) {
		return
	}
	if s.cancel != nil {
		return // already running
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go s.run(ctx, done)
}

// Stop stops the animation and waits for the goroutine to exit. Once Stop
// returns nothing more is written to the sink by the animation.
// If the spinner is not running, this is a no-op.
func (s *Spinner) Stop() {
	if s.cancel == nil {
		return
	}

	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
}

// Running reports whether the animation goroutine is active.
func (s *Spinner) Running() bool {
	return s.cancel != nil
}
