package spinner

import (
	"context"
	"io"
	"time"
)

// run is the animation goroutine. Each cycle writes a glyph, waits for the
// frame interval and erases the glyph again. Cancellation is observed both by
// the loop condition and during the wait; a cancelled wait exits without the
// erase step.
func (s *Spinner) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for ctx.Err() == nil {
		s.write(string(s.frames.next()))

		timer.Reset(s.interval)
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		s.write(backspace)
	}
}

// write sends str to the sink and flushes it. Errors are dropped: the
// animation is cosmetic and must never fail the caller.
func (s *Spinner) write(str string) {
	_, _ = io.WriteString(s.sink, str)
	flush(s.sink)
}
