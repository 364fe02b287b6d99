// Package signal provides utilities for handling OS signals in a graceful manner.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// RunWithContext runs action with a context that is cancelled when SIGINT or
// SIGTERM arrives. Unlike a hard exit, this lets action unwind normally so
// deferred cleanup (such as stopping a spinner) still runs. A second signal
// is left to the default handler and terminates the process.
func RunWithContext(action func(context.Context) error) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
			signal.Stop(sigChan)
		case <-ctx.Done():
		}
	}()

	return action(ctx)
}
