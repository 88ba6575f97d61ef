package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Context is cancelled on the first SIGINT or SIGTERM. onSignal, when set,
// sees the signal before cancellation so callers can log it.
func Context(parent context.Context, onSignal func(os.Signal)) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			if onSignal != nil {
				onSignal(sig)
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
