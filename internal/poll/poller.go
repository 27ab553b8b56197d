// Package poll implements the periodic refresh policy list views use
// in addition to the live socket. The redundancy is deliberate: the
// poll picks up anything the socket missed across reconnects.
package poll

import (
	"context"
	"time"
)

// Run invokes fn immediately and then on every tick of interval until
// ctx is cancelled. fn receives the same ctx and should return quickly;
// ticks are not buffered, so a slow fn simply skips beats.
func Run(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	fn(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}
