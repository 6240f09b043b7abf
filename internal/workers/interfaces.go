// Package workers provides admission control for connection handlers.
//
// A Pool runs each submitted task in its own goroutine while bounding how
// many may be live at once. The accept loop of the main endpoint submits
// one task per connection and waits for all of them on shutdown.
package workers

import "context"

// Spawner runs tasks concurrently.
//
// Go blocks until the task is admitted or ctx is done; Wait blocks until
// every admitted task has returned. Go fails once Wait has begun.
//
// Example:
//
//	if err := pool.Go(ctx, func() { serve(conn) }); err != nil {
//	    conn.Close()
//	}
type Spawner interface {
	Go(ctx context.Context, task func()) error
	Wait()
}
