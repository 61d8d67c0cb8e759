// Package workpool runs independent indexed tasks on a bounded number of
// goroutines.
package workpool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ScatterGather calls fn for every index in [0, n) using at most limit
// concurrent goroutines, or GOMAXPROCS when limit <= 0. fn usually writes
// its result into slot i of a caller-owned slice. The first error cancels
// the context passed to the remaining calls and is returned.
func ScatterGather(ctx context.Context, n, limit int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return ctx.Err()
	}
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
