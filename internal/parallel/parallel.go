package parallel

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// For runs fn over [0, n) on threads workers. Work is handed out in
// disjoint chunks, so every index is processed by exactly one worker.
// For returns after all workers finished, with the first error.
func For(ctx context.Context, threads, n, chunk int, fn func(thread, begin, end int) error) error {
	if threads <= 0 {
		threads = 1
	}
	if chunk <= 0 {
		chunk = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	var next int64
	for i := 0; i < threads; i++ {
		var thread = i
		g.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				var end = int(atomic.AddInt64(&next, int64(chunk)))
				var begin = end - chunk
				if begin >= n {
					return nil
				}
				if err := fn(thread, begin, min(end, n)); err != nil {
					return err
				}
			}
		})
	}
	return g.Wait()
}

// ChunkSize splits n into about 64 chunks per thread.
func ChunkSize(n, threads int) int {
	return max(1, n/(threads*64))
}
