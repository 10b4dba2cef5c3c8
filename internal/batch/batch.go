// Package batch fetches many URLs against one shared client with bounded
// concurrency, in-flight de-duplication, and input-order-preserving
// results, per spec.md §4.5.
//
// Grounded on Doist-unfurlist's unfurlist.go ServeHTTP: one goroutine per
// URL reporting onto a channel, generalized here from a fixed "one
// goroutine per URL, unbounded" fan-out to an arbitrary-N bounded
// semaphore, and from an ad hoc per-request singleflight.Group to a
// reusable one scoped to a single batch call.
package batch

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// DefaultConcurrency is used when Run is called with concurrency == 0; a
// negative concurrency is rejected.
const DefaultConcurrency = 5

// Result pairs one input URL with its outcome, preserving the caller's
// input order regardless of completion order.
type Result[T any] struct {
	URL   string
	Value T
	Err   error
}

// FetchFunc performs the unit of work (fetch, fetch+extract, etc.) for one
// URL.
type FetchFunc[T any] func(ctx context.Context, url string) (T, error)

// Run implements spec.md §4.5's fetch_batch: concurrency defaults to
// DefaultConcurrency and is floored at 1 if positive-but-tiny; a semaphore
// of that size gates in-flight calls. Individual failures are captured as
// Result.Err entries — Run itself only returns an error for invalid input
// (empty urls, or a negative concurrency, which is nonsensical rather
// than merely small). Two identical URLs in the same batch share one
// underlying call via singleflight. Canceling ctx stops issuing new work
// and causes any in-flight fn calls to see the cancellation via the ctx
// they're passed.
func Run[T any](ctx context.Context, urls []string, concurrency int, perURLTimeout time.Duration, fn FetchFunc[T]) ([]Result[T], error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("batch: urls must be non-empty")
	}
	if concurrency < 0 {
		return nil, fmt.Errorf("batch: concurrency must be >= 0, got %d", concurrency)
	}
	if concurrency == 0 {
		concurrency = DefaultConcurrency
	}

	sem := semaphore.NewWeighted(int64(concurrency))
	var group singleflight.Group
	results := make([]Result[T], len(urls))
	done := make(chan int, len(urls))

	for i, u := range urls {
		go func(i int, u string) {
			if err := sem.Acquire(ctx, 1); err != nil {
				results[i] = Result[T]{URL: u, Err: err}
				done <- i
				return
			}
			defer sem.Release(1)

			callCtx := ctx
			var cancel context.CancelFunc
			if perURLTimeout > 0 {
				callCtx, cancel = context.WithTimeout(ctx, perURLTimeout)
				defer cancel()
			}

			v, err, _ := group.Do(u, func() (any, error) {
				return fn(callCtx, u)
			})
			group.Forget(u)

			value, _ := v.(T)
			results[i] = Result[T]{URL: u, Value: value, Err: err}
			done <- i
		}(i, u)
	}

	for range urls {
		select {
		case <-done:
		case <-ctx.Done():
			return results, ctx.Err()
		}
	}
	return results, nil
}
