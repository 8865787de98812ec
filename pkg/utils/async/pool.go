package async

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// ForEach runs fn for every item on a fixed pool of workers and returns the
// per-item errors, aligned with items.
//
// Behavior:
//   - At most `workers` invocations of fn run at any time
//   - A panic in fn is recovered, logged and recorded as that item's error
//   - When ctx is cancelled, undispatched items receive ctx.Err(); items
//     already running are left to observe ctx themselves
func ForEach[T any](ctx context.Context, workers int, items []T, fn func(ctx context.Context, item T) error) []error {
	if workers < 1 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	errs := make([]error, len(items))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				errs[idx] = runOne(ctx, items[idx], fn)
			}
		}()
	}

dispatch:
	for i := range items {
		select {
		case jobs <- i:
		case <-ctx.Done():
			errs[i] = ctx.Err()
			// mark the rest as cancelled, nothing will pick them up
			for j := i + 1; j < len(items); j++ {
				errs[j] = ctx.Err()
			}
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	return errs
}

// runOne invokes fn with panic recovery
func runOne[T any](ctx context.Context, item T, fn func(ctx context.Context, item T) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			ctxlog.From(ctx).Error("panic in worker",
				"recover", r,
				"stack", string(stack))
			err = goerr.New("panic in worker", goerr.V("recover", r))
		}
	}()

	return fn(ctx, item)
}
