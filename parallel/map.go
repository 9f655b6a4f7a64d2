package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Threshold is the default item count at which callers should consider
// switching from a sequential loop to [Map]. Matches the reference
// implementation's PARALLEL_THRESHOLD (256).
const Threshold = 256

// ShouldParallelize reports whether a collection of the given size is worth
// handing to [Map] rather than iterating sequentially.
func ShouldParallelize(count int) bool {
	return count >= Threshold
}

// Map applies fn to every element of items concurrently and returns the
// results in the same order as items. Shared state between workers is
// read-only; each worker writes only to its own result slot. A bounded
// number of goroutines (GOMAXPROCS) run at once regardless of len(items).
//
// Map is safe to call with small slices too: it runs deterministically
// correct either way, but callers on the codec's hot paths should guard
// the call with [ShouldParallelize] to avoid goroutine overhead below
// [Threshold].
func Map[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, len(items))
	if len(items) == 0 {
		return out
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(items) {
		workers = len(items)
	}

	if workers <= 1 {
		for i, item := range items {
			out[i] = fn(item)
		}

		return out
	}

	var g errgroup.Group

	chunk := (len(items) + workers - 1) / workers

	for start := 0; start < len(items); start += chunk {
		end := start + chunk
		if end > len(items) {
			end = len(items)
		}

		start, end := start, end

		g.Go(func() error {
			for i := start; i < end; i++ {
				out[i] = fn(items[i])
			}

			return nil
		})
	}

	_ = g.Wait()

	return out
}

// MapErr is like [Map] but fn may fail. A worker stops its own chunk at
// the first error fn returns, while other workers finish their chunks;
// MapErr then returns the first error reported and a nil result.
func MapErr[T, R any](items []T, fn func(T) (R, error)) ([]R, error) {
	out := make([]R, len(items))
	if len(items) == 0 {
		return out, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(items) {
		workers = len(items)
	}

	if workers <= 1 {
		for i, item := range items {
			r, err := fn(item)
			if err != nil {
				return nil, err
			}

			out[i] = r
		}

		return out, nil
	}

	var g errgroup.Group

	chunk := (len(items) + workers - 1) / workers

	for start := 0; start < len(items); start += chunk {
		end := start + chunk
		if end > len(items) {
			end = len(items)
		}

		start, end := start, end

		g.Go(func() error {
			for i := start; i < end; i++ {
				r, err := fn(items[i])
				if err != nil {
					return err
				}

				out[i] = r
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
