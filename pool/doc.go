// Package pool provides a small, generic task pool that executes a work
// function once per input item and returns results in input order.
//
// The primary type is TaskPool[T, R]. A pool owns a work function, a label
// for progress display, and a worker count resolved once at construction
// against the host's core topology. Each Invoke call is a self-contained
// batch: the pool picks serial or parallel execution based on the batch
// size, emits progress feedback per item, and returns a slice where
// results[i] is the output for items[i].
//
// # Basic Usage
//
//	ctx := context.Background()
//	p := pool.New(func(ctx context.Context, n int, call pool.Call) (int, error) {
//	    return n * 2, nil
//	}, pool.WithWorkers(4), pool.WithDescription("doubling"))
//	results, err := p.Invoke(ctx, []int{1, 2, 3, 4})
//
// # Worker Resolution
//
// The worker count is clamped to a hardware ceiling computed as the physical
// core count minus one SMT group, leaving the host responsive under a full
// load. Unset or non-positive requests resolve to the ceiling; out-of-range
// requests are clamped, never rejected. Invocations smaller than the worker
// count shrink it further, so a one-item batch always runs serially.
//
// # Shared Arguments and Per-Invocation Options
//
// Extras that apply to every item of one batch travel in a Call value:
//
//	results, err := p.Invoke(ctx, items,
//	    pool.WithArgs(cfg),
//	    pool.WithCallOption("verbose", true),
//	)
//
// The Call is bound into a closure local to the invocation, so nothing set
// here can leak into a later Invoke on the same pool.
//
// # Unsized Inputs
//
// InvokeSeq accepts an iter.Seq[T] for inputs with no queryable length. The
// item total must then be given explicitly:
//
//	results, err := p.InvokeSeq(ctx, stream, pool.WithTotal(n))
//
// Without a total, InvokeSeq fails fast with ErrTotalRequired.
//
// # Error Handling
//
// The batch succeeds or fails as a whole. The first item error cancels the
// remaining work, propagates to the caller, and no partial result slice is
// returned; there are no retries. Worker panics are recovered and converted
// to errors carrying a stack trace. A failed invocation leaves the pool
// fully usable for the next one.
//
// # Observation
//
// Progress renders on stderr by default and can be redirected with
// WithReporter; one informational log line per invocation (serial vs
// parallel, job and worker counts) goes to the logger given with WithLogger.
// Neither channel affects results or ordering.
package pool
