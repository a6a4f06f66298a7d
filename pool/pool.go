package pool

import (
	"context"
	"fmt"
	"iter"
	"runtime"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/anujsb/taskpool/internal/cpu"
	"github.com/anujsb/taskpool/progress"
)

// TaskPool executes a work function once per input item, serially or across
// a bounded set of workers, and returns results in input order.
//
// The pool holds no per-invocation state: each Invoke is a self-contained
// unit of work, and a pool remains valid for further invocations after a
// failed one. A single pool must not run overlapping invocations from
// multiple goroutines; callers serialize Invoke on a given instance.
//
// Type parameters:
//   - T: The input item type
//   - R: The result type
type TaskPool[T any, R any] struct {
	fn          WorkFunc[T, R]
	workers     int
	description string
	reporter    progress.Reporter
	logger      *zap.Logger
	limiter     *rate.Limiter
	pinWorkers  bool
}

// boundFunc is a work function with the invocation's Call already bound.
// Binding happens on the stack of Invoke so the pool itself never changes
// during an invocation.
type boundFunc[T any, R any] func(ctx context.Context, item T) (R, error)

// New creates a TaskPool around fn. The worker count resolves once here and
// is immutable afterwards: unset or non-positive requests become the
// hardware ceiling, and explicit requests are clamped into [1, ceiling]
// without error (see WithWorkers).
func New[T any, R any](fn WorkFunc[T, R], opts ...Option) *TaskPool[T, R] {
	cfg := config{
		reporter: progress.NewBar(nil),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	top := cfg.topology
	if top == (cpu.Topology{}) {
		top = cpu.Detect()
	}

	return &TaskPool[T, R]{
		fn:          fn,
		workers:     resolveWorkers(cfg.workers, top.MaxWorkers()),
		description: cfg.description,
		reporter:    cfg.reporter,
		logger:      cfg.logger,
		limiter:     cfg.rateLimiter,
		pinWorkers:  cfg.pinWorkers,
	}
}

// resolveWorkers maps a requested worker count onto [1, ceiling].
func resolveWorkers(requested, ceiling int) int {
	if requested <= 0 {
		return ceiling
	}
	return min(max(requested, 1), ceiling)
}

// Workers returns the resolved worker count.
func (p *TaskPool[T, R]) Workers() int { return p.workers }

// Description returns the pool's progress label.
func (p *TaskPool[T, R]) Description() string { return p.description }

func (p *TaskPool[T, R]) String() string {
	return fmt.Sprintf("TaskPool(workers=%d, desc=%q)", p.workers, p.description)
}

// Invoke runs the pool's work function once per item and returns the results
// in input order: results[i] is the output for items[i] no matter which
// worker produced it.
//
// The invocation runs serially on the calling goroutine when the effective
// worker count min(total, pool workers) is 1, and on a bounded worker set
// otherwise. Shared arguments and keyword options supplied through
// InvokeOptions apply to this invocation only.
//
// The batch succeeds or fails as a whole: the first item error (or recovered
// panic) tears down the workers, propagates to the caller, and no partial
// result slice is returned.
func (p *TaskPool[T, R]) Invoke(ctx context.Context, items []T, opts ...InvokeOption) ([]R, error) {
	inv := newInvokeConfig(opts)

	total := len(items)
	if inv.totalSet && inv.total > 0 {
		total = inv.total
	}
	if len(items) == 0 {
		return []R{}, nil
	}

	return p.run(ctx, slices.Values(items), total, inv)
}

// InvokeSeq is Invoke for inputs that cannot report their own length, such
// as values streamed off a decoder. The item total must be supplied with
// WithTotal; without it InvokeSeq fails fast with ErrTotalRequired before
// consuming the sequence.
func (p *TaskPool[T, R]) InvokeSeq(ctx context.Context, items iter.Seq[T], opts ...InvokeOption) ([]R, error) {
	inv := newInvokeConfig(opts)

	if !inv.totalSet || inv.total < 0 {
		return nil, ErrTotalRequired
	}
	if inv.total == 0 {
		return []R{}, nil
	}

	return p.run(ctx, items, inv.total, inv)
}

func (p *TaskPool[T, R]) run(ctx context.Context, items iter.Seq[T], total int, inv invokeConfig) ([]R, error) {
	call := Call{Args: inv.args, Options: inv.options}
	bound := func(ctx context.Context, item T) (R, error) {
		return p.fn(ctx, item, call)
	}

	workers := min(total, p.workers)
	if workers <= 1 {
		return p.runSerial(ctx, items, total, bound)
	}
	return p.runParallel(ctx, items, total, workers, bound)
}

// runSerial executes the batch on the calling goroutine, strictly in order.
func (p *TaskPool[T, R]) runSerial(ctx context.Context, items iter.Seq[T], total int, bound boundFunc[T, R]) ([]R, error) {
	p.logger.Info("serial processing", zap.Int("jobs", total))

	p.reporter.Begin(progress.Invocation{
		Description: p.description,
		Total:       total,
		Workers:     1,
	})
	defer p.reporter.End()

	results := make([]R, 0, total)
	for item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := p.throttle(ctx); err != nil {
			return nil, err
		}

		value, err := invokeOne(ctx, item, bound)
		if err != nil {
			return nil, err
		}

		results = append(results, value)
		p.reporter.Tick()
	}
	return results, nil
}

// runParallel executes the batch on a bounded worker set. Items are paired
// with their input position before dispatch and results are written back by
// position, so the output order matches the input order even though
// completion order among workers is unspecified.
func (p *TaskPool[T, R]) runParallel(ctx context.Context, items iter.Seq[T], total, workers int, bound boundFunc[T, R]) ([]R, error) {
	p.logger.Info("parallel processing", zap.Int("jobs", total), zap.Int("workers", workers))

	p.reporter.Begin(progress.Invocation{
		Description: p.description,
		Total:       total,
		Workers:     workers,
		Parallel:    true,
	})
	defer p.reporter.End()

	g, ctx := errgroup.WithContext(ctx)

	taskChan := make(chan indexedItem[T], workers)
	resultChan := make(chan indexedResult[R], total)

	for id := range workers {
		g.Go(func() error {
			if p.pinWorkers {
				defer cpu.Pin(id)()
			}
			return p.worker(ctx, taskChan, resultChan, bound)
		})
	}

	// dispatched is written by the feeder goroutine only; g.Wait orders the
	// read below after the write.
	dispatched := 0
	g.Go(func() error {
		defer close(taskChan)
		for item := range items {
			select {
			case taskChan <- indexedItem[T]{index: dispatched, item: item}:
				dispatched++
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	results := make([]R, total)
	var collectWg sync.WaitGroup
	collectWg.Add(1)

	go func() {
		defer collectWg.Done()
		for res := range resultChan {
			// A sequence may yield more items than the stated total; grow
			// rather than drop so the ordering invariant still holds.
			if res.index >= len(results) {
				results = append(results, make([]R, res.index+1-len(results))...)
			}
			results[res.index] = res.value
			p.reporter.Tick()
		}
	}()

	err := g.Wait()
	close(resultChan)
	collectWg.Wait()

	if err != nil {
		return nil, err
	}
	if dispatched < len(results) {
		results = results[:dispatched]
	}
	return results, nil
}

// worker drains the task channel until it closes or an item fails. A failed
// item aborts the whole batch: the error cancels the errgroup context, which
// stops the feeder and the remaining workers.
func (p *TaskPool[T, R]) worker(ctx context.Context, tasks <-chan indexedItem[T], out chan<- indexedResult[R], bound boundFunc[T, R]) error {
	for {
		select {
		case task, ok := <-tasks:
			if !ok {
				return nil
			}
			if err := p.throttle(ctx); err != nil {
				return err
			}

			value, err := invokeOne(ctx, task.item, bound)
			if err != nil {
				return err
			}

			select {
			case out <- indexedResult[R]{index: task.index, value: value}:
			case <-ctx.Done():
				return ctx.Err()
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p *TaskPool[T, R]) throttle(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}

// invokeOne executes the bound function for a single item with panic
// recovery, converting panics to errors so one bad item surfaces the same
// way as an ordinary failure.
func invokeOne[T any, R any](ctx context.Context, item T, bound boundFunc[T, R]) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("worker panic: %v\nstack trace:\n%s", r, buf[:n])
		}
	}()

	return bound(ctx, item)
}
