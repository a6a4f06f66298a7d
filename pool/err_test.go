package pool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestTaskPool_Invoke_ErrorAbortsBatch(t *testing.T) {
	expectedErr := errors.New("bad pixel block")

	fn := func(ctx context.Context, n int, call Call) (int, error) {
		if n == 3 {
			return 0, expectedErr
		}
		return n * 2, nil
	}

	for _, workers := range []int{1, 4} {
		p := New(fn, WithWorkers(workers), WithReporter(&countingReporter{}), withTopology(bigIron))

		results, err := p.Invoke(context.Background(), []int{1, 2, 3, 4, 5})
		if err == nil {
			t.Fatalf("workers=%d: expected error, got nil", workers)
		}
		if !errors.Is(err, expectedErr) {
			t.Errorf("workers=%d: expected %v, got %v", workers, expectedErr, err)
		}
		if results != nil {
			t.Errorf("workers=%d: expected no partial results, got %v", workers, results)
		}
	}
}

func TestTaskPool_Invoke_PoolReusableAfterFailure(t *testing.T) {
	var failNext atomic.Bool
	failNext.Store(true)

	fn := func(ctx context.Context, n int, call Call) (int, error) {
		if failNext.Load() && n == 2 {
			return 0, errors.New("transient failure")
		}
		return n * 2, nil
	}

	p := New(fn, WithWorkers(4), WithReporter(&countingReporter{}), withTopology(bigIron))
	ctx := context.Background()
	items := []int{1, 2, 3, 4}

	if _, err := p.Invoke(ctx, items); err == nil {
		t.Fatal("expected first invocation to fail")
	}

	failNext.Store(false)
	results, err := p.Invoke(ctx, items)
	if err != nil {
		t.Fatalf("pool unusable after failed invocation: %v", err)
	}
	for i, item := range items {
		if results[i] != item*2 {
			t.Errorf("item %d: expected %d, got %d", i, item*2, results[i])
		}
	}
}

func TestTaskPool_Invoke_PanicBecomesError(t *testing.T) {
	fn := func(ctx context.Context, n int, call Call) (int, error) {
		if n == 3 {
			panic("intentional panic")
		}
		return n * 2, nil
	}

	p := New(fn, WithWorkers(4), WithReporter(&countingReporter{}), withTopology(bigIron))

	_, err := p.Invoke(context.Background(), []int{1, 2, 3, 4, 5})
	if err == nil {
		t.Fatal("expected panic recovery error, got nil")
	}

	errStr := err.Error()
	if !contains(errStr, "worker panic") || !contains(errStr, "intentional panic") {
		t.Errorf("expected panic recovery error message, got: %v", err)
	}
}

func TestTaskPool_Invoke_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var processed atomic.Int32
	fn := func(ctx context.Context, n int, call Call) (int, error) {
		if processed.Add(1) == 5 {
			cancel()
		}
		time.Sleep(10 * time.Millisecond)
		return n * 2, nil
	}

	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	p := New(fn, WithWorkers(4), WithReporter(&countingReporter{}), withTopology(bigIron))

	_, err := p.Invoke(ctx, items)
	if err == nil {
		t.Fatal("expected context cancellation error, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestTaskPool_Invoke_NoTicksAfterFailure(t *testing.T) {
	fn := func(ctx context.Context, n int, call Call) (int, error) {
		if n >= 3 {
			return 0, errors.New("boom")
		}
		return n, nil
	}

	rep := &countingReporter{}
	p := New(fn, WithWorkers(1), WithReporter(rep), withTopology(bigIron))

	if _, err := p.Invoke(context.Background(), []int{1, 2, 3, 4, 5}); err == nil {
		t.Fatal("expected error")
	}

	if rep.tickCount() != 2 {
		t.Errorf("expected 2 ticks before the failing item, got %d", rep.tickCount())
	}
	if rep.ends != 1 {
		t.Errorf("progress must be closed even on failure, got %d Ends", rep.ends)
	}
}
