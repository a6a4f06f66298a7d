package pool

import (
	"context"
	"testing"
)

func benchItems(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func benchWork(ctx context.Context, n int, call Call) (int, error) {
	sum := 0
	for i := range 1000 {
		sum += (n + i) % 7
	}
	return sum, nil
}

func BenchmarkInvoke_Serial(b *testing.B) {
	p := New(benchWork, WithWorkers(1), WithReporter(&countingReporter{}), withTopology(bigIron))
	items := benchItems(1024)

	b.ResetTimer()
	for b.Loop() {
		if _, err := p.Invoke(context.Background(), items); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInvoke_Parallel(b *testing.B) {
	p := New(benchWork, WithWorkers(8), WithReporter(&countingReporter{}), withTopology(bigIron))
	items := benchItems(1024)

	b.ResetTimer()
	for b.Loop() {
		if _, err := p.Invoke(context.Background(), items); err != nil {
			b.Fatal(err)
		}
	}
}
