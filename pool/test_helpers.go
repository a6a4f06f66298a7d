package pool

import (
	"sync"

	"github.com/anujsb/taskpool/internal/cpu"
	"github.com/anujsb/taskpool/progress"
)

// Topologies used across the tests. smtQuad yields a worker ceiling of 2
// (4 physical - 8/4 threads per core); bigIron has no SMT and yields 15.
var (
	smtQuad = cpu.Topology{Physical: 4, Logical: 8}
	bigIron = cpu.Topology{Physical: 16, Logical: 16}
)

// countingReporter records all progress traffic for assertions.
type countingReporter struct {
	mu     sync.Mutex
	begins []progress.Invocation
	ticks  int
	ends   int
}

func (r *countingReporter) Begin(inv progress.Invocation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.begins = append(r.begins, inv)
}

func (r *countingReporter) Tick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
}

func (r *countingReporter) End() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ends++
}

func (r *countingReporter) tickCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticks
}

func (r *countingReporter) lastBegin() progress.Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.begins) == 0 {
		return progress.Invocation{}
	}
	return r.begins[len(r.begins)-1]
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
