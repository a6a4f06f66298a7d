// Package cpu reports the host's core topology and provides optional
// worker-to-core pinning for the task pool.
package cpu

import (
	"runtime"

	gcpu "github.com/shirou/gopsutil/v4/cpu"
)

// Topology describes the host's core layout as exposed by the OS.
type Topology struct {
	Physical int // independent hardware execution units
	Logical  int // hardware execution contexts, >= Physical with SMT
}

// Detect queries the host topology. Physical core detection is best-effort;
// on platforms where it fails, both counts fall back to runtime.NumCPU,
// which reports logical cores only.
func Detect() Topology {
	logical := runtime.NumCPU()
	physical := logical

	if n, err := gcpu.Counts(true); err == nil && n > 0 {
		logical = n
	}
	if n, err := gcpu.Counts(false); err == nil && n > 0 {
		physical = n
	}
	if physical > logical {
		physical = logical
	}

	return Topology{Physical: physical, Logical: logical}
}

// MaxWorkers returns the worker ceiling for this topology: the physical core
// count minus one SMT group, so a fully loaded pool still leaves the host
// responsive. The ceiling is never below 1.
func (t Topology) MaxWorkers() int {
	if t.Physical < 1 || t.Logical < t.Physical {
		return 1
	}

	threadsPerCore := t.Logical / t.Physical
	ceiling := t.Physical - threadsPerCore
	if ceiling < 1 {
		return 1
	}
	return ceiling
}
