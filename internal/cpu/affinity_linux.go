//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Pin locks the calling goroutine to an OS thread and pins that thread to
// the core identified by workerID, wrapping around when workerID exceeds the
// logical core count. The returned func releases the thread lock and should
// be deferred; the affinity mask dies with the thread.
func Pin(workerID int) func() {
	runtime.LockOSThread()

	n := runtime.NumCPU()
	if workerID < 0 || workerID >= n {
		workerID = ((workerID % n) + n) % n
	}

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(workerID)
	// Best effort: a worker without affinity is still a usable worker.
	_ = unix.SchedSetaffinity(0, &mask)

	return runtime.UnlockOSThread
}
