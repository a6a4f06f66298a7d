//go:build darwin

package cpu

import "runtime"

// Pin locks the calling goroutine to an OS thread. macOS exposes no thread
// affinity API, so the thread lock is all the pinning we can offer there.
// The returned func releases the lock and should be deferred.
func Pin(workerID int) func() {
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}
