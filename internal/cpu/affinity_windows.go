//go:build windows

package cpu

import (
	"runtime"
	"syscall"
)

var (
	kernel32              = syscall.NewLazyDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	getCurrentThread      = kernel32.NewProc("GetCurrentThread")
)

// Pin locks the calling goroutine to an OS thread and pins that thread to
// the core identified by workerID, wrapping around when workerID exceeds the
// logical core count. The returned func releases the thread lock and should
// be deferred.
func Pin(workerID int) func() {
	runtime.LockOSThread()

	n := runtime.NumCPU()
	if workerID < 0 || workerID >= n {
		workerID = ((workerID % n) + n) % n
	}

	handle, _, _ := getCurrentThread.Call()
	// Bit N of the mask selects CPU N.
	_, _, _ = setThreadAffinityMask.Call(handle, uintptr(1)<<workerID)

	return runtime.UnlockOSThread
}
