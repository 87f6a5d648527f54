//go:build windows

package sysmem

import "golang.org/x/sys/windows"

// CurrentThreadID returns the native Windows thread id of the calling
// goroutine. The caller must already hold runtime.LockOSThread.
func CurrentThreadID() int64 {
	return int64(windows.GetCurrentThreadId())
}
