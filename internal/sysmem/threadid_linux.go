//go:build linux

package sysmem

import "golang.org/x/sys/unix"

// CurrentThreadID returns the kernel thread id of the calling goroutine.
// The caller must already hold runtime.LockOSThread, since the id is only
// meaningful while the goroutine can't migrate to a different OS thread.
func CurrentThreadID() int64 {
	return int64(unix.Gettid())
}
