//go:build !linux && !windows

package sysmem

import "sync/atomic"

// counter hands out a stand-in thread id on platforms with neither gettid
// nor GetCurrentThreadId. Engine.Acquire (internal/runtime/engine.go) calls
// CurrentThreadID once per Acquire and keeps the result in the ThreadRoot,
// so the id stays fixed for that root even though it isn't a real OS id.
var counter int64

// CurrentThreadID allocates a fresh synthetic id. Unlike the Linux/Windows
// variants this cannot be called repeatedly to recover the "same" thread's
// id — callers must cache the value they get back.
func CurrentThreadID() int64 {
	return atomic.AddInt64(&counter, 1)
}
