// Package stm implements a deterministic, tick-based short-term-memory
// allocator for systems that forgo garbage collection. Mutators attach an
// integer expiration extension to an allocation; the allocator guarantees
// the allocation's storage remains valid for at least that many ticks of an
// associated clock, and reclaims it promptly afterward. The package wraps
// internal/runtime's Engine, which owns the descriptor buffers, regions,
// clocks, and the global clock's cross-thread rendezvous.
package stm

import (
	"unsafe"

	"github.com/tickmem/stm/internal/runtime"
)

// Config is the compile-time-equivalent tunable set (spec §6): page sizes,
// table bounds, and the collection-policy toggle. Construct one with
// DefaultConfig and adjust only the fields you need before calling New.
type Config = runtime.Config

// DefaultConfig returns the spec's documented defaults:
// DescriptorPageSize/RegionPageSize 4096, MaxExpirationExtension 10,
// both freelist sizes 10, MaxRegions 10, MaxClocks 10,
// FinalizerTableSize 32, lazy collection.
func DefaultConfig() Config {
	return runtime.DefaultConfig()
}

// Engine is a single STM allocator instance: its own global clock, regions,
// clocks, and finalizer table, independent of any other Engine in the same
// process. Every operation is a method on an Engine built with New; the
// package has no default instance.
type Engine struct {
	e *runtime.Engine
}

// New builds an Engine from cfg. Zero or negative page sizes,
// MaxExpirationExtension, MaxRegions, MaxClocks and FinalizerTableSize fall
// back to their defaults; a negative freelist size becomes 0, and a zero
// freelist size is kept.
func New(cfg Config) *Engine {
	return &Engine{e: runtime.NewEngine(cfg)}
}

// ThreadRoot is a handle to the calling thread's STM state, returned by
// Acquire. It is not safe to share across goroutines/threads; each thread
// must call Acquire for its own handle.
type ThreadRoot struct {
	tr *runtime.ThreadRoot
}

// Acquire pins the calling goroutine to its current OS thread (via
// runtime.LockOSThread) and returns that thread's root, lazily creating one
// on first use. Every Acquire must be matched by a Release — Go has no
// goroutine-termination hook to run this automatically, unlike the
// pthread-TLS destructor the original relies on.
func (s *Engine) Acquire() *ThreadRoot {
	return &ThreadRoot{tr: s.e.Acquire()}
}

// Release interns the thread's root for reuse by a future Acquire and
// unlocks the OS thread. A mutator that never calls Release leaks its root
// (the same failure mode the spec documents for a thread that never calls
// block_thread).
func (s *Engine) Release(tr *ThreadRoot) {
	s.e.Release(tr.tr)
}

// Snapshot returns the engine's process-wide metrics counters.
func (s *Engine) Snapshot() MetricsSnapshot {
	return MetricsSnapshot(s.e.Snapshot())
}

// MetricsSnapshot is a point-in-time read of an Engine's counters (spec
// §4.9, supplementing the original's meter_report).
type MetricsSnapshot runtime.MetricsSnapshot

// --- Object allocation (spec §4.1) ---

// Alloc requests size bytes, returning nil on raw-allocator exhaustion.
func (s *Engine) Alloc(size uintptr) unsafe.Pointer {
	return s.e.Alloc(size)
}

// Calloc is Alloc followed by zeroing the payload.
func (s *Engine) Calloc(count, size uintptr) unsafe.Pointer {
	return s.e.Calloc(count, size)
}

// Free releases ptr back to the raw allocator, a no-op whenever its
// descriptor counter is nonzero (claims outstanding, or it's a
// region-tagged slot).
func (s *Engine) Free(ptr unsafe.Pointer) {
	s.e.Free(ptr)
}

// Realloc always allocates a new chunk, copies min(old usable size, size)
// bytes, and frees the old chunk iff its counter was zero.
func (s *Engine) Realloc(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	return s.e.Realloc(ptr, size)
}

// UsableSize reports ptr's usable payload capacity. Not defined for
// region-allocated slots; do not call it on one.
func (s *Engine) UsableSize(ptr unsafe.Pointer) uintptr {
	return s.e.UsableSize(ptr)
}
