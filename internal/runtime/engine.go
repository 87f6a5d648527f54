// Package runtime implements the tick-driven short-term-memory core: object
// headers, descriptor buffers, regions, clocks, the global clock, and the
// expiration pipeline that ties them together. The public stm package is a
// thin wrapper over Engine.
package runtime

import (
	"runtime"
	"sync"
	"unsafe"

	"github.com/tickmem/stm/internal/allocator"
	"github.com/tickmem/stm/internal/sysmem"
)

// Engine is the process-wide STM core described by spec §5: the global
// clock's rendezvous state, the finalizer table, the terminated-roots
// freelist, and the registry of live thread roots keyed by native OS thread
// id. One Engine may be shared by any number of goroutines, each calling
// Acquire/Release around its STM use.
type Engine struct {
	config Config

	globalMu               sync.Mutex
	globalTime             int32
	numberOfThreads        int32
	tickedThreadsCountdown int32

	rootsMu sync.Mutex
	roots   map[int64]*ThreadRoot

	terminated terminatedRoots
	finalizers finalizerTable
	metrics    Metrics
}

// NewEngine constructs an Engine from a validated copy of cfg.
func NewEngine(cfg Config) *Engine {
	cfg.validate()

	e := &Engine{
		config: cfg,
		roots:  make(map[int64]*ThreadRoot),
		// tickedThreadsCountdown starts at 1, matching original_source/scm.c's
		// `static unsigned int ticked_threads_countdown = 1`: with zero
		// threads registered yet, the first thread to join drives the next
		// global_time advance alone.
		tickedThreadsCountdown: 1,
	}
	e.finalizers.limit = cfg.FinalizerTableSize

	return e
}

// Acquire pins the calling goroutine to its current OS thread and returns
// that thread's root, creating one (recycled from the terminated-roots
// freelist when available, otherwise fresh) on first use. Pairs with
// Release; see SPEC_FULL.md's Open Question 1 for why this replaces the
// pthread-TLS-destructor lifecycle the original relies on.
func (e *Engine) Acquire() *ThreadRoot {
	runtime.LockOSThread()

	threadID := sysmem.CurrentThreadID()

	e.rootsMu.Lock()
	tr, ok := e.roots[threadID]
	if !ok {
		tr = e.terminated.pop()
		if tr == nil {
			tr = newThreadRoot(e)
		} else {
			tr.reuse()
		}

		tr.threadID = threadID
		e.roots[threadID] = tr
	}
	e.rootsMu.Unlock()

	e.ResumeThread(tr)

	return tr
}

// Release interns tr into the terminated-roots freelist and drops it from
// the live registry. No payloads are freed here — only the root struct is
// parked for reuse (spec §9).
func (e *Engine) Release(tr *ThreadRoot) {
	e.BlockThread(tr)

	e.rootsMu.Lock()
	delete(e.roots, tr.threadID)
	e.rootsMu.Unlock()

	e.terminated.push(tr)

	runtime.UnlockOSThread()
}

// Alloc implements spec §4.1's alloc.
func (e *Engine) Alloc(size uintptr) unsafe.Pointer {
	p := allocator.Alloc(size)
	if p != nil {
		e.metrics.allocations.Add(1)
	}

	return p
}

// Calloc implements spec §4.1's calloc.
func (e *Engine) Calloc(count, size uintptr) unsafe.Pointer {
	p := allocator.Calloc(count, size)
	if p != nil {
		e.metrics.allocations.Add(1)
	}

	return p
}

// Free implements spec §4.1's free.
func (e *Engine) Free(payload unsafe.Pointer) {
	allocator.Free(payload)
}

// Realloc implements spec §4.1's realloc.
func (e *Engine) Realloc(payload unsafe.Pointer, size uintptr) unsafe.Pointer {
	return allocator.Realloc(payload, size)
}

// UsableSize implements spec §4.1's usable_size. Not defined for
// region-allocated slots (spec §9); callers must not invoke it on one.
func (e *Engine) UsableSize(payload unsafe.Pointer) uintptr {
	return allocator.UsableSize(payload)
}

// CreateRegion implements spec §4.2's create_region.
func (e *Engine) CreateRegion(tr *ThreadRoot) (RegionID, error) {
	return createRegion(tr)
}

// MallocInRegion implements spec §4.2's malloc_in_region.
func (e *Engine) MallocInRegion(tr *ThreadRoot, size int, id RegionID) (unsafe.Pointer, error) {
	p, err := mallocInRegion(tr, size, id)
	if err == nil {
		e.metrics.allocations.Add(1)
	}

	return p, err
}

// UnregisterRegion implements spec §4.2's unregister_region.
func (e *Engine) UnregisterRegion(tr *ThreadRoot, id RegionID) error {
	return unregisterRegion(tr, id)
}

// Snapshot returns the process-wide metrics counters (§4.9, supplementing
// the spec's external-interface table).
func (e *Engine) Snapshot() MetricsSnapshot {
	return e.metrics.Snapshot()
}

// Config returns the validated configuration this engine was built with.
func (e *Engine) Config() Config {
	return e.config
}
