package runtime

import (
	"sync/atomic"
	"unsafe"

	"github.com/tickmem/stm/internal/allocator"
)

// expireOneObject implements spec §4.4's expire_one_object: pop the next
// back-reference from the thread's expired-objects list, decrement its
// header's descriptor counter, and on reaching zero run its finalizer (if
// any) before handing the chunk back to the raw allocator. Returns whether
// it made progress (false means the list was empty).
func expireOneObject(tr *ThreadRoot) bool {
	entry, ok := tr.expiredObjects.next(tr.descPagePool)
	if !ok {
		return false
	}

	payload := entry
	h := allocator.HeaderOf(payload)

	if _, zero := allocator.DecrementAndTest(h); zero {
		if runFinalizer(tr.engine, payload) {
			allocator.Free(payload)
			tr.engine.metrics.frees.Add(1)
		} else {
			tr.engine.metrics.finalizerVetoes.Add(1)
		}
	}

	tr.engine.metrics.expirations.Add(1)

	return true
}

// expireOneRegion implements spec §4.4's expire_one_region: pop the next
// back-reference (a region id encoded as a pointer-sized integer, since
// regions are identified by table index rather than by address, §3.6) and
// decrement the region's own counter, recycling it on reaching zero.
func expireOneRegion(tr *ThreadRoot) bool {
	entry, ok := tr.expiredRegions.next(tr.descPagePool)
	if !ok {
		return false
	}

	id := RegionID(uintptr(entry))
	r := &tr.regions[id]

	if atomic.AddInt32(&r.counter, -1) == 0 {
		recycleRegion(tr, id)
	}

	tr.engine.metrics.expirations.Add(1)

	return true
}

// regionDescriptor encodes a region id as the descriptor-page back-reference
// value: descriptor pages store `unsafe.Pointer` entries uniformly, and a
// region has no object header of its own to point at, so its id is boxed
// into the pointer's bit pattern instead (never dereferenced).
func regionDescriptor(id RegionID) unsafe.Pointer {
	return unsafe.Pointer(uintptr(id))
}

// Collect implements spec §4.4's collect(): always eager, regardless of the
// configured policy, draining both expired lists completely.
func Collect(tr *ThreadRoot) {
	tr.collectAll()
}
