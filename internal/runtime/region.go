package runtime

import (
	"sync/atomic"
	"unsafe"

	"github.com/tickmem/stm/internal/allocator"
	stmerrors "github.com/tickmem/stm/internal/errors"
)

// RegionID identifies a region by its fixed index in a thread root's region
// table.
type RegionID int

// region is a sequence of region pages sharing one descriptor counter, an
// age, and a bump cursor (spec §3.6). It's identified by its index in the
// owning ThreadRoot.regions table, not by its own identity, so that table
// slots can be reused in place (§4.2).
type region struct {
	counter  int32 // atomic descriptor counter
	age      uint32
	headPage *regionPage
	tailPage *regionPage
	nextFree int // bump offset into tailPage's payload
	payload  int // per-page payload capacity (same for every page)
}

func (r *region) live() bool {
	return r.headPage != nil
}

func alignUp8(n int) int {
	return (n + 7) &^ 7
}

// createRegion scans regions[] starting at tr.nextRegIndex (next-fit). A
// slot is reusable when it's never been populated or it's a zombie with no
// outstanding claims.
func createRegion(tr *ThreadRoot) (RegionID, error) {
	n := len(tr.regions)

	for i := 0; i < n; i++ {
		idx := (tr.nextRegIndex + i) % n
		r := &tr.regions[idx]

		reusable := !r.live() || (r.age != tr.currentTime && atomic.LoadInt32(&r.counter) == 0)
		if !reusable {
			continue
		}

		pg := tr.regionPagePool.get()
		if pg == nil {
			return -1, stmerrors.Exhausted(uintptr(tr.config.RegionPageSize))
		}

		r.counter = 0
		r.age = tr.currentTime
		r.headPage = pg
		r.tailPage = pg
		r.nextFree = 0
		r.payload = tr.regionPagePool.payload

		tr.nextRegIndex = (idx + 1) % n

		return RegionID(idx), nil
	}

	return -1, stmerrors.ContingencyExceeded("regions", n)
}

// mallocInRegion bump-allocates size+header bytes, cache-aligned, from the
// region's tail page, pulling a fresh page when the cursor would overflow.
func mallocInRegion(tr *ThreadRoot, size int, id RegionID) (unsafe.Pointer, error) {
	if id < 0 || int(id) >= len(tr.regions) {
		return nil, stmerrors.InvalidID("region", int(id))
	}

	r := &tr.regions[id]
	if !r.live() {
		return nil, stmerrors.InvalidID("region", int(id))
	}

	if r.age != tr.currentTime {
		assertNotZombie("region", int(id), true)
		return nil, stmerrors.Zombie("region", int(id))
	}

	needed := alignUp8(size + int(allocator.HeaderSize))
	if needed > r.payload {
		return nil, stmerrors.InvalidID("region-slot-size", size)
	}

	if r.nextFree+needed > r.payload {
		pg := tr.regionPagePool.get()
		if pg == nil {
			return nil, stmerrors.Exhausted(uintptr(tr.config.RegionPageSize))
		}

		r.tailPage.next = pg
		r.tailPage = pg
		r.nextFree = 0
	}

	raw := unsafe.Pointer(uintptr(r.tailPage.base) + uintptr(r.nextFree))
	h := allocator.HeaderFromRaw(raw)
	allocator.TagRegionSlot(h, int(id))

	r.nextFree += needed

	return allocator.Payload(raw), nil
}

// unregisterRegion marks the region reusable once its counter drops to zero.
func unregisterRegion(tr *ThreadRoot, id RegionID) error {
	if id < 0 || int(id) >= len(tr.regions) {
		logger.Printf("unregister_region: invalid id %d", id)
		return stmerrors.InvalidID("region", int(id))
	}

	r := &tr.regions[id]
	r.age = tr.currentTime - 1

	return nil
}

// recycleRegion is invoked by the expiration worker once the region's
// descriptor counter reaches zero (§4.2). A still-live region keeps its
// first page (zeroed, reset) as a tombstone; an expired region releases
// everything. Pages beyond the configured freelist bound go to the raw
// allocator, never retained past it (resolving the spec's documented
// pool-overflow-arithmetic ambiguity, §9, by enforcing the bound exactly).
func recycleRegion(tr *ThreadRoot, id RegionID) {
	r := &tr.regions[id]
	if !r.live() {
		return
	}

	stillLive := r.age == tr.currentTime

	if stillLive {
		head := r.headPage
		rest := head.next
		head.next = nil
		head.zero()

		for pg := rest; pg != nil; {
			next := pg.next
			tr.regionPagePool.put(pg)
			pg = next
		}

		r.headPage = head
		r.tailPage = head
		r.nextFree = 0

		return
	}

	for pg := r.headPage; pg != nil; {
		next := pg.next
		tr.regionPagePool.put(pg)
		pg = next
	}

	r.headPage = nil
	r.tailPage = nil
	r.nextFree = 0
}
