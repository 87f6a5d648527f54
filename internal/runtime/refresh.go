package runtime

import (
	"sync/atomic"
	"unsafe"

	"github.com/tickmem/stm/internal/allocator"
)

func clampExtension(tr *ThreadRoot, extension int) int {
	if extension > tr.config.MaxExpirationExtension {
		return tr.config.MaxExpirationExtension
	}

	if extension < 0 {
		return 0
	}

	return extension
}

func tryIncrementRegionCounter(r *region) bool {
	for {
		cur := atomic.LoadInt32(&r.counter)
		if cur == 1<<31-1 {
			return false
		}

		if atomic.CompareAndSwapInt32(&r.counter, cur, cur+1) {
			return true
		}
	}
}

// Refresh is refresh_with_clock(ptr, extension, 0).
func Refresh(tr *ThreadRoot, payload unsafe.Pointer, extension int) {
	RefreshWithClock(tr, payload, extension, 0)
}

// RefreshWithClock implements spec §4.7. A region-tagged header delegates to
// the region refresh path; otherwise the object's counter is bumped and a
// back-reference inserted into the chosen clock's object buffer.
func RefreshWithClock(tr *ThreadRoot, payload unsafe.Pointer, extension int, clock ClockID) {
	if payload == nil {
		return
	}

	h := allocator.HeaderOf(payload)

	if regionID, ok := allocator.IsRegionSlot(h); ok {
		RefreshRegionWithClock(tr, RegionID(regionID), extension, clock)
		return
	}

	if int(clock) < 0 || int(clock) >= len(tr.localObjBuf) {
		return
	}

	if tr.localObjBuf[clock].age != tr.currentTime {
		assertNotZombie("clock", int(clock), true)
		return
	}

	extension = clampExtension(tr, extension)

	if !allocator.TryIncrementCounter(h) {
		return
	}

	tr.localObjBuf[clock].insert(payload, extension, tr.descPagePool)
}

// GlobalRefresh implements spec §4.7: identical to RefreshWithClock except
// it targets the globally-clocked buffer with a +2 offset, reserving slack
// so every other thread can perform a matching global_refresh before the
// next global time advance.
func GlobalRefresh(tr *ThreadRoot, payload unsafe.Pointer, extension int) {
	if payload == nil {
		return
	}

	h := allocator.HeaderOf(payload)

	if regionID, ok := allocator.IsRegionSlot(h); ok {
		GlobalRefreshRegion(tr, RegionID(regionID), extension)
		return
	}

	if tr.globalObjBuf.age != tr.currentTime {
		assertNotZombie("global-clock", 0, true)
		return
	}

	extension = clampExtension(tr, extension)

	if !allocator.TryIncrementCounter(h) {
		return
	}

	tr.globalObjBuf.insert(payload, extension+2, tr.descPagePool)
}

// RefreshRegion is refresh_region_with_clock(id, extension, 0).
func RefreshRegion(tr *ThreadRoot, id RegionID, extension int) {
	RefreshRegionWithClock(tr, id, extension, 0)
}

// RefreshRegionWithClock mirrors RefreshWithClock for region counters.
func RefreshRegionWithClock(tr *ThreadRoot, id RegionID, extension int, clock ClockID) {
	if id < 0 || int(id) >= len(tr.regions) {
		return
	}

	r := &tr.regions[id]
	if !r.live() {
		return
	}

	if r.age != tr.currentTime {
		assertNotZombie("region", int(id), true)
		return
	}

	if int(clock) < 0 || int(clock) >= len(tr.localRegBuf) {
		return
	}

	if tr.localRegBuf[clock].age != tr.currentTime {
		assertNotZombie("clock", int(clock), true)
		return
	}

	extension = clampExtension(tr, extension)

	if !tryIncrementRegionCounter(r) {
		return
	}

	tr.localRegBuf[clock].insert(regionDescriptor(id), extension, tr.descPagePool)
}

// GlobalRefreshRegion mirrors GlobalRefresh for region counters.
func GlobalRefreshRegion(tr *ThreadRoot, id RegionID, extension int) {
	if id < 0 || int(id) >= len(tr.regions) {
		return
	}

	r := &tr.regions[id]
	if !r.live() {
		return
	}

	if r.age != tr.currentTime {
		assertNotZombie("region", int(id), true)
		return
	}

	if tr.globalRegBuf.age != tr.currentTime {
		assertNotZombie("global-clock", 0, true)
		return
	}

	extension = clampExtension(tr, extension)

	if !tryIncrementRegionCounter(r) {
		return
	}

	tr.globalRegBuf.insert(regionDescriptor(id), extension+2, tr.descPagePool)
}
