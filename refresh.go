package stm

import (
	"unsafe"

	"github.com/tickmem/stm/internal/runtime"
)

// Refresh is RefreshWithClock(tr, ptr, extension, BaseClock).
func (s *Engine) Refresh(tr *ThreadRoot, ptr unsafe.Pointer, extension int) {
	runtime.Refresh(tr.tr, ptr, extension)
}

// RefreshWithClock attaches extension more ticks of clock's residual
// lifetime to ptr (clamped to MaxExpirationExtension). A region-tagged
// pointer is redirected to the region refresh path automatically. Silently
// refuses if ptr is nil, the counter is already saturated, or clock is a
// zombie.
func (s *Engine) RefreshWithClock(tr *ThreadRoot, ptr unsafe.Pointer, extension int, clock ClockID) {
	runtime.RefreshWithClock(tr.tr, ptr, extension, clock)
}

// GlobalRefresh attaches extension+2 slots of residual lifetime on the
// globally-clocked buffer, reserving slack so every other thread can
// perform a matching GlobalRefresh before the next global time advance.
func (s *Engine) GlobalRefresh(tr *ThreadRoot, ptr unsafe.Pointer, extension int) {
	runtime.GlobalRefresh(tr.tr, ptr, extension)
}

// RefreshRegion is RefreshRegionWithClock(tr, id, extension, BaseClock).
func (s *Engine) RefreshRegion(tr *ThreadRoot, id RegionID, extension int) {
	runtime.RefreshRegion(tr.tr, id, extension)
}

// RefreshRegionWithClock mirrors RefreshWithClock for a region's own
// descriptor counter.
func (s *Engine) RefreshRegionWithClock(tr *ThreadRoot, id RegionID, extension int, clock ClockID) {
	runtime.RefreshRegionWithClock(tr.tr, id, extension, clock)
}

// GlobalRefreshRegion mirrors GlobalRefresh for a region's counter.
func (s *Engine) GlobalRefreshRegion(tr *ThreadRoot, id RegionID, extension int) {
	runtime.GlobalRefreshRegion(tr.tr, id, extension)
}
