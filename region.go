package stm

import (
	"unsafe"

	"github.com/tickmem/stm/internal/runtime"
)

// RegionID identifies a region within its owning thread's region table
// (spec §3.6). It is only meaningful in combination with the ThreadRoot
// that created it.
type RegionID = runtime.RegionID

// CreateRegion allocates a fresh region, returning its id or an error if
// the thread's region table is fully occupied by live regions (spec §4.2).
func (s *Engine) CreateRegion(tr *ThreadRoot) (RegionID, error) {
	return s.e.CreateRegion(tr.tr)
}

// MallocInRegion bump-allocates size bytes from region id, pulling a fresh
// region page when the current one is exhausted. Rejects a request whose
// size plus the object header, rounded up to 8 bytes, exceeds a page's
// payload, and uses of a stale (zombie) or out-of-range id.
func (s *Engine) MallocInRegion(tr *ThreadRoot, size int, id RegionID) (unsafe.Pointer, error) {
	return s.e.MallocInRegion(tr.tr, size, id)
}

// UnregisterRegion marks a region reusable once its descriptor counter
// drops to zero. An out-of-range id changes nothing: it is logged at debug
// level and reported as an InvalidID error.
func (s *Engine) UnregisterRegion(tr *ThreadRoot, id RegionID) error {
	return s.e.UnregisterRegion(tr.tr, id)
}
