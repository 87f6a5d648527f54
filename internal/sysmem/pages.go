// Package sysmem implements the raw allocation backend the STM core builds
// on: raw chunks for object allocations and region pages (one mechanism for
// both; descriptor pages are ordinary Go values and do not come from here),
// plus a way to name the calling OS thread. Everything
// above this package treats these as opaque raw_alloc/raw_free/raw_usable_size
// hooks; sysmem is the only place that talks to the platform.
package sysmem

import (
	"sync"
	"unsafe"
)

// registry keeps every live allocation's backing Go slice reachable so the
// garbage collector never reclaims memory the STM core still thinks is live,
// and lets Free/UsableSize recover the original length from a bare pointer.
// This mirrors the teacher's own pattern of pinning a "backing []byte" next
// to an unsafe.Pointer view over the same bytes (internal/runtime's Region).
type registry struct {
	mu      sync.Mutex
	backing map[unsafe.Pointer][]byte
}

var global = registry{backing: make(map[unsafe.Pointer][]byte)}

func (r *registry) track(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}

	p := unsafe.Pointer(&b[0])

	r.mu.Lock()
	r.backing[p] = b
	r.mu.Unlock()

	return p
}

func (r *registry) untrack(p unsafe.Pointer) []byte {
	r.mu.Lock()
	b := r.backing[p]
	delete(r.backing, p)
	r.mu.Unlock()

	return b
}

func (r *registry) sizeOf(p unsafe.Pointer) uintptr {
	r.mu.Lock()
	b := r.backing[p]
	r.mu.Unlock()

	return uintptr(cap(b))
}

// Alloc requests n bytes from the platform backend, zeroed, and returns a
// pointer to the first byte. It never returns an error directly: a nil
// pointer means the backend refused the request (OOM, or n == 0).
func Alloc(n int) unsafe.Pointer {
	if n <= 0 {
		return nil
	}

	b := platformAlloc(n)
	if b == nil {
		return nil
	}

	return global.track(b)
}

// Free releases memory previously returned by Alloc. Freeing an unknown or
// nil pointer is a no-op, matching raw_free's documented contract.
func Free(p unsafe.Pointer) {
	if p == nil {
		return
	}

	b := global.untrack(p)
	if b == nil {
		return
	}

	platformFree(b)
}

// UsableSize reports the size of an allocation returned by Alloc, which is
// exactly the n it was requested with (platform rounding is not reported).
// It returns 0 for a nil or untracked pointer.
func UsableSize(p unsafe.Pointer) uintptr {
	if p == nil {
		return 0
	}

	return global.sizeOf(p)
}
