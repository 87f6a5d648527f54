package allocator

import (
	"unsafe"

	"github.com/tickmem/stm/internal/sysmem"
)

// Alloc requests size bytes for the caller plus header overhead from the
// raw backend, stamps a fresh header, and returns the payload pointer. It
// returns nil if the raw backend is exhausted.
func Alloc(size uintptr) unsafe.Pointer {
	raw := sysmem.Alloc(int(HeaderSize + size))
	if raw == nil {
		return nil
	}

	h := HeaderFromRaw(raw)
	h.CounterOrRegion = 0
	h.FinalizerIndex = NoFinalizer

	return Payload(raw)
}

// Calloc is Alloc followed by zeroing the payload.
func Calloc(count, size uintptr) unsafe.Pointer {
	n := count * size

	p := Alloc(n)
	if p == nil {
		return nil
	}

	if n > 0 {
		b := unsafe.Slice((*byte)(p), int(n))
		for i := range b {
			b[i] = 0
		}
	}

	return p
}

// Free releases a chunk back to the raw backend, but only when its
// descriptor counter is exactly zero. A positive counter means claims are
// still outstanding and the expiration pipeline owns the free; a negative
// (region-tagged) counter means the slot belongs to a region and must never
// be freed individually — both cases are simply "counter != 0" and Free
// treats them identically, matching the spec's free() contract.
func Free(payload unsafe.Pointer) {
	if payload == nil {
		return
	}

	h := HeaderOf(payload)
	if Counter(h) != 0 {
		return
	}

	sysmem.Free(RawOf(payload))
}

// Realloc always allocates a new chunk, copies min(old usable size, size)
// bytes, and frees the old chunk iff its counter was zero. It never
// resizes in place.
func Realloc(payload unsafe.Pointer, size uintptr) unsafe.Pointer {
	if payload == nil {
		return Alloc(size)
	}

	oldUsable := UsableSize(payload)

	newPayload := Alloc(size)
	if newPayload == nil {
		return nil
	}

	n := oldUsable
	if size < n {
		n = size
	}

	if n > 0 {
		dst := unsafe.Slice((*byte)(newPayload), int(n))
		src := unsafe.Slice((*byte)(payload), int(n))
		copy(dst, src)
	}

	h := HeaderOf(payload)
	if Counter(h) == 0 {
		sysmem.Free(RawOf(payload))
	}

	return newPayload
}

// UsableSize returns the usable payload capacity of an allocation, i.e. the
// raw backend's usable size minus header overhead. It is not defined for
// region-allocated slots; callers must not invoke it on one.
func UsableSize(payload unsafe.Pointer) uintptr {
	if payload == nil {
		return 0
	}

	raw := RawOf(payload)

	full := sysmem.UsableSize(raw)
	if full < HeaderSize {
		return 0
	}

	return full - HeaderSize
}
