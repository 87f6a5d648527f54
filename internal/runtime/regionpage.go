package runtime

import (
	"unsafe"

	"github.com/tickmem/stm/internal/sysmem"
)

// regionPage is one page-aligned arena page: a forward link plus
// PAGE_SIZE - ptr bytes of payload, allocated through the raw backend so
// slots carved from it are ordinary heap-shaped memory (spec §3.6).
type regionPage struct {
	next    *regionPage
	base    unsafe.Pointer
	payload int
}

func newRegionPageRaw(payload int) *regionPage {
	base := sysmem.Alloc(payload)
	if base == nil {
		return nil
	}

	return &regionPage{base: base, payload: payload}
}

func (p *regionPage) zero() {
	b := unsafe.Slice((*byte)(p.base), p.payload)
	for i := range b {
		b[i] = 0
	}
}

// regionPagePool is the per-thread bounded freelist for region pages,
// mirroring descriptorPagePool and original_source/regions.c's page
// recycling.
type regionPagePool struct {
	free    []*regionPage
	limit   int
	payload int
}

func newRegionPagePool(limit, payload int) *regionPagePool {
	return &regionPagePool{limit: limit, payload: payload}
}

func (p *regionPagePool) get() *regionPage {
	if n := len(p.free); n > 0 {
		pg := p.free[n-1]
		p.free = p.free[:n-1]
		pg.next = nil

		return pg
	}

	return newRegionPageRaw(p.payload)
}

func (p *regionPagePool) put(pg *regionPage) {
	if pg == nil {
		return
	}

	if len(p.free) < p.limit {
		pg.next = nil
		p.free = append(p.free, pg)

		return
	}

	sysmem.Free(pg.base)
}
