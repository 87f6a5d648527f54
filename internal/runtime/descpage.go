package runtime

import "unsafe"

// descriptorPage is a fixed-capacity page of back-references to objects or
// regions, chained into a FIFO list. Capacity is computed once from the
// configured page size (Config.descriptorPageCapacity), not hardcoded, so a
// page here plays the role of the original's byte-sized
// descriptor_page_t — forward link, count, then an inline array sized to
// fill the page.
type descriptorPage struct {
	next    *descriptorPage
	count   int
	entries []unsafe.Pointer
}

// descriptorPagePool is a per-thread bounded freelist of descriptor pages,
// grounded on internal/allocator/pool.go's Pool (freeList []unsafe.Pointer,
// pool-miss falls back to a fresh allocation) and on
// original_source/descriptors.c's new_descriptor_page/recycle_descriptor_page.
type descriptorPagePool struct {
	free     []*descriptorPage
	limit    int
	capacity int
}

func newDescriptorPagePool(limit, capacity int) *descriptorPagePool {
	return &descriptorPagePool{limit: limit, capacity: capacity}
}

func (p *descriptorPagePool) get() *descriptorPage {
	if n := len(p.free); n > 0 {
		pg := p.free[n-1]
		p.free = p.free[:n-1]
		pg.count = 0
		pg.next = nil

		return pg
	}

	return &descriptorPage{entries: make([]unsafe.Pointer, p.capacity)}
}

func (p *descriptorPagePool) put(pg *descriptorPage) {
	if len(p.free) < p.limit {
		p.free = append(p.free, pg)
		return
	}
	// Pool is at its bound; let the page go to the garbage collector, the
	// Go-idiomatic analog of returning it to raw_free.
}

// descriptorPageList is a singly-linked FIFO of descriptor pages. It plays
// both roles the spec names: a not-expired bucket (collected unused) and,
// with collected in play, the expired-pages list (§3.4).
type descriptorPageList struct {
	head, tail *descriptorPage
	collected  int
}

func (l *descriptorPageList) empty() bool {
	return l.head == nil
}

// insert appends entry to the tail page, pulling a fresh page from pool
// when the current tail is full or the list is empty.
func (l *descriptorPageList) insert(entry unsafe.Pointer, pool *descriptorPagePool) {
	if l.tail == nil {
		pg := pool.get()
		l.head, l.tail = pg, pg
	} else if l.tail.count == len(l.tail.entries) {
		pg := pool.get()
		l.tail.next = pg
		l.tail = pg
	}

	l.tail.entries[l.tail.count] = entry
	l.tail.count++
}

// reset empties the list in place without touching the pool; used after a
// slot's pages have been spliced elsewhere.
func (l *descriptorPageList) reset() {
	l.head, l.tail = nil, nil
}

// spliceAllFrom moves src's entire page chain onto the tail of l, leaving
// src empty. This is the tick-time "append the whole page list" step from
// §4.3 — splicing, never copying.
func (l *descriptorPageList) spliceAllFrom(src *descriptorPageList) {
	if src.head == nil {
		return
	}

	if l.head == nil {
		l.head = src.head
	} else {
		l.tail.next = src.head
	}

	l.tail = src.tail
	src.reset()
}

// next pops and returns the next back-reference from an expired list,
// retiring the drained head page to the pool. Returns nil, false when the
// list is empty. Ported from original_source/descriptors.c's
// get_expired_memory.
func (l *descriptorPageList) next(pool *descriptorPagePool) (unsafe.Pointer, bool) {
	pg := l.head
	if pg == nil {
		return nil, false
	}

	if l.collected == pg.count {
		l.collected = 0

		if l.head == l.tail {
			pool.put(l.head)
			l.head, l.tail = nil, nil

			return nil, false
		}

		next := pg.next
		pool.put(pg)
		l.head = next
		pg = next
	}

	entry := pg.entries[l.collected]
	l.collected++

	return entry, true
}
