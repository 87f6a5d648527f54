package runtime

import "unsafe"

// descriptorBuffer is the modular-indexed array of descriptor-page lists
// described in spec §3.5: slot currentIndex holds the descriptors with the
// longest residual lifetime; notExpiredLength is either 0 (unused),
// MaxExt+1 (a local clock) or MaxExt+2 (the global clock, whose extra slot
// covers other threads' reservation windows for global_refresh's +2 slack).
type descriptorBuffer struct {
	notExpired       []descriptorPageList
	currentIndex     int
	notExpiredLength int
	age              uint32
}

// initBuffer (re)sizes the buffer for length slots and stamps age as live.
func (b *descriptorBuffer) initBuffer(length int, age uint32) {
	b.notExpired = make([]descriptorPageList, length)
	b.currentIndex = 0
	b.notExpiredLength = length
	b.age = age
}

func (b *descriptorBuffer) unused() bool {
	return b.notExpiredLength == 0
}

// insert appends entry at offset extension from currentIndex, per §4.3.
func (b *descriptorBuffer) insert(entry unsafe.Pointer, extension int, pool *descriptorPagePool) {
	slot := (b.currentIndex + extension) % b.notExpiredLength
	b.notExpired[slot].insert(entry, pool)
}

// tick advances currentIndex by one and returns the list that just expired
// (the slot whose residual lifetime was zero), per §4.3. The caller is
// responsible for splicing the returned list into the thread-wide expired
// list; tick itself leaves the drained slot's bucket ready for reuse since
// spliceAllFrom (called by the caller) empties the source list.
func (b *descriptorBuffer) tick() *descriptorPageList {
	if b.unused() {
		return nil
	}

	l := b.notExpiredLength
	b.currentIndex = (b.currentIndex + 1) % l
	expiredSlot := (b.currentIndex - 1 + l) % l

	return &b.notExpired[expiredSlot]
}
