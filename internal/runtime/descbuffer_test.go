package runtime

import (
	"testing"
	"unsafe"
)

func newTestDescPagePool() *descriptorPagePool {
	return newDescriptorPagePool(4, 4)
}

func TestDescriptorBuffer(t *testing.T) {
	t.Run("InsertAtOffsetFromCurrentIndex", func(t *testing.T) {
		pool := newTestDescPagePool()

		var buf descriptorBuffer
		buf.initBuffer(5, 0)

		var x int
		entry := unsafe.Pointer(&x)

		buf.insert(entry, 2, pool)

		slot := (buf.currentIndex + 2) % buf.notExpiredLength
		if buf.notExpired[slot].empty() {
			t.Fatalf("expected entry at slot %d", slot)
		}
	})

	t.Run("TickExpiresPreviousSlotAfterExtensionPlusOneTicks", func(t *testing.T) {
		pool := newTestDescPagePool()

		var buf descriptorBuffer
		buf.initBuffer(3, 0)

		var x int
		entry := unsafe.Pointer(&x)

		buf.insert(entry, 1, pool)

		var expiredList descriptorPageList

		for i := 0; i < 2; i++ {
			l := buf.tick()
			if l != nil && !l.empty() {
				expiredList.spliceAllFrom(l)
			}
		}

		if expiredList.empty() {
			t.Fatalf("expected descriptor to expire after extension+1 ticks")
		}

		got, ok := expiredList.next(pool)
		if !ok || got != entry {
			t.Fatalf("expected to recover original entry, got %v ok=%v", got, ok)
		}
	})

	t.Run("UnusedBufferTickIsNoOp", func(t *testing.T) {
		var buf descriptorBuffer
		if !buf.unused() {
			t.Fatal("zero-value buffer should be unused")
		}

		if l := buf.tick(); l != nil {
			t.Fatal("tick on an unused buffer must return nil")
		}
	})
}

func TestDescriptorPageList(t *testing.T) {
	t.Run("EmptyIffHeadNil", func(t *testing.T) {
		var l descriptorPageList
		if !l.empty() {
			t.Fatal("zero-value list should be empty")
		}
	})

	t.Run("InsertSpillsToNewPageWhenFull", func(t *testing.T) {
		pool := newDescriptorPagePool(4, 2)

		var l descriptorPageList

		var a, b, c int
		l.insert(unsafe.Pointer(&a), pool)
		l.insert(unsafe.Pointer(&b), pool)
		l.insert(unsafe.Pointer(&c), pool)

		if l.head == l.tail {
			t.Fatal("expected a second page once the first page (capacity 2) filled")
		}
	})

	t.Run("NextDrainsInFIFOOrder", func(t *testing.T) {
		pool := newDescriptorPagePool(4, 2)

		var l descriptorPageList

		var a, b, c int
		want := []unsafe.Pointer{unsafe.Pointer(&a), unsafe.Pointer(&b), unsafe.Pointer(&c)}

		for _, p := range want {
			l.insert(p, pool)
		}

		for i, w := range want {
			got, ok := l.next(pool)
			if !ok {
				t.Fatalf("entry %d: expected more entries", i)
			}

			if got != w {
				t.Fatalf("entry %d: got %v want %v", i, got, w)
			}
		}

		if _, ok := l.next(pool); ok {
			t.Fatal("expected list to be drained")
		}

		if !l.empty() {
			t.Fatal("drained list should report empty")
		}
	})
}
