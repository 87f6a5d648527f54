package stm

import (
	"testing"
	"unsafe"
)

func TestAllocFreeRoundTrip(t *testing.T) {
	s := New(DefaultConfig())

	p := s.Alloc(64)
	if p == nil {
		t.Fatal("Alloc returned nil")
	}

	s.Free(p) // counter is 0 right after Alloc, so this actually releases it
}

func TestAcquireRelease(t *testing.T) {
	s := New(DefaultConfig())

	tr := s.Acquire()
	defer s.Release(tr)

	p := s.Alloc(32)
	if p == nil {
		t.Fatal("Alloc returned nil")
	}

	s.Refresh(tr, p, 1)

	if err := s.Tick(tr); err != nil {
		t.Fatalf("Tick: %v", err)
	}
}

func TestRegionBumpOverPage(t *testing.T) {
	cfg := DefaultConfig()
	s := New(cfg)
	tr := s.Acquire()
	defer s.Release(tr)

	id, err := s.CreateRegion(tr)
	if err != nil {
		t.Fatalf("CreateRegion: %v", err)
	}

	var last unsafe.Pointer
	for i := 0; i < 5; i++ {
		p, err := s.MallocInRegion(tr, 1000, id)
		if err != nil {
			t.Fatalf("MallocInRegion %d: %v", i, err)
		}

		last = p
	}

	if last == nil {
		t.Fatal("expected a non-nil payload pointer")
	}
}

func TestFinalizerRegistrationAndVeto(t *testing.T) {
	s := New(DefaultConfig())
	tr := s.Acquire()
	defer s.Release(tr)

	vetoed := false

	id, err := s.RegisterFinalizer(func(unsafe.Pointer) int {
		vetoed = true
		return 1
	})
	if err != nil {
		t.Fatalf("RegisterFinalizer: %v", err)
	}

	p := s.Alloc(16)
	s.SetFinalizer(p, int32(id))
	s.Refresh(tr, p, 0)

	if err := s.Tick(tr); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if !vetoed {
		t.Fatal("expected the registered finalizer to run and veto the free")
	}
}

func TestSnapshotCountsAllocations(t *testing.T) {
	s := New(DefaultConfig())

	before := s.Snapshot().Allocations

	s.Alloc(8)
	s.Alloc(8)

	after := s.Snapshot().Allocations
	if after != before+2 {
		t.Fatalf("expected allocation count to increase by 2, got %d -> %d", before, after)
	}
}

// TestGlobalClockAcrossTwoThreads genuinely exercises two thread roots, each
// pinned to its own OS thread by Acquire, driving the global clock together.
// A single tick from a alone can't be enough to free a freshly refreshed
// object (it needs several rounds of its own phase catching up to
// global_time), but enough alternating ticks from both threads must
// eventually free it.
func TestGlobalClockAcrossTwoThreads(t *testing.T) {
	s := New(DefaultConfig())

	trA := s.Acquire()
	defer s.Release(trA)

	freed := false
	id, err := s.RegisterFinalizer(func(unsafe.Pointer) int {
		freed = true
		return 0
	})
	if err != nil {
		t.Fatalf("RegisterFinalizer: %v", err)
	}

	q := s.Alloc(32)
	s.SetFinalizer(q, int32(id))
	s.GlobalRefresh(trA, q, 0)

	s.GlobalTick(trA)
	if freed {
		t.Fatal("object must not be freed after a single tick from one thread")
	}

	joined := make(chan struct{})
	tickB := make(chan struct{})
	tickedB := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)

		trB := s.Acquire()
		if trB == trA {
			t.Error("b's thread root must be distinct from a's")
		}
		defer s.Release(trB)
		close(joined)

		for range tickB {
			s.GlobalTick(trB)
			tickedB <- struct{}{}
		}
	}()
	<-joined

	for i := 0; i < 6 && !freed; i++ {
		s.GlobalTick(trA)
		tickB <- struct{}{}
		<-tickedB
	}

	if !freed {
		t.Fatal("expected q to be freed once both threads drove enough rendezvous rounds")
	}

	close(tickB)
	<-done
}
