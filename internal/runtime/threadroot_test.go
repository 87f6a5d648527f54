package runtime

import "testing"

func newTestEngine() *Engine {
	cfg := Config{
		DescriptorPageSize:         256,
		RegionPageSize:             256,
		MaxExpirationExtension:     4,
		DescriptorPageFreelistSize: 2,
		RegionPageFreelistSize:     2,
		MaxRegions:                 3,
		MaxClocks:                  3,
		FinalizerTableSize:         4,
	}
	cfg.validate()

	return NewEngine(cfg)
}

// newTestThreadRoot builds a root directly (bypassing Acquire's OS-thread
// keying, irrelevant to single-goroutine unit tests). It's left in the
// "not yet joined" (blocked) state newThreadRoot leaves it in, so a test
// that calls ResumeThread exercises the same join path Acquire does.
func newTestThreadRoot(e *Engine) *ThreadRoot {
	return newThreadRoot(e)
}

func TestThreadRootReuseTurnsOldStateIntoZombies(t *testing.T) {
	e := newTestEngine()
	tr := newTestThreadRoot(e)

	id, err := createRegion(tr)
	if err != nil {
		t.Fatalf("createRegion: %v", err)
	}

	before := tr.currentTime
	tr.reuse()

	if tr.currentTime != before+1 {
		t.Fatalf("reuse should bump currentTime, got %d want %d", tr.currentTime, before+1)
	}

	r := &tr.regions[id]
	if r.age == tr.currentTime {
		t.Fatal("region allocated before reuse should now be a zombie")
	}

	if tr.localObjBuf[0].age != tr.currentTime {
		t.Fatal("base clock buffer must be re-stamped live after reuse")
	}
}
