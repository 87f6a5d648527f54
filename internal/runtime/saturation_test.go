package runtime

import (
	"testing"

	"github.com/tickmem/stm/internal/allocator"
)

// TestCounterSaturation mirrors spec §8 scenario 6: once a counter reaches
// math.MaxInt32, further refreshes are silently refused; draining one claim
// (here by decrementing the counter directly, as an expiration would) lets a
// subsequent refresh succeed again.
func TestCounterSaturation(t *testing.T) {
	e := newTestEngine()
	tr := newTestThreadRoot(e)

	p := e.Alloc(8)
	h := allocator.HeaderOf(p)
	h.CounterOrRegion = 1<<31 - 1

	Refresh(tr, p, 0)

	if allocator.Counter(h) != 1<<31-1 {
		t.Fatalf("refresh on a saturated counter must be refused, got %d", allocator.Counter(h))
	}

	allocator.DecrementAndTest(h)

	Refresh(tr, p, 0)

	if allocator.Counter(h) != 1<<31-1 {
		t.Fatalf("refresh after draining one claim should succeed, got %d", allocator.Counter(h))
	}
}
