package runtime

import (
	"sync"
	"unsafe"

	"github.com/tickmem/stm/internal/allocator"
	stmerrors "github.com/tickmem/stm/internal/errors"
)

// Finalizer is invoked with the payload pointer of an object about to be
// freed. A nonzero return vetoes the free: the object leaks intentionally
// (spec §4.8), and the caller is responsible for freeing it explicitly if
// it ever becomes reachable again.
type Finalizer func(unsafe.Pointer) int

// finalizerTable is the process-wide append-only table of registered
// finalizers, grounded on the append-only-cursor pattern spec §4.8 and §5
// both call for ("the finalizer table's append cursor: guarded by a second
// mutex").
type finalizerTable struct {
	mu    sync.Mutex
	fns   []Finalizer
	limit int
}

func newFinalizerTable(limit int) *finalizerTable {
	return &finalizerTable{limit: limit}
}

// register appends fn and returns its id, or -1 if the table is full.
func (t *finalizerTable) register(fn Finalizer) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.fns) >= t.limit {
		return -1
	}

	t.fns = append(t.fns, fn)

	return len(t.fns) - 1
}

func (t *finalizerTable) get(id int32) Finalizer {
	if id < 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if int(id) >= len(t.fns) {
		return nil
	}

	return t.fns[id]
}

// RegisterFinalizer implements spec §4.8's register_finalizer.
func RegisterFinalizer(e *Engine, fn Finalizer) (int, error) {
	id := e.finalizers.register(fn)
	if id < 0 {
		return -1, stmerrors.ContingencyExceeded("finalizers", e.finalizers.limit)
	}

	return id, nil
}

// SetFinalizer stamps id into payload's header, replacing whatever
// finalizer was previously attached.
func SetFinalizer(payload unsafe.Pointer, id int32) {
	if payload == nil {
		return
	}

	h := allocator.HeaderOf(payload)
	h.FinalizerIndex = id
}

// runFinalizer looks up and invokes the finalizer attached to payload, if
// any, returning whether the free should proceed (true) or be vetoed
// (false).
func runFinalizer(e *Engine, payload unsafe.Pointer) bool {
	h := allocator.HeaderOf(payload)
	if h.FinalizerIndex == allocator.NoFinalizer {
		return true
	}

	fn := e.finalizers.get(h.FinalizerIndex)
	if fn == nil {
		return true
	}

	return fn(payload) == 0
}
