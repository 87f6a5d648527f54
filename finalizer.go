package stm

import (
	"unsafe"

	"github.com/tickmem/stm/internal/runtime"
)

// Finalizer is invoked with an object's payload pointer immediately before
// it would otherwise be freed. A nonzero return vetoes the free: the object
// leaks intentionally, and the mutator is responsible for freeing it later
// if it ever becomes reachable again (spec §4.8).
type Finalizer = runtime.Finalizer

// RegisterFinalizer appends fn to the process-wide finalizer table,
// returning its id or an error if the table is full.
func (s *Engine) RegisterFinalizer(fn Finalizer) (int, error) {
	return runtime.RegisterFinalizer(s.e, fn)
}

// SetFinalizer attaches finalizer id to ptr's header, replacing any
// previously attached finalizer.
func (s *Engine) SetFinalizer(ptr unsafe.Pointer, id int32) {
	runtime.SetFinalizer(ptr, id)
}
