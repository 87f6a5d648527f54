package stm

import "github.com/tickmem/stm/internal/runtime"

// Collect drains tr's expired-object and expired-region lists completely,
// regardless of the configured collection policy (spec §4.4: collect() is
// always eager).
func (s *Engine) Collect(tr *ThreadRoot) {
	runtime.Collect(tr.tr)
}
