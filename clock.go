package stm

import "github.com/tickmem/stm/internal/runtime"

// ClockID identifies a per-thread clock. Clock 0 is the implicit base
// clock, always live for the lifetime of a ThreadRoot.
type ClockID = runtime.ClockID

// BaseClock is the always-registered clock every ThreadRoot starts with.
const BaseClock ClockID = 0

// RegisterClock allocates a new per-thread clock, returning an error if
// every slot in [1, MaxClocks) is currently in use (spec §4.5).
func (s *Engine) RegisterClock(tr *ThreadRoot) (ClockID, error) {
	return runtime.RegisterClock(tr.tr)
}

// UnregisterClock marks a non-base clock a zombie, eligible for reclaim by
// the round-robin sweep; ids <= 0 or out of range are a silent no-op.
func (s *Engine) UnregisterClock(tr *ThreadRoot, id ClockID) {
	runtime.UnregisterClock(tr.tr, id)
}

// TickClock advances clock id by one, expiring whatever descriptors had
// zero residual lifetime, then runs one amortized zombie-sweep step and the
// configured collection policy.
func (s *Engine) TickClock(tr *ThreadRoot, id ClockID) error {
	return runtime.TickClock(tr.tr, id)
}

// Tick is TickClock(tr, BaseClock).
func (s *Engine) Tick(tr *ThreadRoot) error {
	return runtime.Tick(tr.tr)
}
