package stm

// GlobalTick advances tr's view of the global clock if it hasn't already
// ticked in the current phase, participates in the cross-thread rendezvous
// that advances global_time once every unblocked thread has ticked, then
// runs the zombie sweep and collection policy (spec §4.6).
func (s *Engine) GlobalTick(tr *ThreadRoot) {
	s.e.GlobalTick(tr.tr)
}

// BlockThread must be called before any blocking syscall and before a
// thread's root is released, so global_time can still advance while this
// thread is quiescent. Idempotent with respect to the blocked flag.
func (s *Engine) BlockThread(tr *ThreadRoot) {
	s.e.BlockThread(tr.tr)
}

// ResumeThread must be called after returning from a blocking syscall that
// was preceded by BlockThread. Idempotent with respect to the blocked flag.
func (s *Engine) ResumeThread(tr *ThreadRoot) {
	s.e.ResumeThread(tr.tr)
}
