package runtime

import "sync/atomic"

// zombieSweep performs one round-robin amortized cleanup step (spec §4.5,
// §9): advance tr.roundRobin by one slot (never to 0, the base clock), and
// if the buffer sitting there is a zombie that's still in use
// (not_expired_length != 0), tick it once to drain one more slot. This is
// deliberately NOT a full sweep — the spec flags that exact amortization as
// a detail implementations must preserve rather than "improve".
func (tr *ThreadRoot) zombieSweep() {
	n := len(tr.localObjBuf)
	if n <= 1 {
		return
	}

	tr.roundRobin++
	if tr.roundRobin >= n {
		tr.roundRobin = 1
	}

	i := tr.roundRobin

	if tr.localObjBuf[i].age != tr.currentTime && !tr.localObjBuf[i].unused() {
		tr.tickBufferPair(&tr.localObjBuf[i], &tr.localRegBuf[i])
	}
}

// tickBufferPair ticks one object buffer and its paired region buffer,
// splicing each one's just-expired slot into the thread's expired lists.
func (tr *ThreadRoot) tickBufferPair(objBuf, regBuf *descriptorBuffer) {
	if l := objBuf.tick(); l != nil {
		tr.expiredObjects.spliceAllFrom(l)
	}

	if l := regBuf.tick(); l != nil {
		tr.expiredRegions.spliceAllFrom(l)
	}
}

// runCollectionPolicy applies the configured collection policy: lazy makes
// one unit of progress on each expired list per call, eager drains both
// completely (spec §4.4). collect() always calls the eager path directly.
func (tr *ThreadRoot) runCollectionPolicy() {
	if tr.config.EagerCollection {
		tr.collectAll()
		return
	}

	expireOneObject(tr)
	expireOneRegion(tr)
}

func (tr *ThreadRoot) collectAll() {
	for expireOneObject(tr) {
	}
	for expireOneRegion(tr) {
	}
}

// GlobalTick implements spec §4.6: a thread only touches the shared
// countdown on its first tick of the current phase — a thread that already
// ticked this phase does nothing further until global_time advances past
// it. Ticking also decrement-and-tests the shared countdown (lock-free in
// the common case), advancing global_time under the mutex only when this
// thread is the last ticker, then runs the zombie sweep and collection
// policy exactly as tick_clock does.
func (e *Engine) GlobalTick(tr *ThreadRoot) {
	if tr.globalPhase == atomic.LoadInt32(&e.globalTime) {
		tr.globalPhase++
		tr.tickBufferPair(&tr.globalObjBuf, &tr.globalRegBuf)

		if atomic.AddInt32(&e.tickedThreadsCountdown, -1) == 0 {
			e.globalMu.Lock()
			atomic.StoreInt32(&e.tickedThreadsCountdown, atomic.LoadInt32(&e.numberOfThreads))
			atomic.AddInt32(&e.globalTime, 1)
			e.globalMu.Unlock()
		}
	}

	tr.zombieSweep()
	tr.runCollectionPolicy()
	e.metrics.globalTicks.Add(1)
}

// BlockThread implements spec §4.6: called before a blocking syscall or
// before a thread terminates. Idempotent w.r.t. the blocked flag per §8's
// round-trip law.
func (e *Engine) BlockThread(tr *ThreadRoot) {
	if tr.blocked {
		return
	}

	e.globalMu.Lock()
	defer e.globalMu.Unlock()

	atomic.AddInt32(&e.numberOfThreads, -1)

	if tr.globalPhase == e.globalTime {
		if atomic.AddInt32(&e.tickedThreadsCountdown, -1) == 0 {
			if e.numberOfThreads == 0 {
				atomic.StoreInt32(&e.tickedThreadsCountdown, 1)
			} else {
				atomic.StoreInt32(&e.tickedThreadsCountdown, e.numberOfThreads)
			}
			e.globalTime++
		}
	}

	tr.blocked = true
}

// ResumeThread implements spec §4.6: sets this thread's phase so it either
// drives the next global advance (if it's the only live thread) or doesn't
// prematurely trigger one, then re-adds it to the live count.
func (e *Engine) ResumeThread(tr *ThreadRoot) {
	if !tr.blocked {
		return
	}

	e.globalMu.Lock()
	defer e.globalMu.Unlock()

	if e.numberOfThreads == 0 {
		tr.globalPhase = e.globalTime
	} else {
		tr.globalPhase = e.globalTime + 1
	}

	e.numberOfThreads++
	tr.blocked = false
}
