package runtime

import stmerrors "github.com/tickmem/stm/internal/errors"

// ClockID identifies a per-thread clock; 0 is always the implicit base
// clock, live for the lifetime of the thread root.
type ClockID int

// RegisterClock implements spec §4.5: next-fit scan of slots [1, MaxClocks)
// for one not currently in use by this thread (age != current_time).
func RegisterClock(tr *ThreadRoot) (ClockID, error) {
	n := len(tr.localObjBuf)
	if n <= 1 {
		return -1, stmerrors.ContingencyExceeded("clocks", n)
	}

	length := tr.config.MaxExpirationExtension + 1

	start := tr.nextClockIndex
	if start < 1 || start >= n {
		start = 1
	}

	for i := 0; i < n-1; i++ {
		idx := 1 + (start-1+i)%(n-1)

		if tr.localObjBuf[idx].age == tr.currentTime {
			continue
		}

		tr.localObjBuf[idx].initBuffer(length, tr.currentTime)
		tr.localRegBuf[idx].initBuffer(length, tr.currentTime)

		tr.nextClockIndex = idx + 1
		if tr.nextClockIndex >= n {
			tr.nextClockIndex = 1
		}

		return ClockID(idx), nil
	}

	return -1, stmerrors.ContingencyExceeded("clocks", n)
}

// UnregisterClock implements spec §4.5: only ids > 0 (the base clock can
// never be unregistered) are marked zombie by stamping age one behind
// current_time; out-of-range or id <= 0 is a silent no-op (debug log).
func UnregisterClock(tr *ThreadRoot, id ClockID) {
	if id <= 0 || int(id) >= len(tr.localObjBuf) {
		logger.Printf("unregister_clock: invalid id %d", id)
		return
	}

	tr.localObjBuf[id].age = tr.currentTime - 1
	tr.localRegBuf[id].age = tr.currentTime - 1
}

// TickClock implements spec §4.5: tick both paired buffers at id, run one
// amortized zombie-sweep step (only meaningful with more than one clock
// slot), then apply the configured collection policy.
func TickClock(tr *ThreadRoot, id ClockID) error {
	if id < 0 || int(id) >= len(tr.localObjBuf) {
		return stmerrors.InvalidID("clock", int(id))
	}

	tr.tickBufferPair(&tr.localObjBuf[id], &tr.localRegBuf[id])
	tr.zombieSweep()
	tr.runCollectionPolicy()
	tr.engine.metrics.ticks.Add(1)

	return nil
}

// Tick is tick_clock(0), the base clock.
func Tick(tr *ThreadRoot) error {
	return TickClock(tr, 0)
}
