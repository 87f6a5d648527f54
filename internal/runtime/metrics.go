package runtime

import "sync/atomic"

// Metrics is the process-wide counters facility supplementing spec §4.9
// (dropped by the distillation as "debugging/metering counters", restored
// from original_source/meter.c's meter_inc/meter_report). Pure bookkeeping:
// nothing reads these to make a decision, and incrementing one never takes
// a lock.
type Metrics struct {
	allocations     atomic.Uint64
	frees           atomic.Uint64
	ticks           atomic.Uint64
	globalTicks     atomic.Uint64
	expirations     atomic.Uint64
	finalizerVetoes atomic.Uint64
}

// MetricsSnapshot is a point-in-time read of Metrics.
type MetricsSnapshot struct {
	Allocations     uint64
	Frees           uint64
	Ticks           uint64
	GlobalTicks     uint64
	Expirations     uint64
	FinalizerVetoes uint64
}

// Snapshot reads the current counters. Each field is read independently, so
// a snapshot taken concurrently with other activity is not a single atomic
// transaction across fields — acceptable for observability counters that
// never gate behavior.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Allocations:     m.allocations.Load(),
		Frees:           m.frees.Load(),
		Ticks:           m.ticks.Load(),
		GlobalTicks:     m.globalTicks.Load(),
		Expirations:     m.expirations.Load(),
		FinalizerVetoes: m.finalizerVetoes.Load(),
	}
}
