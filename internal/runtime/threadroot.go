package runtime

// ThreadRoot is the per-OS-thread singleton described in spec §3.7: every
// buffer, region table, clock table, and expired-page list a thread's
// allocations touch lives here, accessed without synchronization except for
// the descriptor counters themselves (which are plain object-header atomics,
// not fields of ThreadRoot).
type ThreadRoot struct {
	engine   *Engine
	threadID int64
	next     *ThreadRoot // terminated-roots freelist link; nil when live

	config Config

	currentTime uint32
	globalPhase int32
	blocked     bool

	nextRegIndex   int
	nextClockIndex int
	roundRobin     int

	regions        []region
	regionPagePool *regionPagePool
	descPagePool   *descriptorPagePool

	expiredObjects descriptorPageList
	expiredRegions descriptorPageList

	globalObjBuf descriptorBuffer
	globalRegBuf descriptorBuffer
	localObjBuf  []descriptorBuffer
	localRegBuf  []descriptorBuffer
}

// newThreadRoot allocates a brand-new root for e's configuration. Called
// only when the terminated-roots freelist (terminated.go) is empty.
func newThreadRoot(e *Engine) *ThreadRoot {
	cfg := e.config

	tr := &ThreadRoot{
		engine:         e,
		config:         cfg,
		regions:        make([]region, cfg.MaxRegions),
		regionPagePool: newRegionPagePool(cfg.RegionPageFreelistSize, cfg.regionPagePayload()),
		descPagePool:   newDescriptorPagePool(cfg.DescriptorPageFreelistSize, cfg.descriptorPageCapacity()),
		localObjBuf:    make([]descriptorBuffer, cfg.MaxClocks),
		localRegBuf:    make([]descriptorBuffer, cfg.MaxClocks),
		blocked:        true,
	}

	tr.stampLive()

	return tr
}

// reuse re-initializes a root popped off the terminated-roots freelist for a
// new owning thread. Bumping currentTime turns every existing buffer and
// region into a zombie (age no longer matches) without touching a single
// page — the "effectively resetting state without freeing pages" behavior
// spec §3.8 documents — then slot 0 and the global buffers are re-stamped
// live, since the base clock and the global clock are always registered.
func (tr *ThreadRoot) reuse() {
	tr.currentTime++
	tr.globalPhase = 0
	tr.blocked = true
	tr.nextRegIndex = 0
	tr.nextClockIndex = 1
	tr.roundRobin = 1
	tr.expiredObjects.reset()
	tr.expiredRegions.reset()

	tr.stampLive()
}

// stampLive (re-)establishes the always-on buffers: the base clock (slot 0)
// and the two globally-clocked buffers. Called both on first construction
// and after reuse().
func (tr *ThreadRoot) stampLive() {
	localLen := tr.config.MaxExpirationExtension + 1
	globalLen := tr.config.MaxExpirationExtension + 2

	tr.localObjBuf[0].initBuffer(localLen, tr.currentTime)
	tr.localRegBuf[0].initBuffer(localLen, tr.currentTime)
	tr.globalObjBuf.initBuffer(globalLen, tr.currentTime)
	tr.globalRegBuf.initBuffer(globalLen, tr.currentTime)

	if tr.nextClockIndex == 0 {
		tr.nextClockIndex = 1
	}

	if tr.roundRobin == 0 {
		tr.roundRobin = 1
	}
}
