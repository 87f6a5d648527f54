package runtime

import "unsafe"

// ptrSize mirrors the original's sizeof(void*) in the page-capacity macros.
const ptrSize = unsafe.Sizeof(uintptr(0))

// Default tunables, named after the spec's compile-time #defines.
const (
	DefaultDescriptorPageSize         = 4096
	DefaultRegionPageSize             = 4096
	DefaultMaxExpirationExtension     = 10
	DefaultDescriptorPageFreelistSize = 10
	DefaultRegionPageFreelistSize     = 10
	DefaultMaxRegions                 = 10
	DefaultMaxClocks                  = 10
	DefaultFinalizerTableSize         = 32
)

// Config captures the STM core's compile-time tunables. The teacher has no
// config-file layer for this subsystem; its analogous knobs
// (internal/allocator.Config's AlignmentSize, pool chunk sizes) are plain
// constructor-time struct fields too, so Config follows that shape rather
// than adding an env-var or file-based override layer the original never
// had either (its equivalents are literal #defines).
type Config struct {
	DescriptorPageSize         int
	RegionPageSize             int
	MaxExpirationExtension     int
	DescriptorPageFreelistSize int
	RegionPageFreelistSize     int
	MaxRegions                 int
	MaxClocks                  int
	FinalizerTableSize         int

	// EagerCollection selects the eager collection policy (every tick
	// drains the expired lists completely) over the default lazy policy
	// (every tick/refresh/global_refresh makes one unit of progress).
	// The spec describes this as a build-time toggle; it's a runtime field
	// here so a single binary can exercise both policies, which is all a
	// build tag would have bought given both policies share one predicate.
	EagerCollection bool
}

// DefaultConfig returns the spec's documented defaults.
func DefaultConfig() Config {
	return Config{
		DescriptorPageSize:         DefaultDescriptorPageSize,
		RegionPageSize:             DefaultRegionPageSize,
		MaxExpirationExtension:     DefaultMaxExpirationExtension,
		DescriptorPageFreelistSize: DefaultDescriptorPageFreelistSize,
		RegionPageFreelistSize:     DefaultRegionPageFreelistSize,
		MaxRegions:                 DefaultMaxRegions,
		MaxClocks:                  DefaultMaxClocks,
		FinalizerTableSize:         DefaultFinalizerTableSize,
		EagerCollection:            false,
	}
}

// validate clamps/normalizes a Config to values the engine can safely use.
func (c *Config) validate() {
	if c.DescriptorPageSize <= 0 {
		c.DescriptorPageSize = DefaultDescriptorPageSize
	}

	if c.RegionPageSize <= 0 {
		c.RegionPageSize = DefaultRegionPageSize
	}

	if c.MaxExpirationExtension <= 0 {
		c.MaxExpirationExtension = DefaultMaxExpirationExtension
	}

	if c.DescriptorPageFreelistSize < 0 {
		c.DescriptorPageFreelistSize = 0
	}

	if c.RegionPageFreelistSize < 0 {
		c.RegionPageFreelistSize = 0
	}

	if c.MaxRegions <= 0 {
		c.MaxRegions = DefaultMaxRegions
	}

	if c.MaxClocks <= 0 {
		c.MaxClocks = DefaultMaxClocks
	}

	if c.FinalizerTableSize <= 0 {
		c.FinalizerTableSize = DefaultFinalizerTableSize
	}
}

// descriptorPageCapacity computes D = (PAGE_SIZE - 2*ptr) / ptr, the number
// of back-reference slots a descriptor page holds after its forward link
// and count field.
func (c *Config) descriptorPageCapacity() int {
	const ptr = int(ptrSize)

	cap := (c.DescriptorPageSize - 2*ptr) / ptr
	if cap < 1 {
		cap = 1
	}

	return cap
}

// regionPagePayload computes the usable bytes in a region page after its
// forward link.
func (c *Config) regionPagePayload() int {
	const ptr = int(ptrSize)

	n := c.RegionPageSize - ptr
	if n < 1 {
		n = 1
	}

	return n
}
