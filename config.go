// Package lanegrid configuration constants
package lanegrid

// Warp dimensions. Warps are power-of-two sized; the block-scan carry pass
// additionally requires blockSize <= warpSize*warpSize so that a single warp
// can scan every warp total.
const (
	// MinWarpSize is the smallest supported warp width. 16 is the floor
	// because a block must hold at least MinBlockSize lanes while staying
	// within warpSize^2.
	MinWarpSize = 16

	// MaxWarpSize is the largest supported warp width
	MaxWarpSize = 32

	// DefaultWarpSize matches the warp width of most real hardware
	DefaultWarpSize = 32
)

// Block dimensions
const (
	// MinBlockSize is the smallest supported block
	MinBlockSize = 128

	// MaxBlockSize is the largest supported block
	MaxBlockSize = 1024

	// DefaultBlockSize for scan launches
	DefaultBlockSize = 256
)

// Grid scheduling parameters
const (
	// DefaultResidentBlocks caps how many blocks are simultaneously
	// resident; a zero config value selects one block per CPU core.
	// Blocks beyond the cap are scheduled by grid-stride reuse.
	DefaultResidentBlocks = 0
)

// Memory pool parameters
const (
	// MemoryAlignment for allocations (cache line)
	MemoryAlignment = 64

	// MinAllocationSize to prevent fragmentation
	MinAllocationSize = 64
)

// Test data parameters
const (
	// DefaultModulus bounds generated scan inputs so that block-wide
	// int32 sums cannot overflow: 1024 * (DefaultModulus-1) < 2^31.
	DefaultModulus = 1 << 16
)
