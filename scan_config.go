package lanegrid

import "fmt"

// ScanStrategy selects how a warp exchanges partial sums during the
// log-step reduction.
type ScanStrategy int

const (
	// StrategySharedMem scans through the block's shared arena slots,
	// with zero-padded regions so boundary lanes read the identity
	// without branching.
	StrategySharedMem ScanStrategy = iota

	// StrategyShuffle scans through warp-local register exchange,
	// touching no block shared memory. Out-of-range lanes contribute the
	// identity via an explicit bounds check.
	StrategyShuffle
)

// String returns the strategy name.
func (s ScanStrategy) String() string {
	switch s {
	case StrategySharedMem:
		return "shared"
	case StrategyShuffle:
		return "shuffle"
	default:
		return "unknown"
	}
}

// ScanKind selects inclusive or exclusive scan semantics.
type ScanKind int

const (
	// ScanInclusive includes each lane's own value in its running total.
	ScanInclusive ScanKind = iota

	// ScanExclusive excludes each lane's own value; the first lane of
	// every period holds the identity (zero).
	ScanExclusive
)

// String returns the kind name.
func (k ScanKind) String() string {
	switch k {
	case ScanInclusive:
		return "inclusive"
	case ScanExclusive:
		return "exclusive"
	default:
		return "unknown"
	}
}

// ScanConfig parameterizes a scan launch. Sizes are checked at call time;
// only power-of-two warp and block sizes are accepted.
type ScanConfig struct {
	BlockSize int          // Lanes per block, power of two in [MinBlockSize, MaxBlockSize]
	WarpSize  int          // Lanes per warp, power of two in [MinWarpSize, MaxWarpSize]
	Strategy  ScanStrategy // Warp exchange strategy
	Kind      ScanKind     // Inclusive or exclusive

	// ResidentBlocks caps concurrently executing blocks; zero selects
	// one block per CPU core. Grids larger than the cap reuse resident
	// blocks via a grid-stride loop.
	ResidentBlocks int
}

// DefaultScanConfig returns the configuration used by the benchmarks:
// 256-lane blocks of 32-lane warps, shared-memory strategy, inclusive.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		BlockSize:      DefaultBlockSize,
		WarpSize:       DefaultWarpSize,
		Strategy:       StrategySharedMem,
		Kind:           ScanInclusive,
		ResidentBlocks: DefaultResidentBlocks,
	}
}

// Validate rejects configurations the kernels cannot run. Violations are
// caller errors and fail fast, before any launch.
func (c ScanConfig) Validate() error {
	if !isPowerOfTwo(c.WarpSize) || c.WarpSize < MinWarpSize || c.WarpSize > MaxWarpSize {
		return NewInvalidArgError("ScanConfig",
			fmt.Sprintf("warp size %d must be a power of two in [%d, %d]", c.WarpSize, MinWarpSize, MaxWarpSize))
	}
	if !isPowerOfTwo(c.BlockSize) || c.BlockSize < MinBlockSize || c.BlockSize > MaxBlockSize {
		return NewInvalidArgError("ScanConfig",
			fmt.Sprintf("block size %d must be a power of two in [%d, %d]", c.BlockSize, MinBlockSize, MaxBlockSize))
	}
	if c.BlockSize%c.WarpSize != 0 {
		return NewInvalidArgError("ScanConfig",
			fmt.Sprintf("block size %d is not a multiple of warp size %d", c.BlockSize, c.WarpSize))
	}
	// One warp must be able to scan all warp totals in a single pass.
	if c.BlockSize > c.WarpSize*c.WarpSize {
		return NewInvalidArgError("ScanConfig",
			fmt.Sprintf("block size %d exceeds warpSize^2 = %d", c.BlockSize, c.WarpSize*c.WarpSize))
	}
	if c.Strategy != StrategySharedMem && c.Strategy != StrategyShuffle {
		return NewInvalidArgError("ScanConfig", fmt.Sprintf("unknown scan strategy %d", c.Strategy))
	}
	if c.Kind != ScanInclusive && c.Kind != ScanExclusive {
		return NewInvalidArgError("ScanConfig", fmt.Sprintf("unknown scan kind %d", c.Kind))
	}
	if c.ResidentBlocks < 0 {
		return NewInvalidArgError("ScanConfig", "resident block cap must not be negative")
	}
	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
