package lanegrid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockScanAgainstOracle(t *testing.T) {
	for _, blockSize := range []int{128, 256, 512, 1024} {
		for _, strategy := range []ScanStrategy{StrategySharedMem, StrategyShuffle} {
			t.Run(fmt.Sprintf("block%d_%s", blockSize, strategy), func(t *testing.T) {
				cfg := DefaultScanConfig()
				cfg.Strategy = strategy

				in := GenerateInt32(blockSize, uint64(blockSize), 1000)

				incl, err := BlockScanInclusive(in, blockSize, cfg)
				require.NoError(t, err)
				assert.Equal(t, ReferenceSegmentedScan(in, blockSize, ScanInclusive), incl)

				excl, err := BlockScanExclusive(in, blockSize, cfg)
				require.NoError(t, err)
				assert.Equal(t, ReferenceSegmentedScan(in, blockSize, ScanExclusive), excl)
			})
		}
	}
}

// Ramp 0..255 scanned inclusively yields the triangular numbers.
func TestBlockScanTriangularNumbers(t *testing.T) {
	const blockSize = 256
	in := GenerateRampInt32(blockSize)

	incl, err := BlockScanInclusive(in, blockSize, DefaultScanConfig())
	require.NoError(t, err)

	for i := 0; i < blockSize; i++ {
		assert.Equal(t, int32(i*(i+1)/2), incl[i], "triangular number at %d", i)
	}
	assert.Equal(t, int32(32640), incl[blockSize-1])

	excl, err := BlockScanExclusive(in, blockSize, DefaultScanConfig())
	require.NoError(t, err)

	assert.Zero(t, excl[0])
	for i := 1; i < blockSize; i++ {
		assert.Equal(t, int32((i-1)*i/2), excl[i], "shifted triangular number at %d", i)
	}
	assert.Equal(t, int32(32385), excl[blockSize-1])
}

// The last lane's inclusive value must equal the total over the block.
func TestBlockScanLastLaneHoldsTotal(t *testing.T) {
	cfg := DefaultScanConfig()
	in := GenerateInt32(cfg.BlockSize, 1234, 500)

	var total int32
	for _, v := range in {
		total += v
	}

	incl, err := BlockScanInclusive(in, cfg.BlockSize, cfg)
	require.NoError(t, err)
	assert.Equal(t, total, incl[cfg.BlockSize-1])
}

func TestBlockScanStrategyInvariance(t *testing.T) {
	for _, blockSize := range []int{128, 512} {
		in := GenerateInt32(blockSize, 5, 1<<20)

		cfg := DefaultScanConfig()
		cfg.Strategy = StrategySharedMem
		shared, err := BlockScanInclusive(in, blockSize, cfg)
		require.NoError(t, err)

		cfg.Strategy = StrategyShuffle
		shuffle, err := BlockScanInclusive(in, blockSize, cfg)
		require.NoError(t, err)

		assert.Equal(t, shared, shuffle, "block %d", blockSize)
	}
}

// Warp width must not change block-level results.
func TestBlockScanWarpSizeInvariance(t *testing.T) {
	const blockSize = 256
	in := GenerateInt32(blockSize, 77, 1000)

	cfg := DefaultScanConfig()
	cfg.WarpSize = 16
	narrow, err := BlockScanInclusive(in, blockSize, cfg)
	require.NoError(t, err)

	cfg.WarpSize = 32
	wide, err := BlockScanInclusive(in, blockSize, cfg)
	require.NoError(t, err)

	assert.Equal(t, narrow, wide)
}

func TestBlockScanRejectsLengthMismatch(t *testing.T) {
	in := GenerateRampInt32(100)
	_, err := BlockScanInclusive(in, 256, DefaultScanConfig())
	assert.True(t, IsInvalidArgError(err), "got %v", err)
}

// A kernel may scan more than once per block execution; results of the
// second pass must be as clean as the first.
func TestBlockScanRepeatedWithinKernel(t *testing.T) {
	for _, strategy := range []ScanStrategy{StrategySharedMem, StrategyShuffle} {
		t.Run(strategy.String(), func(t *testing.T) {
			cfg := DefaultScanConfig()
			cfg.Strategy = strategy

			in := GenerateInt32(cfg.BlockSize, 31, 1000)
			first := make([]int32, cfg.BlockSize)
			second := make([]int32, cfg.BlockSize)

			kernel := func(tid ThreadID, blk *Block) {
				lane := tid.ThreadIdx.X
				first[lane] = blk.ScanInclusive(tid, in[lane])
				blk.SyncThreads()
				second[lane] = blk.ScanInclusive(tid, in[lane])
			}

			require.NoError(t, LaunchCoop(kernel, Dim3{X: 1, Y: 1, Z: 1}, cfg))
			SynchronizeOrFail(t)

			want := ReferenceSegmentedScan(in, cfg.BlockSize, ScanInclusive)
			assert.Equal(t, want, first)
			assert.Equal(t, want, second)
		})
	}
}
