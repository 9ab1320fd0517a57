package lanegrid

import (
	"runtime"
	"sync"
)

// CoopKernelFunc is a cooperative kernel: every lane of a block runs it
// concurrently and may synchronize with its warp or the whole block through
// the Block handle. Blocks are one-dimensional; the block width comes from
// the launch configuration.
type CoopKernelFunc func(tid ThreadID, blk *Block)

// Block is the kernel-side handle to a cooperative block: its identity
// within the grid, its shared arena, and its barriers.
type Block struct {
	idx      Dim3
	dim      Dim3
	grid     Dim3
	cfg      ScanConfig
	numWarps int
	arena    *SharedArena
	barrier  *Barrier
	warpBars []*Barrier
	xchg     [][]int32 // per-warp register-exchange buffers
}

func newBlock(grid Dim3, cfg ScanConfig) *Block {
	numWarps := cfg.BlockSize / cfg.WarpSize
	b := &Block{
		dim:      Dim3{X: cfg.BlockSize, Y: 1, Z: 1},
		grid:     grid,
		cfg:      cfg,
		numWarps: numWarps,
		arena:    newSharedArena(cfg.BlockSize, cfg.WarpSize),
		barrier:  NewBarrier(cfg.BlockSize),
		warpBars: make([]*Barrier, numWarps),
		xchg:     make([][]int32, numWarps),
	}
	for w := 0; w < numWarps; w++ {
		b.warpBars[w] = NewBarrier(cfg.WarpSize)
		b.xchg[w] = make([]int32, cfg.WarpSize)
	}
	return b
}

// reset reassigns the block to a new grid position and restores the shared
// arena's zero-padding invariant.
func (b *Block) reset(idx Dim3) {
	b.idx = idx
	b.arena.reset()
}

// Idx returns the block's position in the grid.
func (b *Block) Idx() Dim3 {
	return b.idx
}

// Dim returns the block dimensions.
func (b *Block) Dim() Dim3 {
	return b.dim
}

// NumWarps returns the number of warps in the block.
func (b *Block) NumWarps() int {
	return b.numWarps
}

// WarpSize returns the configured warp width.
func (b *Block) WarpSize() int {
	return b.cfg.WarpSize
}

// Shared returns the block's scratch arena.
func (b *Block) Shared() *SharedArena {
	return b.arena
}

// SyncThreads blocks until every lane of the block has reached it.
// Omitting a required SyncThreads between scan phases is a data race, not a
// performance choice.
func (b *Block) SyncThreads() {
	b.barrier.Wait()
}

// LaunchCoop executes a cooperative kernel across the grid on the default
// context. See Context.LaunchCoop.
func (ctx *Context) LaunchCoop(fn CoopKernelFunc, grid Dim3, cfg ScanConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	gridSize := grid.Size()
	if gridSize == 0 {
		// Submit an empty task to maintain stream ordering
		ctx.defaultStream.Submit(func() {})
		return nil
	}

	resident := cfg.ResidentBlocks
	if resident <= 0 {
		resident = runtime.NumCPU()
	}
	if resident > gridSize {
		resident = gridSize
	}

	ctx.defaultStream.Submit(func() {
		var wg sync.WaitGroup
		wg.Add(resident)

		for slot := 0; slot < resident; slot++ {
			go func(slot int) {
				defer wg.Done()

				// Each resident slot owns one block (arena and
				// barriers) and reuses it for every segment the
				// grid-stride loop assigns to it.
				blk := newBlock(grid, cfg)
				for blockID := slot; blockID < gridSize; blockID += resident {
					blk.reset(linearTo3D(blockID, grid))
					runBlock(fn, blk)
				}
			}(slot)
		}

		wg.Wait()
	})

	return nil
}

// runBlock executes one block: a goroutine per lane, joined before the
// block can be reassigned.
func runBlock(fn CoopKernelFunc, blk *Block) {
	lanes := blk.dim.Size()

	var wg sync.WaitGroup
	wg.Add(lanes)

	for lane := 0; lane < lanes; lane++ {
		go func(lane int) {
			defer wg.Done()
			tid := ThreadID{
				BlockIdx:  blk.idx,
				ThreadIdx: Dim3{X: lane},
				BlockDim:  blk.dim,
				GridDim:   blk.grid,
			}
			fn(tid, blk)
		}(lane)
	}

	wg.Wait()
}
