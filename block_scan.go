package lanegrid

import "fmt"

// Block-wide scan: composes per-warp scans with a carry pass.
//
// Level 1: each warp scans its own lanes.
// Level 2: the last lane of each warp stores the warp total; after a full
// block barrier, warp 0 exclusive-scans the totals into per-warp carries.
// Level 3: after another block barrier, every lane folds in its warp's
// carry. Both barriers are load-bearing: level 2 may run in a different
// warp than the one whose total it consumes.

// ScanInclusive returns the block-wide inclusive prefix sum of v.
// All lanes of the block must call it together.
func (b *Block) ScanInclusive(tid ThreadID, v int32) int32 {
	return b.scan(tid, v, ScanInclusive)
}

// ScanExclusive returns the block-wide exclusive prefix sum of v.
// All lanes of the block must call it together.
func (b *Block) ScanExclusive(tid ThreadID, v int32) int32 {
	return b.scan(tid, v, ScanExclusive)
}

func (b *Block) scan(tid ThreadID, v int32, kind ScanKind) int32 {
	w := b.Warp(tid)
	pad := b.arena.Pad()

	// Level 1: warp-local inclusive scan.
	incl := w.ScanInclusive(v)

	totals := b.arena.TotalsSlots()
	if w.Lane() == w.Size()-1 {
		totals[pad+w.ID()] = incl
	}

	local := incl
	if kind == ScanExclusive {
		if b.cfg.Strategy == StrategySharedMem {
			// The inclusive pass left every lane's running total in
			// its slot; the slot to the left is exactly the exclusive
			// value, and lane 0 reads the zeroed padding.
			local = b.arena.LaneSlots(w.ID())[pad+w.Lane()-1]
		} else {
			local = incl - v
		}
	}

	b.SyncThreads()

	// Level 2: warp 0 exclusive-scans the warp totals. Total slots for
	// warp indices past the block's warp count were never written and
	// contribute the identity.
	if w.ID() == 0 {
		t := totals[pad+w.Lane()]
		var carry int32
		if b.cfg.Strategy == StrategySharedMem {
			scanWarpShared(totals, pad, w.Lane(), w.Size(), t, w.Sync)
			carry = totals[pad+w.Lane()-1]
			w.Sync()
			// Restore the identity in the total slots so a later scan
			// in the same block execution starts from clean state.
			totals[pad+w.Lane()] = 0
		} else {
			carry = scanWarpShuffle(b.xchg[0], w.Lane(), w.Size(), t, w.Sync) - t
		}
		if w.Lane() < len(b.arena.Carries()) {
			b.arena.Carries()[w.Lane()] = carry
		}
	}

	b.SyncThreads()

	// Level 3: read-only fan-out of the carries.
	return local + b.arena.Carries()[w.ID()]
}

// Host-side single-block entry points. They stage the values through
// device memory and run one cooperative block over them.

// BlockScanInclusive scans values with a single block of blockSize lanes
// and returns the inclusive prefix sums.
func BlockScanInclusive(values []int32, blockSize int, cfg ScanConfig) ([]int32, error) {
	return blockScanHost(values, blockSize, cfg, ScanInclusive)
}

// BlockScanExclusive scans values with a single block of blockSize lanes
// and returns the exclusive prefix sums.
func BlockScanExclusive(values []int32, blockSize int, cfg ScanConfig) ([]int32, error) {
	return blockScanHost(values, blockSize, cfg, ScanExclusive)
}

func blockScanHost(values []int32, blockSize int, cfg ScanConfig, kind ScanKind) ([]int32, error) {
	if len(values) != blockSize {
		return nil, NewInvalidArgError("BlockScan",
			fmt.Sprintf("got %d values for a block of %d lanes", len(values), blockSize))
	}
	cfg.BlockSize = blockSize
	cfg.Kind = kind
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bytes := blockSize * 4
	dIn, err := Malloc(bytes)
	if err != nil {
		return nil, err
	}
	defer Free(dIn)
	dOut, err := Malloc(bytes)
	if err != nil {
		return nil, err
	}
	defer Free(dOut)

	if err := Memcpy(dIn, values, bytes, MemcpyHostToDevice); err != nil {
		return nil, err
	}
	if err := SegmentedScan(dIn, dOut, blockSize, cfg); err != nil {
		return nil, err
	}

	out := make([]int32, blockSize)
	if err := Memcpy(out, dOut, bytes, MemcpyDeviceToHost); err != nil {
		return nil, err
	}
	return out, nil
}
