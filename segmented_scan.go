package lanegrid

import "fmt"

// SegmentedScan runs the grid driver on the default context.
// See Context.SegmentedScan.
func SegmentedScan(in, out DevicePtr, n int, cfg ScanConfig) error {
	return defaultContext.SegmentedScan(in, out, n, cfg)
}

// SegmentedScan partitions the n input elements into segments of exactly
// cfg.BlockSize, launches one cooperative block per segment, and writes each
// segment's local scan to the matching output positions. Segments are
// scanned independently: the running total resets at every segment boundary
// and no cross-block combining pass exists. This periodic semantic is
// intentional; it keeps the benchmark measuring the warp and block
// primitives rather than a third reduction level.
//
// n must be a positive multiple of cfg.BlockSize; trailing partial segments
// are the caller's responsibility to pad. The call is synchronous: when it
// returns without error, out holds the complete result.
func (ctx *Context) SegmentedScan(in, out DevicePtr, n int, cfg ScanConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if n <= 0 {
		return NewInvalidArgError("SegmentedScan", "element count must be positive")
	}
	if n%cfg.BlockSize != 0 {
		return NewInvalidArgError("SegmentedScan",
			fmt.Sprintf("element count %d is not a multiple of block size %d", n, cfg.BlockSize))
	}

	inS := in.Int32()
	outS := out.Int32()
	if len(inS) < n {
		return NewInvalidArgError("SegmentedScan",
			fmt.Sprintf("input buffer holds %d elements, need %d", len(inS), n))
	}
	if len(outS) < n {
		return NewInvalidArgError("SegmentedScan",
			fmt.Sprintf("output buffer holds %d elements, need %d", len(outS), n))
	}

	grid := Dim3{X: n / cfg.BlockSize, Y: 1, Z: 1}
	kind := cfg.Kind

	kernel := func(tid ThreadID, blk *Block) {
		gi := tid.Global()
		v := inS[gi]
		if kind == ScanExclusive {
			outS[gi] = blk.ScanExclusive(tid, v)
		} else {
			outS[gi] = blk.ScanInclusive(tid, v)
		}
	}

	if err := ctx.LaunchCoop(kernel, grid, cfg); err != nil {
		return err
	}
	ctx.defaultStream.Synchronize()
	return nil
}
