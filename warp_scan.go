package lanegrid

// Warp is one lane's view of its warp during a cooperative kernel. The
// scan primitives use the warp's natural lane ordering: lane 0 first.
//
// Hardware lockstep is deliberately not modeled. Every cross-lane exchange
// synchronizes through the warp's barrier, so the correctness argument
// holds on any scheduler.
type Warp struct {
	blk  *Block
	id   int
	lane int
	size int
}

// Warp returns the calling lane's warp handle.
func (b *Block) Warp(tid ThreadID) Warp {
	lane := tid.ThreadIdx.X
	return Warp{
		blk:  b,
		id:   lane / b.cfg.WarpSize,
		lane: lane % b.cfg.WarpSize,
		size: b.cfg.WarpSize,
	}
}

// ID returns the warp's index within its block.
func (w Warp) ID() int {
	return w.id
}

// Lane returns the calling lane's index within the warp.
func (w Warp) Lane() int {
	return w.lane
}

// Size returns the warp width.
func (w Warp) Size() int {
	return w.size
}

// Sync blocks until every lane of the warp has reached it.
func (w Warp) Sync() {
	w.blk.warpBars[w.id].Wait()
}

// ScanInclusive returns the running total over the warp including the
// calling lane's own value, using the block's configured strategy.
// All lanes of the warp must call it together.
func (w Warp) ScanInclusive(v int32) int32 {
	if w.blk.cfg.Strategy == StrategyShuffle {
		return scanWarpShuffle(w.blk.xchg[w.id], w.lane, w.size, v, w.Sync)
	}
	return scanWarpShared(w.blk.arena.LaneSlots(w.id), w.blk.arena.Pad(), w.lane, w.size, v, w.Sync)
}

// ScanExclusive returns the running total over the warp excluding the
// calling lane's own value; lane 0 receives the identity.
// All lanes of the warp must call it together.
func (w Warp) ScanExclusive(v int32) int32 {
	if w.blk.cfg.Strategy == StrategyShuffle {
		return scanWarpShuffle(w.blk.xchg[w.id], w.lane, w.size, v, w.Sync) - v
	}
	s := w.blk.arena.LaneSlots(w.id)
	pad := w.blk.arena.Pad()
	scanWarpShared(s, pad, w.lane, w.size, v, w.Sync)
	// After the inclusive pass every slot holds its lane's running total,
	// so the preceding slot is exactly the exclusive result; lane 0 reads
	// the zeroed padding. The trailing sync keeps a later pass from
	// overwriting slots that a neighbor has not read yet.
	x := s[pad+w.lane-1]
	w.Sync()
	return x
}

// scanWarpShared is the Hillis-Steele log-step scan through shared slots.
// s is a padded slot region: pad zeroed words, then one word per lane.
// Reads below lane 0 land in the padding and contribute the identity, so
// no boundary branch is needed.
func scanWarpShared(s []int32, pad, lane, size int, v int32, sync func()) int32 {
	idx := pad + lane
	s[idx] = v
	sync()

	x := v
	for off := 1; off < size; off <<= 1 {
		y := s[idx-off]
		sync() // all reads of this step before any write
		x += y
		s[idx] = x
		sync() // all writes published before the next read
	}
	return x
}

// scanWarpShuffle is the Hillis-Steele scan through register exchange:
// each step publishes the lane's running value and reads the lane off
// positions to the left. Lanes below the offset take the identity via an
// explicit bounds check. No shared-arena slots are touched.
func scanWarpShuffle(xchg []int32, lane, size int, v int32, sync func()) int32 {
	x := v
	for off := 1; off < size; off <<= 1 {
		xchg[lane] = x
		sync()
		var y int32
		if lane >= off {
			y = xchg[lane-off]
		}
		sync()
		x += y
	}
	return x
}
