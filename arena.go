package lanegrid

// SharedArena is a block's shared scratch buffer with explicit phase
// ownership. The two-level scan uses three regions:
//
//	phase 1: per-warp lane slots, one slot per lane, preceded by a
//	         zero-padded run of warpSize/2 words so that log-step reads
//	         below lane 0 return the identity without branching
//	phase 2: warp-total slots, same padded layout, scanned by warp 0
//	phase 3: carry slots, one per warp, read-only fan-out to all lanes
//
// The arena is owned by exactly one block for the block's lifetime and is
// re-zeroed whenever a resident block is reassigned to a new grid segment.
type SharedArena struct {
	buf        []int32
	warpSize   int
	numWarps   int
	pad        int
	warpStride int
	totalsOff  int
	carriesOff int
}

func newSharedArena(blockSize, warpSize int) *SharedArena {
	numWarps := blockSize / warpSize
	pad := warpSize / 2
	warpStride := pad + warpSize
	totalsOff := numWarps * warpStride
	carriesOff := totalsOff + warpStride
	return &SharedArena{
		buf:        make([]int32, carriesOff+warpSize),
		warpSize:   warpSize,
		numWarps:   numWarps,
		pad:        pad,
		warpStride: warpStride,
		totalsOff:  totalsOff,
		carriesOff: carriesOff,
	}
}

// Pad returns the width of the zero run preceding each slot region.
func (a *SharedArena) Pad() int {
	return a.pad
}

// Words returns the arena size in int32 words.
func (a *SharedArena) Words() int {
	return len(a.buf)
}

// LaneSlots returns the padded slot region owned by one warp during
// phase 1. Lane i's slot is at index Pad()+i.
func (a *SharedArena) LaneSlots(warp int) []int32 {
	off := warp * a.warpStride
	return a.buf[off : off+a.warpStride]
}

// TotalsSlots returns the padded warp-total region scanned in phase 2.
// Slots for warp indices beyond the block's warp count are never written
// and hold the identity.
func (a *SharedArena) TotalsSlots() []int32 {
	return a.buf[a.totalsOff : a.totalsOff+a.warpStride]
}

// Carries returns the per-warp carry-in region written by warp 0 in
// phase 2 and read by every lane in phase 3.
func (a *SharedArena) Carries() []int32 {
	return a.buf[a.carriesOff:]
}

// reset re-establishes the zero padding invariant before a block is
// reused for another grid segment.
func (a *SharedArena) reset() {
	for i := range a.buf {
		a.buf[i] = 0
	}
}
