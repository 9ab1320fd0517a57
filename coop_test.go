package lanegrid

import (
	"testing"
)

// A block-wide reversal needs a barrier between the write and the read;
// passing this test with 256 lanes exercises SyncThreads under real
// scheduling pressure.
func TestCoopSyncThreads(t *testing.T) {
	cfg := DefaultScanConfig()
	cfg.BlockSize = 256

	const n = 256
	in := GenerateRampInt32(n)
	out := make([]int32, n)

	kernel := func(tid ThreadID, blk *Block) {
		lane := tid.ThreadIdx.X
		s := blk.Shared().LaneSlots(blk.Warp(tid).ID())
		pad := blk.Shared().Pad()
		s[pad+blk.Warp(tid).Lane()] = in[lane]
		blk.SyncThreads()
		// Read the mirror lane's slot.
		m := n - 1 - lane
		mw := blk.Warp(ThreadID{ThreadIdx: Dim3{X: m}})
		out[lane] = blk.Shared().LaneSlots(mw.ID())[pad+mw.Lane()]
	}

	LaunchCoopOrFail(t, kernel, Dim3{X: 1, Y: 1, Z: 1}, cfg)
	SynchronizeOrFail(t)

	for i := 0; i < n; i++ {
		if out[i] != int32(n-1-i) {
			t.Fatalf("lane %d read %d, want %d", i, out[i], n-1-i)
		}
	}
}

// Grid-stride reuse: more segments than resident blocks, every segment
// must still be visited exactly once.
func TestCoopGridStride(t *testing.T) {
	cfg := DefaultScanConfig()
	cfg.BlockSize = 128
	cfg.ResidentBlocks = 2

	const segments = 9
	visits := make([]int32, segments*cfg.BlockSize)

	kernel := func(tid ThreadID, blk *Block) {
		visits[tid.Global()]++
	}

	LaunchCoopOrFail(t, kernel, Dim3{X: segments, Y: 1, Z: 1}, cfg)
	SynchronizeOrFail(t)

	for i, v := range visits {
		if v != 1 {
			t.Fatalf("element %d visited %d times", i, v)
		}
	}
}

// Arena zero-padding must be re-established when a resident block is
// reassigned; a lane writing into its slot each iteration must still find
// the padding zeroed.
func TestCoopArenaResetBetweenSegments(t *testing.T) {
	cfg := DefaultScanConfig()
	cfg.BlockSize = 128
	cfg.ResidentBlocks = 1 // force maximal reuse

	const segments = 4
	bad := make([]int32, segments*cfg.BlockSize)

	kernel := func(tid ThreadID, blk *Block) {
		w := blk.Warp(tid)
		s := blk.Shared().LaneSlots(w.ID())
		pad := blk.Shared().Pad()
		// Padding below slot 0 must read as identity on entry.
		if w.Lane() == 0 {
			for i := 0; i < pad; i++ {
				if s[i] != 0 {
					bad[tid.Global()]++
				}
				// Dirty the padding so reuse without reset is caught.
				s[i] = -1
			}
		}
		s[pad+w.Lane()] = -1
	}

	LaunchCoopOrFail(t, kernel, Dim3{X: segments, Y: 1, Z: 1}, cfg)
	SynchronizeOrFail(t)

	for i, v := range bad {
		if v != 0 {
			t.Fatalf("lane %d observed dirty padding", i)
		}
	}
}

// Cooperative launches reject invalid configurations before running
func TestCoopLaunchValidation(t *testing.T) {
	cfg := DefaultScanConfig()
	cfg.BlockSize = 100 // not a power of two

	err := LaunchCoop(func(tid ThreadID, blk *Block) {}, Dim3{X: 1, Y: 1, Z: 1}, cfg)
	if !IsInvalidArgError(err) {
		t.Fatalf("expected invalid argument error, got %v", err)
	}
}

// Zero-size grids submit an empty task and keep stream ordering
func TestCoopEmptyGrid(t *testing.T) {
	cfg := DefaultScanConfig()
	ran := false

	if err := LaunchCoop(func(tid ThreadID, blk *Block) { ran = true }, Dim3{}, cfg); err != nil {
		t.Fatalf("empty launch failed: %v", err)
	}
	SynchronizeOrFail(t)

	if ran {
		t.Error("kernel must not run for an empty grid")
	}
}
