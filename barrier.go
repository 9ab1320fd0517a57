package lanegrid

import "sync"

// Barrier is a reusable counting barrier. Every party must call Wait before
// any of them proceeds; the barrier then rearms itself for the next phase.
//
// Blocks use one Barrier across all lanes, and one per warp. Warp barriers
// stand in for the lockstep guarantee of real hardware: the scan algorithms
// never rely on implicit intra-warp ordering.
type Barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	parties int
	waiting int
	phase   uint64
}

// NewBarrier creates a barrier for the given number of parties.
func NewBarrier(parties int) *Barrier {
	if parties < 1 {
		panic("lanegrid: barrier needs at least one party")
	}
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until all parties have reached the barrier.
func (b *Barrier) Wait() {
	b.mu.Lock()
	phase := b.phase
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.phase++
		b.cond.Broadcast()
		b.mu.Unlock()
		return
	}
	for phase == b.phase {
		b.cond.Wait()
	}
	b.mu.Unlock()
}

// Parties returns the number of parties the barrier synchronizes.
func (b *Barrier) Parties() int {
	return b.parties
}
