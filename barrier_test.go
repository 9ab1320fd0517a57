package lanegrid

import (
	"sync"
	"sync/atomic"
	"testing"
)

// Test that no party passes a phase before all have arrived
func TestBarrierPhases(t *testing.T) {
	const parties = 64
	const phases = 100

	bar := NewBarrier(parties)
	var counter int64

	var wg sync.WaitGroup
	wg.Add(parties)
	for p := 0; p < parties; p++ {
		go func() {
			defer wg.Done()
			for ph := 0; ph < phases; ph++ {
				atomic.AddInt64(&counter, 1)
				bar.Wait()
				// After the barrier, all increments of this phase
				// must be visible.
				got := atomic.LoadInt64(&counter)
				want := int64((ph + 1) * parties)
				if got < want {
					t.Errorf("phase %d: counter %d below %d", ph, got, want)
				}
				bar.Wait()
			}
		}()
	}
	wg.Wait()

	if counter != parties*phases {
		t.Errorf("Expected %d increments, got %d", parties*phases, counter)
	}
}

func TestBarrierSingleParty(t *testing.T) {
	bar := NewBarrier(1)
	// Must never block
	for i := 0; i < 10; i++ {
		bar.Wait()
	}
	if bar.Parties() != 1 {
		t.Errorf("Expected 1 party, got %d", bar.Parties())
	}
}

func TestBarrierInvalidParties(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewBarrier(0) should panic")
		}
	}()
	NewBarrier(0)
}
