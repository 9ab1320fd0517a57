package lanegrid

import (
	"testing"
	"time"
)

func TestEventElapsed(t *testing.T) {
	stream := defaultContext.DefaultStream()

	start := NewEvent()
	end := NewEvent()

	start.Record(stream)
	stream.Submit(func() { time.Sleep(5 * time.Millisecond) })
	end.Record(stream)

	elapsed, err := ElapsedTime(start, end)
	if err != nil {
		t.Fatalf("ElapsedTime failed: %v", err)
	}
	if elapsed < 5*time.Millisecond {
		t.Errorf("Elapsed %v below the 5ms the stream slept", elapsed)
	}
}

// An event's timestamp must not be taken before earlier stream work is done.
func TestEventOrdersAfterSubmittedWork(t *testing.T) {
	stream := defaultContext.DefaultStream()

	done := false
	stream.Submit(func() {
		time.Sleep(2 * time.Millisecond)
		done = true
	})

	ev := NewEvent()
	ev.Record(stream)
	ev.Synchronize()

	if !done {
		t.Error("Event recorded before preceding stream task completed")
	}
}

func TestEventElapsedWrongOrder(t *testing.T) {
	stream := defaultContext.DefaultStream()

	first := NewEvent()
	second := NewEvent()
	first.Record(stream)
	stream.Submit(func() { time.Sleep(time.Millisecond) })
	second.Record(stream)
	second.Synchronize()

	if _, err := ElapsedTime(second, first); err == nil {
		t.Error("Expected error when end precedes start")
	}
}
