package lanegrid

import "time"

// Event marks a point in a stream's execution, in the manner of device
// timing events: the timestamp is taken only once every task submitted to
// the stream before the event has completed. Events are one-shot; create a
// fresh pair per measurement.
type Event struct {
	at   time.Time
	done chan struct{}
}

// NewEvent creates an unrecorded event.
func NewEvent() *Event {
	return &Event{done: make(chan struct{})}
}

// Record enqueues the event on the stream.
func (e *Event) Record(s *Stream) {
	s.Submit(func() {
		e.at = time.Now()
		close(e.done)
	})
}

// Synchronize blocks until the event has been recorded.
func (e *Event) Synchronize() {
	<-e.done
}

// ElapsedTime returns the wall time between two recorded events, waiting
// for both if necessary.
func ElapsedTime(start, end *Event) (time.Duration, error) {
	start.Synchronize()
	end.Synchronize()
	d := end.at.Sub(start.at)
	if d < 0 {
		return 0, NewExecutionError("ElapsedTime", "end event was recorded before start event", nil)
	}
	return d, nil
}
