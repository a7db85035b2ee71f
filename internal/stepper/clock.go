package stepper

import "sync/atomic"

// Clock is the monotonic logical clock accepted events are stamped with.
// Sequence numbers are strictly increasing, so event order is explicit and
// replay reproduces it exactly; wall-clock time never participates.
//
// Clock is safe for concurrent use, though a session's single-dispatcher
// design means one goroutine typically calls Next.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock starting at a specific sequence number, for
// resuming a replayed session at its last known position.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and advances the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the clock's position without advancing it.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
