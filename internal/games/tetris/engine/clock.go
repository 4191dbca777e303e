package engine

import "time"

// Clock is a virtual, single-goroutine time source. Timers fire only inside
// Advance, on the caller's goroutine, so timer callbacks and input handlers
// never run concurrently.
type Clock struct {
	now     time.Duration
	seq     uint64
	pending []*Timer
}

// Timer is a one-shot callback armed on a Clock.
type Timer struct {
	clock  *Clock
	at     time.Duration
	seq    uint64
	fn     func()
	active bool
}

// NewClock returns a clock at time zero with no pending timers.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the virtual time elapsed since the clock was created.
func (c *Clock) Now() time.Duration {
	return c.now
}

// AfterFunc arms fn to run once d from now.
func (c *Clock) AfterFunc(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &Timer{
		clock:  c,
		at:     c.now + d,
		seq:    c.seq,
		fn:     fn,
		active: true,
	}
	c.pending = append(c.pending, t)
	return t
}

// Stop disarms the timer. It returns false if the timer already fired or
// was stopped; stopping a nil timer is a no-op.
func (t *Timer) Stop() bool {
	if t == nil || !t.active {
		return false
	}
	t.active = false
	t.clock.remove(t)
	return true
}

// Active reports whether the timer is still waiting to fire.
func (t *Timer) Active() bool {
	return t != nil && t.active
}

// Remaining returns the time left before the timer fires.
func (t *Timer) Remaining() time.Duration {
	if !t.Active() {
		return 0
	}
	return t.at - t.clock.now
}

// Advance moves time forward by d, firing every timer that comes due in
// deadline order. A callback that arms a new timer inside the window sees
// it fire within the same call.
func (c *Clock) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := c.now + d
	for {
		next := c.earliest()
		if next == nil || next.at > target {
			break
		}
		c.now = next.at
		next.active = false
		c.remove(next)
		next.fn()
	}
	c.now = target
}

// earliest returns the next timer to fire; ties go to the one armed first.
func (c *Clock) earliest() *Timer {
	var best *Timer
	for _, t := range c.pending {
		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (c *Clock) remove(t *Timer) {
	for i, p := range c.pending {
		if p == t {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return
		}
	}
}
