package core

import "time"

// FixedStep helps run simulation updates at a steady ticks-per-second rate
// from a wall-clock driven loop.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	maxBacklog  time.Duration

	now func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
	f.maxBacklog = 8 * f.step
}

// Step reports the duration of a single tick.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether the simulation should advance by one tick. Call
// it in a loop until it returns false to catch up after a slow frame; the
// backlog is capped so a stalled process does not fast-forward the world.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator > f.maxBacklog {
		f.accumulator = f.maxBacklog
	}
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Discard drops the time owed so far, so a paused loop does not catch up
// when it resumes.
func (f *FixedStep) Discard() {
	f.last = f.now()
	f.accumulator = 0
}

// Countdown fires once every Interval ticks. An interval of zero or less
// disables the timer.
type Countdown struct {
	interval  int
	remaining int
}

// NewCountdown returns a countdown that first fires after interval ticks.
func NewCountdown(interval int) Countdown {
	c := Countdown{}
	c.SetInterval(interval)
	return c
}

// Interval returns the configured firing period.
func (c *Countdown) Interval() int { return c.interval }

// Remaining returns the number of ticks until the next firing.
func (c *Countdown) Remaining() int { return c.remaining }

// Elapsed returns the number of ticks since the timer last fired or reset.
func (c *Countdown) Elapsed() int {
	if c.interval <= 0 {
		return 0
	}
	return c.interval - c.remaining
}

// Enabled reports whether the timer can fire.
func (c *Countdown) Enabled() bool { return c.interval > 0 }

// SetInterval changes the firing period, keeping the ticks already elapsed.
func (c *Countdown) SetInterval(interval int) {
	if interval <= 0 {
		c.interval = 0
		c.remaining = 0
		return
	}
	elapsed := c.Elapsed()
	c.interval = interval
	c.remaining = interval - elapsed
	if c.remaining <= 0 {
		c.remaining = 1
	}
}

// Tick decrements the countdown and reports whether it fired this tick.
func (c *Countdown) Tick() bool {
	if c.interval <= 0 {
		return false
	}
	c.remaining--
	if c.remaining > 0 {
		return false
	}
	c.remaining = c.interval
	return true
}
