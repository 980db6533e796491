// Package counter computes the count-up animation of the marketing stats section.
package counter

import (
	"context"
	"math"
	"time"
)

// DefaultFrameInterval approximates one display frame at 60 Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// epsilon absorbs float accumulation error on the last frame.
const epsilon = 1e-9

// Counter counts from 0 toward Target by a fixed per-frame increment.
// The displayed value never exceeds Target and ends exactly at Target.
type Counter struct {
	target    int
	increment float64
	interval  time.Duration
	current   float64
	done      bool
}

// New prepares a counter reaching target after roughly duration, one step per frameInterval.
// increment = target / (duration / frameInterval).
func New(target int, duration, frameInterval time.Duration) *Counter {
	if frameInterval <= 0 {
		frameInterval = DefaultFrameInterval
	}
	c := &Counter{target: target, interval: frameInterval}

	frames := float64(duration) / float64(frameInterval)
	switch {
	case target <= 0:
		c.done = true
	case frames <= 1:
		c.increment = float64(target)
	default:
		c.increment = float64(target) / frames
	}
	return c
}

// Target is the final displayed value.
func (c *Counter) Target() int {
	if c.target < 0 {
		return 0
	}
	return c.target
}

// Done reports whether the target has been displayed.
func (c *Counter) Done() bool { return c.done }

// Step advances one frame and returns the value to display.
// After the target is reached it keeps returning the target.
func (c *Counter) Step() int {
	if c.done {
		return c.Target()
	}
	c.current += c.increment
	if c.current >= float64(c.target)-epsilon {
		c.current = float64(c.target)
		c.done = true
		return c.target
	}
	return int(math.Floor(c.current))
}

// Frames runs a fresh copy of the counter to completion and returns every displayed value.
func (c *Counter) Frames() []int {
	cp := *c
	cp.current = 0
	cp.done = c.target <= 0
	if cp.done {
		return []int{cp.Target()}
	}
	out := make([]int, 0, int(math.Ceil(float64(c.target)/c.increment)))
	for !cp.done {
		out = append(out, cp.Step())
	}
	return out
}

// Run plays the counter on a ticker, calling onFrame with each displayed value until the target
// is reached or ctx is cancelled.
func (c *Counter) Run(ctx context.Context, onFrame func(int)) error {
	if c.done {
		onFrame(c.Target())
		return nil
	}
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			onFrame(c.Step())
			if c.done {
				return nil
			}
		}
	}
}
