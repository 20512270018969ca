// Package core holds small ambient primitives shared across the asset
// subsystem: the frame clock AssetManager advances to stamp lifetime and
// cache-policy checks.
package core

import "time"

// FrameClock tracks a monotonically increasing frame counter alongside
// wall-clock elapsed time, the unit AssetLifetime and AssetCachePolicy
// express their TTLs in (lastAccessFrame, keepAliveFrames, ...).
type FrameClock struct {
	startTime time.Time
	elapsed   time.Duration
	frame     uint64
}

func NewFrameClock() *FrameClock {
	return &FrameClock{}
}

// Update refreshes elapsed time. Has no effect on a non-started clock.
func (c *FrameClock) Update() {
	if !c.startTime.IsZero() {
		c.elapsed = time.Since(c.startTime)
	}
}

// Start resets elapsed time and the frame counter.
func (c *FrameClock) Start() {
	c.startTime = time.Now()
	c.elapsed = 0
	c.frame = 0
}

// Stop freezes elapsed time without resetting it.
func (c *FrameClock) Stop() {
	c.startTime = time.Time{}
}

func (c *FrameClock) Elapsed() time.Duration { return c.elapsed }

// Tick advances the frame counter by one and returns the new value, the
// "now" AssetManager stamps onto Touch/OnLoaded calls.
func (c *FrameClock) Tick() uint64 {
	c.frame++
	return c.frame
}

func (c *FrameClock) Frame() uint64 { return c.frame }
