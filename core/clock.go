package core

// Clock turns absolute frame timestamps into per-frame deltas.
type Clock struct {
	last    float64
	started bool
	// MaxDelta caps a single step so a stalled frame does not teleport the
	// player through walls. Zero disables the cap.
	MaxDelta float32
}

// Tick records now (seconds) and returns the time since the previous tick.
// The first tick returns zero.
func (c *Clock) Tick(now float64) float32 {
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	dt := float32(now - c.last)
	c.last = now
	if dt < 0 {
		return 0
	}
	if c.MaxDelta > 0 && dt > c.MaxDelta {
		return c.MaxDelta
	}
	return dt
}
