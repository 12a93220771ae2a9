package ov5642

import "time"

const (
	// resetSettle is the wait after a software reset and after the default
	// register load before further writes are accepted
	resetSettle = 100 * time.Millisecond
)

// SetSleep replaces the function used for the fixed delays of the reset
// sequence and the delay entries of register lists. A nil fn restores
// time.Sleep.
func (d *OV5642) SetSleep(fn func(time.Duration)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if fn == nil {
		fn = time.Sleep
	}

	d.sleep = fn
}

// delay blocks for dur using the configured sleep function
func (d *OV5642) delay(dur time.Duration) {
	if dur <= 0 {
		return
	}

	d.sleep(dur)
}
