// Package process provides the per-tick context handed to a plugin's
// processing step.
package process

import "time"

// Context carries the authoritative timing information for one scheduling
// tick. The host owns the context; a plugin borrows it for the duration of
// the Process call and must not retain it. Successive contexts seen by one
// instance carry monotonically non-decreasing ticks.
type Context struct {
	// Tick is the scheduling step counter for this instance.
	Tick uint64
	// PeriodSeconds is the elapsed time since the previous tick.
	PeriodSeconds float64
}

// Period returns the elapsed time since the previous tick as a Duration.
func (c *Context) Period() time.Duration {
	return time.Duration(c.PeriodSeconds * float64(time.Second))
}
