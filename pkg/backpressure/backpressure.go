// Package backpressure holds the shared hold-off state used to stop
// hammering the Azure API once it started rate limiting us.
package backpressure

import "time"

type Backpressure struct {
	notBefore time.Time
}

// NotBefore records the point in time before which no further requests
// must be made.
func (g *Backpressure) NotBefore(t time.Time) {
	g.notBefore = t
}

func (g *Backpressure) CanProceed() bool {
	return time.Now().After(g.notBefore)
}

func (g *Backpressure) RetryAfter() time.Time {
	return g.notBefore
}
