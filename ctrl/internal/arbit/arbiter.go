// Package arbit decides which requester owns the upcoming memory
// cycle.
package arbit

import "github.com/sarchlab/sdram/bus"

// An Arbiter picks the owner of a cycle from the request lines sampled
// at the decision phase.
type Arbiter interface {
	Decide(port1, port2 bus.Request, refresh bool) bus.Owner
}

// MakeArbiter creates the fixed-priority arbiter. The priority order
// is Port1 > Refresh > Port2 > Idle, with the caveat that refresh is
// only considered in a cycle where Port1 requests at the same time. A
// refresh request that arrives while Port1 is quiet therefore waits
// until a cycle in which Port1 requests again.
func MakeArbiter() Arbiter {
	return fixedPriorityArbiter{}
}

type fixedPriorityArbiter struct{}

func (fixedPriorityArbiter) Decide(
	port1, port2 bus.Request,
	refresh bool,
) bus.Owner {
	switch {
	case port1.Valid && refresh:
		return bus.OwnerRefresh
	case port1.Valid:
		return bus.OwnerPort1
	case port2.Valid:
		return bus.OwnerPort2
	default:
		return bus.OwnerIdle
	}
}
