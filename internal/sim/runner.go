package sim

import (
	"context"
	"time"
)

// Control is a change applied to the simulation on its own goroutine.
type Control func(*Simulation)

// Run owns s until ctx is done. Every period it advances one tick and offers a
// snapshot on out, which should have a buffer of one: a snapshot the consumer
// has not picked up yet is replaced by the newer one. Controls are applied
// between ticks, and each one is followed by a fresh snapshot so paused hosts
// still see their changes.
func Run(ctx context.Context, s *Simulation, period time.Duration, controls <-chan Control, out chan Snapshot) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-controls:
			c(s)
			publish(out, s.Snapshot())
		case <-ticker.C:
			if s.Advance(1) {
				publish(out, s.Snapshot())
			}
		}
	}
}

// publish puts snap on out, dropping a stale snapshot if one is waiting.
// Only one goroutine may publish on out.
func publish(out chan Snapshot, snap Snapshot) {
	select {
	case out <- snap:
		return
	default:
	}
	select {
	case <-out:
	default:
	}
	out <- snap
}
