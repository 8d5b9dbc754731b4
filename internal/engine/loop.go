package engine

import (
	"context"
	"time"
)

// Run drives the heartbeat until ctx is cancelled, then saves once more.
// Each tick feeds the real elapsed time to GameLoop; every PulseEveryTicks
// ticks the resource view is published as a pulse.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	var autosave <-chan time.Time
	if e.autosaveInterval > 0 && e.store != nil {
		t := time.NewTicker(e.autosaveInterval)
		defer t.Stop()
		autosave = t.C
	}

	e.logger.Printf("ENGINE: heartbeat every %s, pulse every %d ticks", e.tickInterval, e.pulseEveryTicks)

	last := e.now()
	ticks := 0
	for {
		select {
		case <-ctx.Done():
			if e.store != nil && e.Save() {
				e.logger.Printf("ENGINE: final save to slot %q", e.slot)
			}
			return nil

		case <-ticker.C:
			now := e.now()
			e.GameLoop(now.Sub(last).Seconds())
			last = now

			ticks++
			if ticks%e.pulseEveryTicks == 0 {
				e.publish(MsgPulse, e.Resources())
			}

		case <-autosave:
			if e.Save() {
				e.logger.Printf("ENGINE: autosaved slot %q", e.slot)
			}
		}
	}
}
