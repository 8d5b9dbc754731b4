/*
Package game
File: economy.go
Description:
    Handles the time-driven side of the simulation.
    This includes:
    1. Manual and synthetic clicks (both go through click()).
    2. The autoclicker scheduler, which turns elapsed time into clicks.
    3. The heartbeat Tick: passive production, play time, worker XP and
       the achievement / feature evaluation passes.
*/

package game

import "math"

// Click performs one manual click.
func (g *Game) Click() {
	g.click(1)
	g.evaluateAchievements()
}

// click awards n clicks at the current click value.
// Autoclicks use this path too, so click upgrades apply to them retroactively.
func (g *Game) click(n int) {
	if n <= 0 {
		return
	}
	g.stats.clicks += n
	g.ledger.Add(Coins, g.CoinsPerClick()*float64(n))
}

// Tick advances the simulation by delta seconds.
// NaN or negative deltas advance nothing; long deltas are clamped to
// Balance.MaxTickSeconds.
func (g *Game) Tick(delta float64) {
	delta = g.clampDelta(delta)
	if delta > 0 {
		// 1. Passive production (rates are read before anything changes)
		rates := g.rates()
		for _, r := range Resources {
			g.ledger.Add(r, rates[r]*delta)
		}

		// 2. Synthetic clicks
		g.click(g.scheduleAutoclicks(delta))

		// 3. Play time and worker experience
		g.stats.playTime += delta
		g.grantWorkerXP(delta)
	}

	// 4. Evaluation passes
	g.evaluateAchievements()
	g.evaluateFeatures()
}

func (g *Game) clampDelta(delta float64) float64 {
	if math.IsNaN(delta) || delta <= 0 {
		return 0
	}
	return math.Min(delta, g.catalog.Balance.MaxTickSeconds)
}

// scheduleAutoclicks converts elapsed time into whole synthetic clicks.
// The fractional remainder carries into the next tick.
func (g *Game) scheduleAutoclicks(delta float64) int {
	n := g.autoclickers()
	if n == 0 {
		g.autoclickCarry = 0
		return 0
	}
	due := float64(n)*g.catalog.Balance.AutoclicksPerSecond*delta + g.autoclickCarry
	if math.IsNaN(due) || math.IsInf(due, 0) || due < 0 {
		g.autoclickCarry = 0
		return 0
	}
	whole := math.Floor(due)
	g.autoclickCarry = due - whole
	if limit := float64(g.catalog.Balance.MaxAutoclicksPerTick); whole > limit {
		whole = limit
	}
	return int(whole)
}

// grantWorkerXP rewards workers at producing buildings and levels them up.
func (g *Game) grantWorkerXP(delta float64) {
	b := g.catalog.Balance
	gain := b.WorkerXPPerSecond * delta
	for i := range g.workers {
		w := &g.workers[i]
		if w.assigned == "" {
			continue
		}
		idx := g.findBuilding(w.assigned)
		if idx < 0 || g.buildings[idx].count == 0 {
			// Nothing is produced there, so nothing is learned.
			continue
		}
		w.xp += gain
		for w.xp >= w.xpToNext {
			w.xp -= w.xpToNext
			w.level++
			w.xpToNext = math.Ceil(w.xpToNext * b.WorkerXPGrowth)
			g.emit(Event{
				Kind:  EventWorkerLevelUp,
				ID:    w.def.ID,
				Name:  w.def.Name,
				Level: w.level,
				At:    g.clock.Now(),
			})
		}
	}
}
