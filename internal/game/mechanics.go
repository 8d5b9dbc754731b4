/*
Package game
File: mechanics.go
Description:
    Contains the pure formulas and lookup helpers.
    This includes purchase cost scaling, click value, per-second production
    and worker efficiency. It serves as the rules engine for the economy;
    nothing in here mutates state.
*/

package game

import "math"

// findBuilding returns the index of a building by ID, or -1.
func (g *Game) findBuilding(id string) int {
	for i := range g.buildings {
		if g.buildings[i].def.ID == id {
			return i
		}
	}
	return -1
}

// findRecipe returns the index of a recipe by ID, or -1.
func (g *Game) findRecipe(id string) int {
	for i := range g.recipes {
		if g.recipes[i].ID == id {
			return i
		}
	}
	return -1
}

// findAchievement returns the index of an achievement by ID, or -1.
func (g *Game) findAchievement(id string) int {
	for i := range g.achievements {
		if g.achievements[i].def.ID == id {
			return i
		}
	}
	return -1
}

// findFeature returns the index of a feature by ID, or -1.
func (g *Game) findFeature(id string) int {
	for i := range g.features {
		if g.features[i].def.ID == id {
			return i
		}
	}
	return -1
}

// nextCost computes base * growth^owned.
// The exact float is kept; only views floor it.
func nextCost(base, growth float64, owned int) float64 {
	cost := base * math.Pow(growth, float64(owned))
	if math.IsNaN(cost) {
		return math.Inf(1)
	}
	return cost
}

// displayable clamps a value for output: never NaN or infinite.
func displayable(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return 0
	}
	return v
}

// CoinsPerClick is the base click value plus every click bonus owned.
func (g *Game) CoinsPerClick() float64 {
	total := g.catalog.Balance.BaseClickValue
	for _, u := range g.upgrades {
		if u.def.Effect == EffectClickBonus {
			total += u.def.Amount * float64(u.purchased)
		}
	}
	return sanitize(total)
}

// autoclickers counts owned autoclicker units.
func (g *Game) autoclickers() int {
	n := 0
	for _, u := range g.upgrades {
		if u.def.Effect == EffectAutoClicker {
			n += u.purchased * int(math.Max(1, u.def.Amount))
		}
	}
	return n
}

// efficiency is the worker multiplier:
// 1 + level*levelBonus, plus the preference bonus at the preferred building.
func (g *Game) efficiency(w *workerState) float64 {
	b := g.catalog.Balance
	e := 1 + float64(w.level)*b.WorkerLevelBonus
	if w.assigned != "" && w.assigned == w.def.Preference {
		e += b.WorkerPreferenceBonus
	}
	return e
}

// workerBonus is 1 + the summed surplus efficiency of every worker at a building.
func (g *Game) workerBonus(buildingID string) float64 {
	bonus := 1.0
	for i := range g.workers {
		if g.workers[i].assigned == buildingID {
			bonus += g.efficiency(&g.workers[i]) - 1
		}
	}
	return bonus
}

// assignedCount counts workers at a building.
func (g *Game) assignedCount(buildingID string) int {
	n := 0
	for _, w := range g.workers {
		if w.assigned == buildingID {
			n++
		}
	}
	return n
}

// buildingOutput is the per-second output of one building slot.
func (g *Game) buildingOutput(b *buildingState) float64 {
	if b.count == 0 {
		return 0
	}
	return sanitize(b.def.BaseRate * float64(b.count) * g.workerBonus(b.def.ID))
}

// rates sums passive production per resource.
func (g *Game) rates() map[Resource]float64 {
	out := make(map[Resource]float64, len(Resources))
	for i := range g.buildings {
		b := &g.buildings[i]
		out[b.def.Resource] += g.buildingOutput(b)
	}
	for _, u := range g.upgrades {
		if u.def.Effect == EffectProductionBonus {
			out[u.def.Resource] += u.def.Amount * float64(u.purchased)
		}
	}
	for _, r := range Resources {
		out[r] = sanitize(out[r])
	}
	return out
}

// CoinsPerSecond is passive coin production.
func (g *Game) CoinsPerSecond() float64 { return g.rates()[Coins] }

// WoodPerSecond is passive wood production.
func (g *Game) WoodPerSecond() float64 { return g.rates()[Wood] }

// StonePerSecond is passive stone production.
func (g *Game) StonePerSecond() float64 { return g.rates()[Stone] }
