package game

import (
	"fmt"
	"math"
)

// TryBuyBuilding buys one unit of the building at index.
func (g *Game) TryBuyBuilding(index int) error {
	if index < 0 || index >= len(g.buildings) {
		return fmt.Errorf("building #%d: %w", index, ErrInvalidReference)
	}
	b := &g.buildings[index]
	cost := nextCost(b.def.BaseCost, b.def.CostGrowth, b.count)
	if !g.ledger.TrySpend(Coins, cost) {
		return fmt.Errorf("building %s costs %.2f: %w", b.def.ID, cost, ErrInsufficientResources)
	}
	b.count++
	g.stats.buildingsPurchased++
	g.evaluateAchievements()
	return nil
}

// BuyBuilding reports whether the purchase went through.
// Invalid indices of any size return false.
func (g *Game) BuyBuilding(index int) bool {
	return g.TryBuyBuilding(index) == nil
}

// TryBuyUpgrade buys one level of the upgrade at index.
func (g *Game) TryBuyUpgrade(index int) error {
	if index < 0 || index >= len(g.upgrades) {
		return fmt.Errorf("upgrade #%d: %w", index, ErrInvalidReference)
	}
	u := &g.upgrades[index]
	if u.def.MaxPurchases > 0 && u.purchased >= u.def.MaxPurchases {
		return fmt.Errorf("upgrade %s: %w", u.def.ID, ErrLimitReached)
	}
	cost := nextCost(u.def.BaseCost, u.def.CostGrowth, u.purchased)
	if !g.ledger.TrySpend(Coins, cost) {
		return fmt.Errorf("upgrade %s costs %.2f: %w", u.def.ID, cost, ErrInsufficientResources)
	}
	u.purchased++
	g.stats.upgradesPurchased++
	g.evaluateAchievements()
	return nil
}

// BuyUpgrade reports whether the purchase went through.
func (g *Game) BuyUpgrade(index int) bool {
	return g.TryBuyUpgrade(index) == nil
}

// Buildings returns a snapshot of every building, priced for the next unit.
func (g *Game) Buildings() []Building {
	out := make([]Building, 0, len(g.buildings))
	for i := range g.buildings {
		b := &g.buildings[i]
		cost := displayable(nextCost(b.def.BaseCost, b.def.CostGrowth, b.count))
		out = append(out, Building{
			ID:          b.def.ID,
			Name:        b.def.Name,
			Resource:    b.def.Resource,
			Count:       b.count,
			Cost:        cost,
			DisplayCost: math.Floor(cost),
			BaseRate:    b.def.BaseRate,
			Production:  g.buildingOutput(b),
			Workers:     g.assignedCount(b.def.ID),
		})
	}
	return out
}

// Upgrades returns a snapshot of every upgrade, priced for the next level.
func (g *Game) Upgrades() []Upgrade {
	out := make([]Upgrade, 0, len(g.upgrades))
	for _, u := range g.upgrades {
		cost := displayable(nextCost(u.def.BaseCost, u.def.CostGrowth, u.purchased))
		out = append(out, Upgrade{
			ID:           u.def.ID,
			Name:         u.def.Name,
			Description:  u.def.Description,
			Effect:       u.def.Effect,
			Amount:       u.def.Amount,
			Resource:     u.def.Resource,
			Purchased:    u.purchased,
			MaxPurchases: u.def.MaxPurchases,
			Cost:         cost,
			DisplayCost:  math.Floor(cost),
			Available:    u.def.MaxPurchases == 0 || u.purchased < u.def.MaxPurchases,
		})
	}
	return out
}
