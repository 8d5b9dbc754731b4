package game

import (
	"math"
	"math/rand"
	"testing"
)

var tickDeltas = []float64{
	math.NaN(), math.Inf(1), math.Inf(-1), -5, 0, 0.016, 0.1, 1, 60, 3600, 1e308,
}

var windfalls = []float64{math.NaN(), math.Inf(1), -100, 0, 15, 1e4, 1e12, math.MaxFloat64}

// step applies one action chosen by op, with arg selecting its operand.
func step(g *Game, op, arg int) {
	cat := g.Catalog()
	pick := func(n int) int { return arg%(n+3) - 1 } // -1 up to two past the end

	switch op % 10 {
	case 0, 1:
		g.Click()
	case 2:
		g.BuyBuilding(pick(len(cat.Buildings)))
	case 3:
		g.BuyUpgrade(pick(len(cat.Upgrades)))
	case 4:
		ids := []string{"", "nope"}
		for _, r := range cat.Recipes {
			ids = append(ids, r.ID)
		}
		g.Craft(ids[arg%len(ids)])
	case 5:
		ids := []string{"", "moon_base"}
		for _, b := range cat.Buildings {
			ids = append(ids, b.ID)
		}
		g.AssignWorker(pick(len(cat.Workers)), ids[arg%len(ids)])
	case 6:
		g.Tick(tickDeltas[arg%len(tickDeltas)])
	case 7:
		ids := []string{"nope"}
		for _, f := range cat.Features {
			ids = append(ids, f.ID)
		}
		g.UnlockFeature(ids[arg%len(ids)])
	case 8:
		g.ledger.Add(Resources[arg%len(Resources)], windfalls[arg%len(windfalls)])
	case 9:
		if err := g.Restore(g.Export()); err != nil {
			panic(err)
		}
	}
}

type observed struct {
	stats    Statistics
	lifetime [3]float64
}

func observe(g *Game) observed {
	o := observed{stats: g.Statistics()}
	for i, r := range Resources {
		o.lifetime[i] = g.ledger.Lifetime(r)
	}
	return o
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// checkInvariants fails if a balance left the finite non-negative range or a
// lifetime counter went backwards since prev.
func checkInvariants(t *testing.T, g *Game, prev observed, i int) observed {
	t.Helper()
	for _, r := range Resources {
		if !finiteNonNegative(g.ledger.Amount(r)) || !finiteNonNegative(g.ledger.Lifetime(r)) {
			t.Fatalf("step %d: %s amount %v lifetime %v", i, r, g.ledger.Amount(r), g.ledger.Lifetime(r))
		}
	}
	v := g.Resources()
	for _, rate := range []float64{v.CoinsPerClick, v.CoinsPerSecond, v.WoodPerSecond, v.StonePerSecond} {
		if !finiteNonNegative(rate) {
			t.Fatalf("step %d: bad rate in %+v", i, v)
		}
	}

	cur := observe(g)
	a, b := prev.stats, cur.stats
	if b.TotalClicks < a.TotalClicks ||
		b.TotalResourcesCrafted < a.TotalResourcesCrafted ||
		b.AchievementsUnlockedCount < a.AchievementsUnlockedCount ||
		b.PlayTimeSeconds < a.PlayTimeSeconds ||
		b.BuildingsPurchased < a.BuildingsPurchased ||
		b.UpgradesPurchased < a.UpgradesPurchased ||
		!finiteNonNegative(b.PlayTimeSeconds) {
		t.Fatalf("step %d: statistics went backwards\n%+v\n%+v", i, a, b)
	}
	for k := range cur.lifetime {
		if cur.lifetime[k] < prev.lifetime[k] {
			t.Fatalf("step %d: %s lifetime dropped %v -> %v", i, Resources[k], prev.lifetime[k], cur.lifetime[k])
		}
	}
	for _, w := range g.Workers() {
		if w.Level < 1 || !finiteNonNegative(w.XP) || w.XP >= w.XPToNextLevel || w.Efficiency < 1 {
			t.Fatalf("step %d: worker %+v", i, w)
		}
	}
	return cur
}

func TestRandomActionsKeepInvariants(t *testing.T) {
	steps := 20000
	if testing.Short() {
		steps = 2000
	}
	for _, seed := range []int64{1, 7, 42} {
		rng := rand.New(rand.NewSource(seed))
		g, _ := newTestGame(t)
		prev := observe(g)
		for i := 0; i < steps; i++ {
			step(g, rng.Intn(10), rng.Intn(64))
			prev = checkInvariants(t, g, prev, i)
		}
	}
}

func FuzzActions(f *testing.F) {
	f.Add([]byte{0, 0, 2, 0, 6, 3, 3, 1, 8, 6, 9, 0})
	f.Add([]byte{6, 10, 8, 7, 2, 9, 4, 3, 5, 2, 7, 1, 9, 0})
	f.Add([]byte{8, 7, 3, 4, 3, 4, 3, 4, 6, 9, 6, 1})

	f.Fuzz(func(t *testing.T, ops []byte) {
		g, _ := newTestGame(t)
		prev := observe(g)
		for i := 0; i+1 < len(ops); i += 2 {
			step(g, int(ops[i]), int(ops[i+1]))
			prev = checkInvariants(t, g, prev, i/2)
		}
	})
}
