/*
Package game
File: state.go
Description:
    Manages the runtime state of one idle game.
    A Game owns the resource ledger, the purchase counts, the achievement,
    feature and worker state, and the statistics counters. There are no
    package-level globals: the host creates a Game, calls into it from a
    single goroutine and keeps the only reference.

    It also handles initialization (New) and the explicit reset.
*/

package game

import (
	"fmt"
	"time"
)

type buildingState struct {
	def   BuildingDef
	count int
}

type upgradeState struct {
	def       UpgradeDef
	purchased int
}

type achievementState struct {
	def        AchievementDef
	unlocked   bool
	unlockedAt time.Time
	progress   float64 // Frozen at unlock time
}

type featureState struct {
	def        FeatureDef
	unlocked   bool
	unlockedAt time.Time
}

type workerState struct {
	def      WorkerDef
	level    int
	xp       float64
	xpToNext float64
	assigned string // Building ID, empty when idle
}

// counters are the statistics not derivable from the ledger.
type counters struct {
	clicks               int
	crafted              int
	achievementsUnlocked int
	playTime             float64
	buildingsPurchased   int
	upgradesPurchased    int
}

// Game is the simulation core. It is not safe for concurrent use.
type Game struct {
	catalog Catalog
	clock   Clock

	ledger       *Ledger
	buildings    []buildingState
	upgrades     []upgradeState
	recipes      []RecipeDef
	achievements []achievementState
	features     []featureState
	workers      []workerState
	stats        counters

	// autoclickCarry is the fractional synthetic click owed to the next tick.
	autoclickCarry float64

	events []Event
}

// Option customizes a new Game.
type Option func(*Game)

// WithClock replaces the wall clock used for unlock timestamps.
func WithClock(c Clock) Option {
	return func(g *Game) {
		if c != nil {
			g.clock = c
		}
	}
}

// New creates a fresh game from a catalog.
func New(cat Catalog, opts ...Option) (*Game, error) {
	cat.applyDefaults()
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	g := &Game{catalog: cat, clock: SystemClock{}}
	for _, opt := range opts {
		opt(g)
	}
	g.init()
	return g, nil
}

// NewDefault creates a fresh game from the embedded catalog.
func NewDefault(opts ...Option) (*Game, error) {
	cat, err := DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("default catalog: %w", err)
	}
	return New(cat, opts...)
}

// init builds the fresh runtime state from the catalog.
func (g *Game) init() {
	cat := g.catalog
	g.ledger = NewLedger()

	g.buildings = make([]buildingState, len(cat.Buildings))
	for i, d := range cat.Buildings {
		g.buildings[i] = buildingState{def: d}
	}
	g.upgrades = make([]upgradeState, len(cat.Upgrades))
	for i, d := range cat.Upgrades {
		g.upgrades[i] = upgradeState{def: d}
	}
	g.recipes = append([]RecipeDef(nil), cat.Recipes...)
	g.achievements = make([]achievementState, len(cat.Achievements))
	for i, d := range cat.Achievements {
		g.achievements[i] = achievementState{def: d}
	}
	g.features = make([]featureState, len(cat.Features))
	for i, d := range cat.Features {
		g.features[i] = featureState{def: d}
	}
	g.workers = make([]workerState, len(cat.Workers))
	for i, d := range cat.Workers {
		g.workers[i] = workerState{def: d, level: 1, xpToNext: cat.Balance.WorkerBaseXP}
	}

	g.stats = counters{}
	g.autoclickCarry = 0
	g.events = nil
}

// Reset discards all progress and returns to the fresh state.
func (g *Game) Reset() {
	g.init()
}

// Catalog returns the definitions this game was built from.
func (g *Game) Catalog() Catalog {
	return g.catalog
}

// Statistics returns a copy of the lifetime counters.
func (g *Game) Statistics() Statistics {
	return Statistics{
		TotalClicks:               g.stats.clicks,
		TotalCoinsEarned:          g.ledger.Lifetime(Coins),
		TotalWoodEarned:           g.ledger.Lifetime(Wood),
		TotalStoneEarned:          g.ledger.Lifetime(Stone),
		TotalResourcesCrafted:     g.stats.crafted,
		AchievementsUnlockedCount: g.stats.achievementsUnlocked,
		PlayTimeSeconds:           g.stats.playTime,
		BuildingsPurchased:        g.stats.buildingsPurchased,
		UpgradesPurchased:         g.stats.upgradesPurchased,
	}
}

// metric reads the live value an achievement or feature compares against.
func (g *Game) metric(m Metric) float64 {
	switch m {
	case MetricTotalClicks:
		return float64(g.stats.clicks)
	case MetricCoins:
		return g.ledger.Amount(Coins)
	case MetricWood:
		return g.ledger.Amount(Wood)
	case MetricStone:
		return g.ledger.Amount(Stone)
	case MetricTotalCoinsEarned:
		return g.ledger.Lifetime(Coins)
	case MetricTotalWoodEarned:
		return g.ledger.Lifetime(Wood)
	case MetricTotalStoneEarned:
		return g.ledger.Lifetime(Stone)
	case MetricBuildingsPurchased:
		return float64(g.stats.buildingsPurchased)
	case MetricBuildingsOwned:
		total := 0
		for _, b := range g.buildings {
			total += b.count
		}
		return float64(total)
	case MetricUpgradesPurchased:
		return float64(g.stats.upgradesPurchased)
	case MetricResourcesCrafted:
		return float64(g.stats.crafted)
	case MetricAchievementsUnlocked:
		return float64(g.stats.achievementsUnlocked)
	case MetricPlayTimeSeconds:
		return g.stats.playTime
	}
	return 0
}

// Coins returns the current coin balance.
func (g *Game) Coins() float64 { return g.ledger.Amount(Coins) }

// Wood returns the current wood balance.
func (g *Game) Wood() float64 { return g.ledger.Amount(Wood) }

// Stone returns the current stone balance.
func (g *Game) Stone() float64 { return g.ledger.Amount(Stone) }

// Amount returns the current balance of any resource.
func (g *Game) Amount(r Resource) float64 { return g.ledger.Amount(r) }

// Resources returns the HUD snapshot: balances, rates and click value.
func (g *Game) Resources() ResourceView {
	rates := g.rates()
	return ResourceView{
		Coins:          g.ledger.Amount(Coins),
		Wood:           g.ledger.Amount(Wood),
		Stone:          g.ledger.Amount(Stone),
		CoinsPerClick:  g.CoinsPerClick(),
		CoinsPerSecond: rates[Coins],
		WoodPerSecond:  rates[Wood],
		StonePerSecond: rates[Stone],
		Autoclickers:   g.autoclickers(),
	}
}
