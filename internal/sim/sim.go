/*
Package sim
File: sim.go
Description:
    Headless, deterministic runs of a game.Game for balance checks.
    A run feeds fixed-size ticks to the game, simulates a steady manual click
    rate and optionally plays a purchasing strategy between ticks.
*/

package sim

import (
	"fmt"
	"math"

	"github.com/everforgeworks/idleforge/internal/game"
)

type Strategy string

const (
	StrategyIdle   Strategy = "idle"   // Click only
	StrategyGreedy Strategy = "greedy" // Buy the cheapest affordable building or upgrade each tick
)

type Options struct {
	Seconds         float64
	Tick            float64
	ClicksPerSecond float64
	Strategy        Strategy
}

// Purchase records one buy made by the strategy.
type Purchase struct {
	At   float64 // Simulated seconds since start
	Kind string  // building or upgrade
	ID   string
	Cost float64
}

type Result struct {
	Ticks     int
	Elapsed   float64
	Purchases []Purchase
	Final     game.ResourceView
	Stats     game.Statistics
}

func (o Options) Validate() error {
	switch {
	case !(o.Seconds > 0) || math.IsInf(o.Seconds, 0):
		return fmt.Errorf("seconds must be positive, got %v", o.Seconds)
	case !(o.Tick > 0) || math.IsInf(o.Tick, 0):
		return fmt.Errorf("tick must be positive, got %v", o.Tick)
	case o.ClicksPerSecond < 0 || math.IsNaN(o.ClicksPerSecond) || math.IsInf(o.ClicksPerSecond, 0):
		return fmt.Errorf("clicks per second must be a non-negative number, got %v", o.ClicksPerSecond)
	}
	switch o.Strategy {
	case StrategyIdle, StrategyGreedy:
		return nil
	}
	return fmt.Errorf("unknown strategy %q", o.Strategy)
}

// Run plays g for opts.Seconds of simulated time.
func Run(g *game.Game, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	var res Result
	carry := 0.0
	for res.Elapsed < opts.Seconds {
		step := math.Min(opts.Tick, opts.Seconds-res.Elapsed)

		carry += opts.ClicksPerSecond * step
		clicks := int(carry)
		carry -= float64(clicks)
		for i := 0; i < clicks; i++ {
			g.Click()
		}

		if opts.Strategy == StrategyGreedy {
			if p, ok := buyCheapest(g); ok {
				p.At = res.Elapsed
				res.Purchases = append(res.Purchases, p)
			}
		}

		g.Tick(step)
		res.Elapsed += step
		res.Ticks++
	}

	res.Final = g.Resources()
	res.Stats = g.Statistics()
	return res, nil
}

// buyCheapest buys the cheapest affordable item. Ties go to buildings.
func buyCheapest(g *game.Game) (Purchase, bool) {
	coins := g.Coins()
	best := Purchase{Cost: math.Inf(1)}
	index := -1

	for i, b := range g.Buildings() {
		if b.Cost <= coins && b.Cost < best.Cost {
			best, index = Purchase{Kind: "building", ID: b.ID, Cost: b.Cost}, i
		}
	}
	for i, u := range g.Upgrades() {
		if u.Available && u.Cost <= coins && u.Cost < best.Cost {
			best, index = Purchase{Kind: "upgrade", ID: u.ID, Cost: u.Cost}, i
		}
	}
	if index < 0 {
		return Purchase{}, false
	}

	ok := false
	if best.Kind == "building" {
		ok = g.BuyBuilding(index)
	} else {
		ok = g.BuyUpgrade(index)
	}
	return best, ok
}
