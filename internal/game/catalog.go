/*
Package game
File: catalog.go
Description:
    Loads and validates the static game definitions (buildings, upgrades,
    recipes, achievements, features, workers and balance constants).
    The default catalog ships embedded; a YAML file on disk may replace it.
*/

package game

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// maxRecipeRatio bounds input_amount/output_amount for every recipe.
const maxRecipeRatio = 1000

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// LoadCatalog reads a catalog YAML file from disk.
func LoadCatalog(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, err
	}
	cat, err := ParseCatalog(raw)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// ParseCatalog decodes YAML, fills defaults and validates the result.
func ParseCatalog(raw []byte) (Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return Catalog{}, fmt.Errorf("catalog.yaml: %w", err)
	}
	cat.applyDefaults()
	if err := cat.Validate(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

// applyDefaults fills zero balance values and per-item growth factors.
func (c *Catalog) applyDefaults() {
	b := &c.Balance
	if b.BaseClickValue == 0 {
		b.BaseClickValue = 1
	}
	if b.AutoclicksPerSecond == 0 {
		b.AutoclicksPerSecond = 10
	}
	if b.MaxAutoclicksPerTick == 0 {
		b.MaxAutoclicksPerTick = 100000
	}
	if b.MaxTickSeconds == 0 {
		b.MaxTickSeconds = 3600
	}
	if b.BuildingCostGrowth == 0 {
		b.BuildingCostGrowth = 1.15
	}
	if b.UpgradeCostGrowth == 0 {
		b.UpgradeCostGrowth = 1.5
	}
	if b.WorkerXPPerSecond == 0 {
		b.WorkerXPPerSecond = 10
	}
	if b.WorkerBaseXP == 0 {
		b.WorkerBaseXP = 100
	}
	if b.WorkerXPGrowth == 0 {
		b.WorkerXPGrowth = 1.5
	}
	if b.WorkerLevelBonus == 0 {
		b.WorkerLevelBonus = 0.05
	}
	if b.WorkerPreferenceBonus == 0 {
		b.WorkerPreferenceBonus = 0.2
	}

	for i := range c.Buildings {
		if c.Buildings[i].CostGrowth == 0 {
			c.Buildings[i].CostGrowth = b.BuildingCostGrowth
		}
	}
	for i := range c.Upgrades {
		if c.Upgrades[i].CostGrowth == 0 {
			c.Upgrades[i].CostGrowth = b.UpgradeCostGrowth
		}
	}
}

// Validate checks internal consistency of the catalog.
func (c Catalog) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, fmt.Sprintf(format, args...))
	}
	positive := func(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

	b := c.Balance
	if !positive(b.BaseClickValue) || !positive(b.AutoclicksPerSecond) || !positive(b.MaxTickSeconds) {
		return bad("balance: click value, autoclick rate and max tick must be positive")
	}
	if b.MaxAutoclicksPerTick <= 0 {
		return bad("balance: max_autoclicks_per_tick must be positive")
	}
	if !positive(b.WorkerXPPerSecond) || !positive(b.WorkerBaseXP) || b.WorkerXPGrowth <= 1 {
		return bad("balance: worker xp settings must be positive with growth above 1")
	}
	if !positive(b.WorkerLevelBonus) || b.WorkerPreferenceBonus < 0 {
		return bad("balance: worker bonuses must be non-negative and level bonus positive")
	}

	buildings := map[string]bool{}
	for _, d := range c.Buildings {
		switch {
		case d.ID == "" || buildings[d.ID]:
			return bad("building %q: missing or duplicate id", d.ID)
		case !knownResource(d.Resource):
			return bad("building %s: unknown resource %q", d.ID, d.Resource)
		case !positive(d.BaseCost) || d.CostGrowth < 1:
			return bad("building %s: base_cost must be positive and cost_growth >= 1", d.ID)
		case d.BaseRate < 0:
			return bad("building %s: negative base_rate", d.ID)
		}
		buildings[d.ID] = true
	}

	upgrades := map[string]bool{}
	for _, d := range c.Upgrades {
		if d.ID == "" || upgrades[d.ID] {
			return bad("upgrade %q: missing or duplicate id", d.ID)
		}
		if !positive(d.BaseCost) || d.CostGrowth < 1 || d.MaxPurchases < 0 || d.Amount < 0 {
			return bad("upgrade %s: invalid cost, growth, amount or max_purchases", d.ID)
		}
		switch d.Effect {
		case EffectClickBonus, EffectAutoClicker:
		case EffectProductionBonus:
			if !knownResource(d.Resource) {
				return bad("upgrade %s: production_bonus needs a resource", d.ID)
			}
		default:
			return bad("upgrade %s: unknown effect %q", d.ID, d.Effect)
		}
		upgrades[d.ID] = true
	}

	features := map[string]bool{}
	for _, d := range c.Features {
		if d.ID == "" || features[d.ID] {
			return bad("feature %q: missing or duplicate id", d.ID)
		}
		if !knownMetric(d.Metric) {
			return bad("feature %s: unknown metric %q", d.ID, d.Metric)
		}
		features[d.ID] = true
	}

	recipes := map[string]bool{}
	for _, d := range c.Recipes {
		if d.ID == "" || recipes[d.ID] {
			return bad("recipe %q: missing or duplicate id", d.ID)
		}
		if !knownResource(d.InputResource) || !knownResource(d.OutputResource) {
			return bad("recipe %s: unknown resource", d.ID)
		}
		if !positive(d.InputAmount) || !positive(d.OutputAmount) {
			return bad("recipe %s: amounts must be positive", d.ID)
		}
		if ratio := d.InputAmount / d.OutputAmount; ratio <= 0 || ratio >= maxRecipeRatio {
			return bad("recipe %s: ratio %.4f outside (0, %d)", d.ID, ratio, maxRecipeRatio)
		}
		if d.Requires != "" && !features[d.Requires] {
			return bad("recipe %s: requires unknown feature %q", d.ID, d.Requires)
		}
		recipes[d.ID] = true
	}

	achievements := map[string]bool{}
	for _, d := range c.Achievements {
		if d.ID == "" || achievements[d.ID] {
			return bad("achievement %q: missing or duplicate id", d.ID)
		}
		if !knownMetric(d.Metric) {
			return bad("achievement %s: unknown metric %q", d.ID, d.Metric)
		}
		achievements[d.ID] = true
	}

	workers := map[string]bool{}
	for _, d := range c.Workers {
		if d.ID == "" || workers[d.ID] {
			return bad("worker %q: missing or duplicate id", d.ID)
		}
		if d.Preference != "" && !buildings[d.Preference] {
			return bad("worker %s: preference %q is not a building", d.ID, d.Preference)
		}
		workers[d.ID] = true
	}
	return nil
}

func knownResource(r Resource) bool {
	switch r {
	case Coins, Wood, Stone:
		return true
	}
	return false
}

func knownMetric(m Metric) bool {
	switch m {
	case MetricTotalClicks, MetricCoins, MetricWood, MetricStone,
		MetricTotalCoinsEarned, MetricTotalWoodEarned, MetricTotalStoneEarned,
		MetricBuildingsPurchased, MetricBuildingsOwned, MetricUpgradesPurchased,
		MetricResourcesCrafted, MetricAchievementsUnlocked, MetricPlayTimeSeconds:
		return true
	}
	return false
}
