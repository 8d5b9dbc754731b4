/*
Package game
File: models.go
Description:
    Defines all data structures used by the idle simulation.
    Catalog types map directly to 'catalog.yaml'; view types are the
    read-only snapshots handed out to callers and serialized by the API.

    No logic is performed here; this file is strictly for type definitions.
*/

package game

import "time"

// Resource identifies one of the accumulating currencies.
type Resource string

const (
	Coins Resource = "coins"
	Wood  Resource = "wood"
	Stone Resource = "stone"
)

// Resources lists every resource in display order.
var Resources = []Resource{Coins, Wood, Stone}

// UpgradeEffect selects what an upgrade does once purchased.
type UpgradeEffect string

const (
	EffectClickBonus      UpgradeEffect = "click_bonus"      // +Amount coins per click per purchase
	EffectAutoClicker     UpgradeEffect = "autoclicker"      // schedules synthetic clicks
	EffectProductionBonus UpgradeEffect = "production_bonus" // +Amount/s of Resource per purchase
)

// Metric names a live value that achievements and features compare against.
type Metric string

const (
	MetricTotalClicks          Metric = "total_clicks"
	MetricCoins                Metric = "coins"
	MetricWood                 Metric = "wood"
	MetricStone                Metric = "stone"
	MetricTotalCoinsEarned     Metric = "total_coins_earned"
	MetricTotalWoodEarned      Metric = "total_wood_earned"
	MetricTotalStoneEarned     Metric = "total_stone_earned"
	MetricBuildingsPurchased   Metric = "buildings_purchased"
	MetricBuildingsOwned       Metric = "buildings_owned"
	MetricUpgradesPurchased    Metric = "upgrades_purchased"
	MetricResourcesCrafted     Metric = "resources_crafted"
	MetricAchievementsUnlocked Metric = "achievements_unlocked"
	MetricPlayTimeSeconds      Metric = "play_time_seconds"
)

// Balance stores global tuning variables loaded from 'catalog.yaml'.
type Balance struct {
	BaseClickValue        float64 `yaml:"base_click_value" json:"base_click_value"`               // Coins per manual click before upgrades
	AutoclicksPerSecond   float64 `yaml:"autoclicks_per_second" json:"autoclicks_per_second"`     // Synthetic clicks per autoclicker per second
	MaxAutoclicksPerTick  int     `yaml:"max_autoclicks_per_tick" json:"max_autoclicks_per_tick"` // Numeric guard for huge deltas
	MaxTickSeconds        float64 `yaml:"max_tick_seconds" json:"max_tick_seconds"`               // Longest delta a single tick may apply
	BuildingCostGrowth    float64 `yaml:"building_cost_growth" json:"building_cost_growth"`       // Default growth for buildings
	UpgradeCostGrowth     float64 `yaml:"upgrade_cost_growth" json:"upgrade_cost_growth"`         // Default growth for upgrades
	WorkerXPPerSecond     float64 `yaml:"worker_xp_per_second" json:"worker_xp_per_second"`
	WorkerBaseXP          float64 `yaml:"worker_base_xp" json:"worker_base_xp"` // XP needed for level 2
	WorkerXPGrowth        float64 `yaml:"worker_xp_growth" json:"worker_xp_growth"`
	WorkerLevelBonus      float64 `yaml:"worker_level_bonus" json:"worker_level_bonus"`
	WorkerPreferenceBonus float64 `yaml:"worker_preference_bonus" json:"worker_preference_bonus"`
}

// BuildingDef is a purchasable producer.
type BuildingDef struct {
	ID         string   `yaml:"id" json:"id"`
	Name       string   `yaml:"name" json:"name"`
	Resource   Resource `yaml:"resource" json:"resource"`       // What it produces
	BaseCost   float64  `yaml:"base_cost" json:"base_cost"`     // Coins for the first unit
	CostGrowth float64  `yaml:"cost_growth" json:"cost_growth"` // 0 means Balance.BuildingCostGrowth
	BaseRate   float64  `yaml:"base_rate" json:"base_rate"`     // Units per second per owned building
}

// UpgradeDef is a purchasable modifier.
type UpgradeDef struct {
	ID           string        `yaml:"id" json:"id"`
	Name         string        `yaml:"name" json:"name"`
	Description  string        `yaml:"description" json:"description"`
	BaseCost     float64       `yaml:"base_cost" json:"base_cost"`
	CostGrowth   float64       `yaml:"cost_growth" json:"cost_growth"`
	Effect       UpgradeEffect `yaml:"effect" json:"effect"`
	Amount       float64       `yaml:"amount" json:"amount"`
	Resource     Resource      `yaml:"resource,omitempty" json:"resource,omitempty"` // Only for production_bonus
	MaxPurchases int           `yaml:"max_purchases" json:"max_purchases"`           // 0 = repeatable forever
}

// RecipeDef converts one resource into another at a fixed ratio.
type RecipeDef struct {
	ID             string   `yaml:"id" json:"id"`
	Name           string   `yaml:"name" json:"name"`
	InputResource  Resource `yaml:"input_resource" json:"input_resource"`
	InputAmount    float64  `yaml:"input_amount" json:"input_amount"`
	OutputResource Resource `yaml:"output_resource" json:"output_resource"`
	OutputAmount   float64  `yaml:"output_amount" json:"output_amount"`
	Requires       string   `yaml:"requires,omitempty" json:"requires,omitempty"` // Feature ID gating the recipe
}

// AchievementDef is a cosmetic milestone.
type AchievementDef struct {
	ID          string  `yaml:"id" json:"id"`
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description" json:"description"`
	Category    string  `yaml:"category" json:"category"`
	Metric      Metric  `yaml:"metric" json:"metric"`
	Requirement float64 `yaml:"requirement" json:"requirement"`
}

// FeatureDef gates a panel, system or mechanic.
type FeatureDef struct {
	ID          string  `yaml:"id" json:"id"`
	Name        string  `yaml:"name" json:"name"`
	Type        string  `yaml:"type" json:"type"` // area, system, building, mechanic
	Metric      Metric  `yaml:"metric" json:"metric"`
	Requirement float64 `yaml:"requirement" json:"requirement"`
	Auto        bool    `yaml:"auto" json:"auto"` // Unlocks passively on tick
}

// WorkerDef is a recruitable worker.
type WorkerDef struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	Skills     string `yaml:"skills" json:"skills"`
	Background string `yaml:"background" json:"background"`
	Preference string `yaml:"preference" json:"preference"` // Building ID this worker excels at
}

// Catalog is the root configuration struct, mapping to the entire 'catalog.yaml' file.
type Catalog struct {
	Balance      Balance          `yaml:"balance"`
	Buildings    []BuildingDef    `yaml:"buildings"`
	Upgrades     []UpgradeDef     `yaml:"upgrades"`
	Recipes      []RecipeDef      `yaml:"recipes"`
	Achievements []AchievementDef `yaml:"achievements"`
	Features     []FeatureDef     `yaml:"features"`
	Workers      []WorkerDef      `yaml:"workers"`
}

// ResourceView is the per-frame HUD payload.
type ResourceView struct {
	Coins          float64 `json:"coins"`
	Wood           float64 `json:"wood"`
	Stone          float64 `json:"stone"`
	CoinsPerClick  float64 `json:"coins_per_click"`
	CoinsPerSecond float64 `json:"coins_per_second"`
	WoodPerSecond  float64 `json:"wood_per_second"`
	StonePerSecond float64 `json:"stone_per_second"`
	Autoclickers   int     `json:"autoclickers"`
}

// Building is a snapshot of one building slot.
type Building struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Resource    Resource `json:"resource"`
	Count       int      `json:"count"`
	Cost        float64  `json:"cost"`         // Exact cost of the next unit
	DisplayCost float64  `json:"display_cost"` // Floored for display
	BaseRate    float64  `json:"base_rate"`
	Production  float64  `json:"production"` // Current output per second incl. worker bonus
	Workers     int      `json:"workers"`    // Workers currently assigned
}

// Upgrade is a snapshot of one upgrade slot.
type Upgrade struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Effect       UpgradeEffect `json:"effect"`
	Amount       float64       `json:"amount"`
	Resource     Resource      `json:"resource,omitempty"`
	Purchased    int           `json:"purchased"`
	MaxPurchases int           `json:"max_purchases"`
	Cost         float64       `json:"cost"`
	DisplayCost  float64       `json:"display_cost"`
	Available    bool          `json:"available"` // False once MaxPurchases is reached
}

// Recipe is a snapshot of one recipe with its lock state.
type Recipe struct {
	RecipeDef
	Unlocked bool `json:"unlocked"`
}

// Achievement is a snapshot of one achievement.
type Achievement struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Metric      Metric     `json:"metric"`
	Requirement float64    `json:"requirement"`
	Progress    float64    `json:"progress"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at"`
}

// Feature is a snapshot of one unlockable feature.
type Feature struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Metric      Metric     `json:"metric"`
	Requirement float64    `json:"requirement"`
	Progress    float64    `json:"progress"`
	Auto        bool       `json:"auto"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at"`
}

// Worker is a snapshot of one worker.
type Worker struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Skills           string  `json:"skills"`
	Background       string  `json:"background"`
	Preferences      string  `json:"preferences"`
	AssignedBuilding string  `json:"assigned_building"` // Empty when idle
	Level            int     `json:"level"`
	XP               float64 `json:"xp"`
	XPToNextLevel    float64 `json:"xp_to_next_level"`
	Efficiency       float64 `json:"efficiency_multiplier"`
}

// Statistics holds the lifetime counters of a save.
type Statistics struct {
	TotalClicks               int     `json:"total_clicks"`
	TotalCoinsEarned          float64 `json:"total_coins_earned"`
	TotalWoodEarned           float64 `json:"total_wood_earned"`
	TotalStoneEarned          float64 `json:"total_stone_earned"`
	TotalResourcesCrafted     int     `json:"total_resources_crafted"`
	AchievementsUnlockedCount int     `json:"achievements_unlocked_count"`
	PlayTimeSeconds           float64 `json:"play_time_seconds"`
	BuildingsPurchased        int     `json:"buildings_purchased"`
	UpgradesPurchased         int     `json:"upgrades_purchased"`
}
