/*
Package game
File: save.go
Description:
    Converts a Game to and from its persistent form.
    SaveState is a plain DTO: every entry is keyed by catalog ID, so catalog
    reordering and new definitions do not break older saves. Unknown IDs in
    a save are ignored and missing ones keep their fresh defaults.
*/

package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SaveVersion is the current save format version.
const SaveVersion = 1

type ResourceBalance struct {
	Amount   float64 `json:"amount"`
	Lifetime float64 `json:"lifetime_earned"`
}

type CountSave struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

type AchievementSave struct {
	ID         string     `json:"id"`
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
	Progress   float64    `json:"progress"`
}

type FeatureSave struct {
	ID         string     `json:"id"`
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

type WorkerSave struct {
	ID               string  `json:"id"`
	Level            int     `json:"level"`
	XP               float64 `json:"xp"`
	XPToNextLevel    float64 `json:"xp_to_next_level"`
	AssignedBuilding string  `json:"assigned_building,omitempty"`
}

type StatisticsSave struct {
	TotalClicks           int     `json:"total_clicks"`
	TotalResourcesCrafted int     `json:"total_resources_crafted"`
	AchievementsUnlocked  int     `json:"achievements_unlocked_count"`
	PlayTimeSeconds       float64 `json:"play_time_seconds"`
	BuildingsPurchased    int     `json:"buildings_purchased"`
	UpgradesPurchased     int     `json:"upgrades_purchased"`
}

// SaveState is the full persistent form of a Game.
type SaveState struct {
	Version        int                          `json:"version"`
	SaveID         string                       `json:"save_id"`
	SavedAt        time.Time                    `json:"saved_at"`
	Resources      map[Resource]ResourceBalance `json:"resources"`
	Buildings      []CountSave                  `json:"buildings"`
	Upgrades       []CountSave                  `json:"upgrades"`
	Achievements   []AchievementSave            `json:"achievements"`
	Features       []FeatureSave                `json:"features"`
	Workers        []WorkerSave                 `json:"workers"`
	Statistics     StatisticsSave               `json:"statistics"`
	AutoclickCarry float64                      `json:"autoclick_carry"`
}

// Export captures the complete game state.
func (g *Game) Export() SaveState {
	s := SaveState{
		Version:        SaveVersion,
		SaveID:         uuid.NewString(),
		SavedAt:        g.clock.Now(),
		Resources:      make(map[Resource]ResourceBalance, len(Resources)),
		Buildings:      make([]CountSave, 0, len(g.buildings)),
		Upgrades:       make([]CountSave, 0, len(g.upgrades)),
		Achievements:   make([]AchievementSave, 0, len(g.achievements)),
		Features:       make([]FeatureSave, 0, len(g.features)),
		Workers:        make([]WorkerSave, 0, len(g.workers)),
		AutoclickCarry: g.autoclickCarry,
		Statistics: StatisticsSave{
			TotalClicks:           g.stats.clicks,
			TotalResourcesCrafted: g.stats.crafted,
			AchievementsUnlocked:  g.stats.achievementsUnlocked,
			PlayTimeSeconds:       g.stats.playTime,
			BuildingsPurchased:    g.stats.buildingsPurchased,
			UpgradesPurchased:     g.stats.upgradesPurchased,
		},
	}
	for _, r := range Resources {
		s.Resources[r] = ResourceBalance{Amount: g.ledger.Amount(r), Lifetime: g.ledger.Lifetime(r)}
	}
	for _, b := range g.buildings {
		s.Buildings = append(s.Buildings, CountSave{ID: b.def.ID, Count: b.count})
	}
	for _, u := range g.upgrades {
		s.Upgrades = append(s.Upgrades, CountSave{ID: u.def.ID, Count: u.purchased})
	}
	for _, a := range g.achievements {
		as := AchievementSave{ID: a.def.ID, Unlocked: a.unlocked, Progress: a.progress}
		if a.unlocked {
			at := a.unlockedAt
			as.UnlockedAt = &at
		}
		s.Achievements = append(s.Achievements, as)
	}
	for _, f := range g.features {
		fs := FeatureSave{ID: f.def.ID, Unlocked: f.unlocked}
		if f.unlocked {
			at := f.unlockedAt
			fs.UnlockedAt = &at
		}
		s.Features = append(s.Features, fs)
	}
	for _, w := range g.workers {
		s.Workers = append(s.Workers, WorkerSave{
			ID:               w.def.ID,
			Level:            w.level,
			XP:               w.xp,
			XPToNextLevel:    w.xpToNext,
			AssignedBuilding: w.assigned,
		})
	}
	return s
}

// Restore replaces the game state with a save.
// On error the game is left untouched.
func (g *Game) Restore(s SaveState) error {
	if s.Version < 1 || s.Version > SaveVersion {
		return fmt.Errorf("save version %d: %w", s.Version, ErrCorruptState)
	}

	fresh := &Game{catalog: g.catalog, clock: g.clock}
	fresh.init()

	for r, bal := range s.Resources {
		fresh.ledger.restore(r, bal.Amount, bal.Lifetime)
	}
	for _, c := range s.Buildings {
		if i := fresh.findBuilding(c.ID); i >= 0 {
			fresh.buildings[i].count = nonNegative(c.Count)
		}
	}
	for _, c := range s.Upgrades {
		for i := range fresh.upgrades {
			u := &fresh.upgrades[i]
			if u.def.ID != c.ID {
				continue
			}
			n := nonNegative(c.Count)
			if u.def.MaxPurchases > 0 && n > u.def.MaxPurchases {
				n = u.def.MaxPurchases
			}
			u.purchased = n
		}
	}
	for _, as := range s.Achievements {
		i := fresh.findAchievement(as.ID)
		if i < 0 || !as.Unlocked {
			continue
		}
		a := &fresh.achievements[i]
		a.unlocked = true
		a.progress = sanitize(as.Progress)
		if as.UnlockedAt != nil {
			a.unlockedAt = *as.UnlockedAt
		}
	}
	for _, fs := range s.Features {
		i := fresh.findFeature(fs.ID)
		if i < 0 || !fs.Unlocked {
			continue
		}
		f := &fresh.features[i]
		f.unlocked = true
		if fs.UnlockedAt != nil {
			f.unlockedAt = *fs.UnlockedAt
		}
	}
	for _, ws := range s.Workers {
		for i := range fresh.workers {
			w := &fresh.workers[i]
			if w.def.ID != ws.ID {
				continue
			}
			if ws.Level > 0 {
				w.level = ws.Level
			}
			w.xp = sanitize(ws.XP)
			if t := sanitize(ws.XPToNextLevel); t > 0 {
				w.xpToNext = t
			}
			if ws.AssignedBuilding != "" && fresh.findBuilding(ws.AssignedBuilding) >= 0 {
				w.assigned = ws.AssignedBuilding
			}
		}
	}

	st := s.Statistics
	fresh.stats = counters{
		clicks:               nonNegative(st.TotalClicks),
		crafted:              nonNegative(st.TotalResourcesCrafted),
		achievementsUnlocked: nonNegative(st.AchievementsUnlocked),
		playTime:             sanitize(st.PlayTimeSeconds),
		buildingsPurchased:   nonNegative(st.BuildingsPurchased),
		upgradesPurchased:    nonNegative(st.UpgradesPurchased),
	}
	// The counter can never be below what the save itself shows unlocked.
	unlocked := 0
	for _, a := range fresh.achievements {
		if a.unlocked {
			unlocked++
		}
	}
	if fresh.stats.achievementsUnlocked < unlocked {
		fresh.stats.achievementsUnlocked = unlocked
	}

	if carry := sanitize(s.AutoclickCarry); carry < 1 {
		fresh.autoclickCarry = carry
	}

	*g = *fresh
	return nil
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
