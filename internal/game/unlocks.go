package game

import "fmt"

// advanceFeature is the single Locked -> Unlocked transition for features,
// shared by the explicit action and the passive tick pass. It reports whether
// the feature is unlocked afterwards.
func (g *Game) advanceFeature(f *featureState) bool {
	if f.unlocked {
		return true
	}
	if g.metric(f.def.Metric) < f.def.Requirement {
		return false
	}
	f.unlocked = true
	f.unlockedAt = g.clock.Now()
	g.emit(Event{
		Kind: EventFeatureUnlocked,
		ID:   f.def.ID,
		Name: f.def.Name,
		At:   f.unlockedAt,
	})
	return true
}

// evaluateFeatures unlocks every passive feature whose requirement holds.
func (g *Game) evaluateFeatures() {
	for i := range g.features {
		if g.features[i].def.Auto {
			g.advanceFeature(&g.features[i])
		}
	}
}

// TryUnlockFeature explicitly unlocks a feature.
func (g *Game) TryUnlockFeature(id string) error {
	idx := g.findFeature(id)
	if idx < 0 {
		return fmt.Errorf("feature %q: %w", id, ErrInvalidReference)
	}
	f := &g.features[idx]
	if !g.advanceFeature(f) {
		return fmt.Errorf("feature %s needs %s >= %g: %w", id, f.def.Metric, f.def.Requirement, ErrRequirementUnmet)
	}
	return nil
}

// UnlockFeature reports whether the feature is unlocked after the call.
// An unmet requirement leaves it locked and returns false.
func (g *Game) UnlockFeature(id string) bool {
	return g.TryUnlockFeature(id) == nil
}

// CheckUnlock reports whether a feature is unlocked or could be unlocked
// now, without changing anything.
func (g *Game) CheckUnlock(id string) bool {
	idx := g.findFeature(id)
	if idx < 0 {
		return false
	}
	f := g.features[idx]
	return f.unlocked || g.metric(f.def.Metric) >= f.def.Requirement
}

// IsUnlocked reports whether a feature has been unlocked.
func (g *Game) IsUnlocked(id string) bool {
	idx := g.findFeature(id)
	return idx >= 0 && g.features[idx].unlocked
}

// Features returns every unlockable feature.
func (g *Game) Features() []Feature {
	out := make([]Feature, 0, len(g.features))
	for _, f := range g.features {
		view := Feature{
			ID:          f.def.ID,
			Name:        f.def.Name,
			Type:        f.def.Type,
			Metric:      f.def.Metric,
			Requirement: f.def.Requirement,
			Progress:    g.metric(f.def.Metric),
			Auto:        f.def.Auto,
			Unlocked:    f.unlocked,
		}
		if f.unlocked {
			at := f.unlockedAt
			view.UnlockedAt = &at
		}
		out = append(out, view)
	}
	return out
}
