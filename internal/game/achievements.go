package game

// evaluateAchievements unlocks every achievement whose requirement holds.
// It repeats until nothing changes, since an unlock raises the
// achievements_unlocked metric other achievements may watch.
func (g *Game) evaluateAchievements() {
	for {
		changed := false
		for i := range g.achievements {
			if g.advanceAchievement(i) {
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// advanceAchievement is the only Locked -> Unlocked transition.
// It reports whether this call performed the unlock.
func (g *Game) advanceAchievement(i int) bool {
	a := &g.achievements[i]
	if a.unlocked {
		return false
	}
	v := g.metric(a.def.Metric)
	if v < a.def.Requirement {
		return false
	}
	a.unlocked = true
	a.unlockedAt = g.clock.Now()
	a.progress = v
	g.stats.achievementsUnlocked++
	g.emit(Event{
		Kind: EventAchievementUnlocked,
		ID:   a.def.ID,
		Name: a.def.Name,
		At:   a.unlockedAt,
	})
	return true
}

// CheckAchievement evaluates one achievement and reports whether it is
// unlocked. Unknown IDs return false.
func (g *Game) CheckAchievement(id string) bool {
	idx := g.findAchievement(id)
	if idx < 0 {
		return false
	}
	if g.advanceAchievement(idx) {
		g.cascadeAchievements()
	}
	return g.achievements[idx].unlocked
}

// cascadeAchievements re-checks achievements counting other achievements.
func (g *Game) cascadeAchievements() {
	for {
		changed := false
		for i := range g.achievements {
			if g.achievements[i].def.Metric == MetricAchievementsUnlocked && g.advanceAchievement(i) {
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// CheckAllAchievements runs a full evaluation pass.
func (g *Game) CheckAllAchievements() {
	g.evaluateAchievements()
}

// Achievements returns every achievement. Locked ones report live progress;
// unlocked ones report the value reached at unlock.
func (g *Game) Achievements() []Achievement {
	out := make([]Achievement, 0, len(g.achievements))
	for _, a := range g.achievements {
		view := Achievement{
			ID:          a.def.ID,
			Name:        a.def.Name,
			Description: a.def.Description,
			Category:    a.def.Category,
			Metric:      a.def.Metric,
			Requirement: a.def.Requirement,
			Unlocked:    a.unlocked,
		}
		if a.unlocked {
			at := a.unlockedAt
			view.UnlockedAt = &at
			view.Progress = a.progress
		} else {
			view.Progress = g.metric(a.def.Metric)
		}
		out = append(out, view)
	}
	return out
}
