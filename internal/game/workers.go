package game

import "fmt"

// TryAssignWorker moves the worker at index to a building. An empty
// building ID sends the worker home. A worker holds at most one assignment,
// so moving it releases the previous building in the same step.
func (g *Game) TryAssignWorker(index int, buildingID string) error {
	if index < 0 || index >= len(g.workers) {
		return fmt.Errorf("worker #%d: %w", index, ErrInvalidReference)
	}
	if buildingID != "" && g.findBuilding(buildingID) < 0 {
		return fmt.Errorf("building %q: %w", buildingID, ErrInvalidReference)
	}
	g.workers[index].assigned = buildingID
	return nil
}

// AssignWorker reports whether the assignment changed hands.
func (g *Game) AssignWorker(index int, buildingID string) bool {
	return g.TryAssignWorker(index, buildingID) == nil
}

// WorkerProductionBonus is the surplus multiplier a worker adds to its
// building, or 0 when idle or out of range.
func (g *Game) WorkerProductionBonus(index int) float64 {
	if index < 0 || index >= len(g.workers) {
		return 0
	}
	w := &g.workers[index]
	if w.assigned == "" {
		return 0
	}
	return g.efficiency(w) - 1
}

// Workers returns every worker.
func (g *Game) Workers() []Worker {
	out := make([]Worker, 0, len(g.workers))
	for i := range g.workers {
		w := &g.workers[i]
		out = append(out, Worker{
			ID:               w.def.ID,
			Name:             w.def.Name,
			Skills:           w.def.Skills,
			Background:       w.def.Background,
			Preferences:      w.def.Preference,
			AssignedBuilding: w.assigned,
			Level:            w.level,
			XP:               w.xp,
			XPToNextLevel:    w.xpToNext,
			Efficiency:       g.efficiency(w),
		})
	}
	return out
}
