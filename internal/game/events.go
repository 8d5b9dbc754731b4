package game

import "time"

// EventKind names a one-time notification raised by the simulation.
type EventKind string

const (
	EventAchievementUnlocked EventKind = "achievement_unlocked"
	EventFeatureUnlocked     EventKind = "feature_unlocked"
	EventWorkerLevelUp       EventKind = "worker_level_up"
)

// maxPendingEvents caps the queue when the host never drains it.
const maxPendingEvents = 256

// Event is a notification for the UI. Each one is delivered exactly once
// through DrainEvents.
type Event struct {
	Kind  EventKind `json:"kind"`
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Level int       `json:"level,omitempty"` // Set for worker_level_up
	At    time.Time `json:"at"`
}

func (g *Game) emit(ev Event) {
	if len(g.events) >= maxPendingEvents {
		// Oldest notifications go first.
		copy(g.events, g.events[1:])
		g.events = g.events[:len(g.events)-1]
	}
	g.events = append(g.events, ev)
}

// DrainEvents returns pending notifications in order and clears the queue.
func (g *Game) DrainEvents() []Event {
	if len(g.events) == 0 {
		return nil
	}
	out := g.events
	g.events = nil
	return out
}
