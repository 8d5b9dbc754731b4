/*
Package engine
File: engine.go
Description:
    The host binding around one game.Game.
    The Engine is the only handle the server holds: every call takes the
    lock, so HTTP handlers, the heartbeat loop and autosave can run on
    different goroutines. Notifications raised by the game are drained after
    each call and handed to the Publisher outside the lock.
*/

package engine

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/everforgeworks/idleforge/internal/game"
	"github.com/everforgeworks/idleforge/internal/persistence/snapshot"
	"github.com/everforgeworks/idleforge/internal/persistence/store"
)

// Message types pushed to the Publisher.
const (
	MsgPulse = "pulse"
)

// ioTimeout bounds a single save or load.
const ioTimeout = 5 * time.Second

// Core is the full operation set a host can call.
type Core interface {
	Click()
	BuyBuilding(index int) bool
	BuyUpgrade(index int) bool
	CraftResource(recipeID string) bool
	AssignWorker(index int, buildingID string) bool
	UnlockFeature(id string) bool
	CheckUnlock(id string) bool
	CheckAchievement(id string) bool
	CheckAllAchievements()
	WorkerProductionBonus(index int) float64

	Resources() game.ResourceView
	Statistics() game.Statistics
	Achievements() []game.Achievement
	Features() []game.Feature
	Workers() []game.Worker
	Recipes() []game.Recipe
	Buildings() []game.Building
	Upgrades() []game.Upgrade

	GameLoop(delta float64)
	Save() bool
	Load() bool
	Reset()
	Export() ([]byte, error)
	Import(blob []byte) bool
}

// Publisher receives notifications. Publish must not block.
type Publisher interface {
	Publish(msgType string, payload any)
}

// SlotStore is the part of store.Store the engine needs.
type SlotStore interface {
	Put(ctx context.Context, s store.Slot) error
	Get(ctx context.Context, name string) (store.Slot, error)
}

// Options configures an Engine. Zero values get defaults in New.
type Options struct {
	Store            SlotStore // nil disables Save and Load
	Slot             string
	Publisher        Publisher
	Logger           *log.Logger
	TickInterval     time.Duration
	PulseEveryTicks  int
	AutosaveInterval time.Duration // 0 disables autosave
}

// Engine serializes every call into one game.Game and forwards the
// notifications it raises to the Publisher.
type Engine struct {
	mu   sync.Mutex
	game *game.Game

	store     SlotStore
	slot      string
	publisher Publisher
	logger    *log.Logger

	tickInterval     time.Duration
	pulseEveryTicks  int
	autosaveInterval time.Duration

	now func() time.Time
}

var _ Core = (*Engine)(nil)

// New wraps g. The engine takes ownership: callers must not touch g afterwards.
func New(g *game.Game, opts Options) *Engine {
	e := &Engine{
		game:             g,
		store:            opts.Store,
		slot:             opts.Slot,
		publisher:        opts.Publisher,
		logger:           opts.Logger,
		tickInterval:     opts.TickInterval,
		pulseEveryTicks:  opts.PulseEveryTicks,
		autosaveInterval: opts.AutosaveInterval,
		now:              time.Now,
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard, "", 0)
	}
	if e.slot == "" {
		e.slot = "main"
	}
	if e.tickInterval <= 0 {
		e.tickInterval = 100 * time.Millisecond
	}
	if e.pulseEveryTicks <= 0 {
		e.pulseEveryTicks = 10
	}
	return e
}

// do runs fn under the lock and publishes whatever it raised.
func (e *Engine) do(fn func(g *game.Game) error) error {
	e.mu.Lock()
	err := fn(e.game)
	events := e.game.DrainEvents()
	e.mu.Unlock()

	e.publishEvents(events)
	return err
}

// read runs fn under the lock. Reads never raise notifications.
func (e *Engine) read(fn func(g *game.Game)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.game)
}

func (e *Engine) publishEvents(events []game.Event) {
	if e.publisher == nil {
		return
	}
	for _, ev := range events {
		e.publisher.Publish(string(ev.Kind), ev)
	}
}

func (e *Engine) publish(msgType string, payload any) {
	if e.publisher != nil {
		e.publisher.Publish(msgType, payload)
	}
}

// ---- Actions ----

// Click performs one manual click.
func (e *Engine) Click() {
	e.do(func(g *game.Game) error { g.Click(); return nil })
}

// TryBuyBuilding buys one unit of the building at index.
func (e *Engine) TryBuyBuilding(index int) error {
	return e.do(func(g *game.Game) error { return g.TryBuyBuilding(index) })
}

// BuyBuilding reports whether TryBuyBuilding succeeded.
func (e *Engine) BuyBuilding(index int) bool { return e.TryBuyBuilding(index) == nil }

// TryBuyUpgrade buys one level of the upgrade at index.
func (e *Engine) TryBuyUpgrade(index int) error {
	return e.do(func(g *game.Game) error { return g.TryBuyUpgrade(index) })
}

// BuyUpgrade reports whether TryBuyUpgrade succeeded.
func (e *Engine) BuyUpgrade(index int) bool { return e.TryBuyUpgrade(index) == nil }

// TryCraft runs one conversion of the recipe.
func (e *Engine) TryCraft(recipeID string) error {
	return e.do(func(g *game.Game) error { return g.TryCraft(recipeID) })
}

// CraftResource reports whether TryCraft succeeded.
func (e *Engine) CraftResource(recipeID string) bool { return e.TryCraft(recipeID) == nil }

// TryAssignWorker moves a worker to buildingID. An empty id unassigns it.
func (e *Engine) TryAssignWorker(index int, buildingID string) error {
	return e.do(func(g *game.Game) error { return g.TryAssignWorker(index, buildingID) })
}

// AssignWorker reports whether TryAssignWorker succeeded.
func (e *Engine) AssignWorker(index int, buildingID string) bool {
	return e.TryAssignWorker(index, buildingID) == nil
}

// TryUnlockFeature unlocks a feature whose requirement is met.
func (e *Engine) TryUnlockFeature(id string) error {
	return e.do(func(g *game.Game) error { return g.TryUnlockFeature(id) })
}

// UnlockFeature reports whether the feature is unlocked after the attempt.
func (e *Engine) UnlockFeature(id string) bool { return e.TryUnlockFeature(id) == nil }

// CheckAchievement evaluates one achievement and reports whether it is unlocked.
func (e *Engine) CheckAchievement(id string) bool {
	var ok bool
	e.do(func(g *game.Game) error { ok = g.CheckAchievement(id); return nil })
	return ok
}

// CheckAllAchievements runs a full achievement pass.
func (e *Engine) CheckAllAchievements() {
	e.do(func(g *game.Game) error { g.CheckAllAchievements(); return nil })
}

// GameLoop advances the simulation by delta seconds.
func (e *Engine) GameLoop(delta float64) {
	e.do(func(g *game.Game) error { g.Tick(delta); return nil })
}

// Reset discards all progress.
func (e *Engine) Reset() {
	e.do(func(g *game.Game) error { g.Reset(); return nil })
	e.logger.Printf("ENGINE: progress reset")
}

// ---- Queries ----

// CheckUnlock reports whether the feature is unlocked or could be unlocked now.
func (e *Engine) CheckUnlock(id string) (ok bool) {
	e.read(func(g *game.Game) { ok = g.CheckUnlock(id) })
	return
}

// WorkerProductionBonus is the extra output fraction a worker adds, 0 when idle.
func (e *Engine) WorkerProductionBonus(index int) (v float64) {
	e.read(func(g *game.Game) { v = g.WorkerProductionBonus(index) })
	return
}

// Resources returns balances, rates and click value.
func (e *Engine) Resources() (v game.ResourceView) {
	e.read(func(g *game.Game) { v = g.Resources() })
	return
}

// Statistics returns the lifetime counters.
func (e *Engine) Statistics() (v game.Statistics) {
	e.read(func(g *game.Game) { v = g.Statistics() })
	return
}

// Achievements returns every achievement with its progress.
func (e *Engine) Achievements() (v []game.Achievement) {
	e.read(func(g *game.Game) { v = g.Achievements() })
	return
}

// Features returns every unlockable feature.
func (e *Engine) Features() (v []game.Feature) {
	e.read(func(g *game.Game) { v = g.Features() })
	return
}

// Workers returns every worker with level and assignment.
func (e *Engine) Workers() (v []game.Worker) {
	e.read(func(g *game.Game) { v = g.Workers() })
	return
}

// Recipes returns every recipe with its lock state.
func (e *Engine) Recipes() (v []game.Recipe) {
	e.read(func(g *game.Game) { v = g.Recipes() })
	return
}

// Buildings returns every building with count and next cost.
func (e *Engine) Buildings() (v []game.Building) {
	e.read(func(g *game.Game) { v = g.Buildings() })
	return
}

// Upgrades returns every upgrade with purchases and next cost.
func (e *Engine) Upgrades() (v []game.Upgrade) {
	e.read(func(g *game.Game) { v = g.Upgrades() })
	return
}

// ---- Persistence ----

// Export encodes the current state as a portable blob.
func (e *Engine) Export() ([]byte, error) {
	var s game.SaveState
	e.read(func(g *game.Game) { s = g.Export() })
	return snapshot.Encode(s)
}

// Import replaces the state with a blob from Export.
// A bad blob leaves the current state untouched.
func (e *Engine) Import(blob []byte) bool {
	if err := e.importBlob(blob); err != nil {
		e.logger.Printf("ENGINE: import rejected: %v", err)
		return false
	}
	return true
}

func (e *Engine) importBlob(blob []byte) error {
	s, err := snapshot.Decode(blob)
	if err != nil {
		return err
	}
	return e.do(func(g *game.Game) error { return g.Restore(s) })
}

// SaveContext writes the current state to the configured slot.
func (e *Engine) SaveContext(ctx context.Context) error {
	if e.store == nil {
		return fmt.Errorf("no save store configured")
	}
	var s game.SaveState
	e.read(func(g *game.Game) { s = g.Export() })
	blob, err := snapshot.Encode(s)
	if err != nil {
		return err
	}
	return e.store.Put(ctx, store.Slot{
		Name:            e.slot,
		SaveID:          s.SaveID,
		Version:         s.Version,
		SavedAt:         s.SavedAt,
		PlayTimeSeconds: s.Statistics.PlayTimeSeconds,
		Blob:            blob,
	})
}

// LoadContext replaces the state with the configured slot.
func (e *Engine) LoadContext(ctx context.Context) error {
	if e.store == nil {
		return fmt.Errorf("no save store configured")
	}
	slot, err := e.store.Get(ctx, e.slot)
	if err != nil {
		return err
	}
	return e.importBlob(slot.Blob)
}

// Save writes the configured slot, logging any failure.
func (e *Engine) Save() bool {
	ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
	defer cancel()
	if err := e.SaveContext(ctx); err != nil {
		e.logger.Printf("ENGINE: save to slot %q failed: %v", e.slot, err)
		return false
	}
	return true
}

// Load restores the configured slot, logging any failure.
func (e *Engine) Load() bool {
	ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
	defer cancel()
	if err := e.LoadContext(ctx); err != nil {
		e.logger.Printf("ENGINE: load from slot %q failed: %v", e.slot, err)
		return false
	}
	return true
}
