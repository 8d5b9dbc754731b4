package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/everforgeworks/idleforge/internal/game"
	"github.com/everforgeworks/idleforge/internal/persistence/store"
)

type recorder struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recorder) Publish(msgType string, _ any) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msgType)
	r.mu.Unlock()
}

func (r *recorder) count(msgType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.msgs {
		if m == msgType {
			n++
		}
	}
	return n
}

func newEngine(t *testing.T, s SlotStore, pub Publisher) *Engine {
	t.Helper()
	g, err := game.NewDefault()
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	return New(g, Options{Store: s, Slot: "test", Publisher: pub})
}

func TestActionsPublishEvents(t *testing.T) {
	rec := &recorder{}
	e := newEngine(t, nil, rec)

	for i := 0; i < 9; i++ {
		e.Click()
	}
	if got := rec.count(string(game.EventAchievementUnlocked)); got != 0 {
		t.Fatalf("nothing should unlock before ten clicks, got %d", got)
	}
	// click_novice_10 and the first_unlock it cascades into.
	e.Click()
	if got := rec.count(string(game.EventAchievementUnlocked)); got != 2 {
		t.Fatalf("tenth click should publish two achievements, got %d", got)
	}
	e.Click()
	if got := rec.count(string(game.EventAchievementUnlocked)); got != 2 {
		t.Fatalf("achievements published twice: %d", got)
	}
}

func TestActionErrors(t *testing.T) {
	e := newEngine(t, nil, nil)

	if err := e.TryBuyBuilding(0); !errors.Is(err, game.ErrInsufficientResources) {
		t.Fatalf("expected ErrInsufficientResources, got %v", err)
	}
	if err := e.TryBuyBuilding(999); !errors.Is(err, game.ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
	if e.CraftResource("no_such_recipe") {
		t.Fatalf("unknown recipe crafted")
	}
	if e.AssignWorker(0, "no_such_building") {
		t.Fatalf("assigned to unknown building")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	mem := store.NewMemory()
	e := newEngine(t, mem, nil)
	for i := 0; i < 20; i++ {
		e.Click()
	}
	if !e.BuyBuilding(0) {
		t.Fatalf("BuyBuilding failed")
	}
	if !e.Save() {
		t.Fatalf("Save failed")
	}
	want := e.Resources()

	e.Reset()
	if e.Resources().Coins != 0 {
		t.Fatalf("Reset left coins behind")
	}
	if !e.Load() {
		t.Fatalf("Load failed")
	}
	if got := e.Resources(); got != want {
		t.Fatalf("loaded %+v, want %+v", got, want)
	}
	if e.Buildings()[0].Count != 1 {
		t.Fatalf("building count not restored")
	}
}

func TestLoadWithoutSave(t *testing.T) {
	e := newEngine(t, store.NewMemory(), nil)
	if e.Load() {
		t.Fatalf("Load of empty slot reported success")
	}
	if e.Save() != true {
		t.Fatalf("Save failed")
	}

	noStore := newEngine(t, nil, nil)
	if noStore.Save() || noStore.Load() {
		t.Fatalf("engine without store reported success")
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	e := newEngine(t, nil, nil)
	e.Click()
	if e.Import([]byte("garbage")) {
		t.Fatalf("garbage imported")
	}
	if e.Statistics().TotalClicks != 1 {
		t.Fatalf("failed import changed state")
	}

	blob, err := e.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	e.Click()
	if !e.Import(blob) {
		t.Fatalf("Import of exported blob failed")
	}
	if e.Statistics().TotalClicks != 1 {
		t.Fatalf("import did not roll back to export, clicks=%d", e.Statistics().TotalClicks)
	}
}

func TestRunPulsesAndSavesOnShutdown(t *testing.T) {
	rec := &recorder{}
	mem := store.NewMemory()
	g, err := game.NewDefault()
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	e := New(g, Options{
		Store:           mem,
		Slot:            "main",
		Publisher:       rec,
		TickInterval:    time.Millisecond,
		PulseEveryTicks: 2,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for rec.count(MsgPulse) < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("no pulses within deadline")
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := mem.Get(context.Background(), "main"); err != nil {
		t.Fatalf("no final save: %v", err)
	}
	if e.Statistics().PlayTimeSeconds <= 0 {
		t.Fatalf("heartbeat did not advance play time")
	}
}
