package snapshot

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/everforgeworks/idleforge/internal/game"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func playedGame(t *testing.T) *game.Game {
	t.Helper()
	g, err := game.NewDefault(game.WithClock(fixedClock{time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}))
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	for i := 0; i < 40; i++ {
		g.Click()
	}
	if !g.BuyBuilding(0) {
		t.Fatalf("BuyBuilding(0) failed with %.2f coins", g.Coins())
	}
	g.AssignWorker(0, "coin_mine")
	g.Tick(12.5)
	return g
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	g := playedGame(t)
	saved := g.Export()

	blob, err := Encode(saved)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(blob)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.SaveID != saved.SaveID || got.Version != saved.Version {
		t.Fatalf("header mismatch: got %s/v%d want %s/v%d", got.SaveID, got.Version, saved.SaveID, saved.Version)
	}

	restored, err := game.NewDefault()
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	if err := restored.Restore(got); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.Coins() != g.Coins() || restored.Statistics() != g.Statistics() {
		t.Fatalf("restored state differs: coins %v vs %v, stats %+v vs %+v",
			restored.Coins(), g.Coins(), restored.Statistics(), g.Statistics())
	}
	if w := restored.Workers()[0]; w.AssignedBuilding != "coin_mine" {
		t.Fatalf("worker assignment lost: %+v", w)
	}
}

func TestReadHeader(t *testing.T) {
	saved := playedGame(t).Export()
	blob, err := Encode(saved)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	h, err := ReadHeader(blob)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if h.SaveID != saved.SaveID || h.PlayTimeSeconds != 12.5 || !h.SavedAt.Equal(saved.SavedAt) {
		t.Fatalf("unexpected header %+v", h)
	}
}

func compress(t *testing.T, raw string) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatalf("zstd.NewWriter: %v", err)
	}
	enc.Write([]byte(raw))
	if err := enc.Close(); err != nil {
		t.Fatalf("zstd close: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeRejectsCorruptInput(t *testing.T) {
	cases := map[string][]byte{
		"empty":          nil,
		"not zstd":       []byte("definitely not a save"),
		"no header":      compress(t, `{"version":1}`),
		"bad json":       compress(t, "{}\n{not json"),
		"no version":     compress(t, "{}\n"+`{"resources":{}}`),
		"negative coins": compress(t, "{}\n"+`{"version":1,"resources":{"coins":{"amount":-5}},"buildings":[],"upgrades":[],"achievements":[],"features":[],"workers":[],"statistics":{}}`),
		"zero level":     compress(t, "{}\n"+`{"version":1,"resources":{},"buildings":[],"upgrades":[],"achievements":[],"features":[],"workers":[{"id":"miner","level":0}],"statistics":{}}`),
	}
	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(blob)
			if !errors.Is(err, game.ErrCorruptState) {
				t.Fatalf("expected ErrCorruptState, got %v", err)
			}
		})
	}
}

func TestDecodeAcceptsMinimalSave(t *testing.T) {
	blob := compress(t, "{}\n"+`{"version":1,"resources":{"coins":{"amount":42}},"buildings":[{"id":"coin_mine","count":3}],"upgrades":[],"achievements":[],"features":[],"workers":[],"statistics":{}}`)
	s, err := Decode(blob)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.Resources[game.Coins].Amount != 42 || len(s.Buildings) != 1 || s.Buildings[0].Count != 3 {
		t.Fatalf("unexpected save %+v", s)
	}
}

func TestDecodeDefaultsMissingFields(t *testing.T) {
	blob := compress(t, "{}\n"+`{"version":1,"workers":[{"id":"miner","xp":5}],"some_future_field":true}`)
	s, err := Decode(blob)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	g, err := game.NewDefault()
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	if err := g.Restore(s); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	w := g.Workers()[0]
	if w.ID != "miner" || w.Level != 1 || w.XP != 5 {
		t.Fatalf("worker without level not defaulted: %+v", w)
	}
	if g.Coins() != 0 || len(g.Features()) != 6 || g.Statistics().TotalClicks != 0 {
		t.Fatalf("missing sections not defaulted")
	}
}

func FuzzDecode(f *testing.F) {
	g, err := game.NewDefault()
	if err != nil {
		f.Fatalf("NewDefault: %v", err)
	}
	blob, err := Encode(g.Export())
	if err != nil {
		f.Fatalf("Encode: %v", err)
	}
	f.Add(blob)
	f.Add([]byte{})
	f.Add([]byte("{}\n{}"))

	f.Fuzz(func(t *testing.T, data []byte) {
		s, err := Decode(data)
		if err != nil {
			return
		}
		fresh, err := game.NewDefault()
		if err != nil {
			t.Fatalf("NewDefault: %v", err)
		}
		// A save that passes validation must restore or fail cleanly.
		_ = fresh.Restore(s)
	})
}
