package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/everforgeworks/idleforge/internal/engine"
	"github.com/everforgeworks/idleforge/internal/game"
	"github.com/everforgeworks/idleforge/internal/persistence/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *engine.Engine) {
	t.Helper()
	g, err := game.NewDefault()
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	eng := engine.New(g, engine.Options{Store: store.NewMemory(), Slot: "main"})
	srv := httptest.NewServer(NewServer(eng, nil).Routes())
	t.Cleanup(srv.Close)
	return srv, eng
}

func post(t *testing.T, srv *httptest.Server, path, body string) (int, ActionResponse) {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	var out ActionResponse
	json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestClickAndBuy(t *testing.T) {
	srv, _ := newTestServer(t)

	for i := 0; i < 14; i++ {
		if code, out := post(t, srv, "/api/click", ""); code != http.StatusOK || !out.OK {
			t.Fatalf("click %d: status %d %+v", i, code, out)
		}
	}
	code, out := post(t, srv, "/api/buildings/buy", `{"index":0}`)
	if code != http.StatusPaymentRequired || out.OK || out.State.Coins != 14 {
		t.Fatalf("buy with 14 coins: status %d %+v", code, out)
	}

	post(t, srv, "/api/click", "")
	code, out = post(t, srv, "/api/buildings/buy", `{"index":0}`)
	if code != http.StatusOK || !out.OK || out.State.Coins != 0 {
		t.Fatalf("buy with 15 coins: status %d %+v", code, out)
	}
	if out.State.CoinsPerSecond <= 0 {
		t.Fatalf("coin mine did not add production: %+v", out.State)
	}
}

func TestActionStatusCodes(t *testing.T) {
	srv, _ := newTestServer(t)
	cases := []struct {
		path, body string
		want       int
	}{
		{"/api/buildings/buy", `{"index":999}`, http.StatusNotFound},
		{"/api/upgrades/buy", `{"index":-1}`, http.StatusNotFound},
		{"/api/upgrades/buy", `{"index":0}`, http.StatusPaymentRequired},
		{"/api/craft", `{"recipe_id":"nope"}`, http.StatusNotFound},
		{"/api/craft", `{"recipe_id":"wood_to_stone"}`, http.StatusForbidden},
		{"/api/craft", `{"recipe_id":"coins_to_wood"}`, http.StatusPaymentRequired},
		{"/api/workers/assign", `{"worker_index":0,"building_id":"moon_base"}`, http.StatusNotFound},
		{"/api/workers/assign", `{"worker_index":0,"building_id":"coin_mine"}`, http.StatusOK},
		{"/api/unlocks/unlock", `{"id":"prestige_system"}`, http.StatusForbidden},
		{"/api/buildings/buy", `not json`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		code, _ := post(t, srv, tc.path, tc.body)
		if code != tc.want {
			t.Errorf("POST %s %s: status %d, want %d", tc.path, tc.body, code, tc.want)
		}
	}
}

func TestCheckAchievement(t *testing.T) {
	srv, eng := newTestServer(t)
	for i := 0; i < 10; i++ {
		eng.Click()
	}
	resp, err := http.Post(srv.URL+"/api/achievements/check", "application/json", bytes.NewBufferString(`{"id":"click_novice_10"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	var out CheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Unlocked {
		t.Fatalf("click_novice_10 should be unlocked after ten clicks")
	}
}

func TestGetEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, path := range []string{"/api/state", "/api/statistics", "/api/achievements", "/api/unlocks", "/api/workers", "/api/recipes", "/api/buildings", "/api/upgrades"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		var v any
		err = json.NewDecoder(resp.Body).Decode(&v)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK || err != nil {
			t.Fatalf("GET %s: status %d, decode %v", path, resp.StatusCode, err)
		}
	}

	var buildings []game.Building
	resp, _ := http.Get(srv.URL + "/api/buildings")
	json.NewDecoder(resp.Body).Decode(&buildings)
	resp.Body.Close()
	if len(buildings) != 9 || buildings[0].DisplayCost != 15 {
		t.Fatalf("unexpected buildings %+v", buildings)
	}
}

func TestExportImport(t *testing.T) {
	srv, eng := newTestServer(t)
	for i := 0; i < 5; i++ {
		eng.Click()
	}

	resp, err := http.Get(srv.URL + "/api/export")
	if err != nil {
		t.Fatalf("GET export: %v", err)
	}
	blob, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if len(blob) == 0 {
		t.Fatalf("empty export")
	}

	post(t, srv, "/api/reset", "")
	if eng.Statistics().TotalClicks != 0 {
		t.Fatalf("reset did not clear clicks")
	}

	resp, err = http.Post(srv.URL+"/api/import", "application/octet-stream", bytes.NewReader(blob))
	if err != nil {
		t.Fatalf("POST import: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || eng.Statistics().TotalClicks != 5 {
		t.Fatalf("import: status %d clicks %d", resp.StatusCode, eng.Statistics().TotalClicks)
	}

	code, _ := post(t, srv, "/api/import", "garbage")
	if code != http.StatusBadRequest {
		t.Fatalf("garbage import: status %d", code)
	}
}

func TestSaveLoad(t *testing.T) {
	srv, eng := newTestServer(t)
	if code, _ := post(t, srv, "/api/load", ""); code != http.StatusNotFound {
		t.Fatalf("load without save: status %d", code)
	}
	eng.Click()
	if code, out := post(t, srv, "/api/save", ""); code != http.StatusOK || !out.OK {
		t.Fatalf("save: status %d", code)
	}
	eng.Click()
	if code, out := post(t, srv, "/api/load", ""); code != http.StatusOK || out.State.Coins != 1 {
		t.Fatalf("load: status %d %+v", code, out)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/click")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("GET /api/click: status %d", resp.StatusCode)
	}
}
