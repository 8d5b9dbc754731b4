/*
Package api
File: handlers.go
Description:
    Contains the HTTP handlers for the REST API.
    These functions decode the JSON request, call exactly one engine
    operation, and reply with JSON.

    Key Responsibilities:
    - Input Validation (Is the JSON valid?)
    - Mapping game errors onto status codes (404 unknown, 402 too poor, ...)
    - Returning the fresh resource view after every action
*/

package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/everforgeworks/idleforge/internal/game"
	"github.com/everforgeworks/idleforge/internal/persistence/snapshot"
)

// Backend is the part of engine.Engine the handlers call.
type Backend interface {
	Click()
	TryBuyBuilding(index int) error
	TryBuyUpgrade(index int) error
	TryCraft(recipeID string) error
	TryAssignWorker(index int, buildingID string) error
	TryUnlockFeature(id string) error
	CheckAchievement(id string) bool
	CheckAllAchievements()

	Resources() game.ResourceView
	Statistics() game.Statistics
	Achievements() []game.Achievement
	Features() []game.Feature
	Workers() []game.Worker
	Recipes() []game.Recipe
	Buildings() []game.Building
	Upgrades() []game.Upgrade

	Save() bool
	Load() bool
	Reset()
	Export() ([]byte, error)
	Import(blob []byte) bool
}

// Request DTOs

type IndexRequest struct {
	Index int `json:"index"`
}

type CraftRequest struct {
	RecipeID string `json:"recipe_id"`
}

type AssignRequest struct {
	WorkerIndex int    `json:"worker_index"`
	BuildingID  string `json:"building_id"` // Empty unassigns
}

type IDRequest struct {
	ID string `json:"id"`
}

// ActionResponse is the reply to every state-changing request.
type ActionResponse struct {
	OK    bool              `json:"ok"`
	Error string            `json:"error,omitempty"`
	State game.ResourceView `json:"state"`
}

type CheckResponse struct {
	ID       string `json:"id"`
	Unlocked bool   `json:"unlocked"`
}

// Server binds the handlers to one backend.
type Server struct {
	backend Backend
	hub     *Hub
}

func NewServer(backend Backend, hub *Hub) *Server {
	return &Server{backend: backend, hub: hub}
}

// Routes registers every endpoint on a new mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Information Endpoints
	mux.HandleFunc("GET /api/state", s.HandleGetState)
	mux.HandleFunc("GET /api/statistics", s.HandleGetStatistics)
	mux.HandleFunc("GET /api/achievements", s.HandleGetAchievements)
	mux.HandleFunc("GET /api/unlocks", s.HandleGetUnlocks)
	mux.HandleFunc("GET /api/workers", s.HandleGetWorkers)
	mux.HandleFunc("GET /api/recipes", s.HandleGetRecipes)
	mux.HandleFunc("GET /api/buildings", s.HandleGetBuildings)
	mux.HandleFunc("GET /api/upgrades", s.HandleGetUpgrades)
	mux.HandleFunc("GET /api/export", s.HandleExport)

	// Action Endpoints
	mux.HandleFunc("POST /api/click", s.HandleClick)
	mux.HandleFunc("POST /api/buildings/buy", s.HandleBuyBuilding)
	mux.HandleFunc("POST /api/upgrades/buy", s.HandleBuyUpgrade)
	mux.HandleFunc("POST /api/craft", s.HandleCraft)
	mux.HandleFunc("POST /api/workers/assign", s.HandleAssignWorker)
	mux.HandleFunc("POST /api/unlocks/unlock", s.HandleUnlockFeature)
	mux.HandleFunc("POST /api/achievements/check", s.HandleCheckAchievement)
	mux.HandleFunc("POST /api/save", s.HandleSave)
	mux.HandleFunc("POST /api/load", s.HandleLoad)
	mux.HandleFunc("POST /api/reset", s.HandleReset)
	mux.HandleFunc("POST /api/import", s.HandleImport)

	if s.hub != nil {
		mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
			ServeWs(s.hub, w, r)
		})
	}
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps a game error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, game.ErrInvalidReference):
		return http.StatusNotFound
	case errors.Is(err, game.ErrInsufficientResources):
		return http.StatusPaymentRequired
	case errors.Is(err, game.ErrLimitReached):
		return http.StatusConflict
	case errors.Is(err, game.ErrLocked), errors.Is(err, game.ErrRequirementUnmet):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// reply answers an action with its outcome and the resource view.
func (s *Server) reply(w http.ResponseWriter, err error) {
	resp := ActionResponse{OK: err == nil, State: s.backend.Resources()}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, statusFor(err), resp)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(v); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

// ---- Information ----

func (s *Server) HandleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.Resources())
}

func (s *Server) HandleGetStatistics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.Statistics())
}

func (s *Server) HandleGetAchievements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.Achievements())
}

func (s *Server) HandleGetUnlocks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.Features())
}

func (s *Server) HandleGetWorkers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.Workers())
}

func (s *Server) HandleGetRecipes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.Recipes())
}

func (s *Server) HandleGetBuildings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.Buildings())
}

func (s *Server) HandleGetUpgrades(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.Upgrades())
}

// HandleExport streams the encoded save as a download.
func (s *Server) HandleExport(w http.ResponseWriter, r *http.Request) {
	blob, err := s.backend.Export()
	if err != nil {
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="idleforge.save"`)
	w.Write(blob)
}

// ---- Actions ----

func (s *Server) HandleClick(w http.ResponseWriter, r *http.Request) {
	s.backend.Click()
	s.reply(w, nil)
}

func (s *Server) HandleBuyBuilding(w http.ResponseWriter, r *http.Request) {
	var req IndexRequest
	if !decode(w, r, &req) {
		return
	}
	s.reply(w, s.backend.TryBuyBuilding(req.Index))
}

func (s *Server) HandleBuyUpgrade(w http.ResponseWriter, r *http.Request) {
	var req IndexRequest
	if !decode(w, r, &req) {
		return
	}
	s.reply(w, s.backend.TryBuyUpgrade(req.Index))
}

func (s *Server) HandleCraft(w http.ResponseWriter, r *http.Request) {
	var req CraftRequest
	if !decode(w, r, &req) {
		return
	}
	s.reply(w, s.backend.TryCraft(req.RecipeID))
}

func (s *Server) HandleAssignWorker(w http.ResponseWriter, r *http.Request) {
	var req AssignRequest
	if !decode(w, r, &req) {
		return
	}
	s.reply(w, s.backend.TryAssignWorker(req.WorkerIndex, req.BuildingID))
}

func (s *Server) HandleUnlockFeature(w http.ResponseWriter, r *http.Request) {
	var req IDRequest
	if !decode(w, r, &req) {
		return
	}
	s.reply(w, s.backend.TryUnlockFeature(req.ID))
}

// HandleCheckAchievement checks one achievement, or all of them when no ID is given.
func (s *Server) HandleCheckAchievement(w http.ResponseWriter, r *http.Request) {
	var req IDRequest
	if !decode(w, r, &req) {
		return
	}
	if req.ID == "" {
		s.backend.CheckAllAchievements()
		writeJSON(w, http.StatusOK, s.backend.Achievements())
		return
	}
	writeJSON(w, http.StatusOK, CheckResponse{ID: req.ID, Unlocked: s.backend.CheckAchievement(req.ID)})
}

func (s *Server) HandleSave(w http.ResponseWriter, r *http.Request) {
	if !s.backend.Save() {
		writeJSON(w, http.StatusInternalServerError, ActionResponse{Error: "save failed", State: s.backend.Resources()})
		return
	}
	s.reply(w, nil)
}

func (s *Server) HandleLoad(w http.ResponseWriter, r *http.Request) {
	if !s.backend.Load() {
		writeJSON(w, http.StatusNotFound, ActionResponse{Error: "no usable save", State: s.backend.Resources()})
		return
	}
	s.reply(w, nil)
}

func (s *Server) HandleReset(w http.ResponseWriter, r *http.Request) {
	s.backend.Reset()
	s.reply(w, nil)
}

// HandleImport takes the raw blob produced by /api/export.
func (s *Server) HandleImport(w http.ResponseWriter, r *http.Request) {
	blob, err := io.ReadAll(http.MaxBytesReader(w, r.Body, snapshot.MaxDecodedSize))
	if err != nil {
		http.Error(w, "Save too large", http.StatusRequestEntityTooLarge)
		return
	}
	if !s.backend.Import(blob) {
		writeJSON(w, http.StatusBadRequest, ActionResponse{Error: "invalid save", State: s.backend.Resources()})
		return
	}
	s.reply(w, nil)
}
