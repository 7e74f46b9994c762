package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/calvinwijaya/blackjack-sim/internal/config"
	"github.com/calvinwijaya/blackjack-sim/internal/db"
	"github.com/calvinwijaya/blackjack-sim/internal/game"
	"github.com/calvinwijaya/blackjack-sim/internal/report"
	"github.com/calvinwijaya/blackjack-sim/internal/sim"
	"github.com/calvinwijaya/blackjack-sim/internal/store"
	"github.com/gorilla/mux"
	"golang.org/x/text/language"
)

// maxFlatBet keeps every stake and payout well inside an int64.
const maxFlatBet = 1 << 20

// Limits bounds the work a single request may ask for. Rounds is the
// total over every scenario of the request.
type Limits struct {
	Rounds     int
	Players    int
	DeckCopies int
}

// LimitsFromConfig copies the request limits out of cfg.
func LimitsFromConfig(cfg config.Config) Limits {
	return Limits{Rounds: cfg.MaxRounds, Players: cfg.MaxPlayers, DeckCopies: cfg.MaxCopies}
}

// Handlers contains all the API handlers
type Handlers struct {
	store    store.Store
	database *db.Database
	hub      *Hub
	defaults sim.Options
	limits   Limits
}

// NewHandlers creates a new instance of Handlers. database and hub may be
// nil. Requests fill missing options from defaults and are checked
// against limits.
func NewHandlers(store store.Store, database *db.Database, hub *Hub, defaults sim.Options, limits Limits) *Handlers {
	return &Handlers{
		store:    store,
		database: database,
		hub:      hub,
		defaults: defaults,
		limits:   limits,
	}
}

// RegisterRoutes registers all API routes
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	// Simulation endpoints
	r.HandleFunc("/api/simulations", h.NewSimulation).Methods("POST")
	r.HandleFunc("/api/simulations/sweep", h.NewSweep).Methods("POST")
	r.HandleFunc("/api/simulations", h.ListSimulations).Methods("GET")
	r.HandleFunc("/api/simulations/{id}", h.GetSimulation).Methods("GET")
	r.HandleFunc("/api/simulations/{id}/report", h.GetReport).Methods("GET")
	r.HandleFunc("/api/simulations/{id}", h.DeleteSimulation).Methods("DELETE")

	// Strategy endpoints
	r.HandleFunc("/api/strategies", h.ListStrategies).Methods("GET")
	r.HandleFunc("/api/policies/{name}/stats", h.GetPolicyStats).Methods("GET")

	// WebSocket endpoint
	if h.hub != nil {
		r.HandleFunc("/ws", h.hub.WebSocketHandler)
	}
}

// response helper function to send JSON responses
func response(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// error response helper function
func errorResponse(w http.ResponseWriter, status int, message string) {
	response(w, status, map[string]string{"error": message})
}

type simulationRequest struct {
	Policy     string `json:"policy"`
	Threshold  int    `json:"threshold"`
	Betting    string `json:"betting"`
	Players    int    `json:"players"`
	Rounds     int    `json:"rounds"`
	DeckCopies int    `json:"deckCopies"`
	Seed       int64  `json:"seed"`
	FlatBet    int64  `json:"flatBet"`
}

// options fills unset request fields from the configured defaults
func (h *Handlers) options(req simulationRequest) sim.Options {
	opts := h.defaults
	if req.Players > 0 {
		opts.Players = req.Players
	}
	if req.Rounds > 0 {
		opts.Rounds = req.Rounds
	}
	if req.DeckCopies > 0 {
		opts.DeckCopies = req.DeckCopies
	}
	if req.Seed != 0 {
		opts.Seed = req.Seed
	}
	if req.FlatBet > 0 {
		opts.FlatBet = req.FlatBet
	}
	return opts
}

// checkLimits returns why opts exceed the limits when run once per
// scenario, or an empty string.
func (h *Handlers) checkLimits(opts sim.Options, scenarios int) string {
	switch {
	case opts.Rounds > h.limits.Rounds/scenarios:
		return "Too many rounds requested"
	case opts.Players > h.limits.Players:
		return "Too many players requested"
	case opts.DeckCopies > h.limits.DeckCopies:
		return "Too many deck copies requested"
	case opts.FlatBet > maxFlatBet:
		return "Flat bet too large"
	}
	return ""
}

// finish saves a run and announces it
func (h *Handlers) finish(run *sim.Run) error {
	if err := h.store.SaveRun(run); err != nil {
		return err
	}
	log.Printf("Run %s (%s) finished in %s", run.ID, run.Scenario.Label(), run.Duration)

	if h.hub != nil {
		h.hub.BroadcastRun(run)
	}
	return nil
}

func simulationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrUnknownStrategy),
		errors.Is(err, game.ErrUnknownBetting),
		errors.Is(err, sim.ErrInvalidOptions):
		errorResponse(w, http.StatusBadRequest, err.Error())
	default:
		errorResponse(w, http.StatusInternalServerError, "Simulation failed")
	}
}

// NewSimulation runs one scenario and returns the finished run
func (h *Handlers) NewSimulation(w http.ResponseWriter, r *http.Request) {
	var req simulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Policy == "" {
		req.Policy = "basic"
	}
	if req.Betting == "" {
		req.Betting = "flat"
	}

	opts := h.options(req)
	if msg := h.checkLimits(opts, 1); msg != "" {
		errorResponse(w, http.StatusBadRequest, msg)
		return
	}

	scenario := sim.Scenario{Policy: req.Policy, Threshold: req.Threshold, Betting: req.Betting}
	run, err := sim.Execute(scenario, opts)
	if err != nil {
		simulationError(w, err)
		return
	}

	if err := h.finish(run); err != nil {
		log.Printf("Error saving run: %v", err)
		errorResponse(w, http.StatusInternalServerError, "Failed to save run")
		return
	}

	response(w, http.StatusCreated, run)
}

// NewSweep runs the default scenario sweep
func (h *Handlers) NewSweep(w http.ResponseWriter, r *http.Request) {
	var req simulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	opts := h.options(req)
	scenarios := sim.DefaultScenarios()
	if msg := h.checkLimits(opts, len(scenarios)); msg != "" {
		errorResponse(w, http.StatusBadRequest, msg)
		return
	}

	var saveErr error
	runs, err := sim.Sweep(scenarios, opts, func(run *sim.Run) {
		if saveErr == nil {
			saveErr = h.finish(run)
		}
	})
	if err != nil {
		simulationError(w, err)
		return
	}
	if saveErr != nil {
		log.Printf("Error saving run: %v", saveErr)
		errorResponse(w, http.StatusInternalServerError, "Failed to save run")
		return
	}

	response(w, http.StatusCreated, runs)
}

// ListSimulations returns every stored run
func (h *Handlers) ListSimulations(w http.ResponseWriter, r *http.Request) {
	runs, err := h.store.GetAllRuns()
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Error retrieving runs")
		return
	}

	response(w, http.StatusOK, runs)
}

// GetSimulation returns one run
func (h *Handlers) GetSimulation(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookup(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	response(w, http.StatusOK, run)
}

// GetReport returns the plain text report block of one run
func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookup(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := report.NewWriter(w, language.English).Run(run); err != nil {
		log.Printf("Error writing report: %v", err)
	}
}

// DeleteSimulation removes a run
func (h *Handlers) DeleteSimulation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.store.DeleteRun(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			errorResponse(w, http.StatusNotFound, "Run not found")
			return
		}
		errorResponse(w, http.StatusInternalServerError, "Failed to delete run")
		return
	}

	response(w, http.StatusOK, map[string]string{
		"success": "true",
		"message": "Run deleted",
	})
}

// ListStrategies returns the names accepted by the simulation endpoints
func (h *Handlers) ListStrategies(w http.ResponseWriter, r *http.Request) {
	response(w, http.StatusOK, map[string][]string{
		"policies": game.PolicyNames,
		"betting":  game.BettingNames,
	})
}

// GetPolicyStats returns totals over every stored run of a policy
func (h *Handlers) GetPolicyStats(w http.ResponseWriter, r *http.Request) {
	if h.database == nil {
		errorResponse(w, http.StatusInternalServerError, "Database not available")
		return
	}

	stats, err := h.database.GetPolicyStats(mux.Vars(r)["name"])
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Error retrieving policy statistics")
		return
	}

	response(w, http.StatusOK, stats)
}

func (h *Handlers) lookup(w http.ResponseWriter, id string) (*sim.Run, bool) {
	run, err := h.store.GetRun(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			errorResponse(w, http.StatusNotFound, "Run not found")
		} else {
			errorResponse(w, http.StatusInternalServerError, "Error retrieving run")
		}
		return nil, false
	}
	return run, true
}
