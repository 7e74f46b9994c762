package store

import (
	"errors"

	"github.com/calvinwijaya/blackjack-sim/internal/sim"
)

var ErrNotFound = errors.New("run not found")

// Store defines the interface for simulation run storage
type Store interface {
	// SaveRun saves a finished run
	SaveRun(r *sim.Run) error

	// GetRun retrieves a run by ID
	GetRun(id string) (*sim.Run, error)

	// GetAllRuns returns every run, most recent first
	GetAllRuns() ([]*sim.Run, error)

	// DeleteRun removes a run
	DeleteRun(id string) error
}
