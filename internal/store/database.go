package store

import (
	"errors"

	"github.com/calvinwijaya/blackjack-sim/internal/db"
	"github.com/calvinwijaya/blackjack-sim/internal/sim"
)

// DatabaseStore keeps runs in a SQLite database
type DatabaseStore struct {
	db *db.Database
}

// NewDatabaseStore creates a new database store
func NewDatabaseStore(database *db.Database) *DatabaseStore {
	return &DatabaseStore{
		db: database,
	}
}

func (s *DatabaseStore) SaveRun(r *sim.Run) error {
	return s.db.SaveRun(r)
}

func (s *DatabaseStore) GetRun(id string) (*sim.Run, error) {
	r, err := s.db.GetRun(id)
	if errors.Is(err, db.ErrRunNotFound) {
		return nil, ErrNotFound
	}
	return r, err
}

func (s *DatabaseStore) GetAllRuns() ([]*sim.Run, error) {
	return s.db.GetAllRuns()
}

func (s *DatabaseStore) DeleteRun(id string) error {
	err := s.db.DeleteRun(id)
	if errors.Is(err, db.ErrRunNotFound) {
		return ErrNotFound
	}
	return err
}
