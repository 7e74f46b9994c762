// Package config loads simulator settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by the simulate and server commands.
type Config struct {
	Rounds     int    `env:"SIM_ROUNDS" envDefault:"1000000"`
	Players    int    `env:"SIM_PLAYERS" envDefault:"5"`
	DeckCopies int    `env:"SIM_DECK_COPIES" envDefault:"4"`
	Seed       int64  `env:"SIM_SEED" envDefault:"0"`
	FlatBet    int64  `env:"SIM_FLAT_BET" envDefault:"1"`
	MaxRounds  int    `env:"SIM_MAX_ROUNDS" envDefault:"5000000"`
	MaxPlayers int    `env:"SIM_MAX_PLAYERS" envDefault:"16"`
	MaxCopies  int    `env:"SIM_MAX_DECK_COPIES" envDefault:"16"`
	Store      string `env:"SIM_STORE" envDefault:"memory"`
	SQLiteDSN  string `env:"SIM_SQLITE_DSN" envDefault:"file:simulations?mode=memory&cache=shared"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a Config and checks it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings a simulation cannot run with.
func (c Config) Validate() error {
	if c.Rounds < 0 {
		return fmt.Errorf("SIM_ROUNDS must not be negative, got %d", c.Rounds)
	}
	if c.Players <= 0 {
		return fmt.Errorf("SIM_PLAYERS must be positive, got %d", c.Players)
	}
	if c.DeckCopies <= 0 {
		return fmt.Errorf("SIM_DECK_COPIES must be positive, got %d", c.DeckCopies)
	}
	if c.FlatBet < 0 {
		return fmt.Errorf("SIM_FLAT_BET must not be negative, got %d", c.FlatBet)
	}
	if c.MaxRounds <= 0 {
		return fmt.Errorf("SIM_MAX_ROUNDS must be positive, got %d", c.MaxRounds)
	}
	if c.MaxPlayers <= 0 {
		return fmt.Errorf("SIM_MAX_PLAYERS must be positive, got %d", c.MaxPlayers)
	}
	if c.MaxCopies <= 0 {
		return fmt.Errorf("SIM_MAX_DECK_COPIES must be positive, got %d", c.MaxCopies)
	}
	switch c.Store {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("SIM_STORE must be memory or sqlite, got %q", c.Store)
	}
	return nil
}
