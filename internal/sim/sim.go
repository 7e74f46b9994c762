// Package sim runs named strategy scenarios through the game engine and
// records the results as runs.
package sim

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/calvinwijaya/blackjack-sim/internal/config"
	"github.com/calvinwijaya/blackjack-sim/internal/game"
	"github.com/google/uuid"
)

var ErrInvalidOptions = errors.New("invalid simulation options")

// Scenario names one playing strategy and one betting strategy.
type Scenario struct {
	Policy    string `json:"policy"`
	Threshold int    `json:"threshold,omitempty"`
	Betting   string `json:"betting"`
}

// Label is the report header for the scenario.
func (s Scenario) Label() string {
	switch s.Policy {
	case "threshold", "blind":
		return fmt.Sprintf("%s %d / %s", s.Policy, s.Threshold, s.Betting)
	default:
		return fmt.Sprintf("%s / %s", s.Policy, s.Betting)
	}
}

// Options sizes a run.
type Options struct {
	Players    int   `json:"players"`
	Rounds     int   `json:"rounds"`
	DeckCopies int   `json:"deckCopies"`
	Seed       int64 `json:"seed"`
	FlatBet    int64 `json:"flatBet"`
}

// OptionsFromConfig copies the run sizing out of cfg.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Players:    cfg.Players,
		Rounds:     cfg.Rounds,
		DeckCopies: cfg.DeckCopies,
		Seed:       cfg.Seed,
		FlatBet:    cfg.FlatBet,
	}
}

// Run is a finished simulation.
type Run struct {
	ID          string        `json:"id"`
	Scenario    Scenario      `json:"scenario"`
	Options     Options       `json:"options"`
	Stats       game.Stats    `json:"stats"`
	StartedAt   time.Time     `json:"startedAt"`
	CompletedAt time.Time     `json:"completedAt"`
	Duration    time.Duration `json:"duration"`
}

// DefaultScenarios is the sweep the simulate command prints: the plain
// threshold strategy for every threshold, the blind strategy around the
// dealer's own threshold, and basic strategy with each betting strategy.
func DefaultScenarios() []Scenario {
	var scenarios []Scenario
	for threshold := 2; threshold <= 20; threshold++ {
		scenarios = append(scenarios, Scenario{Policy: "threshold", Threshold: threshold, Betting: "flat"})
	}
	for threshold := 12; threshold <= 17; threshold++ {
		scenarios = append(scenarios, Scenario{Policy: "blind", Threshold: threshold, Betting: "flat"})
	}
	for _, betting := range game.BettingNames {
		scenarios = append(scenarios, Scenario{Policy: "basic", Betting: betting})
	}
	return scenarios
}

// Execute plays one scenario to completion. A zero seed draws one from
// the clock; the seed actually used is stored on the run.
func Execute(sc Scenario, opts Options) (*Run, error) {
	if opts.Players <= 0 || opts.Rounds < 0 {
		return nil, fmt.Errorf("%w: players=%d rounds=%d", ErrInvalidOptions, opts.Players, opts.Rounds)
	}

	policy, err := game.LookupPolicy(sc.Policy, sc.Threshold)
	if err != nil {
		return nil, err
	}
	betting, err := game.LookupBetting(sc.Betting, opts.FlatBet)
	if err != nil {
		return nil, err
	}

	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	deck, err := game.NewDeck(opts.DeckCopies, rand.New(rand.NewSource(opts.Seed)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	run := &Run{
		ID:        uuid.New().String(),
		Scenario:  sc,
		Options:   opts,
		StartedAt: time.Now(),
	}

	table := &game.Table{
		Deck:    deck,
		Players: opts.Players,
		Policy:  policy,
		Betting: betting,
	}
	run.Stats = game.PlayGame(table, opts.Rounds)

	run.CompletedAt = time.Now()
	run.Duration = run.CompletedAt.Sub(run.StartedAt)
	return run, nil
}

// Sweep executes every scenario in order, handing each run to done as it
// completes. It stops at the first scenario that cannot be set up.
func Sweep(scenarios []Scenario, opts Options, done func(*Run)) ([]*Run, error) {
	runs := make([]*Run, 0, len(scenarios))
	for _, sc := range scenarios {
		run, err := Execute(sc, opts)
		if err != nil {
			return runs, fmt.Errorf("scenario %s: %w", sc.Label(), err)
		}
		runs = append(runs, run)
		if done != nil {
			done(run)
		}
	}
	return runs, nil
}
