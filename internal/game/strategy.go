package game

import (
	"errors"
	"fmt"
)

type Move string

const (
	Stand      Move = "stand"
	Hit        Move = "hit"
	DoubleDown Move = "doubleDown"
)

// Policy decides the next move from the hand total and the dealer's
// visible card.
type Policy func(value int, dealerVisible Rank) Move

var ErrUnknownStrategy = errors.New("unknown strategy")

// ThresholdStrategy hits until the total exceeds threshold and never
// doubles down.
func ThresholdStrategy(threshold int) Policy {
	return func(value int, _ Rank) Move {
		if value > threshold {
			return Stand
		}
		return Hit
	}
}

// BlindStrategy doubles on 9 to 11, stands above threshold and hits
// otherwise. The dealer's card is ignored.
func BlindStrategy(threshold int) Policy {
	return func(value int, _ Rank) Move {
		switch {
		case value >= 9 && value <= 11:
			return DoubleDown
		case value > threshold:
			return Stand
		default:
			return Hit
		}
	}
}

// BasicStrategy is a reduced basic-strategy table without splits or
// soft-total rules.
func BasicStrategy(value int, dealerVisible Rank) Move {
	dealer := dealerVisible.Value()

	switch {
	case value == 9 && dealer >= 3 && dealer <= 6:
		return DoubleDown
	case value == 10 && dealer >= 2 && dealer <= 9:
		return DoubleDown
	case value == 11:
		return DoubleDown
	case value == 12 && dealer >= 4 && dealer <= 6:
		return Stand
	case value >= 13 && value <= 16 && dealer >= 2 && dealer <= 6:
		return Stand
	case value <= 16:
		return Hit
	default:
		return Stand
	}
}

// PolicyNames lists the names accepted by LookupPolicy.
var PolicyNames = []string{"threshold", "blind", "basic"}

// LookupPolicy resolves a policy by name. The threshold is ignored by
// policies that do not use one.
func LookupPolicy(name string, threshold int) (Policy, error) {
	switch name {
	case "threshold":
		return ThresholdStrategy(threshold), nil
	case "blind":
		return BlindStrategy(threshold), nil
	case "basic":
		return BasicStrategy, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
