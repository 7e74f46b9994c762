package game

import (
	"errors"
	"fmt"
)

// BettingStrategy maps the running count to a bet in units. Bets are never
// negative.
type BettingStrategy func(count int) int64

var ErrUnknownBetting = errors.New("unknown betting strategy")

// Flat always bets units.
func Flat(units int64) BettingStrategy {
	return func(int) int64 {
		return units
	}
}

func CardCounting(count int) int64 {
	return int64(max(0, count-1))
}

func CardCountingAggressive(count int) int64 {
	return int64(max(0, count))
}

func CardCountingPassive(count int) int64 {
	return int64(max(0, count-2))
}

// BettingNames lists the names accepted by LookupBetting.
var BettingNames = []string{"flat", "counting", "counting-aggressive", "counting-passive"}

// LookupBetting resolves a betting strategy by name. flatUnits is the
// stake used by "flat".
func LookupBetting(name string, flatUnits int64) (BettingStrategy, error) {
	switch name {
	case "flat":
		return Flat(flatUnits), nil
	case "counting":
		return CardCounting, nil
	case "counting-aggressive":
		return CardCountingAggressive, nil
	case "counting-passive":
		return CardCountingPassive, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBetting, name)
	}
}
