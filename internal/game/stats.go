package game

import "math"

type Result string

const (
	Win  Result = "win"
	Draw Result = "draw"
	Loss Result = "loss"
)

// Stats accumulates per-hand results and money across rounds. Amounts are
// in bet units. Counters that would overflow abort the run instead of
// wrapping.
type Stats struct {
	Rounds      uint64 `json:"rounds"`
	Hands       uint64 `json:"hands"`
	Wins        uint64 `json:"wins"`
	Draws       uint64 `json:"draws"`
	Losses      uint64 `json:"losses"`
	Blackjacks  uint64 `json:"blackjacks"`
	Busts       uint64 `json:"busts"`
	DoubleDowns uint64 `json:"doubleDowns"`
	Staked      int64  `json:"staked"`
	Returned    int64  `json:"returned"`
	Reshuffles  int    `json:"reshuffles"`
}

func incr(n *uint64) {
	if *n == math.MaxUint64 {
		panic("game: stats counter overflow")
	}
	*n++
}

func addAmount(total *int64, amount int64) {
	*total = checkedAdd(*total, amount)
}

// checkedAdd sums two non-negative amounts.
func checkedAdd(a, b int64) int64 {
	if a < 0 || b < 0 {
		panic("game: negative amount")
	}
	if a > math.MaxInt64-b {
		panic("game: amount overflow")
	}
	return a + b
}

// checkedMul multiplies a non-negative amount by a small positive factor.
func checkedMul(a, factor int64) int64 {
	if a < 0 {
		panic("game: negative amount")
	}
	if a > math.MaxInt64/factor {
		panic("game: amount overflow")
	}
	return a * factor
}

// Record adds one settled hand.
func (s *Stats) Record(player Outcome, doubled bool, result Result, staked, returned int64) {
	incr(&s.Hands)
	switch result {
	case Win:
		incr(&s.Wins)
	case Draw:
		incr(&s.Draws)
	case Loss:
		incr(&s.Losses)
	}
	switch player.Kind {
	case Blackjack:
		incr(&s.Blackjacks)
	case Bust:
		incr(&s.Busts)
	}
	if doubled {
		incr(&s.DoubleDowns)
	}
	addAmount(&s.Staked, staked)
	addAmount(&s.Returned, returned)
}

// Profit is what was returned minus what was staked.
func (s Stats) Profit() int64 {
	return s.Returned - s.Staked
}

// ReturnRatio is returned / staked, or 0 when nothing was staked.
func (s Stats) ReturnRatio() float64 {
	if s.Staked == 0 {
		return 0
	}
	return float64(s.Returned) / float64(s.Staked)
}

// WinRatio is wins / (wins + losses); draws are left out.
func (s Stats) WinRatio() float64 {
	decided := s.Wins + s.Losses
	if decided == 0 {
		return 0
	}
	return float64(s.Wins) / float64(decided)
}
