package game

// DefaultPlayers is the number of seats at a simulated table.
const DefaultPlayers = 5

// Table is one simulated blackjack table. Every seat plays the same policy
// and bets with the same betting strategy against a shared deck.
type Table struct {
	Deck    *Deck
	Players int
	Policy  Policy
	Betting BettingStrategy
}

// Seat is the result of one player's hand in a round.
type Seat struct {
	Hand     Hand    `json:"hand"`
	Outcome  Outcome `json:"outcome"`
	Doubled  bool    `json:"doubled"`
	Result   Result  `json:"result"`
	Staked   int64   `json:"staked"`
	Returned int64   `json:"returned"`
}

// Round is the full record of one dealt round.
type Round struct {
	Bet           int64   `json:"bet"`
	DealerVisible Rank    `json:"dealerVisible"`
	DealerHand    Hand    `json:"dealerHand"`
	Dealer        Outcome `json:"dealer"`
	Seats         []Seat  `json:"seats"`
}

// PlayRound deals and resolves one round and records every seat in stats.
func (t *Table) PlayRound(stats *Stats) Round {
	// The bet is sized before any card of the round is seen.
	bet := t.Betting(t.Deck.Count())

	hands := make([]Hand, t.Players)
	for i := range hands {
		hands[i] = make(Hand, 0, 3)
	}
	dealer := make(Hand, 0, 3)

	// Deal two cards to each player, then the dealer, twice over
	for pass := 0; pass < 2; pass++ {
		for i := range hands {
			t.Deck.Deal(&hands[i])
		}
		t.Deck.Deal(&dealer)
	}
	visible := dealer[0]

	round := Round{
		Bet:           bet,
		DealerVisible: visible,
		Seats:         make([]Seat, 0, t.Players),
	}
	round.Dealer = PlayDealerTurn(t.Deck, &dealer)
	round.DealerHand = dealer

	for i := range hands {
		outcome, doubled := PlayTurn(visible, t.Deck, &hands[i], t.Policy)
		result, staked, returned := Settle(outcome, round.Dealer, bet, doubled)
		if stats != nil {
			stats.Record(outcome, doubled, result, staked, returned)
		}
		round.Seats = append(round.Seats, Seat{
			Hand:     hands[i],
			Outcome:  outcome,
			Doubled:  doubled,
			Result:   result,
			Staked:   staked,
			Returned: returned,
		})
	}

	if stats != nil {
		incr(&stats.Rounds)
		stats.Reshuffles = t.Deck.Reshuffles()
	}
	return round
}

// Settle compares a player's outcome with the dealer's and returns the
// result with the amounts staked and paid back. A blackjack always pays
// one and a half times the stake, even against a dealer blackjack.
// Negative bets and amounts that do not fit in an int64 panic.
func Settle(player, dealer Outcome, bet int64, doubled bool) (Result, int64, int64) {
	stake := checkedMul(bet, 2)
	if doubled {
		stake = checkedMul(stake, 2)
	}

	switch player.Kind {
	case Blackjack:
		// stake is always even, so this is exact
		return Win, stake, checkedAdd(stake, stake/2)
	case Bust:
		return Loss, stake, 0
	}

	switch dealer.Kind {
	case Bust:
		return Win, stake, checkedMul(stake, 2)
	case Blackjack:
		return Loss, stake, 0
	}

	switch {
	case player.Value > dealer.Value:
		return Win, stake, checkedMul(stake, 2)
	case player.Value == dealer.Value:
		return Draw, stake, stake
	default:
		return Loss, stake, 0
	}
}

// PlayGame plays rounds rounds at the table and returns the totals.
func PlayGame(t *Table, rounds int) Stats {
	var stats Stats
	for i := 0; i < rounds; i++ {
		t.PlayRound(&stats)
	}
	return stats
}
