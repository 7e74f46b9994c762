package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayRoundDeterministic(t *testing.T) {
	// Deal order: player, dealer, player, dealer, then player hits
	deck := stacked(t, Ten, Ten, Nine, Seven, Two)
	table := &Table{Deck: deck, Players: 1, Policy: ThresholdStrategy(19), Betting: Flat(1)}

	var stats Stats
	round := table.PlayRound(&stats)

	assert.Equal(t, Ten, round.DealerVisible)
	assert.Equal(t, Hand{Ten, Seven}, round.DealerHand)
	assert.Equal(t, Outcome{Kind: Standing, Value: 17}, round.Dealer)
	require.Len(t, round.Seats, 1)

	seat := round.Seats[0]
	assert.Equal(t, Hand{Ten, Nine, Two}, seat.Hand)
	assert.Equal(t, Outcome{Kind: Blackjack, Value: 21}, seat.Outcome)
	assert.Equal(t, Win, seat.Result)
	assert.Equal(t, int64(2), seat.Staked)
	assert.Equal(t, int64(3), seat.Returned)

	assert.Equal(t, uint64(1), stats.Rounds)
	assert.Equal(t, uint64(1), stats.Hands)
	assert.Equal(t, uint64(1), stats.Wins)
	assert.Equal(t, uint64(1), stats.Blackjacks)
	assert.Equal(t, int64(1), stats.Profit())
}

func TestPlayRoundSeatsShareDeck(t *testing.T) {
	// p1 p2 d p1 p2 d, dealer stands on 18, p1 hits Five, p2 hits King
	deck := stacked(t, Ten, Nine, Ten, Three, Five, Eight, Five, King)
	table := &Table{Deck: deck, Players: 2, Policy: ThresholdStrategy(16), Betting: Flat(2)}

	var stats Stats
	round := table.PlayRound(&stats)

	assert.Equal(t, Outcome{Kind: Standing, Value: 18}, round.Dealer)
	require.Len(t, round.Seats, 2)
	assert.Equal(t, Hand{Ten, Three, Five}, round.Seats[0].Hand)
	assert.Equal(t, Outcome{Kind: Standing, Value: 18}, round.Seats[0].Outcome)
	assert.Equal(t, Draw, round.Seats[0].Result)
	assert.Equal(t, int64(4), round.Seats[0].Returned)

	assert.Equal(t, Hand{Nine, Five, King}, round.Seats[1].Hand)
	assert.Equal(t, Bust, round.Seats[1].Outcome.Kind)
	assert.Equal(t, Loss, round.Seats[1].Result)

	assert.Equal(t, uint64(1), stats.Draws)
	assert.Equal(t, uint64(1), stats.Losses)
	assert.Equal(t, int64(8), stats.Staked)
	assert.Equal(t, int64(4), stats.Returned)
}

func TestPlayRoundBetsFromCountBeforeDeal(t *testing.T) {
	deck := stacked(t, Two, Three, Four, Five, Nine, Eight)
	table := &Table{Deck: deck, Players: 1, Policy: ThresholdStrategy(11), Betting: CardCountingAggressive}

	// Count is +4 after the first round's small cards
	first := table.PlayRound(nil)
	assert.Equal(t, int64(0), first.Bet)
	assert.Equal(t, 4, deck.Count())

	second := table.PlayRound(nil)
	assert.Equal(t, int64(4), second.Bet)
}

func TestSettle(t *testing.T) {
	bj := Outcome{Kind: Blackjack, Value: 21}
	bust := Outcome{Kind: Bust, Value: 24}
	stand := func(v int) Outcome { return Outcome{Kind: Standing, Value: v} }

	cases := []struct {
		name             string
		player, dealer   Outcome
		doubled          bool
		result           Result
		staked, returned int64
	}{
		{"blackjack vs standing", bj, stand(17), false, Win, 2, 3},
		{"blackjack vs blackjack", bj, bj, false, Win, 2, 3},
		{"blackjack doubled", bj, bust, true, Win, 4, 6},
		{"bust vs bust", bust, bust, false, Loss, 2, 0},
		{"bust vs standing", bust, stand(18), true, Loss, 4, 0},
		{"standing vs bust", stand(12), bust, false, Win, 2, 4},
		{"standing vs blackjack", stand(20), bj, false, Loss, 2, 0},
		{"higher", stand(19), stand(18), false, Win, 2, 4},
		{"higher doubled", stand(19), stand(18), true, Win, 4, 8},
		{"push", stand(18), stand(18), false, Draw, 2, 2},
		{"lower", stand(17), stand(20), false, Loss, 2, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result, staked, returned := Settle(c.player, c.dealer, 1, c.doubled)
			assert.Equal(t, c.result, result)
			assert.Equal(t, c.staked, staked)
			assert.Equal(t, c.returned, returned)
		})
	}

	result, staked, returned := Settle(bj, stand(17), 0, false)
	assert.Equal(t, Win, result)
	assert.Zero(t, staked)
	assert.Zero(t, returned)
}

func TestPlayGame(t *testing.T) {
	deck, err := NewDeck(DefaultCopies, seeded())
	require.NoError(t, err)
	table := &Table{Deck: deck, Players: DefaultPlayers, Policy: BasicStrategy, Betting: Flat(1)}

	stats := PlayGame(table, 2000)
	assert.Equal(t, uint64(2000), stats.Rounds)
	assert.Equal(t, uint64(2000*DefaultPlayers), stats.Hands)
	assert.Equal(t, stats.Hands, stats.Wins+stats.Draws+stats.Losses)
	assert.Greater(t, stats.Reshuffles, 0)
	assert.Greater(t, stats.DoubleDowns, uint64(0))
	assert.GreaterOrEqual(t, stats.Staked, int64(2*stats.Hands))
	assert.InDelta(t, 1.0, stats.ReturnRatio(), 0.3)
}

func TestStatsOverflowPanics(t *testing.T) {
	stats := Stats{Hands: math.MaxUint64}
	assert.Panics(t, func() {
		stats.Record(Outcome{Kind: Standing, Value: 18}, false, Win, 2, 4)
	})

	stats = Stats{Returned: math.MaxInt64 - 1}
	assert.Panics(t, func() {
		stats.Record(Outcome{Kind: Standing, Value: 18}, false, Win, 2, 4)
	})
}

func TestStatsRatios(t *testing.T) {
	var stats Stats
	assert.Zero(t, stats.ReturnRatio())
	assert.Zero(t, stats.WinRatio())

	stats = Stats{Wins: 3, Losses: 1, Draws: 10, Staked: 100, Returned: 90}
	assert.Equal(t, 0.75, stats.WinRatio())
	assert.Equal(t, 0.9, stats.ReturnRatio())
	assert.Equal(t, int64(-10), stats.Profit())
}

func TestSettleOverflowPanics(t *testing.T) {
	win := Outcome{Kind: Standing, Value: 20}
	lose := Outcome{Kind: Standing, Value: 18}

	assert.Panics(t, func() { Settle(win, lose, 1<<62, false) })
	assert.Panics(t, func() { Settle(win, lose, 1<<61, true) })
	assert.Panics(t, func() { Settle(win, Outcome{Kind: Bust, Value: 23}, 1<<61, false) })
	assert.Panics(t, func() { Settle(Outcome{Kind: Blackjack, Value: 21}, lose, math.MaxInt64/2-1, false) })
	assert.Panics(t, func() { Settle(win, lose, -1, false) })

	assert.NotPanics(t, func() { Settle(lose, win, 1<<60, true) })
}

func TestPlayRoundHugeBetPanics(t *testing.T) {
	deck := stacked(t, Ten, Ten, Nine, Seven)
	table := &Table{Deck: deck, Players: 1, Policy: ThresholdStrategy(16), Betting: Flat(1 << 62)}

	var stats Stats
	assert.Panics(t, func() { table.PlayRound(&stats) })
	assert.Zero(t, stats.Staked)
}

func TestStatsRejectsNegativeAmounts(t *testing.T) {
	var stats Stats
	assert.Panics(t, func() {
		stats.Record(Outcome{Kind: Standing, Value: 18}, false, Loss, -2, 0)
	})
}
