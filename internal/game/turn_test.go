package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stacked(t *testing.T, cards ...Rank) *Deck {
	t.Helper()
	d, err := NewStackedDeck(cards, DefaultCopies, seeded())
	require.NoError(t, err)
	return d
}

func TestPlayTurnSettledHands(t *testing.T) {
	never := func(int, Rank) Move {
		t.Fatal("policy must not be asked")
		return Stand
	}

	hand := Hand{Ace, King}
	outcome, doubled := PlayTurn(Ten, stacked(t), &hand, never)
	assert.Equal(t, Outcome{Kind: Blackjack, Value: 21}, outcome)
	assert.False(t, doubled)

	hand = Hand{King, Queen, Five}
	outcome, _ = PlayTurn(Ten, stacked(t), &hand, never)
	assert.Equal(t, Bust, outcome.Kind)
	assert.Equal(t, 25, outcome.Value)
}

func TestPlayTurnHitsUntilStand(t *testing.T) {
	deck := stacked(t, Two, Three, Four)
	hand := Hand{Five, Six}

	outcome, doubled := PlayTurn(Ten, deck, &hand, ThresholdStrategy(15))
	assert.Equal(t, Outcome{Kind: Standing, Value: 16}, outcome)
	assert.False(t, doubled)
	assert.Equal(t, Hand{Five, Six, Two, Three}, hand)
	assert.Equal(t, "standing(16)", outcome.String())
}

func TestPlayTurnBusts(t *testing.T) {
	deck := stacked(t, King)
	hand := Hand{Nine, Five}

	outcome, _ := PlayTurn(Ten, deck, &hand, ThresholdStrategy(20))
	assert.Equal(t, Bust, outcome.Kind)
	assert.Equal(t, "bust", outcome.String())
}

func TestPlayTurnDoubleDownOnFirstAction(t *testing.T) {
	deck := stacked(t, Two, Eight)
	hand := Hand{Five, Four}

	// 9 doubles, 11 asks again and doubles, 19 stands
	outcome, doubled := PlayTurn(Six, deck, &hand, BlindStrategy(16))
	assert.Equal(t, Outcome{Kind: Standing, Value: 19}, outcome)
	assert.True(t, doubled)
}

func TestPlayTurnLateDoubleDownOnlyHits(t *testing.T) {
	deck := stacked(t, Three, Seven)
	hand := Hand{Two, Four}

	// 6 hits, 9 doubles too late, 16 stands
	outcome, doubled := PlayTurn(Six, deck, &hand, BlindStrategy(15))
	assert.Equal(t, Outcome{Kind: Standing, Value: 16}, outcome)
	assert.False(t, doubled)
	assert.Equal(t, Hand{Two, Four, Three, Seven}, hand)
}

func TestPlayDealerTurn(t *testing.T) {
	cases := []struct {
		name  string
		hand  Hand
		deck  []Rank
		want  Outcome
		cards int
	}{
		{"stands on 17", Hand{Ten, Seven}, nil, Outcome{Kind: Standing, Value: 17}, 2},
		{"soft 17 stands", Hand{Ace, Six}, nil, Outcome{Kind: Standing, Value: 17}, 2},
		{"hits 16", Hand{Ten, Six}, []Rank{Two}, Outcome{Kind: Standing, Value: 18}, 3},
		{"hits to 21", Hand{Ten, Six}, []Rank{Five}, Outcome{Kind: Blackjack, Value: 21}, 3},
		{"busts", Hand{Ten, Six}, []Rank{Nine}, Outcome{Kind: Bust, Value: 25}, 3},
		{"natural", Hand{Ace, Queen}, nil, Outcome{Kind: Blackjack, Value: 21}, 2},
		{"hits several", Hand{Two, Three}, []Rank{Four, Two, Six}, Outcome{Kind: Standing, Value: 17}, 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			hand := append(Hand{}, c.hand...)
			outcome := PlayDealerTurn(stacked(t, c.deck...), &hand)
			assert.Equal(t, c.want, outcome)
			assert.Len(t, hand, c.cards)
		})
	}
}
