package game

import "fmt"

type OutcomeKind string

const (
	Blackjack OutcomeKind = "blackjack" // Hand reached exactly 21
	Standing  OutcomeKind = "standing"  // Hand stopped below 21
	Bust      OutcomeKind = "bust"      // Hand went over 21
)

// dealerStandsAbove is the highest total the dealer still hits on.
const dealerStandsAbove = 16

// Outcome is the final state of a hand after its turn.
type Outcome struct {
	Kind  OutcomeKind `json:"kind"`
	Value int         `json:"value"`
}

func (o Outcome) String() string {
	if o.Kind == Standing {
		return fmt.Sprintf("%s(%d)", o.Kind, o.Value)
	}
	return string(o.Kind)
}

// settled reports the outcome of a hand that no longer needs a decision.
func settled(value int) (Outcome, bool) {
	switch {
	case value == blackjackValue:
		return Outcome{Kind: Blackjack, Value: value}, true
	case value > blackjackValue:
		return Outcome{Kind: Bust, Value: value}, true
	default:
		return Outcome{}, false
	}
}

// PlayTurn draws cards into hand until policy stands or the hand reaches
// or passes 21. Doubling down only counts as the first decision of the
// turn; a later DoubleDown is played as a plain hit.
func PlayTurn(dealerVisible Rank, deck *Deck, hand *Hand, policy Policy) (Outcome, bool) {
	doubled := false
	first := true

	for {
		value := hand.Value()
		if outcome, done := settled(value); done {
			return outcome, doubled
		}

		move := policy(value, dealerVisible)
		if move == Stand {
			return Outcome{Kind: Standing, Value: value}, doubled
		}
		if move == DoubleDown && first {
			doubled = true
		}

		deck.Deal(hand)
		first = false
	}
}

// PlayDealerTurn plays the house rule: hit on 16 or less, stand on 17+.
func PlayDealerTurn(deck *Deck, hand *Hand) Outcome {
	for {
		value := hand.Value()
		if outcome, done := settled(value); done {
			return outcome
		}
		if value > dealerStandsAbove {
			return Outcome{Kind: Standing, Value: value}
		}
		deck.Deal(hand)
	}
}
