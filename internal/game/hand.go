package game

const blackjackValue = 21

// Hand holds the ranks dealt to one party, in deal order.
type Hand []Rank

// Value returns the best total of the hand.
func (h Hand) Value() int {
	return HandValue(h)
}

// HandValue computes the total of a hand. Every ace counts 1, and as many
// aces as still fit under 21 are upgraded by 10.
func HandValue(hand []Rank) int {
	sum := 0
	aces := 0
	for _, r := range hand {
		if r == Ace {
			aces++
		}
		sum += r.Value()
	}

	if sum > blackjackValue {
		return sum
	}

	elevens := min((blackjackValue-sum)/10, aces)
	return sum + elevens*10
}
