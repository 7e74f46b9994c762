package game

type Rank string

const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "Jack"
	Queen Rank = "Queen"
	King  Rank = "King"
	Ace   Rank = "Ace"
)

// Ranks lists every rank once, in the order a fresh deck is built.
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Value returns the blackjack points of the rank. Aces count 1 here;
// HandValue decides when an ace is worth 11.
func (r Rank) Value() int {
	switch r {
	case Ace:
		return 1
	case Ten, Jack, Queen, King:
		return 10
	case Two:
		return 2
	case Three:
		return 3
	case Four:
		return 4
	case Five:
		return 5
	case Six:
		return 6
	case Seven:
		return 7
	case Eight:
		return 8
	case Nine:
		return 9
	default:
		return 0
	}
}

// Signal returns the Hi-Lo counting contribution of the rank.
func (r Rank) Signal() int {
	switch r {
	case Two, Three, Four, Five, Six:
		return 1
	case Seven, Eight, Nine:
		return 0
	default:
		return -1
	}
}

// RankValue is the function form of Rank.Value.
func RankValue(r Rank) int {
	return r.Value()
}
