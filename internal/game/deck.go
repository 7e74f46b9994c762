package game

import (
	"errors"
	"math/rand"
	"time"
)

// DefaultCopies is the number of 13-rank cycles in a simulation deck.
const DefaultCopies = 4

var ErrInvalidCopies = errors.New("deck needs at least one copy of each rank")

// Deck is a shuffled pile of ranks with a running Hi-Lo count.
// When the pile runs out it is silently replaced by a fresh shuffle and
// the running count starts again from zero.
type Deck struct {
	cards      []Rank
	copies     int
	count      int
	reshuffles int
	rng        *rand.Rand
}

// NewDeck builds a shuffled deck of copies × 13 ranks. A nil rng is
// replaced by one seeded from the clock.
func NewDeck(copies int, rng *rand.Rand) (*Deck, error) {
	if copies <= 0 {
		return nil, ErrInvalidCopies
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	d := &Deck{copies: copies, rng: rng}
	d.refill()
	return d, nil
}

// NewStackedDeck returns a deck that deals cards in the given order before
// falling back to fresh shuffles of copies × 13 ranks.
func NewStackedDeck(cards []Rank, copies int, rng *rand.Rand) (*Deck, error) {
	d, err := NewDeck(copies, rng)
	if err != nil {
		return nil, err
	}

	// Deal pops from the end.
	d.cards = make([]Rank, len(cards))
	for i, r := range cards {
		d.cards[len(cards)-1-i] = r
	}
	return d, nil
}

func (d *Deck) refill() {
	d.cards = make([]Rank, 0, d.copies*len(Ranks))
	for i := 0; i < d.copies; i++ {
		d.cards = append(d.cards, Ranks...)
	}
	d.shuffle()
	d.count = 0
}

// shuffle is a Fisher-Yates permutation of the remaining cards.
func (d *Deck) shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal moves the top card into hand, updating the running count.
func (d *Deck) Deal(hand *Hand) Rank {
	if len(d.cards) == 0 {
		if d.copies <= 0 {
			panic("game: deal from a deck that cannot be replenished")
		}
		d.refill()
		d.reshuffles++
	}

	last := len(d.cards) - 1
	card := d.cards[last]
	d.cards = d.cards[:last]
	d.count += card.Signal()
	*hand = append(*hand, card)
	return card
}

// Remaining returns the number of cards left before the next reshuffle.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Count returns the running count since the last reshuffle.
func (d *Deck) Count() int {
	return d.count
}

// Reshuffles returns how many times the deck ran out and was replaced.
func (d *Deck) Reshuffles() int {
	return d.reshuffles
}

// Size returns the number of cards in a fresh deck.
func (d *Deck) Size() int {
	return d.copies * len(Ranks)
}
