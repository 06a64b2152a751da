package game

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// Deck is a draw pile that reshuffles itself once exhausted. The jail free
// card stays in the pile while a player holds it but is skipped on draw.
type Deck struct {
	Kind    DeckKind
	cards   []Card
	cursor  int
	claimed bool
}

func NewDeck(kind DeckKind, cards []Card) *Deck {
	return &Deck{
		Kind:   kind,
		cards:  slices.Clone(cards),
		cursor: len(cards), // first draw shuffles
	}
}

func (d *Deck) Len() int {
	return len(d.cards)
}

// Claimed reports whether the deck's jail free card is held by a player.
func (d *Deck) Claimed() bool {
	return d.claimed
}

// Draw returns the next card, reshuffling with rng when the pile is
// exhausted. Drawing the jail free card marks it claimed.
func (d *Deck) Draw(rng *rand.Rand) Card {
	for skipped := 0; skipped <= 2*len(d.cards); skipped++ {
		if d.cursor >= len(d.cards) {
			rng.Shuffle(len(d.cards), func(i, j int) {
				d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
			})
			d.cursor = 0
		}
		c := d.cards[d.cursor]
		d.cursor++
		if c.JailFree {
			if d.claimed {
				continue
			}
			d.claimed = true
		}
		return c
	}
	panic(fmt.Sprintf("deck %d holds no drawable card", d.Kind))
}

// Release puts the jail free card back into play.
func (d *Deck) Release() {
	d.claimed = false
}
