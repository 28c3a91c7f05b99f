package rules

import (
	"math/rand"
	"strconv"
	"strings"
)

// NewDeck returns every card for the given shape in ascending token order.
// A card token has one digit per attribute, each in [0, values).
func NewDeck(attributes, values int) []string {
	total := 1
	for i := 0; i < attributes; i++ {
		total *= values
	}

	deck := make([]string, 0, total)
	digits := make([]byte, attributes)
	for n := 0; n < total; n++ {
		rest := n
		for i := attributes - 1; i >= 0; i-- {
			digits[i] = strconv.Itoa(rest % values)[0]
			rest /= values
		}
		deck = append(deck, string(digits))
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(deck []string, rng *rand.Rand) []string {
	out := make([]string, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// parseCard converts a token to attribute values, rejecting malformed tokens.
func parseCard(token string, attributes, values int) ([]int, bool) {
	token = strings.TrimSpace(token)
	if len(token) != attributes {
		return nil, false
	}
	card := make([]int, attributes)
	for i := 0; i < attributes; i++ {
		v := int(token[i] - '0')
		if v < 0 || v >= values {
			return nil, false
		}
		card[i] = v
	}
	return card, true
}
