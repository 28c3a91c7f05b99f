package ports

// BoardUpdate is the result of refilling a board from a deck.
type BoardUpdate struct {
	Deck  string
	Board string
	Sets  int // valid sets currently on Board
}

// RuleEngine implements the card-matching rules.
type RuleEngine interface {
	// InitDeck returns a freshly shuffled, encoded deck.
	InitDeck() string

	// UpdateBoard refills board from deck to its target size and counts the sets on it.
	UpdateBoard(deck, board string) BoardUpdate

	// IsSet reports whether the encoded selection forms a valid set.
	IsSet(selection string) bool
}
