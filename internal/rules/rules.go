package rules

import (
	"math/rand"
	"sync"
	"time"

	"setgame/internal/domain"
	"setgame/internal/ports"
)

const (
	DefaultAttributes = 4
	DefaultValues     = 3
	DefaultBoardSize  = 12

	// MaxAttributes bounds the deck at values^5 cards.
	MaxAttributes = 5
)

// Config describes the deck shape and board size.
type Config struct {
	Attributes int
	Values     int
	BoardSize  int
}

// Engine implements ports.RuleEngine for the game of Set.
type Engine struct {
	cfg Config

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine constructs an Engine with provided rng or a time-seeded default.
// Zero-valued config fields fall back to the classic 4x3 deck with a 12-card board.
func NewEngine(cfg Config, rng *rand.Rand) *Engine {
	if cfg.Attributes <= 0 || cfg.Attributes > MaxAttributes {
		cfg.Attributes = DefaultAttributes
	}
	if cfg.Values < 2 || cfg.Values > 10 {
		cfg.Values = DefaultValues
	}
	if cfg.BoardSize <= 0 {
		cfg.BoardSize = DefaultBoardSize
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{cfg: cfg, rng: rng}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// InitDeck returns a shuffled full deck.
func (e *Engine) InitDeck() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.JoinTokens(ShuffleDeck(NewDeck(e.cfg.Attributes, e.cfg.Values), e.rng))
}

// UpdateBoard deals from the front of deck until the board reaches its target size.
// While the board holds no set and cards remain, another group of cards is dealt.
func (e *Engine) UpdateBoard(deck, board string) ports.BoardUpdate {
	deckTokens := domain.SplitTokens(deck)
	boardTokens := domain.SplitTokens(board)

	for len(boardTokens) < e.cfg.BoardSize && len(deckTokens) > 0 {
		boardTokens = append(boardTokens, deckTokens[0])
		deckTokens = deckTokens[1:]
	}

	sets := e.CountSets(boardTokens)
	for sets == 0 && len(deckTokens) > 0 {
		n := min(e.cfg.Values, len(deckTokens))
		boardTokens = append(boardTokens, deckTokens[:n]...)
		deckTokens = deckTokens[n:]
		sets = e.CountSets(boardTokens)
	}

	return ports.BoardUpdate{
		Deck:  domain.JoinTokens(deckTokens),
		Board: domain.JoinTokens(boardTokens),
		Sets:  sets,
	}
}

// IsSet reports whether the encoded selection is a valid set.
func (e *Engine) IsSet(selection string) bool {
	return e.isSet(domain.SplitTokens(selection))
}

// CountSets returns the number of distinct valid sets among the given cards.
func (e *Engine) CountSets(board []string) int {
	k := e.cfg.Values
	if len(board) < k {
		return 0
	}

	count := 0
	combo := make([]string, k)
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == k {
			if e.isSet(combo) {
				count++
			}
			return
		}
		for i := start; i <= len(board)-(k-depth); i++ {
			combo[depth] = board[i]
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)
	return count
}

// isSet checks that exactly Values distinct well-formed cards are given and that,
// for every attribute, the cards share one value or all differ.
func (e *Engine) isSet(tokens []string) bool {
	if len(tokens) != e.cfg.Values {
		return false
	}

	cards := make([][]int, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		card, ok := parseCard(token, e.cfg.Attributes, e.cfg.Values)
		if !ok || seen[token] {
			return false
		}
		seen[token] = true
		cards = append(cards, card)
	}

	for attr := 0; attr < e.cfg.Attributes; attr++ {
		distinct := make(map[int]bool, e.cfg.Values)
		for _, card := range cards {
			distinct[card[attr]] = true
		}
		if len(distinct) != 1 && len(distinct) != e.cfg.Values {
			return false
		}
	}
	return true
}

var _ ports.RuleEngine = (*Engine)(nil)
