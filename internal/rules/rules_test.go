package rules

import (
	"math/rand"
	"testing"

	"setgame/internal/domain"
)

func newTestEngine() *Engine {
	return NewEngine(Config{}, rand.New(rand.NewSource(42)))
}

func TestNewDeck(t *testing.T) {
	deck := NewDeck(4, 3)
	if len(deck) != 81 {
		t.Fatalf("deck size = %d, want 81", len(deck))
	}

	seen := make(map[string]bool)
	for _, card := range deck {
		if seen[card] {
			t.Fatalf("duplicate card found: %s", card)
		}
		seen[card] = true
		if _, ok := parseCard(card, 4, 3); !ok {
			t.Fatalf("malformed card: %s", card)
		}
	}
	if deck[0] != "0000" || deck[80] != "2222" {
		t.Fatalf("unexpected deck order: first=%s last=%s", deck[0], deck[80])
	}
}

func TestInitDeckIsShuffledFullDeck(t *testing.T) {
	engine := newTestEngine()
	deck := domain.SplitTokens(engine.InitDeck())
	if len(deck) != 81 {
		t.Fatalf("deck size = %d, want 81", len(deck))
	}
	ordered := NewDeck(4, 3)
	same := true
	for i := range deck {
		if deck[i] != ordered[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("expected shuffled deck")
	}
}

func TestIsSet(t *testing.T) {
	engine := newTestEngine()
	tests := []struct {
		name      string
		selection string
		want      bool
	}{
		{name: "all attributes differ", selection: "0000,1111,2222", want: true},
		{name: "mixed same and different", selection: "0120,0201,0012", want: true},
		{name: "one attribute two-and-one", selection: "0000,0001,0012", want: false},
		{name: "too few cards", selection: "0000,1111", want: false},
		{name: "too many cards", selection: "0000,1111,2222,0120", want: false},
		{name: "duplicate cards", selection: "0000,0000,0000", want: false},
		{name: "malformed token", selection: "0000,1111,22x2", want: false},
		{name: "value out of range", selection: "0000,1111,3333", want: false},
		{name: "empty", selection: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := engine.IsSet(tt.selection); got != tt.want {
				t.Fatalf("IsSet(%q) = %v, want %v", tt.selection, got, tt.want)
			}
		})
	}
}

func TestCountSets(t *testing.T) {
	engine := newTestEngine()
	board := []string{"0000", "1111", "2222", "0001"}
	if got := engine.CountSets(board); got != 1 {
		t.Fatalf("CountSets() = %d, want 1", got)
	}
	if got := engine.CountSets([]string{"0000", "1111"}); got != 0 {
		t.Fatalf("CountSets() = %d, want 0", got)
	}
}

func TestUpdateBoardRefillsToBoardSize(t *testing.T) {
	engine := newTestEngine()
	deck := engine.InitDeck()

	update := engine.UpdateBoard(deck, "")
	board := domain.SplitTokens(update.Board)
	remaining := domain.SplitTokens(update.Deck)

	if len(board) < DefaultBoardSize {
		t.Fatalf("board size = %d, want at least %d", len(board), DefaultBoardSize)
	}
	if len(board)+len(remaining) != 81 {
		t.Fatalf("cards lost: board=%d deck=%d", len(board), len(remaining))
	}
	if update.Sets != engine.CountSets(board) {
		t.Fatalf("Sets = %d, want %d", update.Sets, engine.CountSets(board))
	}
	if update.Sets == 0 && len(remaining) > 0 {
		t.Fatalf("board without sets while deck still has cards")
	}
}

func TestUpdateBoardDealsExtraWhenNoSet(t *testing.T) {
	engine := NewEngine(Config{Attributes: 4, Values: 3, BoardSize: 3}, rand.New(rand.NewSource(1)))

	// 0000,0001,0010 holds no set; the next three cards complete one.
	update := engine.UpdateBoard("0002,1111,2222", "0000,0001,0010")
	if update.Board != "0000,0001,0010,0002,1111,2222" {
		t.Fatalf("board = %q", update.Board)
	}
	if update.Deck != "" {
		t.Fatalf("deck = %q, want empty", update.Deck)
	}
	if update.Sets == 0 {
		t.Fatalf("expected at least one set after extra deal")
	}
}

func TestUpdateBoardEmptyDeck(t *testing.T) {
	engine := newTestEngine()
	update := engine.UpdateBoard("", "0000,1111")
	if update.Board != "0000,1111" || update.Deck != "" || update.Sets != 0 {
		t.Fatalf("unexpected update: %+v", update)
	}
}

func TestNewEngineClampsDeckShape(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		want Config
	}{
		{name: "zero", in: Config{}, want: Config{Attributes: 4, Values: 3, BoardSize: 12}},
		{name: "too many attributes", in: Config{Attributes: 20, Values: 3, BoardSize: 9}, want: Config{Attributes: 4, Values: 3, BoardSize: 9}},
		{name: "largest allowed", in: Config{Attributes: MaxAttributes, Values: 3, BoardSize: 12}, want: Config{Attributes: MaxAttributes, Values: 3, BoardSize: 12}},
		{name: "too many values", in: Config{Attributes: 3, Values: 11, BoardSize: 9}, want: Config{Attributes: 3, Values: 3, BoardSize: 9}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			engine := NewEngine(tc.in, rand.New(rand.NewSource(1)))
			if got := engine.Config(); got != tc.want {
				t.Fatalf("Config() = %+v, want %+v", got, tc.want)
			}
		})
	}

	engine := NewEngine(Config{Attributes: 20, Values: 3}, rand.New(rand.NewSource(1)))
	if n := len(domain.SplitTokens(engine.InitDeck())); n != 81 {
		t.Fatalf("deck size = %d, want 81", n)
	}
}
