package domain

// User is a roster entry for a participant in a room.
type User struct {
	Name   string `json:"name"`
	Points int64  `json:"points"` // may go negative
}

// Selection records the outcome of the most recent set submission.
type Selection struct {
	User      string `json:"user"`
	Valid     bool   `json:"valid"`
	Selection string `json:"selection"`
}

// GameState is the in-play snapshot of a started game.
type GameState struct {
	NumberOfSets      int        `json:"numberOfSets"`
	Deck              string     `json:"deck"`  // comma-joined card tokens
	Board             string     `json:"board"` // comma-joined card tokens
	PreviousSelection *Selection `json:"previousSelection,omitempty"`
}

// Room is the persisted record for a named lobby.
type Room struct {
	Users     map[string]User `json:"users"` // userId -> user
	GameType  *string         `json:"game_type"`
	GameState *GameState      `json:"game_state"`
}

// Standing is the public view of a roster entry.
type Standing struct {
	Name   string `json:"name"`
	Points int64  `json:"points"`
}
