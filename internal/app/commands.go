package app

import "setgame/internal/ports"

// Command is an inbound request handled by the Coordinator.
type Command interface {
	commandName() string
	room() string
}

// Join adds UserID to RoomName (creating the room on first use) and binds Sink to the user.
// Rejoining resets the user's points to zero.
type Join struct {
	UserID   string
	Sink     ports.SessionSink
	Username string
	RoomName string
}

// SetGameType records the room's game type.
type SetGameType struct {
	RoomName string
	GameType string
}

// StartGame deals a fresh deck and board for the room.
type StartGame struct {
	RoomName string
}

// VerifySet scores a selection submitted by UserID.
type VerifySet struct {
	UserID   string
	RoomName string
	Selected string // comma-joined card tokens
}

// Leave removes UserID from the roster and unbinds Sink.
// A nil Sink unbinds whatever sink the user currently has.
type Leave struct {
	UserID   string
	Sink     ports.SessionSink
	RoomName string
}

func (Join) commandName() string        { return "join" }
func (SetGameType) commandName() string { return "set_game_type" }
func (StartGame) commandName() string   { return "start_game" }
func (VerifySet) commandName() string   { return "verify_set" }
func (Leave) commandName() string       { return "leave" }

func (c Join) room() string        { return c.RoomName }
func (c SetGameType) room() string { return c.RoomName }
func (c StartGame) room() string   { return c.RoomName }
func (c VerifySet) room() string   { return c.RoomName }
func (c Leave) room() string       { return c.RoomName }
