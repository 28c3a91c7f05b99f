package app

import (
	"encoding/json"
	"fmt"

	"setgame/internal/domain"
)

// EventKind is the discriminator carried in every outbound envelope.
type EventKind string

const (
	EventUsers       EventKind = "users"
	EventSetGameType EventKind = "setGameType"
	EventUpdateGame  EventKind = "updateGame"
	EventError       EventKind = "error"
)

// Event is an outbound event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs
}

type UsersPayload struct {
	Users []domain.Standing `json:"users"`
}

type GameTypePayload struct {
	GameType string `json:"gameType"`
}

type GameUpdatePayload struct {
	GameState domain.GameState `json:"gameState"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorEvent builds the reply sent to a client whose command failed.
func ErrorEvent(userID string, err error) Event {
	return Event{
		Kind:       EventError,
		Payload:    ErrorPayload{Code: ErrorCode(err), Message: err.Error()},
		Recipients: []string{userID},
	}
}

// EncodeEvent renders the tagged envelope: {"eventType": kind, ...payload fields}.
func EncodeEvent(ev Event) ([]byte, error) {
	var envelope any
	switch p := ev.Payload.(type) {
	case UsersPayload:
		if p.Users == nil {
			p.Users = []domain.Standing{}
		}
		envelope = struct {
			EventType EventKind `json:"eventType"`
			UsersPayload
		}{ev.Kind, p}
	case GameTypePayload:
		envelope = struct {
			EventType EventKind `json:"eventType"`
			GameTypePayload
		}{ev.Kind, p}
	case GameUpdatePayload:
		envelope = struct {
			EventType EventKind `json:"eventType"`
			GameUpdatePayload
		}{ev.Kind, p}
	case ErrorPayload:
		envelope = struct {
			EventType EventKind `json:"eventType"`
			ErrorPayload
		}{ev.Kind, p}
	default:
		return nil, fmt.Errorf("%w: unsupported payload %T for event %s", ErrSerialization, ev.Payload, ev.Kind)
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: event %s: %w", ErrSerialization, ev.Kind, err)
	}
	return data, nil
}
