package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"setgame/internal/domain"
)

func TestEncodeEventEnvelope(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want string
	}{
		{
			name: "empty roster",
			ev:   Event{Kind: EventUsers, Payload: UsersPayload{}},
			want: `{"eventType":"users","users":[]}`,
		},
		{
			name: "roster",
			ev:   Event{Kind: EventUsers, Payload: UsersPayload{Users: []domain.Standing{{Name: "alice", Points: -2}}}},
			want: `{"eventType":"users","users":[{"name":"alice","points":-2}]}`,
		},
		{
			name: "game type",
			ev:   Event{Kind: EventSetGameType, Payload: GameTypePayload{GameType: "classic"}},
			want: `{"eventType":"setGameType","gameType":"classic"}`,
		},
		{
			name: "fresh game omits previous selection",
			ev: Event{Kind: EventUpdateGame, Payload: GameUpdatePayload{GameState: domain.GameState{
				NumberOfSets: 2, Deck: "0000", Board: "1111,2222",
			}}},
			want: `{"eventType":"updateGame","gameState":{"numberOfSets":2,"deck":"0000","board":"1111,2222"}}`,
		},
		{
			name: "previous selection",
			ev: Event{Kind: EventUpdateGame, Payload: GameUpdatePayload{GameState: domain.GameState{
				PreviousSelection: &domain.Selection{User: "bob", Valid: false, Selection: "A,B,C"},
			}}},
			want: `{"eventType":"updateGame","gameState":{"numberOfSets":0,"deck":"","board":"","previousSelection":{"user":"bob","valid":false,"selection":"A,B,C"}}}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EncodeEvent(tc.ev)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if string(got) != tc.want {
				t.Fatalf("got %s\nwant %s", got, tc.want)
			}
		})
	}
}

func TestEncodeEventRejectsUnknownPayload(t *testing.T) {
	_, err := EncodeEvent(Event{Kind: "bogus", Payload: 42})
	if !errors.Is(err, ErrSerialization) {
		t.Fatalf("err = %v, want ErrSerialization", err)
	}
}

func TestErrorEvent(t *testing.T) {
	err := fmt.Errorf("%w: %q", ErrRoomNotFound, "ghost")
	data, encErr := EncodeEvent(ErrorEvent("u1", err))
	if encErr != nil {
		t.Fatalf("encode: %v", encErr)
	}
	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["eventType"] != "error" || got["code"] != CodeRoomNotFound || got["message"] != err.Error() {
		t.Fatalf("error envelope = %v", got)
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("wrap: %w", ErrStoreUnavailable), CodeStoreUnavailable},
		{ErrDeserialization, CodeDeserialization},
		{ErrSerialization, CodeSerialization},
		{ErrUserNotFound, CodeUserNotFound},
		{ErrGameNotStarted, CodeGameNotStarted},
		{ErrCoordinatorStopped, CodeUnavailable},
		{errors.New("boom"), CodeInternal},
	}
	for _, tc := range tests {
		if got := ErrorCode(tc.err); got != tc.want {
			t.Fatalf("ErrorCode(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
