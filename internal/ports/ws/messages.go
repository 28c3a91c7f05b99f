package ws

import (
	"encoding/json"
	"fmt"
	"strings"

	"setgame/internal/app"
)

// Inbound message types.
const (
	TypeJoin        = "join"
	TypeSetGameType = "setGameType"
	TypeStartGame   = "startGame"
	TypeVerifySet   = "verifySet"
	TypeLeave       = "leave"
)

// inbound is the client-to-server frame. Unused fields are ignored per type.
type inbound struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	RoomName string `json:"roomName"`
	GameType string `json:"gameType"`
	Selected string `json:"selected"`
}

func decodeInbound(data []byte) (inbound, error) {
	var msg inbound
	if err := json.Unmarshal(data, &msg); err != nil {
		return inbound{}, fmt.Errorf("%w: malformed message: %w", app.ErrInvalidCommand, err)
	}
	msg.Type = strings.TrimSpace(msg.Type)
	msg.RoomName = strings.TrimSpace(msg.RoomName)
	return msg, nil
}

// command maps msg to a coordinator command for the connection c.
// Room-scoped messages without a roomName target the connection's joined room.
func (msg inbound) command(c *connection) (app.Command, error) {
	room := msg.RoomName
	if room == "" {
		room = c.joinedRoom()
	}

	switch msg.Type {
	case TypeJoin:
		return app.Join{UserID: c.id, Sink: c, Username: msg.Username, RoomName: msg.RoomName}, nil
	case TypeSetGameType:
		return app.SetGameType{RoomName: room, GameType: msg.GameType}, nil
	case TypeStartGame:
		return app.StartGame{RoomName: room}, nil
	case TypeVerifySet:
		return app.VerifySet{UserID: c.id, RoomName: room, Selected: msg.Selected}, nil
	case TypeLeave:
		return app.Leave{UserID: c.id, Sink: c, RoomName: room}, nil
	default:
		return nil, fmt.Errorf("%w: unknown message type %q", app.ErrInvalidCommand, msg.Type)
	}
}
