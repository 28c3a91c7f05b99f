package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// JoinRoomRequest is the payload of the join_room RPC.
type JoinRoomRequest struct {
	RoomName string `json:"room_name"`
}

// JoinRoomResponse tells the client which match to join for its room.
type JoinRoomResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// MatchFinder is the subset of runtime.NakamaModule the join_room RPC needs.
type MatchFinder interface {
	MatchList(ctx context.Context, limit int, authoritative bool, label string, minSize, maxSize *int, query string) ([]*api.Match, error)
	MatchCreate(ctx context.Context, module string, params map[string]interface{}) (string, error)
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	return initializer.RegisterRpc(RpcJoinRoom, rpcJoinRoom)
}

func rpcJoinRoom(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return joinRoom(ctx, logger, nk, payload)
}

// joinRoom returns the running match labelled with the room, creating one when none exists.
func joinRoom(ctx context.Context, logger runtime.Logger, nk MatchFinder, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	var req JoinRoomRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid join_room payload", 3) // INVALID_ARGUMENT
	}
	roomName := strings.TrimSpace(req.RoomName)
	if roomName == "" {
		return "", runtime.NewError("room_name is required", 3)
	}

	query := fmt.Sprintf("+label.game:%s +label.room:%q", matchLabelGame, roomName)
	matches, err := nk.MatchList(ctx, 1, true, "", nil, nil, query)
	if err != nil {
		logger.Error("RpcJoinRoom [User:%s]: Failed to list matches: %v", userID, err)
		return "", err
	}

	resp := JoinRoomResponse{}
	if len(matches) > 0 {
		resp.MatchID = matches[0].GetMatchId()
	} else {
		matchID, err := nk.MatchCreate(ctx, MatchNameSet, map[string]interface{}{paramRoomName: roomName})
		if err != nil {
			logger.Error("RpcJoinRoom [User:%s]: Failed to create match: %v", userID, err)
			return "", err
		}
		resp.MatchID = matchID
		resp.IsNew = true
	}

	logger.Info("RpcJoinRoom [User:%s]: room %s -> match %s (new=%v)", userID, roomName, resp.MatchID, resp.IsNew)
	b, err := json.Marshal(resp)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
