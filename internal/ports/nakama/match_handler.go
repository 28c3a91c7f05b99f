package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"setgame/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const matchTickRate = 5

// MatchState holds the per-match runtime state. Room state itself lives in the shared store.
type MatchState struct {
	RoomName  string                      `json:"room_name"`
	Presences map[string]runtime.Presence `json:"-"` // UserId -> Presence
	sinks     map[string]*presenceSink
}

// matchBody is the JSON payload of client match messages.
type matchBody struct {
	GameType string `json:"gameType"`
	Selected string `json:"selected"`
}

type matchHandler struct {
	coord    *app.Coordinator
	bindings *roomBindings
}

func newMatchHandler(coord *app.Coordinator, bindings *roomBindings) *matchHandler {
	return &matchHandler{coord: coord, bindings: bindings}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	roomName, _ := params[paramRoomName].(string)
	roomName = strings.TrimSpace(roomName)
	if roomName == "" {
		logger.Error("MatchInit: missing %s param", paramRoomName)
		return nil, 0, ""
	}

	label, err := matchLabel(roomName)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	state := &MatchState{
		RoomName:  roomName,
		Presences: make(map[string]runtime.Presence),
		sinks:     make(map[string]*presenceSink),
	}
	logger.Debug("MatchInit: room %s", roomName)
	return state, matchTickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	if room, busy := mh.bindings.conflict(presence.GetUserId(), matchState.RoomName); busy {
		logger.Debug("MatchJoinAttempt: %s rejected, still in room %s", presence.GetUserId(), room)
		return state, false, fmt.Sprintf("already in room %s", room)
	}
	return state, true, ""
}

// MatchJoin binds each presence to the room through the coordinator.
// A user still bound to another room's match leaves that room first.
func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		sink := newPresenceSink(dispatcher, p)
		matchState.Presences[userID] = p
		matchState.sinks[userID] = sink

		if prev, ok := mh.bindings.bind(userID, matchState.RoomName, sink); ok && prev.room != matchState.RoomName {
			if err := mh.coord.Submit(ctx, app.Leave{UserID: userID, Sink: prev.sink, RoomName: prev.room}); err != nil {
				logger.Warn("MatchJoin: leave %s from previous room %s failed: %v", userID, prev.room, err)
			}
		}

		err := mh.coord.Submit(ctx, app.Join{
			UserID:   userID,
			Sink:     sink,
			Username: p.GetUsername(),
			RoomName: matchState.RoomName,
		})
		if err != nil {
			logger.Warn("MatchJoin: join %s to room %s failed: %v", userID, matchState.RoomName, err)
			mh.sendError(dispatcher, logger, p, err)
		}
	}
	return matchState
}

// MatchLeave removes leaving presences from the room roster.
// The match ends once nobody is connected; the room record stays in storage.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		sink, bound := matchState.sinks[userID]
		delete(matchState.Presences, userID)
		delete(matchState.sinks, userID)
		if !bound {
			continue
		}
		mh.leaveRoom(ctx, logger, matchState.RoomName, userID, sink)
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating empty match for room %s.", matchState.RoomName)
		return nil
	}
	return matchState
}

// MatchLoop translates client messages into coordinator commands.
func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLoop: state not found")
		return state
	}

	for _, msg := range messages {
		cmd, err := matchCommand(matchState.RoomName, msg)
		if err == nil {
			err = mh.coord.Submit(ctx, cmd)
		}
		if err != nil {
			logger.Debug("MatchLoop: op %d from %s rejected: %v", msg.GetOpCode(), msg.GetUserId(), err)
			mh.sendError(dispatcher, logger, msg, err)
		}
	}
	return matchState
}

func matchCommand(roomName string, msg runtime.MatchData) (app.Command, error) {
	var body matchBody
	if data := msg.GetData(); len(data) > 0 {
		if err := json.Unmarshal(data, &body); err != nil {
			return nil, fmt.Errorf("%w: malformed message: %w", app.ErrInvalidCommand, err)
		}
	}

	switch msg.GetOpCode() {
	case OpSetGameType:
		return app.SetGameType{RoomName: roomName, GameType: body.GameType}, nil
	case OpStartGame:
		return app.StartGame{RoomName: roomName}, nil
	case OpVerifySet:
		return app.VerifySet{UserID: msg.GetUserId(), RoomName: roomName, Selected: body.Selected}, nil
	default:
		return nil, fmt.Errorf("%w: unknown op code %d", app.ErrInvalidCommand, msg.GetOpCode())
	}
}

func (mh *matchHandler) sendError(dispatcher runtime.MatchDispatcher, logger runtime.Logger, presence runtime.Presence, cause error) {
	data, err := app.EncodeEvent(app.ErrorEvent(presence.GetUserId(), cause))
	if err != nil {
		logger.Error("sendError: Failed to encode: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpError, data, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Warn("sendError: Failed to send to %s: %v", presence.GetUserId(), err)
	}
}

// matchLabel renders the searchable label {"game":"set","room":<name>}.
func matchLabel(roomName string) (string, error) {
	label, err := structpb.NewStruct(map[string]interface{}{
		"game": matchLabelGame,
		"room": roomName,
	})
	if err != nil {
		return "", err
	}
	b, err := protojson.Marshal(label)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// leaveRoom removes userID from roomName unless the user already moved to
// another room's match, in which case that move did the leave.
func (mh *matchHandler) leaveRoom(ctx context.Context, logger runtime.Logger, roomName, userID string, sink *presenceSink) {
	if !mh.bindings.release(userID, sink) {
		return
	}
	if err := mh.coord.Submit(ctx, app.Leave{UserID: userID, Sink: sink, RoomName: roomName}); err != nil {
		logger.Warn("MatchLeave: leave %s from room %s failed: %v", userID, roomName, err)
	}
}

// MatchTerminate drops the remaining presences so their users can join other rooms.
func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	for userID, sink := range matchState.sinks {
		mh.leaveRoom(ctx, logger, matchState.RoomName, userID, sink)
		delete(matchState.sinks, userID)
		delete(matchState.Presences, userID)
	}
	return matchState
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
