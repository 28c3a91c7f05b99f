package nakama

const (
	// RpcJoinRoom is the Nakama RPC id clients call to find or create the match for a room.
	RpcJoinRoom = "join_room"

	// MatchNameSet is the authoritative match handler name registered with Nakama.
	MatchNameSet = "set_match"

	// Label values identifying our matches.
	matchLabelGame = "set"

	// DefaultStorageCollection holds room records in Nakama storage.
	DefaultStorageCollection = "rooms"

	// Match param carrying the room name from MatchCreate.
	paramRoomName = "room_name"
)

// Runtime env keys.
const (
	envGameConfig        = "setgame_game_config"
	envStorageCollection = "setgame_storage_collection"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpSetGameType int64 = 1
	OpStartGame   int64 = 2
	OpVerifySet   int64 = 3

	// Server -> Client
	OpEvent int64 = 100 // every event envelope
	OpError int64 = 101 // command failures, sent to the requester only
)
