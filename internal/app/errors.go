package app

import "errors"

var (
	ErrStoreUnavailable   = errors.New("room store unavailable")
	ErrDeserialization    = errors.New("room record could not be decoded")
	ErrSerialization      = errors.New("room record could not be encoded")
	ErrRoomNotFound       = errors.New("room not found")
	ErrUserNotFound       = errors.New("user not found in room")
	ErrGameNotStarted     = errors.New("game not started")
	ErrInvalidCommand     = errors.New("invalid command")
	ErrCoordinatorStopped = errors.New("coordinator stopped")
)

// Wire codes reported to clients for failed commands.
const (
	CodeStoreUnavailable = "store_unavailable"
	CodeDeserialization  = "deserialization_failure"
	CodeSerialization    = "serialization_failure"
	CodeRoomNotFound     = "room_not_found"
	CodeUserNotFound     = "user_not_found"
	CodeGameNotStarted   = "game_not_started"
	CodeInvalidCommand   = "invalid_command"
	CodeUnavailable      = "unavailable"
	CodeInternal         = "internal"
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrStoreUnavailable, CodeStoreUnavailable},
	{ErrDeserialization, CodeDeserialization},
	{ErrSerialization, CodeSerialization},
	{ErrRoomNotFound, CodeRoomNotFound},
	{ErrUserNotFound, CodeUserNotFound},
	{ErrGameNotStarted, CodeGameNotStarted},
	{ErrInvalidCommand, CodeInvalidCommand},
	{ErrCoordinatorStopped, CodeUnavailable},
}

// ErrorCode maps a command error to its wire code.
func ErrorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return CodeInternal
}
