package nakama

import "sync"

// roomBinding records which room and match connection a user is bound to.
type roomBinding struct {
	room string
	sink *presenceSink
}

// roomBindings is shared by every match in the process. The coordinator keeps
// one connection per user, so a user is bound to at most one room's match.
type roomBindings struct {
	mu    sync.Mutex
	users map[string]roomBinding
}

func newRoomBindings() *roomBindings {
	return &roomBindings{users: make(map[string]roomBinding)}
}

// conflict returns the room userID is bound to when it differs from room.
func (b *roomBindings) conflict(userID, room string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	current, ok := b.users[userID]
	if !ok || current.room == room {
		return "", false
	}
	return current.room, true
}

// bind points userID at sink and returns the binding it replaced, if any.
func (b *roomBindings) bind(userID, room string, sink *presenceSink) (roomBinding, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	prev, ok := b.users[userID]
	b.users[userID] = roomBinding{room: room, sink: sink}
	return prev, ok
}

// release drops userID only while it is still bound to sink.
func (b *roomBindings) release(userID string, sink *presenceSink) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	current, ok := b.users[userID]
	if !ok || current.sink != sink {
		return false
	}
	delete(b.users, userID)
	return true
}
