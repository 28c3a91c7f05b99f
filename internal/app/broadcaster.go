package app

import "setgame/internal/domain"

// Broadcaster encodes events and fans them out through the session registry.
type Broadcaster struct {
	sessions *SessionRegistry
}

// NewBroadcaster builds a Broadcaster over sessions.
func NewBroadcaster(sessions *SessionRegistry) *Broadcaster {
	return &Broadcaster{sessions: sessions}
}

// Publish delivers ev to its recipients and returns the number of accepted deliveries.
func (b *Broadcaster) Publish(ev Event) (int, error) {
	data, err := EncodeEvent(ev)
	if err != nil {
		return 0, err
	}
	return b.sessions.Broadcast(ev.Recipients, data), nil
}

// Users publishes the roster snapshot to every roster member.
func (b *Broadcaster) Users(room *domain.Room) (int, error) {
	return b.Publish(Event{
		Kind:       EventUsers,
		Payload:    UsersPayload{Users: room.Standings()},
		Recipients: room.UserIDs(),
	})
}

// GameType publishes the room's game type to the roster.
func (b *Broadcaster) GameType(room *domain.Room, gameType string) (int, error) {
	return b.Publish(Event{
		Kind:       EventSetGameType,
		Payload:    GameTypePayload{GameType: gameType},
		Recipients: room.UserIDs(),
	})
}

// GameUpdate publishes the full game state to the roster.
func (b *Broadcaster) GameUpdate(room *domain.Room) (int, error) {
	return b.Publish(Event{
		Kind:       EventUpdateGame,
		Payload:    GameUpdatePayload{GameState: *room.GameState},
		Recipients: room.UserIDs(),
	})
}
