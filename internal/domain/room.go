package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// NewRoom returns an empty room with no game type and no game.
func NewRoom() *Room {
	return &Room{Users: make(map[string]User)}
}

// AddUser inserts or overwrites the roster entry for userID with zero points.
func (r *Room) AddUser(userID, name string) {
	if r.Users == nil {
		r.Users = make(map[string]User)
	}
	r.Users[userID] = User{Name: name}
}

// RemoveUser deletes userID from the roster and reports whether it was present.
func (r *Room) RemoveUser(userID string) bool {
	if _, ok := r.Users[userID]; !ok {
		return false
	}
	delete(r.Users, userID)
	return true
}

// AdjustPoints adds delta to a member's score.
func (r *Room) AdjustPoints(userID string, delta int64) (User, bool) {
	user, ok := r.Users[userID]
	if !ok {
		return User{}, false
	}
	user.Points += delta
	r.Users[userID] = user
	return user, true
}

// UserIDs returns roster ids in ascending order.
func (r *Room) UserIDs() []string {
	ids := make([]string, 0, len(r.Users))
	for id := range r.Users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Standings returns the roster ordered by user id.
func (r *Room) Standings() []Standing {
	ids := r.UserIDs()
	out := make([]Standing, 0, len(ids))
	for _, id := range ids {
		user := r.Users[id]
		out = append(out, Standing{Name: user.Name, Points: user.Points})
	}
	return out
}

// Started reports whether StartGame has run for this room.
func (r *Room) Started() bool {
	return r.GameState != nil
}

// EncodeRoom serializes a room into its stored record form.
func EncodeRoom(r *Room) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode room: %w", err)
	}
	return data, nil
}

// DecodeRoom parses a stored record.
func DecodeRoom(data []byte) (*Room, error) {
	room := NewRoom()
	if err := json.Unmarshal(data, room); err != nil {
		return nil, fmt.Errorf("decode room: %w", err)
	}
	if room.Users == nil {
		room.Users = make(map[string]User)
	}
	return room, nil
}
