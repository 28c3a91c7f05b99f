package app

import (
	"context"
	"errors"
	"fmt"

	"setgame/internal/domain"
	"setgame/internal/ports"
)

// RoomStore reads and writes room records in the shared store.
// Writes are read-modify-write without a version check: concurrent writers
// from other processes may overwrite each other (last write wins).
type RoomStore struct {
	kv ports.KeyValueStore
}

// NewRoomStore wraps a shared key-value store.
func NewRoomStore(kv ports.KeyValueStore) *RoomStore {
	return &RoomStore{kv: kv}
}

// GetOrCreate returns the stored room or an empty one when the key is absent.
func (s *RoomStore) GetOrCreate(ctx context.Context, name string) (*domain.Room, error) {
	room, err := s.Get(ctx, name)
	if err == nil {
		return room, nil
	}
	if errors.Is(err, ErrRoomNotFound) {
		return domain.NewRoom(), nil
	}
	return nil, err
}

// Get returns the stored room, or ErrRoomNotFound.
func (s *RoomStore) Get(ctx context.Context, name string) (*domain.Room, error) {
	data, found, err := s.kv.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: get room %q: %w", ErrStoreUnavailable, name, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrRoomNotFound, name)
	}
	room, err := domain.DecodeRoom(data)
	if err != nil {
		return nil, fmt.Errorf("%w: room %q: %w", ErrDeserialization, name, err)
	}
	return room, nil
}

// Save overwrites the full record for name.
func (s *RoomStore) Save(ctx context.Context, name string, room *domain.Room) error {
	data, err := domain.EncodeRoom(room)
	if err != nil {
		return fmt.Errorf("%w: room %q: %w", ErrSerialization, name, err)
	}
	if err := s.kv.Set(ctx, name, data); err != nil {
		return fmt.Errorf("%w: set room %q: %w", ErrStoreUnavailable, name, err)
	}
	return nil
}
