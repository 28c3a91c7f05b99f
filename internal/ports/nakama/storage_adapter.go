package nakama

import (
	"context"
	"fmt"

	"setgame/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// StorageReadWriter is the subset of runtime.NakamaModule used for room records.
type StorageReadWriter interface {
	StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error)
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
}

// NakamaRoomStore implements ports.KeyValueStore with system-owned Nakama storage objects.
type NakamaRoomStore struct {
	nk         StorageReadWriter
	collection string
}

// NewNakamaRoomStore creates a room store over the given collection.
func NewNakamaRoomStore(nk StorageReadWriter, collection string) *NakamaRoomStore {
	if collection == "" {
		collection = DefaultStorageCollection
	}
	return &NakamaRoomStore{nk: nk, collection: collection}
}

// Get reads the room record stored under key.
func (s *NakamaRoomStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	objects, err := s.nk.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: s.collection, Key: key},
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to read room %s: %w", key, err)
	}
	if len(objects) == 0 || objects[0] == nil {
		return nil, false, nil
	}
	return []byte(objects[0].GetValue()), true, nil
}

// Set overwrites the room record. Objects are owned by the system user and hidden from clients.
func (s *NakamaRoomStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.nk.StorageWrite(ctx, []*runtime.StorageWrite{
		{
			Collection:      s.collection,
			Key:             key,
			Value:           string(value),
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write room %s: %w", key, err)
	}
	return nil
}

var _ ports.KeyValueStore = (*NakamaRoomStore)(nil)
