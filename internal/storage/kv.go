package storage

import (
	"fmt"

	"github.com/quasilyte/gdata"
)

// AppName names the per-user data directory used by KVStore.
const AppName = "tui-tower"

// KVStore keeps small named blobs, such as the high score, in the
// user's data directory.
type KVStore struct {
	m *gdata.Manager
}

// OpenKV opens the key-value store for the given application name.
func OpenKV(appName string) (*KVStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open data dir: %w", err)
	}
	return &KVStore{m: m}, nil
}

// LoadItem returns the stored bytes for key, or nil if nothing is stored.
func (s *KVStore) LoadItem(key string) ([]byte, error) {
	data, err := s.m.LoadItem(key)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load %s: %w", key, err)
	}
	return data, nil
}

// SaveItem stores data under key, replacing any previous value.
func (s *KVStore) SaveItem(key string, data []byte) error {
	if err := s.m.SaveItem(key, data); err != nil {
		return fmt.Errorf("storage: cannot save %s: %w", key, err)
	}
	return nil
}
