package store

import "github.com/viant/grocery/internal/collection"

// MemoryStore keeps tokens for the lifetime of the process
type MemoryStore struct {
	tokens
	values *collection.SyncMap[string, string]
}

func (m *MemoryStore) get(key string) (string, bool) {
	value, ok := m.values.Get(key)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

func (m *MemoryStore) put(key, value string) error {
	m.values.Put(key, value)
	return nil
}

func (m *MemoryStore) remove(keys ...string) error {
	for _, key := range keys {
		m.values.Delete(key)
	}
	return nil
}

// NewMemoryStore creates a memory store
func NewMemoryStore() *MemoryStore {
	ret := &MemoryStore{values: collection.NewSyncMap[string, string]()}
	ret.kv = ret
	return ret
}
