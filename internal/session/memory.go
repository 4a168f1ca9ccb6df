package session

import (
	"context"
	"sync"
)

// MemoryStorage is an in-process Storage. Every Set and Remove is reported to
// watchers, which makes it a stand-in for a second terminal writing the
// shared store.
type MemoryStorage struct {
	mu       sync.Mutex
	data     map[string]string
	watchers map[chan StorageEvent]struct{}
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		data:     make(map[string]string),
		watchers: make(map[chan StorageEvent]struct{}),
	}
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
	m.emit(key)
	return nil
}

func (m *MemoryStorage) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	m.emit(key)
	return nil
}

// Has reports whether key is present.
func (m *MemoryStorage) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

func (m *MemoryStorage) Watch(ctx context.Context) (<-chan StorageEvent, error) {
	ch := make(chan StorageEvent, 16)
	m.mu.Lock()
	m.watchers[ch] = struct{}{}
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.watchers, ch)
		close(ch)
		m.mu.Unlock()
	}()
	return ch, nil
}

func (m *MemoryStorage) emit(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for ch := range m.watchers {
		select {
		case ch <- StorageEvent{Key: key}:
		default:
		}
	}
}
