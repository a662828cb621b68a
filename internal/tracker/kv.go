package tracker

import (
	"context"
	"sync"
)

// Store is the key-value persistence used by a tracker. Values are JSON documents.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

const (
	keyTasks           = "tasks"
	keyStreak          = "streak"
	keyScore           = "score"
	keyTasksCompleted  = "tasksCompleted"
	keyLastVisitDate   = "lastVisitDate"
	keyLastRewardClaim = "lastRewardClaim"
	keyDaysActive      = "daysActive"
	keyCheckInMethod   = "checkInMethod"
	keyOnboarded       = "onboarded"
	historyKeyPrefix   = "history:"
)

// HistoryKey is the store key of the day record for d.
func HistoryKey(d Date) string {
	return historyKeyPrefix + string(d)
}

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
