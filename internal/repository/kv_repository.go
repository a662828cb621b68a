package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"daily-tasks/internal/model"
	"daily-tasks/internal/tracker"
)

// KVRepository persists tracker state in the kv_entries table.
type KVRepository struct {
	db *gorm.DB
}

func NewKVRepository(db *gorm.DB) *KVRepository {
	return &KVRepository{db: db}
}

// ForNamespace returns a store scoped to one owner.
func (r *KVRepository) ForNamespace(namespace string) tracker.Store {
	return &kvNamespace{repo: r, namespace: namespace}
}

func (r *KVRepository) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	var entry model.KVEntry
	err := r.db.WithContext(ctx).Where("namespace = ? AND item_key = ?", namespace, key).First(&entry).Error
	switch {
	case err == nil:
		return []byte(entry.Value), true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("find kv entry: %w", err)
	}
}

func (r *KVRepository) Set(ctx context.Context, namespace, key string, value []byte) error {
	entry := model.KVEntry{
		Namespace: namespace,
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "item_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("upsert kv entry: %w", err)
	}
	return nil
}

func (r *KVRepository) Delete(ctx context.Context, namespace, key string) error {
	if err := r.db.WithContext(ctx).Where("namespace = ? AND item_key = ?", namespace, key).
		Delete(&model.KVEntry{}).Error; err != nil {
		return fmt.Errorf("delete kv entry: %w", err)
	}
	return nil
}

// Keys lists the keys stored for a namespace, sorted.
func (r *KVRepository) Keys(ctx context.Context, namespace string) ([]string, error) {
	var keys []string
	if err := r.db.WithContext(ctx).Model(&model.KVEntry{}).Where("namespace = ?", namespace).
		Order("item_key ASC").Pluck("item_key", &keys).Error; err != nil {
		return nil, fmt.Errorf("list kv keys: %w", err)
	}
	return keys, nil
}

type kvNamespace struct {
	repo      *KVRepository
	namespace string
}

func (s *kvNamespace) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.repo.Get(ctx, s.namespace, key)
}

func (s *kvNamespace) Set(ctx context.Context, key string, value []byte) error {
	return s.repo.Set(ctx, s.namespace, key, value)
}

func (s *kvNamespace) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, s.namespace, key)
}

// MemoryKV keeps one in-memory store per namespace. State is lost on restart.
type MemoryKV struct {
	mu     sync.Mutex
	stores map[string]*tracker.MemoryStore
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{stores: make(map[string]*tracker.MemoryStore)}
}

func (m *MemoryKV) ForNamespace(namespace string) tracker.Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[namespace]
	if !ok {
		s = tracker.NewMemoryStore()
		m.stores[namespace] = s
	}
	return s
}
