package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"daily-tasks/internal/tracker"
)

// StoreProvider hands out a key-value store per owner.
type StoreProvider interface {
	ForNamespace(namespace string) tracker.Store
}

// SessionService opens trackers and serializes access per owner.
type SessionService struct {
	stores StoreProvider
	clock  tracker.Clock
	log    *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSessionService(stores StoreProvider, clock tracker.Clock, log *zap.Logger) *SessionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionService{
		stores: stores,
		clock:  clock,
		log:    log,
		locks:  make(map[string]*sync.Mutex),
	}
}

// With opens the owner's tracker, running the day rollover, and calls fn while holding the owner's lock.
func (s *SessionService) With(ctx context.Context, namespace string, fn func(*tracker.Tracker) error) error {
	lock := s.lockFor(namespace)
	lock.Lock()
	defer lock.Unlock()

	tr, err := tracker.Open(ctx, s.stores.ForNamespace(namespace), s.clock, s.log.With(zap.String("owner", namespace)))
	if err != nil {
		return err
	}
	return fn(tr)
}

// Summary opens the owner's tracker and returns its read-only view.
func (s *SessionService) Summary(ctx context.Context, namespace string) (tracker.Summary, error) {
	var sum tracker.Summary
	err := s.With(ctx, namespace, func(tr *tracker.Tracker) error {
		sum = tr.Summary(ctx)
		return nil
	})
	return sum, err
}

// Peek returns the owner's read-only view without running the day rollover.
// Scheduled jobs use it so that a report is never counted as a visit.
func (s *SessionService) Peek(ctx context.Context, namespace string) (tracker.Summary, error) {
	lock := s.lockFor(namespace)
	lock.Lock()
	defer lock.Unlock()

	tr, err := tracker.Peek(ctx, s.stores.ForNamespace(namespace), s.clock, s.log.With(zap.String("owner", namespace)))
	if err != nil {
		return tracker.Summary{}, err
	}
	return tr.Summary(ctx), nil
}

func (s *SessionService) lockFor(namespace string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[namespace]
	if !ok {
		l = &sync.Mutex{}
		s.locks[namespace] = l
	}
	return l
}
