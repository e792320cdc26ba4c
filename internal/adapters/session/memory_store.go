package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type entry struct {
	viewed   domain.RecentlyViewed
	lastSeen time.Time
}

// MemoryStore хранит недавно просмотренные листинги в памяти процесса.
// Неактивные сессии удаляются через ttl.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
	logger  port.LoggerPort
}

func NewMemoryStore(ttl time.Duration, logger port.LoggerPort) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
		logger:  logger.WithFields(port.Fields{"component": "SessionMemoryStore"}),
	}
}

func (s *MemoryStore) Push(ctx context.Context, key string, listingID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || s.expired(e) {
		e = &entry{}
		s.entries[key] = e
	}
	e.viewed = e.viewed.Push(listingID)
	e.lastSeen = s.now()
	return nil
}

func (s *MemoryStore) List(ctx context.Context, key string) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || s.expired(e) {
		return []uuid.UUID{}, nil
	}
	return append([]uuid.UUID(nil), e.viewed...), nil
}

func (s *MemoryStore) expired(e *entry) bool {
	return s.ttl > 0 && s.now().Sub(e.lastSeen) > s.ttl
}

// Cleanup удаляет просроченные сессии и возвращает их число
func (s *MemoryStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// RunJanitor периодически чистит просроченные сессии до отмены ctx
func (s *MemoryStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Cleanup(); removed > 0 {
				s.logger.Debug("Expired sessions removed", port.Fields{"removed": removed})
			}
		}
	}
}
