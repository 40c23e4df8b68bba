package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/maxmalik/FORE/metrics"
	"go.uber.org/zap"
)

// MemoryStore keeps sessions in process. Sessions are stored encoded so a
// caller never shares a Draft with another request.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	claims   map[string]time.Time
	ttl      time.Duration
	clock    clock.Clock
	logger   *zap.Logger
}

type memoryEntry struct {
	data    []byte
	expires time.Time
}

func NewMemoryStore(ttl time.Duration, clock clock.Clock, logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		claims:   make(map[string]time.Time),
		ttl:      ttl,
		clock:    clock,
		logger:   logger,
	}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	e, found := s.sessions[id]
	s.mu.Unlock()

	if !found || !s.clock.Now().Before(e.expires) {
		return nil, ErrNotFound
	}

	var sess Session
	if err := json.Unmarshal(e.data, &sess); err != nil {
		return nil, fmt.Errorf("error decoding session %s: %w", id, err)
	}
	sess.normalize()
	return &sess, nil
}

func (s *MemoryStore) Save(ctx context.Context, sess *Session) error {
	now := s.clock.Now().UTC()
	sess.UpdatedAt = now
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = memoryEntry{data: b, expires: now.Add(s.ttl)}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return nil
}

func (s *MemoryStore) Claim(ctx context.Context, id, key string) (bool, error) {
	now := s.clock.Now()
	k := claimKey(id, key)

	s.mu.Lock()
	defer s.mu.Unlock()
	if expires, taken := s.claims[k]; taken && now.Before(expires) {
		return false, nil
	}
	s.claims[k] = now.Add(s.ttl)
	return true, nil
}

func (s *MemoryStore) Release(ctx context.Context, id, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.claims, claimKey(id, key))
	return nil
}

// Sweep drops every expired session and returns how many were dropped.
func (s *MemoryStore) Sweep() int {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for id, e := range s.sessions {
		if !now.Before(e.expires) {
			delete(s.sessions, id)
			count++
		}
	}
	for k, expires := range s.claims {
		if !now.Before(expires) {
			delete(s.claims, k)
		}
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return count
}

func (s *MemoryStore) RunPeriodicSweep(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := time.NewTicker(frequency)
	defer ticker.Stop()
	defer wg.Done()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("expired sessions removed", zap.Int("count", n))
			}
		}
	}
}
