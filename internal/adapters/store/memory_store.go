package store

import (
	"context"
	"sync"
	"time"

	"github.com/JerrySundi/honeypot/internal/core"
	"go.uber.org/zap"
)

// entry wraps a session with its idle-expiry deadline
type entry struct {
	session   *core.Session
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of the SessionStore interface.
// Sessions idle past the TTL are treated as absent and reaped by a
// background cleanup task, bounding abandoned engagements.
type MemoryStore struct {
	entries     map[string]*entry
	mu          sync.RWMutex
	logger      *zap.Logger
	ttl         time.Duration
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore(logger *zap.Logger, ttl, cleanupFreq time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries:     make(map[string]*entry),
		logger:      logger,
		ttl:         ttl,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	// Start background cleanup
	go s.startCleanupTask()

	return s
}

// Get retrieves a session by identifier
func (s *MemoryStore) Get(_ context.Context, id string) (*core.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, core.ErrSessionNotFound
	}

	// An idle-expired session is indistinguishable from an absent one
	if time.Now().After(e.expiresAt) {
		return nil, core.ErrSessionNotFound
	}

	return e.session, nil
}

// Put stores or replaces a session and refreshes its idle deadline
func (s *MemoryStore) Put(_ context.Context, session *core.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[session.ID] = &entry{
		session:   session,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Delete removes a session
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

// Cleanup removes idle-expired sessions
func (s *MemoryStore) Cleanup(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	expiredCount := 0

	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
			expiredCount++
		}
	}

	s.logger.Debug("Cleaned up expired sessions", zap.Int("expired_count", expiredCount))
	return nil
}

// startCleanupTask starts a background task to clean up expired sessions
func (s *MemoryStore) startCleanupTask() {
	ticker := time.NewTicker(s.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Cleanup(context.Background()); err != nil {
				s.logger.Error("Failed to clean up session store", zap.Error(err))
			}
		case <-s.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task
func (s *MemoryStore) Stop() {
	close(s.stopCh)
}
