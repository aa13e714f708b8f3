// Package session keeps per-user onboarding state durable across restarts.
//
// The default backend is a single JSON snapshot file that is rewritten in
// full on every mutation. The write cost is bounded by the total number of
// users, which is expected to stay small.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/vladimiradmaev/fatsecret-exporter/internal/domain"
	"github.com/vladimiradmaev/fatsecret-exporter/internal/logger"
)

// FileStore keeps sessions in memory and mirrors every mutation into a
// JSON snapshot file. Create and Update persist synchronously before
// returning; a persistence failure propagates to the caller.
type FileStore struct {
	path     string
	mu       sync.RWMutex
	sessions map[int64]domain.UserSession
}

// NewFileStore creates a file-backed store for the given snapshot path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:     path,
		sessions: make(map[int64]domain.UserSession),
	}
}

// Load initializes in-memory state from the snapshot. A missing or
// unreadable snapshot degrades to an empty state and never fails the
// process.
func (s *FileStore) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warningf("Session snapshot %s unreadable, starting empty: %v", s.path, err)
		}
		return
	}

	var raw map[string]domain.UserSession
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warningf("Session snapshot %s corrupt, starting empty: %v", s.path, err)
		return
	}

	for key, sess := range raw {
		userID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			logger.Warningf("Session snapshot %s holds non-numeric user id %q, skipping", s.path, key)
			continue
		}
		s.sessions[userID] = sess
	}
}

// Create unconditionally overwrites any existing session for the user.
func (s *FileStore) Create(userID int64, session domain.UserSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = session
	return s.persistLocked()
}

// Get returns the current session, or false for unknown users.
func (s *FileStore) Get(userID int64) (domain.UserSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[userID]
	return session, ok
}

// Update replaces the session for the user wholesale. Callers read-modify-
// write the full session object.
func (s *FileStore) Update(userID int64, session domain.UserSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = session
	return s.persistLocked()
}

// persistLocked rewrites the whole snapshot. On failure the in-memory state
// may be ahead of durable state; the caller decides what to tell the user.
func (s *FileStore) persistLocked() error {
	raw := make(map[string]domain.UserSession, len(s.sessions))
	for userID, sess := range s.sessions {
		raw[strconv.FormatInt(userID, 10)] = sess
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to encode session snapshot: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write session snapshot: %w", err)
	}

	return nil
}
