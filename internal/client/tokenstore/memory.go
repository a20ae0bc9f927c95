package tokenstore

import (
	"encoding/json"
	"sync"

	"github.com/cliniclink/cliniclink/internal/client/models"
)

// MemoryStore is an in-memory Store used by tests and by ephemeral sessions
// that should leave no trace on disk. It serializes the user snapshot the
// same way FileStore does, so corruption behavior can be exercised by
// seeding raw bytes via SeedRawUser.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	user  []byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SeedRawUser stores arbitrary bytes as the serialized user entry.
func (s *MemoryStore) SeedRawUser(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = append([]byte(nil), data...)
}

// LoadToken implements Store.
func (s *MemoryStore) LoadToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SaveToken implements Store.
func (s *MemoryStore) SaveToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// LoadUser implements Store.
func (s *MemoryStore) LoadUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.user) == 0 {
		return nil
	}
	u := &models.User{}
	if err := json.Unmarshal(s.user, u); err != nil {
		return nil
	}
	return u
}

// SaveUser implements Store.
func (s *MemoryStore) SaveUser(u *models.User) {
	if u == nil {
		return
	}
	data, err := json.Marshal(u)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = data
}

// Clear implements Store.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}
