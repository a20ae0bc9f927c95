package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cliniclink/cliniclink/internal/client/models"
)

// FileStore keeps each key as a file in a state directory, mode 0600.
// It is the desktop counterpart of the browser/secure-device storage used
// by the other ClinicLink clients.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created
// lazily on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// DefaultStateDir resolves the per-user ClinicLink state directory.
func DefaultStateDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "cliniclink"), nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key)
}

func (s *FileStore) read(key string) []byte {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil
	}
	return data
}

func (s *FileStore) write(key string, data []byte) {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return
	}
	_ = os.WriteFile(s.path(key), data, 0o600)
}

func (s *FileStore) remove(key string) {
	_ = os.Remove(s.path(key))
}

// LoadToken implements Store.
func (s *FileStore) LoadToken() string {
	return strings.TrimSpace(string(s.read(KeyToken)))
}

// SaveToken implements Store.
func (s *FileStore) SaveToken(token string) {
	s.write(KeyToken, []byte(token))
}

// LoadUser implements Store. Malformed JSON is a cache miss, not an error.
func (s *FileStore) LoadUser() *models.User {
	data := s.read(KeyUser)
	if len(data) == 0 {
		return nil
	}
	u := &models.User{}
	if err := json.Unmarshal(data, u); err != nil {
		return nil
	}
	return u
}

// SaveUser implements Store.
func (s *FileStore) SaveUser(u *models.User) {
	if u == nil {
		return
	}
	data, err := json.Marshal(u)
	if err != nil {
		return
	}
	s.write(KeyUser, data)
}

// Clear implements Store.
func (s *FileStore) Clear() {
	s.remove(KeyToken)
	s.remove(KeyUser)
}
