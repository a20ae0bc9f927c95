package tokenstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cliniclink/cliniclink/internal/client/models"
	"github.com/cliniclink/cliniclink/internal/common"
	"github.com/stretchr/testify/require"
)

func TestFileStore_TokenRoundTrip(t *testing.T) {
	s := NewFileStore(t.TempDir())

	require.Equal(t, "", s.LoadToken())

	s.SaveToken("demo-token-123")
	require.Equal(t, "demo-token-123", s.LoadToken())

	s.SaveToken("replacement")
	require.Equal(t, "replacement", s.LoadToken())
}

func TestFileStore_UserRoundTrip(t *testing.T) {
	s := NewFileStore(t.TempDir())

	require.Nil(t, s.LoadUser())

	u := &models.User{
		ID:        "u-1",
		FirstName: "Dana",
		LastName:  "Okafor",
		Email:     "dana@example.edu",
		Role:      common.RoleStudent,
	}
	s.SaveUser(u)

	got := s.LoadUser()
	require.NotNil(t, got)
	require.Equal(t, u, got)
}

func TestFileStore_CorruptedUserIsCacheMiss(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	s.SaveToken("demo-token-123")
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyUser), []byte("{not json"), 0o600))

	require.Nil(t, s.LoadUser())
	// The token entry is untouched by a bad user entry.
	require.Equal(t, "demo-token-123", s.LoadToken())
}

func TestFileStore_ClearTolerantOfAbsence(t *testing.T) {
	s := NewFileStore(t.TempDir())

	s.Clear() // nothing stored yet

	s.SaveToken("tok")
	s.SaveUser(&models.User{ID: "u-1"})
	s.Clear()

	require.Equal(t, "", s.LoadToken())
	require.Nil(t, s.LoadUser())

	s.Clear() // twice in a row
}

func TestFileStore_UnwritableDirSwallowed(t *testing.T) {
	// A path below an existing file can never be created; all operations
	// must degrade to absent values instead of failing.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	s := NewFileStore(filepath.Join(blocker, "nested"))
	s.SaveToken("tok")
	s.SaveUser(&models.User{ID: "u-1"})
	require.Equal(t, "", s.LoadToken())
	require.Nil(t, s.LoadUser())
	s.Clear()
}

func TestMemoryStore_SeededCorruptUser(t *testing.T) {
	s := NewMemoryStore()
	s.SaveToken("demo-token-123")
	s.SeedRawUser([]byte("][ garbage"))

	require.Nil(t, s.LoadUser())
	require.Equal(t, "demo-token-123", s.LoadToken())
}
