// Package tokenstore persists the client's bearer token and cached user
// snapshot under fixed, product-prefixed keys.
//
// # Error policy
//
// All operations swallow storage errors by design: loss of the local cache is
// always recoverable (the session falls back to anonymous), so failures here
// surface as an absent value, never as an error the caller must handle.
// Corrupted serialized data is likewise treated as a cache miss.
package tokenstore

import "github.com/cliniclink/cliniclink/internal/client/models"

// Fixed storage keys, namespaced under the product prefix.
const (
	KeyToken = "cliniclink_token"
	KeyUser  = "cliniclink_user"
	KeyPrefs = "cliniclink_prefs"
)

// Store is durable key-value storage for the session credentials.
// Implementations must tolerate absent values and concurrent single-writer
// use; the session manager is the only writer in practice.
type Store interface {
	// LoadToken returns the stored bearer token, or "" when absent.
	LoadToken() string

	// SaveToken persists the token, overwriting any prior value.
	SaveToken(token string)

	// LoadUser returns the cached user snapshot, or nil when absent or
	// when the stored data cannot be deserialized.
	LoadUser() *models.User

	// SaveUser persists the serialized user snapshot.
	SaveUser(u *models.User)

	// Clear removes both the token and the user entries. Clearing an
	// already-empty store is a no-op.
	Clear()
}
