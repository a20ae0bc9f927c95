package models

import "time"

// Credential document review states.
const (
	DocumentPending  = "pending"
	DocumentApproved = "approved"
	DocumentRejected = "rejected"
)

// CredentialDocument tracks a compliance document (license, immunization
// record, background check) uploaded to object storage.
type CredentialDocument struct {
	ID         string
	UserID     string
	Kind       string
	StorageKey string
	Status     string
	CreatedAt  time.Time
}
