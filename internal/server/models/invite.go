package models

import (
	"database/sql"
	"time"
)

// SiteInvite is a clinical site's invitation addressed to an email. Pending
// invites are auto-accepted when the invitee logs in.
type SiteInvite struct {
	ID         string
	SiteName   string
	Email      string
	AcceptedAt sql.NullTime
	CreatedAt  time.Time
}
