package invites

import "context"

type Repository interface {
	// AcceptPending marks every pending invite addressed to the email as
	// accepted and returns the site names, in insertion order.
	AcceptPending(ctx context.Context, email string) ([]string, error)
}
