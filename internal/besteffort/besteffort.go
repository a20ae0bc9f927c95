// Package besteffort marks operations whose failure is intentionally
// ignored because the caller's correctness does not depend on their success,
// e.g. the server-side logout call fired after a local sign-out. Using a
// named wrapper instead of a bare discarded error keeps the intent visible
// at the call site and testable in isolation.
package besteffort

import (
	"context"

	"github.com/cliniclink/cliniclink/internal/logging"
)

// Do runs f and swallows its error. When a logger is provided, the failure
// is recorded at debug level under the given operation name.
func Do(ctx context.Context, log logging.Logger, op string, f func() error) {
	if err := f(); err != nil && log != nil {
		log.Debug(ctx, "best-effort operation failed", "op", op, "error", err)
	}
}
