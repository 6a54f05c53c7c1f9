package store

import (
	"context"

	"github.com/oshokin/transformer-sentry/internal/domain/safety"
)

// Gateway is the soft-failing boundary to the shared state document.
// Neither operation ever returns an error: failures are logged and counted,
// Read degrades to an all-defaults snapshot and Write becomes a no-op.
// Callers must not branch on store outcomes.
type Gateway interface {
	// Read returns the latest known snapshot, never nil.
	Read(ctx context.Context) *safety.Snapshot
	// Write merges the named fields into the state document.
	Write(ctx context.Context, fields map[string]any)
}
