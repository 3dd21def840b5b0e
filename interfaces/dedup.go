package interfaces

import "context"

type MessageDeduplicator interface {
	// FirstSeen records messageID and reports whether this is its first delivery.
	FirstSeen(ctx context.Context, messageID string) bool
	// Forget releases messageID so a later delivery is processed again.
	Forget(ctx context.Context, messageID string)
}
