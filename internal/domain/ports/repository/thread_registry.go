package repository

import "context"

// -----------------------------
// Thread Registry
// -----------------------------

// ThreadRegistry maps a session id to the Telegram message id anchoring its
// reply-thread. The registry is monotonic: anchors are set once and never
// deleted. A stale anchor is harmless; Telegram accepts replies to any
// message in the chat.
type ThreadRegistry interface {
	// Get fails softly: any storage error reads as "absent", since a missing
	// anchor only disables threading, it must never block delivery.
	Get(ctx context.Context, sessionID string) (int64, bool)
	// SetIfAbsent registers the anchor unless one already exists
	// (first-notification-wins). Idempotent; errors are for logging only.
	SetIfAbsent(ctx context.Context, sessionID string, messageID int64) error
	// FindSessionByMessageID is the reverse lookup used as a secondary
	// resolution path for inbound replies. Soft-fail like Get.
	FindSessionByMessageID(ctx context.Context, messageID int64) (string, bool)
}
