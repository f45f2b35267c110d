package repository

import (
	"context"

	"gamestore-backoffice/internal/domain/model"
)

// -----------------------------
// Chat Sessions
// -----------------------------

// ChatSessionRepository is the relay core's view of the chat store.
// Messages are append-only; the core never deletes sessions.
type ChatSessionRepository interface {
	FindByID(ctx context.Context, id string) (*model.ChatSession, error)
	// List returns sessions ordered by last update, newest first.
	List(ctx context.Context, offset, limit int) ([]*model.ChatSession, error)
	// EnsureSession creates the session if it does not exist yet. Existing
	// sessions are left untouched.
	EnsureSession(ctx context.Context, id, visitorID, visitorName string) error
	// AppendMessage appends one message and refreshes the owning session's
	// preview fields in the same transaction. The unread counter is reset to
	// zero for admin messages and incremented for visitor messages. A change
	// event is published for the new message.
	AppendMessage(ctx context.Context, msg *model.Message) error
	ListMessages(ctx context.Context, sessionID string) ([]*model.Message, error)
	// MarkRead resets the unread counter and flags all messages as read.
	MarkRead(ctx context.Context, sessionID string) error
	CountSessions(ctx context.Context) (int, error)
	SumUnread(ctx context.Context) (int, error)
}
