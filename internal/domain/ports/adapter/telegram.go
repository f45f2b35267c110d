// File: internal/domain/ports/adapter/telegram.go
package adapter

import "context"

// SentMessage carries the Telegram-assigned id of a delivered message,
// needed to register thread anchors.
type SentMessage struct {
	MessageID int64
}

// BotAdapter is the outbound surface toward the Telegram Bot API.
// A replyTo of zero sends an unthreaded message.
type BotAdapter interface {
	SendText(ctx context.Context, chatID int64, text string, replyTo int64) (SentMessage, error)
	SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, replyTo int64) (SentMessage, error)
	// FileURL resolves a Telegram file id to a directly fetchable URL.
	FileURL(ctx context.Context, fileID string) (string, error)
	SetWebhook(ctx context.Context, url string) error
}
