package telegram

import (
	"context"
	"log"
	"sync/atomic"

	"gamestore-backoffice/internal/domain/ports/adapter"
)

var _ adapter.BotAdapter = (*NoopBotAdapter)(nil)

// NoopBotAdapter implements adapter.BotAdapter for local/dev testing.
// It logs messages instead of sending real Telegram messages and hands out
// sequential message ids.
type NoopBotAdapter struct {
	nextID int64
}

// NewNoopBotAdapter constructs the noop adapter.
func NewNoopBotAdapter() *NoopBotAdapter {
	return &NoopBotAdapter{}
}

func (b *NoopBotAdapter) SendText(ctx context.Context, chatID int64, text string, replyTo int64) (adapter.SentMessage, error) {
	id := atomic.AddInt64(&b.nextID, 1)
	log.Printf("[noop-telegram] to=%d reply_to=%d msg_id=%d text=%q\n", chatID, replyTo, id, text)
	return adapter.SentMessage{MessageID: id}, nil
}

func (b *NoopBotAdapter) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, replyTo int64) (adapter.SentMessage, error) {
	id := atomic.AddInt64(&b.nextID, 1)
	log.Printf("[noop-telegram] to=%d reply_to=%d msg_id=%d photo=%s caption=%q\n", chatID, replyTo, id, photoURL, caption)
	return adapter.SentMessage{MessageID: id}, nil
}

func (b *NoopBotAdapter) FileURL(ctx context.Context, fileID string) (string, error) {
	return "https://example.invalid/files/" + fileID, nil
}

func (b *NoopBotAdapter) SetWebhook(ctx context.Context, url string) error {
	log.Printf("[noop-telegram] set webhook: %s\n", url)
	return nil
}
