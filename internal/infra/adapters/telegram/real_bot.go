package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gamestore-backoffice/internal/config"
	"gamestore-backoffice/internal/domain/ports/adapter"
)

var _ adapter.BotAdapter = (*RealBotAdapter)(nil)

// RealBotAdapter talks to the Telegram Bot API through tgbotapi.
type RealBotAdapter struct {
	bot         *tgbotapi.BotAPI
	token       string
	fileBaseURL string
}

func NewRealBotAdapter(cfg *config.BotConfig) (*RealBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	return &RealBotAdapter{
		bot:         bot,
		token:       cfg.Token,
		fileBaseURL: strings.TrimRight(cfg.FileBaseURL, "/"),
	}, nil
}

func (r *RealBotAdapter) SendText(ctx context.Context, chatID int64, text string, replyTo int64) (adapter.SentMessage, error) {
	select {
	case <-ctx.Done():
		return adapter.SentMessage{}, ctx.Err()
	default:
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if replyTo != 0 {
		msg.ReplyToMessageID = int(replyTo)
	}
	sent, err := r.bot.Send(msg)
	if err != nil {
		return adapter.SentMessage{}, fmt.Errorf("send text: %w", err)
	}
	return adapter.SentMessage{MessageID: int64(sent.MessageID)}, nil
}

func (r *RealBotAdapter) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, replyTo int64) (adapter.SentMessage, error) {
	select {
	case <-ctx.Done():
		return adapter.SentMessage{}, ctx.Err()
	default:
	}

	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	msg.Caption = caption
	if replyTo != 0 {
		msg.ReplyToMessageID = int(replyTo)
	}
	sent, err := r.bot.Send(msg)
	if err != nil {
		return adapter.SentMessage{}, fmt.Errorf("send photo: %w", err)
	}
	return adapter.SentMessage{MessageID: int64(sent.MessageID)}, nil
}

// FileURL resolves a file id to a direct download URL on the bot file host.
func (r *RealBotAdapter) FileURL(ctx context.Context, fileID string) (string, error) {
	f, err := r.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("get file: %w", err)
	}
	return fmt.Sprintf("%s/bot%s/%s", r.fileBaseURL, r.token, f.FilePath), nil
}

func (r *RealBotAdapter) SetWebhook(ctx context.Context, url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("build webhook config: %w", err)
	}
	if _, err := r.bot.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	return nil
}
