// File: internal/usecase/relay_outbound_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"gamestore-backoffice/internal/domain"
	"gamestore-backoffice/internal/domain/marker"
	"gamestore-backoffice/internal/domain/model"
	"gamestore-backoffice/internal/domain/ports/adapter"
	"gamestore-backoffice/internal/domain/ports/repository"
	"gamestore-backoffice/internal/infra/metrics"
)

// Compile-time check
var _ OutboundRelayUseCase = (*outboundRelayUC)(nil)

// OutboundRelayUseCase notifies the admin on Telegram about new visitor
// messages, threading each session's notifications under its anchor.
type OutboundRelayUseCase interface {
	HandleVisitorMessage(ctx context.Context, ev *model.MessageEvent) error
}

type outboundRelayUC struct {
	sessions    repository.ChatSessionRepository
	threads     repository.ThreadRegistry
	bot         adapter.BotAdapter
	adminChatID int64
	log         *zerolog.Logger
}

func NewOutboundRelayUseCase(
	sessions repository.ChatSessionRepository,
	threads repository.ThreadRegistry,
	bot adapter.BotAdapter,
	adminChatID int64,
	log *zerolog.Logger,
) *outboundRelayUC {
	return &outboundRelayUC{sessions: sessions, threads: threads, bot: bot, adminChatID: adminChatID, log: log}
}

func (u *outboundRelayUC) HandleVisitorMessage(ctx context.Context, ev *model.MessageEvent) error {
	if ev.Sender != model.SenderVisitor {
		return nil
	}

	// Display metadata is advisory: fall back to the raw session id when the
	// session document cannot be read.
	visitorLabel := ev.SessionID
	if s, err := u.sessions.FindByID(ctx, ev.SessionID); err == nil {
		visitorLabel = s.DisplayName()
	} else if !errors.Is(err, domain.ErrNotFound) {
		u.log.Warn().Err(err).Str("session_id", ev.SessionID).Msg("outbound: session lookup failed, using raw id")
	}

	header := fmt.Sprintf("New text from visitor %s", visitorLabel)
	body := marker.Encode(header, ev.SessionID) + "\n\n"

	anchor, hadAnchor := u.threads.Get(ctx, ev.SessionID)

	var sent adapter.SentMessage
	var err error
	if ev.Type == model.ContentImage && ev.ImageURL != "" {
		caption := body + textOrPlaceholder(ev.Text)
		sent, err = u.bot.SendPhoto(ctx, u.adminChatID, ev.ImageURL, caption, anchor)
	} else {
		sent, err = u.bot.SendText(ctx, u.adminChatID, body+ev.Text, anchor)
	}
	if err != nil {
		metrics.IncNotification("outbound", false)
		// The chat store write already succeeded and is the source of truth;
		// at-least-once event delivery covers the retry.
		return fmt.Errorf("outbound send: %w", err)
	}
	metrics.IncNotification("outbound", true)

	// First-notification-wins: only register when no anchor existed before
	// this send. SetIfAbsent keeps a concurrent winner intact.
	if !hadAnchor {
		if err := u.threads.SetIfAbsent(ctx, ev.SessionID, sent.MessageID); err != nil {
			u.log.Warn().Err(err).Str("session_id", ev.SessionID).Int64("message_id", sent.MessageID).
				Msg("outbound: anchor registration failed; future notifications start a new thread")
		} else {
			metrics.IncAnchorRegistered()
		}
	}

	u.log.Info().Str("session_id", ev.SessionID).Bool("threaded", hadAnchor).
		Msg("visitor message relayed to admin")
	return nil
}

func textOrPlaceholder(s string) string {
	if s == "" {
		return model.ImagePlaceholder
	}
	return s
}
