// File: internal/usecase/relay_inbound_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"gamestore-backoffice/internal/domain"
	"gamestore-backoffice/internal/domain/marker"
	"gamestore-backoffice/internal/domain/model"
	"gamestore-backoffice/internal/domain/ports/adapter"
	"gamestore-backoffice/internal/domain/ports/repository"
	"gamestore-backoffice/internal/infra/metrics"
)

// Compile-time check
var _ InboundRelayUseCase = (*inboundRelayUC)(nil)

// InboundUpdate is the webhook payload reduced to what the relay needs.
// The HTTP layer translates the raw Telegram update into this shape.
type InboundUpdate struct {
	HasMessage bool
	ChatID     int64
	Text       string
	Caption    string
	// PhotoFileID is the file id of the highest-resolution photo variant,
	// empty for plain text messages.
	PhotoFileID string

	IsReply bool
	// ReplyText is the text or caption of the replied-to message.
	ReplyText string
	// ReplyMessageID is the Telegram id of the replied-to message.
	ReplyMessageID int64
}

// InboundOutcome labels how an update was resolved; every outcome including
// the user-condition ones acknowledges the webhook successfully.
type InboundOutcome string

const (
	OutcomeRelayed        InboundOutcome = "relayed"
	OutcomeNoop           InboundOutcome = "noop"
	OutcomeUnauthorized   InboundOutcome = "unauthorized"
	OutcomeNotAReply      InboundOutcome = "not_a_reply"
	OutcomeUnresolved     InboundOutcome = "unresolved"
	OutcomeUnknownSession InboundOutcome = "unknown_session"
	OutcomeEmptyMessage   InboundOutcome = "empty_message"
	OutcomeFailed         InboundOutcome = "failed"
)

const (
	replyUsageHint = "ℹ️ To reply to a customer, please use the Reply button on their message.\n\n" +
		"Don't send a new message - tap and hold (or right-click) on the customer's message and select Reply."
	unauthorizedNotice   = "Unauthorized. This bot is for admin use only."
	unresolvedNotice     = "❌ Could not identify the chat session. Please reply to a customer message that contains [Session: ...]"
	emptyMessageNotice   = "❌ Message cannot be empty."
	imageFailedNotice    = "❌ Failed to process image. Please try again."
	sessionMissingNotice = "❌ Chat session not found: %s"
)

// InboundRelayUseCase turns an admin's Telegram reply into a stored admin
// message on the correct chat session.
type InboundRelayUseCase interface {
	HandleUpdate(ctx context.Context, upd InboundUpdate) (InboundOutcome, error)
}

type inboundRelayUC struct {
	sessions    repository.ChatSessionRepository
	threads     repository.ThreadRegistry
	bot         adapter.BotAdapter
	adminChatID int64
	log         *zerolog.Logger
}

func NewInboundRelayUseCase(
	sessions repository.ChatSessionRepository,
	threads repository.ThreadRegistry,
	bot adapter.BotAdapter,
	adminChatID int64,
	log *zerolog.Logger,
) *inboundRelayUC {
	return &inboundRelayUC{sessions: sessions, threads: threads, bot: bot, adminChatID: adminChatID, log: log}
}

// HandleUpdate runs the inbound state machine. User-condition outcomes
// (unauthorized sender, non-reply, unresolvable or unknown session, empty
// content) are surfaced to the admin via a bot notice and return a nil
// error: they are expected, human-recoverable conditions, never failures.
// A non-nil error means a collaborator call failed mid-relay.
func (u *inboundRelayUC) HandleUpdate(ctx context.Context, upd InboundUpdate) (InboundOutcome, error) {
	outcome, err := u.handle(ctx, upd)
	metrics.IncInbound(string(outcome))
	return outcome, err
}

func (u *inboundRelayUC) handle(ctx context.Context, upd InboundUpdate) (InboundOutcome, error) {
	// 1. Updates without a message payload (edits, service events) are no-ops.
	if !upd.HasMessage {
		return OutcomeNoop, nil
	}

	// 2. Authenticate: only the configured admin chat may drive the relay.
	if upd.ChatID != u.adminChatID {
		u.notify(ctx, upd.ChatID, unauthorizedNotice)
		u.log.Warn().Int64("chat_id", upd.ChatID).Msg("inbound: update from unauthorized chat")
		return OutcomeUnauthorized, nil
	}

	// 3. Non-reply admin messages have no destination session.
	if !upd.IsReply {
		u.notify(ctx, u.adminChatID, replyUsageHint)
		return OutcomeNotAReply, nil
	}

	// 4. Resolve the target session: the embedded marker is the durable
	// channel; the registry reverse lookup covers notifications whose text
	// was truncated or quoted without the marker.
	sessionID, ok := marker.Decode(upd.ReplyText)
	if !ok {
		sessionID, ok = u.threads.FindSessionByMessageID(ctx, upd.ReplyMessageID)
	}
	if !ok {
		u.notify(ctx, u.adminChatID, unresolvedNotice)
		u.log.Warn().Int64("reply_message_id", upd.ReplyMessageID).Msg("inbound: could not resolve session from reply")
		return OutcomeUnresolved, nil
	}

	// 5. The session must already exist; the admin side never creates one.
	if _, err := u.sessions.FindByID(ctx, sessionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			u.notify(ctx, u.adminChatID, fmt.Sprintf(sessionMissingNotice, sessionID))
			return OutcomeUnknownSession, nil
		}
		return OutcomeFailed, fmt.Errorf("inbound: session lookup: %w", err)
	}

	// 6. Extract content.
	text := upd.Text
	contentType := model.ContentText
	imageURL := ""
	if upd.PhotoFileID != "" {
		url, err := u.bot.FileURL(ctx, upd.PhotoFileID)
		if err != nil {
			u.notify(ctx, u.adminChatID, imageFailedNotice)
			return OutcomeFailed, fmt.Errorf("inbound: resolve photo: %w", err)
		}
		imageURL = url
		contentType = model.ContentImage
		text = textOrPlaceholder(upd.Caption)
	}
	if strings.TrimSpace(text) == "" && imageURL == "" {
		u.notify(ctx, u.adminChatID, emptyMessageNotice)
		return OutcomeEmptyMessage, nil
	}

	// 7. Append with provenance=telegram so the mirror never echoes it back.
	msg := model.NewAdminMessage(ulid.Make().String(), sessionID, text, contentType, imageURL, model.ViaTelegram)
	if err := u.sessions.AppendMessage(ctx, msg); err != nil {
		return OutcomeFailed, fmt.Errorf("inbound: append message: %w", err)
	}

	u.log.Info().Str("session_id", sessionID).Str("type", string(contentType)).
		Msg("admin reply relayed to chat store")
	return OutcomeRelayed, nil
}

// notify sends a best-effort notice; a failed notice never changes the
// outcome of the update.
func (u *inboundRelayUC) notify(ctx context.Context, chatID int64, text string) {
	if _, err := u.bot.SendText(ctx, chatID, text, 0); err != nil {
		u.log.Warn().Err(err).Int64("chat_id", chatID).Msg("inbound: notice delivery failed")
	}
}
