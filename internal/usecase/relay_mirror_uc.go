// File: internal/usecase/relay_mirror_uc.go
package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"gamestore-backoffice/internal/domain/model"
	"gamestore-backoffice/internal/domain/ports/adapter"
	"gamestore-backoffice/internal/domain/ports/repository"
	"gamestore-backoffice/internal/infra/metrics"
)

// Compile-time check
var _ MirrorUseCase = (*mirrorUC)(nil)

const mirrorPrefix = "✉️ You replied from web:\n\n"

// MirrorUseCase forwards admin messages sent via the web dashboard into the
// session's existing Telegram thread, for visibility only. It never runs for
// provenance=telegram messages; that guard is what breaks the relay loop
// between the inbound and mirror directions.
type MirrorUseCase interface {
	HandleAdminWebMessage(ctx context.Context, ev *model.MessageEvent) error
}

type mirrorUC struct {
	threads     repository.ThreadRegistry
	bot         adapter.BotAdapter
	adminChatID int64
	log         *zerolog.Logger
}

func NewMirrorUseCase(threads repository.ThreadRegistry, bot adapter.BotAdapter, adminChatID int64, log *zerolog.Logger) *mirrorUC {
	return &mirrorUC{threads: threads, bot: bot, adminChatID: adminChatID, log: log}
}

func (u *mirrorUC) HandleAdminWebMessage(ctx context.Context, ev *model.MessageEvent) error {
	if ev.Sender != model.SenderAdmin || ev.SentVia != model.ViaWeb {
		return nil
	}

	anchor, ok := u.threads.Get(ctx, ev.SessionID)
	if !ok {
		// No thread to mirror into. The visitor's first message opens the
		// thread; creating one here would break that rule.
		u.log.Debug().Str("session_id", ev.SessionID).Msg("mirror: no thread anchor, skipping")
		return nil
	}

	body := mirrorPrefix + ev.Text

	var err error
	if ev.Type == model.ContentImage && ev.ImageURL != "" {
		_, err = u.bot.SendPhoto(ctx, u.adminChatID, ev.ImageURL, body, anchor)
	} else {
		_, err = u.bot.SendText(ctx, u.adminChatID, body, anchor)
	}
	if err != nil {
		metrics.IncNotification("mirror", false)
		return fmt.Errorf("mirror send: %w", err)
	}
	metrics.IncNotification("mirror", true)

	u.log.Info().Str("session_id", ev.SessionID).Msg("web reply mirrored to telegram thread")
	return nil
}
