// File: internal/usecase/relay_router.go
package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"gamestore-backoffice/internal/domain/model"
)

// RelayRouter fans a chat-store change event out to the handler for its
// direction. Provenance is the loop breaker: admin messages that were
// relayed in from Telegram trigger nothing on the way back out.
type RelayRouter struct {
	outbound OutboundRelayUseCase
	mirror   MirrorUseCase
	log      *zerolog.Logger
}

func NewRelayRouter(outbound OutboundRelayUseCase, mirror MirrorUseCase, log *zerolog.Logger) *RelayRouter {
	return &RelayRouter{outbound: outbound, mirror: mirror, log: log}
}

func (r *RelayRouter) Route(ctx context.Context, ev *model.MessageEvent) error {
	switch {
	case ev.Sender == model.SenderVisitor:
		return r.outbound.HandleVisitorMessage(ctx, ev)
	case ev.Sender == model.SenderAdmin && ev.SentVia == model.ViaWeb:
		return r.mirror.HandleAdminWebMessage(ctx, ev)
	default:
		// admin via telegram: suppressed to avoid a relay feedback loop
		r.log.Debug().Str("session_id", ev.SessionID).Str("sender", string(ev.Sender)).
			Str("sent_via", string(ev.SentVia)).Msg("relay: event suppressed")
		return nil
	}
}
