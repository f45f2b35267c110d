// File: internal/infra/db/postgres/listener.go
package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"

	"gamestore-backoffice/internal/domain/model"
	"gamestore-backoffice/internal/infra/metrics"
	"gamestore-backoffice/internal/infra/worker"
)

// Router receives decoded chat-store change events.
type Router interface {
	Route(ctx context.Context, ev *model.MessageEvent) error
}

// Listener holds a dedicated connection on the message NOTIFY channel and
// dispatches each event through the worker pool. Delivery is at-least-once
// from the relay's point of view: a dropped connection is reopened and the
// visitor can always resend, so handlers must tolerate duplicates and gaps
// are surfaced by the admin retrying.
type Listener struct {
	pool   *pgxpool.Pool
	router Router
	pw     *worker.Pool
	log    *zerolog.Logger
}

func NewListener(pool *pgxpool.Pool, router Router, pw *worker.Pool, log *zerolog.Logger) *Listener {
	return &Listener{pool: pool, router: router, pw: pw, log: log}
}

// Run listens until ctx is cancelled, reconnecting with backoff on failure.
func (l *Listener) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if err := l.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.log.Warn().Err(err).Dur("retry_in", backoff).Msg("listener: connection lost, reconnecting")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+chatMessageChannel); err != nil {
		return err
	}
	l.log.Info().Str("channel", chatMessageChannel).Msg("listener: subscribed")

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		l.dispatch(ctx, n)
	}
}

func (l *Listener) dispatch(ctx context.Context, n *pgconn.Notification) {
	var ev model.MessageEvent
	if err := json.Unmarshal([]byte(n.Payload), &ev); err != nil {
		metrics.IncChangeEvent("decode_error")
		l.log.Error().Err(err).Str("payload", n.Payload).Msg("listener: malformed event payload")
		return
	}

	task := func(ctx context.Context) error {
		return l.router.Route(ctx, &ev)
	}
	if err := l.pw.Submit(task); err != nil {
		metrics.IncChangeEvent("dropped")
		l.log.Error().Err(err).Str("session_id", ev.SessionID).Msg("listener: dispatch queue full, event dropped")
		return
	}
	metrics.IncChangeEvent("dispatched")
}
