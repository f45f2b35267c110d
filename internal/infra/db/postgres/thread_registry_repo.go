// File: internal/infra/db/postgres/thread_registry_repo.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"

	"gamestore-backoffice/internal/domain/model"
	"gamestore-backoffice/internal/domain/ports/repository"
	"gamestore-backoffice/internal/infra/redis"
)

var _ repository.ThreadRegistry = (*ThreadRegistryRepo)(nil)

// ThreadRegistryRepo is the persisted thread registry, with an optional
// Redis cache in front. The table is the source of truth; the cache only
// saves a round-trip on hot sessions.
type ThreadRegistryRepo struct {
	pool  *pgxpool.Pool
	cache *redis.AnchorCache
	log   *zerolog.Logger
}

func NewThreadRegistryRepo(pool *pgxpool.Pool, cache *redis.AnchorCache, log *zerolog.Logger) *ThreadRegistryRepo {
	return &ThreadRegistryRepo{pool: pool, cache: cache, log: log}
}

func (r *ThreadRegistryRepo) fetch(ctx context.Context, sessionID string) (*model.ThreadAnchor, error) {
	a := &model.ThreadAnchor{SessionID: sessionID}
	err := r.pool.QueryRow(ctx,
		`SELECT message_id, updated_at FROM telegram_threads WHERE session_id = $1;`, sessionID).
		Scan(&a.MessageID, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Get reads the anchor for a session. Any failure reads as "absent": a
// missing anchor only costs thread continuity, never message delivery.
func (r *ThreadRegistryRepo) Get(ctx context.Context, sessionID string) (int64, bool) {
	if r.cache != nil {
		if id, ok := r.cache.Get(ctx, sessionID); ok {
			return id, true
		}
	}

	anchor, err := r.fetch(ctx, sessionID)
	if err != nil {
		if err != pgx.ErrNoRows {
			r.log.Warn().Err(err).Str("session_id", sessionID).Msg("thread registry read failed")
		}
		return 0, false
	}
	if r.cache != nil {
		_ = r.cache.Store(ctx, sessionID, anchor.MessageID)
	}
	return anchor.MessageID, true
}

// SetIfAbsent registers the anchor unless one exists already. The conflict
// clause makes the first notification win under concurrent sends.
func (r *ThreadRegistryRepo) SetIfAbsent(ctx context.Context, sessionID string, messageID int64) error {
	const q = `
INSERT INTO telegram_threads (session_id, message_id, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (session_id) DO NOTHING;`
	if _, err := r.pool.Exec(ctx, q, sessionID, messageID); err != nil {
		return fmt.Errorf("set anchor: %w", err)
	}

	// Cache whatever value actually won, not necessarily ours.
	if r.cache != nil {
		if anchor, err := r.fetch(ctx, sessionID); err == nil {
			_ = r.cache.Store(ctx, sessionID, anchor.MessageID)
		}
	}
	return nil
}

func (r *ThreadRegistryRepo) FindSessionByMessageID(ctx context.Context, messageID int64) (string, bool) {
	var sessionID string
	err := r.pool.QueryRow(ctx, `SELECT session_id FROM telegram_threads WHERE message_id = $1;`, messageID).Scan(&sessionID)
	if err != nil {
		if err != pgx.ErrNoRows {
			r.log.Warn().Err(err).Int64("message_id", messageID).Msg("thread registry reverse lookup failed")
		}
		return "", false
	}
	return sessionID, true
}
