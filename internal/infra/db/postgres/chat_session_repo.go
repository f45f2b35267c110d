// File: internal/infra/db/postgres/chat_session_repo.go
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"gamestore-backoffice/internal/domain"
	"gamestore-backoffice/internal/domain/model"
	"gamestore-backoffice/internal/domain/ports/repository"
)

// chatMessageChannel is the NOTIFY channel carrying one MessageEvent per
// appended message. The Listener subscribes to it.
const chatMessageChannel = "chat_message_created"

var _ repository.ChatSessionRepository = (*ChatSessionRepo)(nil)

// ChatSessionRepo persists chat sessions and their append-only message log.
type ChatSessionRepo struct {
	pool *pgxpool.Pool
}

func NewChatSessionRepo(pool *pgxpool.Pool) *ChatSessionRepo {
	return &ChatSessionRepo{pool: pool}
}

func (r *ChatSessionRepo) FindByID(ctx context.Context, id string) (*model.ChatSession, error) {
	const q = `
SELECT id, visitor_id, visitor_name, last_message, last_message_type,
       last_message_image_url, unread_count, created_at, updated_at
  FROM chat_sessions WHERE id = $1;`
	var s model.ChatSession
	var msgType string
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&s.ID, &s.VisitorID, &s.VisitorName, &s.LastMessage, &msgType,
		&s.LastMessageImageURL, &s.UnreadCount, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}
	s.LastMessageType = model.ContentType(msgType)
	return &s, nil
}

func (r *ChatSessionRepo) List(ctx context.Context, offset, limit int) ([]*model.ChatSession, error) {
	const q = `
SELECT id, visitor_id, visitor_name, last_message, last_message_type,
       last_message_image_url, unread_count, created_at, updated_at
  FROM chat_sessions ORDER BY updated_at DESC OFFSET $1 LIMIT $2;`
	rows, err := r.pool.Query(ctx, q, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []*model.ChatSession
	for rows.Next() {
		var s model.ChatSession
		var msgType string
		if err := rows.Scan(
			&s.ID, &s.VisitorID, &s.VisitorName, &s.LastMessage, &msgType,
			&s.LastMessageImageURL, &s.UnreadCount, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s.LastMessageType = model.ContentType(msgType)
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *ChatSessionRepo) EnsureSession(ctx context.Context, id, visitorID, visitorName string) error {
	const q = `
INSERT INTO chat_sessions (id, visitor_id, visitor_name)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO NOTHING;`
	if _, err := r.pool.Exec(ctx, q, id, visitorID, visitorName); err != nil {
		return fmt.Errorf("ensure session: %w", err)
	}
	return nil
}

// AppendMessage inserts the message, refreshes the session's preview fields
// and unread counter, and publishes the change event, all in one
// transaction. The counter resets on admin messages and increments on
// visitor messages.
func (r *ChatSessionRepo) AppendMessage(ctx context.Context, m *model.Message) error {
	payload, err := json.Marshal(model.MessageEvent{
		MessageID: m.ID,
		SessionID: m.SessionID,
		Sender:    m.Sender,
		SentVia:   m.SentVia,
		Type:      m.Type,
		Text:      m.Text,
		ImageURL:  m.ImageURL,
	})
	if err != nil {
		return fmt.Errorf("encode message event: %w", err)
	}

	return r.pool.BeginTxFunc(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		const qMsg = `
INSERT INTO chat_messages (id, session_id, sender, body, type, image_url, read, sent_via, created_at)
VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7, $8);`
		if _, err := tx.Exec(ctx, qMsg,
			m.ID, m.SessionID, string(m.Sender), m.Text, string(m.Type), m.ImageURL,
			string(m.SentVia), m.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert message: %w", err)
		}

		const qSess = `
UPDATE chat_sessions SET
  last_message = $2,
  last_message_type = $3,
  last_message_image_url = $4,
  unread_count = CASE WHEN $5 THEN 0 ELSE unread_count + 1 END,
  updated_at = NOW()
WHERE id = $1;`
		tag, err := tx.Exec(ctx, qSess,
			m.SessionID, m.Text, string(m.Type), m.ImageURL, m.Sender == model.SenderAdmin,
		)
		if err != nil {
			return fmt.Errorf("update session preview: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}

		if _, err := tx.Exec(ctx, `SELECT pg_notify($1, $2);`, chatMessageChannel, string(payload)); err != nil {
			return fmt.Errorf("notify message event: %w", err)
		}
		return nil
	})
}

func (r *ChatSessionRepo) ListMessages(ctx context.Context, sessionID string) ([]*model.Message, error) {
	const q = `
SELECT id, session_id, sender, body, type, image_url, read, sent_via, created_at
  FROM chat_messages WHERE session_id = $1 ORDER BY created_at ASC, id ASC;`
	rows, err := r.pool.Query(ctx, q, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []*model.Message
	for rows.Next() {
		var m model.Message
		var sender, msgType, via string
		if err := rows.Scan(&m.ID, &m.SessionID, &sender, &m.Text, &msgType, &m.ImageURL, &m.Read, &via, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Sender = model.Sender(sender)
		m.Type = model.ContentType(msgType)
		m.SentVia = model.Provenance(via)
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *ChatSessionRepo) MarkRead(ctx context.Context, sessionID string) error {
	return r.pool.BeginTxFunc(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE chat_sessions SET unread_count = 0 WHERE id = $1;`, sessionID); err != nil {
			return fmt.Errorf("reset unread: %w", err)
		}
		if _, err := tx.Exec(ctx, `UPDATE chat_messages SET read = TRUE WHERE session_id = $1 AND NOT read;`, sessionID); err != nil {
			return fmt.Errorf("mark messages read: %w", err)
		}
		return nil
	})
}

func (r *ChatSessionRepo) CountSessions(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM chat_sessions;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

func (r *ChatSessionRepo) SumUnread(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(unread_count), 0) FROM chat_sessions;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sum unread: %w", err)
	}
	return n, nil
}
