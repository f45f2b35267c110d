// File: internal/usecase/chat_uc.go
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"gamestore-backoffice/internal/domain"
	"gamestore-backoffice/internal/domain/model"
	"gamestore-backoffice/internal/domain/ports/repository"
)

// Compile-time check
var _ ChatUseCase = (*chatUC)(nil)

// ChatUseCase covers the web-side chat operations: the admin dashboard's
// read/send surface and the visitor widget's message ingress.
type ChatUseCase interface {
	ListSessions(ctx context.Context, offset, limit int) ([]*model.ChatSession, error)
	GetSession(ctx context.Context, sessionID string) (*model.ChatSession, error)
	ListMessages(ctx context.Context, sessionID string) ([]*model.Message, error)
	// SendAdminMessage appends an admin message with provenance=web, which
	// feeds the Telegram mirror.
	SendAdminMessage(ctx context.Context, sessionID, text, imageURL string) (*model.Message, error)
	// AppendVisitorMessage creates the session on first contact and appends
	// the visitor message, which feeds the outbound relay. Returns the
	// session id actually used (generated when the caller supplies none).
	AppendVisitorMessage(ctx context.Context, sessionID, visitorID, visitorName, text, imageURL string) (string, *model.Message, error)
	MarkRead(ctx context.Context, sessionID string) error
	CountSessions(ctx context.Context) (int, error)
}

type chatUC struct {
	sessions repository.ChatSessionRepository
	log      *zerolog.Logger
}

func NewChatUseCase(sessions repository.ChatSessionRepository, log *zerolog.Logger) *chatUC {
	return &chatUC{sessions: sessions, log: log}
}

func (c *chatUC) ListSessions(ctx context.Context, offset, limit int) ([]*model.ChatSession, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return c.sessions.List(ctx, offset, limit)
}

func (c *chatUC) GetSession(ctx context.Context, sessionID string) (*model.ChatSession, error) {
	return c.sessions.FindByID(ctx, sessionID)
}

func (c *chatUC) ListMessages(ctx context.Context, sessionID string) ([]*model.Message, error) {
	if _, err := c.sessions.FindByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return c.sessions.ListMessages(ctx, sessionID)
}

func (c *chatUC) SendAdminMessage(ctx context.Context, sessionID, text, imageURL string) (*model.Message, error) {
	if _, err := c.sessions.FindByID(ctx, sessionID); err != nil {
		return nil, err
	}
	text, contentType, err := normalizeContent(text, imageURL)
	if err != nil {
		return nil, err
	}
	msg := model.NewAdminMessage(ulid.Make().String(), sessionID, text, contentType, imageURL, model.ViaWeb)
	if err := c.sessions.AppendMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("append admin message: %w", err)
	}
	return msg, nil
}

func (c *chatUC) AppendVisitorMessage(ctx context.Context, sessionID, visitorID, visitorName, text, imageURL string) (string, *model.Message, error) {
	text, contentType, err := normalizeContent(text, imageURL)
	if err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(sessionID) == "" {
		sessionID = "conv_" + strings.ToLower(ulid.Make().String())
	}
	if err := c.sessions.EnsureSession(ctx, sessionID, visitorID, visitorName); err != nil {
		return "", nil, fmt.Errorf("ensure session: %w", err)
	}
	msg := model.NewVisitorMessage(ulid.Make().String(), sessionID, text, contentType, imageURL)
	if err := c.sessions.AppendMessage(ctx, msg); err != nil {
		return "", nil, fmt.Errorf("append visitor message: %w", err)
	}
	return sessionID, msg, nil
}

func (c *chatUC) CountSessions(ctx context.Context) (int, error) {
	return c.sessions.CountSessions(ctx)
}

func (c *chatUC) MarkRead(ctx context.Context, sessionID string) error {
	if _, err := c.sessions.FindByID(ctx, sessionID); err != nil {
		return err
	}
	return c.sessions.MarkRead(ctx, sessionID)
}

func normalizeContent(text, imageURL string) (string, model.ContentType, error) {
	contentType := model.ContentText
	if imageURL != "" {
		contentType = model.ContentImage
		if strings.TrimSpace(text) == "" {
			text = model.ImagePlaceholder
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", "", domain.ErrInvalidArgument
	}
	return text, contentType, nil
}
