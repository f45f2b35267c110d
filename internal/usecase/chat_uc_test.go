//go:build !integration

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gamestore-backoffice/internal/domain"
	"gamestore-backoffice/internal/domain/model"
)

func TestAppendVisitorMessageGeneratesSessionID(t *testing.T) {
	repo := newFakeSessionRepo()
	uc := NewChatUseCase(repo, newTestLogger())

	sid, msg, err := uc.AppendVisitorMessage(context.Background(), "", "v1", "Alice", "Hello", "")
	if err != nil {
		t.Fatalf("AppendVisitorMessage: %v", err)
	}
	if !strings.HasPrefix(sid, "conv_") {
		t.Errorf("generated session id %q lacks conv_ prefix", sid)
	}
	if msg.Sender != model.SenderVisitor || msg.SentVia != model.ViaWeb {
		t.Errorf("got sender=%s via=%s, want visitor via web", msg.Sender, msg.SentVia)
	}
	if repo.sessions[sid] == nil {
		t.Fatal("session was not created")
	}
	if repo.sessions[sid].UnreadCount != 1 {
		t.Errorf("unread count = %d, want 1", repo.sessions[sid].UnreadCount)
	}
}

func TestAppendVisitorMessageReusesSession(t *testing.T) {
	repo := newFakeSessionRepo()
	uc := NewChatUseCase(repo, newTestLogger())
	ctx := context.Background()

	sid, _, err := uc.AppendVisitorMessage(ctx, "conv_abc", "v1", "Alice", "one", "")
	if err != nil {
		t.Fatalf("first append: %v", err)
	}
	if sid != "conv_abc" {
		t.Fatalf("got session id %q, want conv_abc", sid)
	}
	if _, _, err := uc.AppendVisitorMessage(ctx, "conv_abc", "v1", "Alice", "two", ""); err != nil {
		t.Fatalf("second append: %v", err)
	}
	if n, _ := repo.CountSessions(ctx); n != 1 {
		t.Fatalf("got %d sessions, want 1", n)
	}
	if repo.sessions["conv_abc"].UnreadCount != 2 {
		t.Errorf("unread count = %d, want 2", repo.sessions["conv_abc"].UnreadCount)
	}
}

func TestAppendVisitorMessageImagePlaceholder(t *testing.T) {
	repo := newFakeSessionRepo()
	uc := NewChatUseCase(repo, newTestLogger())

	_, msg, err := uc.AppendVisitorMessage(context.Background(), "", "v1", "", "", "https://cdn.example.test/p.jpg")
	if err != nil {
		t.Fatalf("AppendVisitorMessage: %v", err)
	}
	if msg.Type != model.ContentImage {
		t.Errorf("got type %s, want image", msg.Type)
	}
	if msg.Text != model.ImagePlaceholder {
		t.Errorf("got text %q, want placeholder", msg.Text)
	}
}

func TestAppendVisitorMessageRejectsEmpty(t *testing.T) {
	uc := NewChatUseCase(newFakeSessionRepo(), newTestLogger())

	_, _, err := uc.AppendVisitorMessage(context.Background(), "", "v1", "", "   ", "")
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("got err %v, want ErrInvalidArgument", err)
	}
}

func TestSendAdminMessageRequiresSession(t *testing.T) {
	uc := NewChatUseCase(newFakeSessionRepo(), newTestLogger())

	_, err := uc.SendAdminMessage(context.Background(), "conv_missing", "hi", "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got err %v, want ErrNotFound", err)
	}
}
