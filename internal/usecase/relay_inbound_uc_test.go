//go:build !integration

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gamestore-backoffice/internal/domain/model"
)

func replyUpdate(text, replyText string, replyMessageID int64) InboundUpdate {
	return InboundUpdate{
		HasMessage:     true,
		ChatID:         testAdminChatID,
		Text:           text,
		IsReply:        true,
		ReplyText:      replyText,
		ReplyMessageID: replyMessageID,
	}
}

func newInboundEnv() (*fakeSessionRepo, *fakeThreadRegistry, *fakeBot, InboundRelayUseCase) {
	repo := newFakeSessionRepo()
	threads := newFakeThreadRegistry()
	bot := newFakeBot()
	uc := NewInboundRelayUseCase(repo, threads, bot, testAdminChatID, newTestLogger())
	return repo, threads, bot, uc
}

func TestInboundReplyWithMarkerRelays(t *testing.T) {
	repo, _, _, uc := newInboundEnv()
	repo.put(&model.ChatSession{ID: "conv_s1", VisitorName: "Alice", UnreadCount: 2})

	upd := replyUpdate("Hi there!", "New text from visitor Alice\n[Session: conv_s1]\n\nHello", 101)
	outcome, err := uc.HandleUpdate(context.Background(), upd)
	if err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	if outcome != OutcomeRelayed {
		t.Fatalf("got outcome %q, want %q", outcome, OutcomeRelayed)
	}

	appended := repo.appendedMessages()
	if len(appended) != 1 {
		t.Fatalf("got %d appended messages, want 1", len(appended))
	}
	msg := appended[0]
	if msg.SessionID != "conv_s1" || msg.Sender != model.SenderAdmin || msg.SentVia != model.ViaTelegram {
		t.Fatalf("got session=%s sender=%s via=%s, want conv_s1/admin/telegram", msg.SessionID, msg.Sender, msg.SentVia)
	}
	if msg.Text != "Hi there!" {
		t.Errorf("got text %q, want %q", msg.Text, "Hi there!")
	}
	if repo.sessions["conv_s1"].UnreadCount != 0 {
		t.Errorf("unread count = %d after admin reply, want 0", repo.sessions["conv_s1"].UnreadCount)
	}
}

func TestInboundRegistryFallbackWhenMarkerMissing(t *testing.T) {
	repo, threads, _, uc := newInboundEnv()
	repo.put(&model.ChatSession{ID: "conv_s1"})
	_ = threads.SetIfAbsent(context.Background(), "conv_s1", 101)

	// Replied-to text carries no marker (e.g. truncated by a client).
	outcome, err := uc.HandleUpdate(context.Background(), replyUpdate("Hi", "New text from visitor Alice", 101))
	if err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	if outcome != OutcomeRelayed {
		t.Fatalf("got outcome %q, want %q", outcome, OutcomeRelayed)
	}
	if len(repo.appendedMessages()) != 1 {
		t.Fatal("reply resolved via registry was not appended")
	}
}

func TestInboundUnresolvedReplyNotifiesAndDropsNothing(t *testing.T) {
	repo, _, bot, uc := newInboundEnv()
	repo.put(&model.ChatSession{ID: "conv_s1"})

	outcome, err := uc.HandleUpdate(context.Background(), replyUpdate("Hi", "some unrelated message", 999))
	if err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	if outcome != OutcomeUnresolved {
		t.Fatalf("got outcome %q, want %q", outcome, OutcomeUnresolved)
	}
	if len(repo.appendedMessages()) != 0 {
		t.Fatal("unresolved reply was appended to the chat store")
	}
	if !strings.Contains(bot.lastSent().Text, "Could not identify the chat session") {
		t.Errorf("admin did not receive the unresolved notice: %q", bot.lastSent().Text)
	}
}

func TestInboundUnauthorizedChat(t *testing.T) {
	repo, _, bot, uc := newInboundEnv()
	repo.put(&model.ChatSession{ID: "conv_s1"})

	upd := replyUpdate("Hi", "[Session: conv_s1]", 101)
	upd.ChatID = 12345
	outcome, err := uc.HandleUpdate(context.Background(), upd)
	if err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	if outcome != OutcomeUnauthorized {
		t.Fatalf("got outcome %q, want %q", outcome, OutcomeUnauthorized)
	}
	if len(repo.appendedMessages()) != 0 {
		t.Fatal("unauthorized update reached the chat store")
	}
	last := bot.lastSent()
	if last.ChatID != 12345 || !strings.Contains(last.Text, "admin use only") {
		t.Errorf("unauthorized notice not sent to sender: %+v", last)
	}
}

func TestInboundNonReplyGetsUsageHint(t *testing.T) {
	_, _, bot, uc := newInboundEnv()

	outcome, err := uc.HandleUpdate(context.Background(), InboundUpdate{
		HasMessage: true,
		ChatID:     testAdminChatID,
		Text:       "hello?",
	})
	if err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	if outcome != OutcomeNotAReply {
		t.Fatalf("got outcome %q, want %q", outcome, OutcomeNotAReply)
	}
	if !strings.Contains(bot.lastSent().Text, "use the Reply button") {
		t.Errorf("admin did not receive usage hint: %q", bot.lastSent().Text)
	}
}

func TestInboundUnknownSessionNotifies(t *testing.T) {
	repo, _, bot, uc := newInboundEnv()

	outcome, err := uc.HandleUpdate(context.Background(), replyUpdate("Hi", "[Session: conv_gone]", 101))
	if err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	if outcome != OutcomeUnknownSession {
		t.Fatalf("got outcome %q, want %q", outcome, OutcomeUnknownSession)
	}
	if len(repo.appendedMessages()) != 0 {
		t.Fatal("missing session must not be created by an admin reply")
	}
	if !strings.Contains(bot.lastSent().Text, "conv_gone") {
		t.Errorf("notice does not name the missing session: %q", bot.lastSent().Text)
	}
}

func TestInboundEmptyMessageNotifies(t *testing.T) {
	repo, _, bot, uc := newInboundEnv()
	repo.put(&model.ChatSession{ID: "conv_s1"})

	outcome, err := uc.HandleUpdate(context.Background(), replyUpdate("   ", "[Session: conv_s1]", 101))
	if err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	if outcome != OutcomeEmptyMessage {
		t.Fatalf("got outcome %q, want %q", outcome, OutcomeEmptyMessage)
	}
	if len(repo.appendedMessages()) != 0 {
		t.Fatal("blank reply was appended")
	}
	if !strings.Contains(bot.lastSent().Text, "cannot be empty") {
		t.Errorf("admin did not receive empty-message notice: %q", bot.lastSent().Text)
	}
}

func TestInboundPhotoReply(t *testing.T) {
	repo, _, _, uc := newInboundEnv()
	repo.put(&model.ChatSession{ID: "conv_s1"})

	upd := replyUpdate("", "[Session: conv_s1]", 101)
	upd.PhotoFileID = "file123"
	upd.Caption = "screenshot"
	outcome, err := uc.HandleUpdate(context.Background(), upd)
	if err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	if outcome != OutcomeRelayed {
		t.Fatalf("got outcome %q, want %q", outcome, OutcomeRelayed)
	}

	msg := repo.appendedMessages()[0]
	if msg.Type != model.ContentImage {
		t.Errorf("got type %s, want image", msg.Type)
	}
	if msg.ImageURL != "https://files.example.test/file123" {
		t.Errorf("got image url %q", msg.ImageURL)
	}
	if msg.Text != "screenshot" {
		t.Errorf("got text %q, want caption", msg.Text)
	}
}

func TestInboundPhotoResolutionFailure(t *testing.T) {
	repo, _, bot, uc := newInboundEnv()
	repo.put(&model.ChatSession{ID: "conv_s1"})
	bot.FileError = errors.New("file api down")

	upd := replyUpdate("", "[Session: conv_s1]", 101)
	upd.PhotoFileID = "file123"
	outcome, err := uc.HandleUpdate(context.Background(), upd)
	if err == nil {
		t.Fatal("expected error when photo resolution fails")
	}
	if outcome != OutcomeFailed {
		t.Fatalf("got outcome %q, want %q", outcome, OutcomeFailed)
	}
	if len(repo.appendedMessages()) != 0 {
		t.Fatal("failed photo reply was appended")
	}
	if !strings.Contains(bot.lastSent().Text, "Failed to process image") {
		t.Errorf("admin did not receive image failure notice: %q", bot.lastSent().Text)
	}
}

func TestInboundNoMessageIsNoop(t *testing.T) {
	_, _, bot, uc := newInboundEnv()

	outcome, err := uc.HandleUpdate(context.Background(), InboundUpdate{})
	if err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	if outcome != OutcomeNoop {
		t.Fatalf("got outcome %q, want %q", outcome, OutcomeNoop)
	}
	if len(bot.sentMessages()) != 0 {
		t.Fatal("noop update triggered a send")
	}
}
