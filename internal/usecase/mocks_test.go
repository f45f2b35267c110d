//go:build !integration

package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"gamestore-backoffice/internal/domain"
	"gamestore-backoffice/internal/domain/model"
	"gamestore-backoffice/internal/domain/ports/adapter"
)

// newTestLogger creates a silent logger for tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(nil)
	return &logger
}

// --- Mock Repositories (Ports) ---

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*model.ChatSession
	appended []*model.Message

	FindError   error // To simulate errors
	AppendError error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*model.ChatSession)}
}

func (f *fakeSessionRepo) put(s *model.ChatSession) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.ID] = s
}

func (f *fakeSessionRepo) FindByID(ctx context.Context, id string) (*model.ChatSession, error) {
	if f.FindError != nil {
		return nil, f.FindError
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[id]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSessionRepo) List(ctx context.Context, offset, limit int) ([]*model.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.ChatSession, 0, len(f.sessions))
	for _, s := range f.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSessionRepo) EnsureSession(ctx context.Context, id, visitorID, visitorName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[id]; !ok {
		f.sessions[id] = &model.ChatSession{ID: id, VisitorID: visitorID, VisitorName: visitorName}
	}
	return nil
}

func (f *fakeSessionRepo) AppendMessage(ctx context.Context, msg *model.Message) error {
	if f.AppendError != nil {
		return f.AppendError
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[msg.SessionID]; !ok {
		return domain.ErrNotFound
	}
	f.appended = append(f.appended, msg)
	s := f.sessions[msg.SessionID]
	s.LastMessage = msg.Text
	s.LastMessageType = msg.Type
	if msg.Sender == model.SenderAdmin {
		s.UnreadCount = 0
	} else {
		s.UnreadCount++
	}
	return nil
}

func (f *fakeSessionRepo) ListMessages(ctx context.Context, sessionID string) ([]*model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Message
	for _, m := range f.appended {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) MarkRead(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok {
		return domain.ErrNotFound
	}
	s.UnreadCount = 0
	for _, m := range f.appended {
		if m.SessionID == sessionID {
			m.Read = true
		}
	}
	return nil
}

func (f *fakeSessionRepo) CountSessions(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions), nil
}

func (f *fakeSessionRepo) SumUnread(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := 0
	for _, s := range f.sessions {
		sum += s.UnreadCount
	}
	return sum, nil
}

func (f *fakeSessionRepo) appendedMessages() []*model.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Message, len(f.appended))
	copy(out, f.appended)
	return out
}

type fakeThreadRegistry struct {
	mu      sync.Mutex
	anchors map[string]int64

	SetError error
}

func newFakeThreadRegistry() *fakeThreadRegistry {
	return &fakeThreadRegistry{anchors: make(map[string]int64)}
}

func (f *fakeThreadRegistry) Get(ctx context.Context, sessionID string) (int64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.anchors[sessionID]
	return id, ok
}

func (f *fakeThreadRegistry) SetIfAbsent(ctx context.Context, sessionID string, messageID int64) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.anchors[sessionID]; !ok {
		f.anchors[sessionID] = messageID
	}
	return nil
}

func (f *fakeThreadRegistry) FindSessionByMessageID(ctx context.Context, messageID int64) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for sid, mid := range f.anchors {
		if mid == messageID {
			return sid, true
		}
	}
	return "", false
}

// --- Mock Adapters (Ports) ---

type sentRecord struct {
	ChatID   int64
	Text     string
	PhotoURL string
	ReplyTo  int64
}

type fakeBot struct {
	mu     sync.Mutex
	sent   []sentRecord
	nextID int64

	SendError error
	FileError error
}

func newFakeBot() *fakeBot {
	return &fakeBot{nextID: 100}
}

func (f *fakeBot) SendText(ctx context.Context, chatID int64, text string, replyTo int64) (adapter.SentMessage, error) {
	if f.SendError != nil {
		return adapter.SentMessage{}, f.SendError
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.sent = append(f.sent, sentRecord{ChatID: chatID, Text: text, ReplyTo: replyTo})
	return adapter.SentMessage{MessageID: f.nextID}, nil
}

func (f *fakeBot) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, replyTo int64) (adapter.SentMessage, error) {
	if f.SendError != nil {
		return adapter.SentMessage{}, f.SendError
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.sent = append(f.sent, sentRecord{ChatID: chatID, Text: caption, PhotoURL: photoURL, ReplyTo: replyTo})
	return adapter.SentMessage{MessageID: f.nextID}, nil
}

func (f *fakeBot) FileURL(ctx context.Context, fileID string) (string, error) {
	if f.FileError != nil {
		return "", f.FileError
	}
	return "https://files.example.test/" + fileID, nil
}

func (f *fakeBot) SetWebhook(ctx context.Context, url string) error { return nil }

func (f *fakeBot) sentMessages() []sentRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentRecord, len(f.sent))
	copy(out, f.sent)
	return out
}

func (f *fakeBot) lastSent() sentRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}
