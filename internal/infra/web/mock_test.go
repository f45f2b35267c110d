//go:build !integration

package web

import (
	"context"
	"sync"

	"gamestore-backoffice/internal/domain"
	"gamestore-backoffice/internal/domain/model"
)

// --- Mock Repositories (Ports) ---

type mockChatRepo struct {
	mu       sync.Mutex
	sessions []*model.ChatSession
	messages map[string][]*model.Message

	FindError   error // To simulate errors
	ListError   error
	AppendError error
}

func newMockChatRepo() *mockChatRepo {
	return &mockChatRepo{messages: make(map[string][]*model.Message)}
}

func (m *mockChatRepo) FindByID(ctx context.Context, id string) (*model.ChatSession, error) {
	if m.FindError != nil {
		return nil, m.FindError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockChatRepo) List(ctx context.Context, offset, limit int) ([]*model.ChatSession, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	end := offset + limit
	if end > len(m.sessions) {
		end = len(m.sessions)
	}
	if offset >= len(m.sessions) {
		return []*model.ChatSession{}, nil
	}
	return m.sessions[offset:end], nil
}

func (m *mockChatRepo) EnsureSession(ctx context.Context, id, visitorID, visitorName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.ID == id {
			return nil
		}
	}
	m.sessions = append(m.sessions, &model.ChatSession{ID: id, VisitorID: visitorID, VisitorName: visitorName})
	return nil
}

func (m *mockChatRepo) AppendMessage(ctx context.Context, msg *model.Message) error {
	if m.AppendError != nil {
		return m.AppendError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[msg.SessionID] = append(m.messages[msg.SessionID], msg)
	for _, s := range m.sessions {
		if s.ID == msg.SessionID {
			s.LastMessage = msg.Text
			s.LastMessageType = msg.Type
			if msg.Sender == model.SenderAdmin {
				s.UnreadCount = 0
			} else {
				s.UnreadCount++
			}
		}
	}
	return nil
}

func (m *mockChatRepo) ListMessages(ctx context.Context, sessionID string) ([]*model.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.messages[sessionID], nil
}

func (m *mockChatRepo) MarkRead(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.ID == sessionID {
			s.UnreadCount = 0
		}
	}
	for _, msg := range m.messages[sessionID] {
		msg.Read = true
	}
	return nil
}

func (m *mockChatRepo) CountSessions(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions), nil
}

func (m *mockChatRepo) SumUnread(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum := 0
	for _, s := range m.sessions {
		sum += s.UnreadCount
	}
	return sum, nil
}

type mockCatalogRepo struct {
	mu    sync.Mutex
	items []*model.CatalogItem

	SaveError error
}

func (m *mockCatalogRepo) Save(ctx context.Context, item *model.CatalogItem) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, item)
	return nil
}

func (m *mockCatalogRepo) Update(ctx context.Context, item *model.CatalogItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.ID == item.ID {
			m.items[i] = item
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockCatalogRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockCatalogRepo) FindByID(ctx context.Context, id string) (*model.CatalogItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockCatalogRepo) ListByKind(ctx context.Context, kind model.CatalogKind, offset, limit int) ([]*model.CatalogItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.CatalogItem
	for _, it := range m.items {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	if out == nil {
		out = []*model.CatalogItem{}
	}
	return out, nil
}

func (m *mockCatalogRepo) CountByKind(ctx context.Context) (map[model.CatalogKind]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[model.CatalogKind]int)
	for _, it := range m.items {
		counts[it.Kind]++
	}
	return counts, nil
}
