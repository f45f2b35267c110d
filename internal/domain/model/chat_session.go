package model

import (
	"strings"
	"time"
)

// Sender identifies which side of the conversation authored a message.
type Sender string

const (
	SenderVisitor Sender = "visitor"
	SenderAdmin   Sender = "admin"
)

// ContentType distinguishes plain text from image messages.
type ContentType string

const (
	ContentText  ContentType = "text"
	ContentImage ContentType = "image"
)

// Provenance records which surface originated an admin message. It is the
// sole signal used to suppress relay feedback loops: a message relayed in
// from Telegram must never be mirrored back out to Telegram.
type Provenance string

const (
	ViaWeb      Provenance = "web"
	ViaTelegram Provenance = "telegram"
)

// ImagePlaceholder is the text body used when an image arrives without a caption.
const ImagePlaceholder = "\U0001F4F7 Image"

// Message is one entry in a session's append-only message log.
type Message struct {
	ID        string      `json:"id"`
	SessionID string      `json:"session_id"`
	Sender    Sender      `json:"sender"`
	Text      string      `json:"text"`
	Type      ContentType `json:"type"`
	ImageURL  string      `json:"image_url,omitempty"`
	Read      bool        `json:"read"`
	SentVia   Provenance  `json:"sent_via"`
	CreatedAt time.Time   `json:"created_at"`
}

// ChatSession is one customer conversation. Sessions are created implicitly
// by the first visitor message and are never deleted by the relay core.
type ChatSession struct {
	ID                  string      `json:"id"`
	VisitorID           string      `json:"visitor_id"`
	VisitorName         string      `json:"visitor_name"`
	LastMessage         string      `json:"last_message"`
	LastMessageType     ContentType `json:"last_message_type"`
	LastMessageImageURL string      `json:"last_message_image_url,omitempty"`
	UnreadCount         int         `json:"unread_count"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// DisplayName returns the best available label for the visitor.
func (s *ChatSession) DisplayName() string {
	if n := strings.TrimSpace(s.VisitorName); n != "" {
		return n
	}
	if s.VisitorID != "" {
		return s.VisitorID
	}
	return s.ID
}

// NewVisitorMessage builds a visitor-authored message. Visitor messages
// always originate from the web chat widget.
func NewVisitorMessage(id, sessionID, text string, ct ContentType, imageURL string) *Message {
	return &Message{
		ID:        id,
		SessionID: sessionID,
		Sender:    SenderVisitor,
		Text:      text,
		Type:      ct,
		ImageURL:  imageURL,
		SentVia:   ViaWeb,
		CreatedAt: time.Now(),
	}
}

// NewAdminMessage builds an admin-authored message tagged with the surface
// it was sent from.
func NewAdminMessage(id, sessionID, text string, ct ContentType, imageURL string, via Provenance) *Message {
	return &Message{
		ID:        id,
		SessionID: sessionID,
		Sender:    SenderAdmin,
		Text:      text,
		Type:      ct,
		ImageURL:  imageURL,
		SentVia:   via,
		CreatedAt: time.Now(),
	}
}
