package model

// MessageEvent is the change-subscription payload emitted when a message is
// appended to the chat store. One event is delivered at-least-once per
// append; relay handlers must tolerate duplicates.
type MessageEvent struct {
	MessageID string      `json:"message_id"`
	SessionID string      `json:"session_id"`
	Sender    Sender      `json:"sender"`
	SentVia   Provenance  `json:"sent_via"`
	Type      ContentType `json:"type"`
	Text      string      `json:"text"`
	ImageURL  string      `json:"image_url,omitempty"`
}
