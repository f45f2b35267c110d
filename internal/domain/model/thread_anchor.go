package model

import "time"

// ThreadAnchor correlates a chat session with the Telegram message id that
// anchors its reply-thread in the admin chat. At most one anchor exists per
// session; once set it is stable for the session's lifetime.
type ThreadAnchor struct {
	SessionID string
	MessageID int64
	UpdatedAt time.Time
}
