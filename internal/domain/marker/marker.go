// Package marker encodes and decodes the session marker embedded in Telegram
// notification text. The marker is the durable correlation fallback: even
// with an empty thread registry, an admin reply to a notification resolves
// because the session id travels inside the message the admin replies to.
//
// The wire format is the literal substring "[Session: <id>]" and must be
// preserved byte-for-byte for old notifications to keep resolving.
package marker

import "strings"

const (
	prefix = "[Session: "
	suffix = "]"
)

// Encode appends the tagged session marker to body on its own line.
// Session ids are opaque alphanumeric/underscore tokens, so they never
// contain "]" by construction.
func Encode(body, sessionID string) string {
	if body == "" {
		return prefix + sessionID + suffix
	}
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	return body + prefix + sessionID + suffix
}

// Decode extracts the session id from the first well-formed marker in text,
// wherever it appears (captions, quoted replies, multi-line bodies).
// The second return value is false when no marker is present; that is a
// normal outcome, not an error.
func Decode(text string) (string, bool) {
	start := strings.Index(text, prefix)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(prefix):]
	end := strings.Index(rest, suffix)
	if end < 0 {
		return "", false
	}
	id := rest[:end]
	if id == "" {
		return "", false
	}
	return id, true
}
