package marker

import (
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ids := []string{"s1", "conv_1718000000_ab12cd3", "ABC_123_xyz", "0"}
	bodies := []string{
		"",
		"New text from visitor 42",
		"line one\nline two\n",
		"already ends with newline\n",
	}
	for _, id := range ids {
		for _, body := range bodies {
			encoded := Encode(body, id)
			got, ok := Decode(encoded)
			if !ok {
				t.Fatalf("Decode(%q): no marker found", encoded)
			}
			if got != id {
				t.Fatalf("Decode(%q) = %q, want %q", encoded, got, id)
			}
		}
	}
}

func TestEncodeMarkerOnOwnLine(t *testing.T) {
	out := Encode("hello", "s1")
	if out != "hello\n[Session: s1]" {
		t.Fatalf("unexpected encoding: %q", out)
	}
}

func TestDecodeMarkerAnywhere(t *testing.T) {
	text := "New text from visitor 42\n[Session: abc123]\n\nHello, do you have gems?"
	id, ok := Decode(text)
	if !ok || id != "abc123" {
		t.Fatalf("got (%q, %v), want (abc123, true)", id, ok)
	}

	// Marker embedded mid-caption.
	id, ok = Decode("photo caption [Session: s_9] trailing")
	if !ok || id != "s_9" {
		t.Fatalf("got (%q, %v), want (s_9, true)", id, ok)
	}
}

func TestDecodeFirstMarkerWins(t *testing.T) {
	id, ok := Decode("[Session: first]\n[Session: second]")
	if !ok || id != "first" {
		t.Fatalf("got (%q, %v), want (first, true)", id, ok)
	}
}

func TestDecodeAbsent(t *testing.T) {
	cases := []string{
		"",
		"no marker here",
		"[Session: unterminated",
		"[Session: ]",
		"Session: missing-bracket]",
		strings.Repeat("x", 4096),
	}
	for _, c := range cases {
		if id, ok := Decode(c); ok {
			t.Fatalf("Decode(%q) unexpectedly resolved %q", c, id)
		}
	}
}
