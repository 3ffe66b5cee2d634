package mailer

import (
	"testing"

	"github.com/lostnfound/backend/internal/config"
)

func TestNotifyUnconfiguredSenderIsDropped(t *testing.T) {
	m := New(&config.Config{SMTPHost: "smtp.example.com", SMTPPort: 587})
	if m.Notify("a@example.com", "subject", "body") {
		t.Error("expected false when no sender is configured")
	}
}

func TestNotifySwallowsDialFailure(t *testing.T) {
	// Nothing listens on this port; the dial fails fast and Notify must
	// report failure instead of panicking or hanging.
	m := New(&config.Config{
		SMTPHost:    "127.0.0.1",
		SMTPPort:    1,
		EmailSender: "noreply@lostnfound.example",
		EmailPass:   "secret",
	})
	if m.Notify("a@example.com", "subject", "body") {
		t.Error("expected false on connection failure")
	}
}
