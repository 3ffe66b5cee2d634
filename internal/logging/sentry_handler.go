package logging

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
)

// SentryHandler is an slog.Handler that forwards ERROR+ records to Sentry.
// Records below ERROR are ignored so the hot path stays on the stdout handler.
type SentryHandler struct {
	attrs []slog.Attr
}

func NewSentryHandler() *SentryHandler {
	return &SentryHandler{}
}

func (h *SentryHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *SentryHandler) Handle(_ context.Context, record slog.Record) error {
	event := sentry.NewEvent()
	event.Level = sentry.LevelError
	event.Message = record.Message
	event.Timestamp = record.Time

	extra := make(map[string]interface{}, record.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		extra[a.Key] = a.Value.Any()
	}
	record.Attrs(func(a slog.Attr) bool {
		extra[a.Key] = a.Value.Any()
		return true
	})
	event.Extra = extra

	sentry.CaptureEvent(event)
	return nil
}

func (h *SentryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &SentryHandler{attrs: merged}
}

func (h *SentryHandler) WithGroup(string) slog.Handler {
	// Groups are flattened; the Sentry event extra map has no nesting needs.
	return h
}
