package eventlog

import (
	"context"
	"log/slog"
)

// SlogAdapter writes events to an slog.Logger at Debug level, or Warn for
// notices and errors.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates an adapter for logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	level := slog.LevelDebug
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("category", event.Category.String()),
	}

	switch {
	case event.Lifecycle != nil:
		attrs = append(attrs,
			slog.String("old_state", event.Lifecycle.OldState),
			slog.String("new_state", event.Lifecycle.NewState),
		)
	case event.Timer != nil:
		attrs = append(attrs,
			slog.String("from", event.Timer.From),
			slog.String("to", event.Timer.To),
			slog.Uint64("elapsed", event.Timer.ElapsedSeconds),
		)
		if event.Timer.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Timer.Reason))
		}
	case event.Containment != nil:
		attrs = append(attrs,
			slog.String("old", event.Containment.Old),
			slog.String("new", event.Containment.New),
		)
	case event.Notice != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("notice", event.Notice.Kind),
			slog.String("message", event.Notice.Message),
		)
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("source", event.Error.Source),
			slog.String("error", event.Error.Message),
		)
	}

	a.logger.LogAttrs(context.Background(), level, "session event", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
