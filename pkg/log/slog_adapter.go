package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes connection events to an slog.Logger.
// Useful for development when you want to see connection events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
// Errors are written at Warn level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("conn_id", event.ConnectionID),
		slog.String("category", event.Category.String()),
	}

	if event.DeviceID != "" {
		attrs = append(attrs, slog.String("device_id", event.DeviceID))
	}

	level := slog.LevelDebug

	// Add type-specific attributes
	switch {
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old", event.StateChange.Old),
			slog.String("new", event.StateChange.New),
		)
	case event.Phase != nil:
		attrs = append(attrs, slog.String("phase", event.Phase.Name))
		if event.Phase.Status != "" {
			attrs = append(attrs, slog.String("status", event.Phase.Status))
		}
		if event.Phase.MTU != 0 {
			attrs = append(attrs, slog.Int("mtu", event.Phase.MTU))
		}
	case event.Reconnect != nil:
		attrs = append(attrs,
			slog.Int("attempt", event.Reconnect.Attempt),
			slog.Int64("delay_ms", event.Reconnect.DelayMs),
		)
		if event.Reconnect.Immediate {
			attrs = append(attrs, slog.Bool("immediate", true))
		}
	case event.Radio != nil:
		attrs = append(attrs, slog.Bool("radio_enabled", event.Radio.Enabled))
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("error_code", event.Error.Code),
			slog.String("error_message", event.Error.Message),
		)
	}

	a.logger.LogAttrs(context.Background(), level, "ble connection event", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
