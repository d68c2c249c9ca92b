// Package commands implements the blelink-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/blelink-protocol/blelink-go/pkg/log"
)

// View prints events from the log file in human-readable form.
func View(w io.Writer, path string, filter log.Filter) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return err
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// formatEvent writes a single human-readable event line plus details.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z")
	connID := shortenConnID(event.ConnectionID)

	fmt.Fprintf(w, "%s [conn:%s] %-9s", ts, connID, event.Category)
	if event.DeviceID != "" {
		fmt.Fprintf(w, " %s", event.DeviceID)
	}

	switch {
	case event.StateChange != nil:
		fmt.Fprintf(w, "  %s -> %s", event.StateChange.Old, event.StateChange.New)
	case event.Phase != nil:
		fmt.Fprintf(w, "  %s %s", event.Phase.Name, event.Phase.Status)
		if event.Phase.MTU > 0 {
			fmt.Fprintf(w, " mtu=%d", event.Phase.MTU)
		}
	case event.Reconnect != nil:
		fmt.Fprintf(w, "  attempt=%d delay=%dms", event.Reconnect.Attempt, event.Reconnect.DelayMs)
		if event.Reconnect.Immediate {
			fmt.Fprint(w, " immediate")
		}
	case event.Radio != nil:
		if event.Radio.Enabled {
			fmt.Fprint(w, "  enabled")
		} else {
			fmt.Fprint(w, "  disabled")
		}
	case event.Error != nil:
		fmt.Fprintf(w, "  %s: %s", event.Error.Code, event.Error.Message)
	}
	fmt.Fprintln(w)
}

// shortenConnID abbreviates a UUID to its first segment for display.
func shortenConnID(id string) string {
	if id == "" {
		return "--------"
	}
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ParseCategory maps a user-supplied category name to its value.
func ParseCategory(name string) (log.Category, error) {
	switch strings.ToUpper(name) {
	case "STATE":
		return log.CategoryState, nil
	case "PHASE":
		return log.CategoryPhase, nil
	case "RECONNECT":
		return log.CategoryReconnect, nil
	case "RADIO":
		return log.CategoryRadio, nil
	case "ERROR":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("unknown category %q", name)
	}
}
