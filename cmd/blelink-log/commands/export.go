package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/blelink-protocol/blelink-go/pkg/log"
)

// Export writes events from the log file as JSONL or CSV.
func Export(w io.Writer, path, format string, filter log.Filter) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return err
	}
	defer reader.Close()

	switch format {
	case "jsonl":
		return exportJSONL(w, reader)
	case "csv":
		return exportCSV(w, reader)
	default:
		return fmt.Errorf("unknown export format %q (want jsonl or csv)", format)
	}
}

// jsonEvent is the flattened JSON export shape.
type jsonEvent struct {
	Timestamp    time.Time `json:"timestamp"`
	ConnectionID string    `json:"connection_id,omitempty"`
	DeviceID     string    `json:"device_id,omitempty"`
	Category     string    `json:"category"`

	OldState string `json:"old_state,omitempty"`
	NewState string `json:"new_state,omitempty"`

	Phase       string `json:"phase,omitempty"`
	PhaseStatus string `json:"phase_status,omitempty"`
	MTU         int    `json:"mtu,omitempty"`

	Attempt   int   `json:"attempt,omitempty"`
	DelayMs   int64 `json:"delay_ms,omitempty"`
	Immediate bool  `json:"immediate,omitempty"`

	RadioEnabled *bool `json:"radio_enabled,omitempty"`

	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

func flatten(event log.Event) jsonEvent {
	out := jsonEvent{
		Timestamp:    event.Timestamp,
		ConnectionID: event.ConnectionID,
		DeviceID:     event.DeviceID,
		Category:     event.Category.String(),
	}
	switch {
	case event.StateChange != nil:
		out.OldState = event.StateChange.Old
		out.NewState = event.StateChange.New
	case event.Phase != nil:
		out.Phase = event.Phase.Name
		out.PhaseStatus = event.Phase.Status
		out.MTU = event.Phase.MTU
	case event.Reconnect != nil:
		out.Attempt = event.Reconnect.Attempt
		out.DelayMs = event.Reconnect.DelayMs
		out.Immediate = event.Reconnect.Immediate
	case event.Radio != nil:
		out.RadioEnabled = &event.Radio.Enabled
	case event.Error != nil:
		out.ErrorCode = event.Error.Code
		out.ErrorMessage = event.Error.Message
	}
	return out
}

func exportJSONL(w io.Writer, reader *log.Reader) error {
	enc := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := enc.Encode(flatten(event)); err != nil {
			return err
		}
	}
}

func exportCSV(w io.Writer, reader *log.Reader) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "connection_id", "device_id", "category", "detail"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := cw.Write([]string{
			event.Timestamp.UTC().Format(time.RFC3339Nano),
			event.ConnectionID,
			event.DeviceID,
			event.Category.String(),
			detailColumn(event),
		}); err != nil {
			return err
		}
	}
}

func detailColumn(event log.Event) string {
	switch {
	case event.StateChange != nil:
		return event.StateChange.Old + "->" + event.StateChange.New
	case event.Phase != nil:
		return event.Phase.Name + " " + event.Phase.Status
	case event.Reconnect != nil:
		return "attempt " + strconv.Itoa(event.Reconnect.Attempt) +
			" delay " + strconv.FormatInt(event.Reconnect.DelayMs, 10) + "ms"
	case event.Radio != nil:
		if event.Radio.Enabled {
			return "enabled"
		}
		return "disabled"
	case event.Error != nil:
		return event.Error.Code + ": " + event.Error.Message
	default:
		return ""
	}
}
