package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blelink-protocol/blelink-go/pkg/log"
)

// createTestLogFile writes events to a temporary CBOR log file.
func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.blog")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create log file: %v", err)
	}
	defer f.Close()

	enc := log.NewEncoder(f)
	for _, event := range events {
		if err := enc.Encode(event); err != nil {
			t.Fatalf("encode event: %v", err)
		}
	}
	return path
}

func testEvents() []log.Event {
	ts := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	return []log.Event{
		{
			Timestamp:    ts,
			ConnectionID: "11111111-2222-3333-4444-555555555555",
			DeviceID:     "AA:BB:CC:DD:EE:FF",
			Category:     log.CategoryState,
			StateChange:  &log.StateChangeEvent{Old: "IDLE", New: "CONNECTING"},
		},
		{
			Timestamp:    ts.Add(time.Second),
			ConnectionID: "11111111-2222-3333-4444-555555555555",
			DeviceID:     "AA:BB:CC:DD:EE:FF",
			Category:     log.CategoryPhase,
			Phase:        &log.PhaseEvent{Name: "negotiation", Status: "SUCCESS", MTU: 247},
		},
		{
			Timestamp:    ts.Add(2 * time.Second),
			ConnectionID: "99999999-2222-3333-4444-555555555555",
			DeviceID:     "AA:BB:CC:DD:EE:FF",
			Category:     log.CategoryReconnect,
			Reconnect:    &log.ReconnectEvent{Attempt: 3, DelayMs: 10000},
		},
		{
			Timestamp: ts.Add(3 * time.Second),
			Category:  log.CategoryError,
			Error:     &log.ErrorEventData{Code: "PAIRING_FAILED", Message: "pairing timeout"},
		},
	}
}

func TestViewFormatsEvents(t *testing.T) {
	path := createTestLogFile(t, testEvents())

	var buf bytes.Buffer
	if err := View(&buf, path, log.Filter{}); err != nil {
		t.Fatalf("View failed: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"IDLE -> CONNECTING",
		"negotiation SUCCESS mtu=247",
		"attempt=3 delay=10000ms",
		"PAIRING_FAILED: pairing timeout",
		"[conn:11111111]",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("view output missing %q:\n%s", want, output)
		}
	}
}

func TestViewFiltersByCategory(t *testing.T) {
	path := createTestLogFile(t, testEvents())

	category := log.CategoryState
	var buf bytes.Buffer
	if err := View(&buf, path, log.Filter{Category: &category}); err != nil {
		t.Fatalf("View failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "IDLE -> CONNECTING") {
		t.Error("state event missing from filtered output")
	}
	if strings.Contains(output, "PAIRING_FAILED") {
		t.Error("error event should be filtered out")
	}
}

func TestParseCategory(t *testing.T) {
	if c, err := ParseCategory("reconnect"); err != nil || c != log.CategoryReconnect {
		t.Errorf("ParseCategory(reconnect) = %v, %v", c, err)
	}
	if _, err := ParseCategory("bogus"); err == nil {
		t.Error("ParseCategory(bogus) should fail")
	}
}
