package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestCollectStats(t *testing.T) {
	path := createTestLogFile(t, testEvents())

	stats, err := Collect(path)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if stats.Total != 4 {
		t.Errorf("Total = %d, want 4", stats.Total)
	}
	if stats.Connections != 2 {
		t.Errorf("Connections = %d, want 2", stats.Connections)
	}
	if stats.Errors != 1 {
		t.Errorf("Errors = %d, want 1", stats.Errors)
	}
	if stats.MaxAttempt != 3 {
		t.Errorf("MaxAttempt = %d, want 3", stats.MaxAttempt)
	}
	if stats.ByCategory["STATE"] != 1 || stats.ByCategory["ERROR"] != 1 {
		t.Errorf("ByCategory = %v", stats.ByCategory)
	}
	if stats.ByDevice["AA:BB:CC:DD:EE:FF"] != 3 {
		t.Errorf("ByDevice = %v", stats.ByDevice)
	}
}

func TestStatsPrint(t *testing.T) {
	path := createTestLogFile(t, testEvents())

	stats, err := Collect(path)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	stats.Print(&buf)

	output := buf.String()
	for _, want := range []string{"Events:      4", "Connections: 2", "Max reconnect attempt: 3", "STATE", "By device:"} {
		if !strings.Contains(output, want) {
			t.Errorf("stats output missing %q:\n%s", want, output)
		}
	}
}
