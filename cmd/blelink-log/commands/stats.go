package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/blelink-protocol/blelink-go/pkg/log"
)

// Stats summarizes a log file: event counts per category and device,
// connection outcomes, and the reconnection profile.
type Stats struct {
	Total      int
	ByCategory map[string]int
	ByDevice   map[string]int

	Connections int // distinct connection IDs
	Errors      int
	MaxAttempt  int

	First, Last time.Time
}

// Collect reads the whole log file and computes statistics.
func Collect(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	stats := &Stats{
		ByCategory: make(map[string]int),
		ByDevice:   make(map[string]int),
	}
	conns := make(map[string]struct{})

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		stats.Total++
		stats.ByCategory[event.Category.String()]++
		if event.DeviceID != "" {
			stats.ByDevice[event.DeviceID]++
		}
		if event.ConnectionID != "" {
			conns[event.ConnectionID] = struct{}{}
		}
		if event.Error != nil {
			stats.Errors++
		}
		if event.Reconnect != nil && event.Reconnect.Attempt > stats.MaxAttempt {
			stats.MaxAttempt = event.Reconnect.Attempt
		}
		if stats.First.IsZero() || event.Timestamp.Before(stats.First) {
			stats.First = event.Timestamp
		}
		if event.Timestamp.After(stats.Last) {
			stats.Last = event.Timestamp
		}
	}

	stats.Connections = len(conns)
	return stats, nil
}

// Print writes the statistics in human-readable form.
func (s *Stats) Print(w io.Writer) {
	fmt.Fprintf(w, "Events:      %d\n", s.Total)
	fmt.Fprintf(w, "Connections: %d\n", s.Connections)
	fmt.Fprintf(w, "Errors:      %d\n", s.Errors)
	if s.MaxAttempt > 0 {
		fmt.Fprintf(w, "Max reconnect attempt: %d\n", s.MaxAttempt)
	}
	if !s.First.IsZero() {
		fmt.Fprintf(w, "Span:        %s .. %s (%s)\n",
			s.First.UTC().Format(time.RFC3339),
			s.Last.UTC().Format(time.RFC3339),
			s.Last.Sub(s.First).Round(time.Millisecond))
	}

	fmt.Fprintln(w, "\nBy category:")
	for _, k := range sortedKeys(s.ByCategory) {
		fmt.Fprintf(w, "  %-10s %d\n", k, s.ByCategory[k])
	}
	if len(s.ByDevice) > 0 {
		fmt.Fprintln(w, "\nBy device:")
		for _, k := range sortedKeys(s.ByDevice) {
			fmt.Fprintf(w, "  %-20s %d\n", k, s.ByDevice[k])
		}
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
