// Command blelink-log views and analyzes connection log files.
//
// Log files are created by passing -log to blelink-sim, or by wiring a
// file logger into the connection machine.
//
// Usage:
//
//	blelink-log <command> [flags] <file.blog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSONL or CSV format
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	blelink-log view session.blog
//
//	# View only state transitions
//	blelink-log view -category state session.blog
//
//	# Export to JSONL
//	blelink-log export -format jsonl session.blog
//
//	# Show statistics
//	blelink-log stats session.blog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/blelink-protocol/blelink-go/cmd/blelink-log/commands"
	"github.com/blelink-protocol/blelink-go/pkg/log"
)

const usage = `blelink-log - Connection Log Analyzer

Usage:
  blelink-log <command> [flags] <file.blog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSONL or CSV format
  stats    Show statistics about the log file

Use "blelink-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(1)
	}
}

// parseFilter builds a log filter from the shared flag values.
func parseFilter(connID, deviceID, category string) (log.Filter, error) {
	filter := log.Filter{ConnectionID: connID, DeviceID: deviceID}
	if category != "" {
		c, err := commands.ParseCategory(category)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Category = &c
	}
	return filter, nil
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	connID := fs.String("conn-id", "", "filter by connection ID")
	deviceID := fs.String("device", "", "filter by device ID")
	category := fs.String("category", "", "filter by category (state, phase, reconnect, radio, error)")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: blelink-log view [flags] <file.blog>")
		os.Exit(1)
	}

	filter, err := parseFilter(*connID, *deviceID, *category)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := commands.View(os.Stdout, fs.Arg(0), filter); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", "jsonl", "export format: jsonl or csv")
	connID := fs.String("conn-id", "", "filter by connection ID")
	deviceID := fs.String("device", "", "filter by device ID")
	category := fs.String("category", "", "filter by category")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: blelink-log export [flags] <file.blog>")
		os.Exit(1)
	}

	filter, err := parseFilter(*connID, *deviceID, *category)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := commands.Export(os.Stdout, fs.Arg(0), *format, filter); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: blelink-log stats <file.blog>")
		os.Exit(1)
	}

	stats, err := commands.Collect(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	stats.Print(os.Stdout)
}
