// Command blelink-sim runs the connection subsystem against a simulated
// BLE platform backend.
//
// Usage:
//
//	blelink-sim [flags]
//
// Flags:
//
//	-config <file>   YAML configuration file
//	-log <file>      write connection events to a CBOR log file
//
// The simulator starts with two scripted peripherals, one already bonded
// and one that requires pairing. Type "help" at the prompt for the
// available commands.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/blelink-protocol/blelink-go/cmd/blelink-sim/interactive"
	"github.com/blelink-protocol/blelink-go/internal/sim"
	"github.com/blelink-protocol/blelink-go/pkg/config"
	"github.com/blelink-protocol/blelink-go/pkg/conn"
	"github.com/blelink-protocol/blelink-go/pkg/log"
	"github.com/blelink-protocol/blelink-go/pkg/persistence"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	logPath := flag.String("log", "", "write connection events to a CBOR log file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *logPath != "" {
		cfg.LogPath = *logPath
	}

	var logger log.Logger
	if cfg.LogPath != "" {
		fileLogger, err := log.NewFileLogger(cfg.LogPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			os.Exit(1)
		}
		defer fileLogger.Close()
		logger = fileLogger
	}

	adapter := sim.NewAdapter(
		&sim.Peripheral{ID: "AA:BB:CC:DD:EE:01", Name: "Infusion Pump", RSSI: -42, Bonded: true, GrantMTU: 247},
		&sim.Peripheral{ID: "AA:BB:CC:DD:EE:02", Name: "Glucose Sensor", RSSI: -67, GrantMTU: 185},
	)

	machine := conn.NewMachine(cfg, conn.Deps{
		Central:     adapter,
		Bonder:      adapter,
		Permissions: adapter,
		Radio:       adapter,
		Store:       persistence.NewFileStore(cfg.PersistPath),
		Logger:      logger,
	})
	if err := machine.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "start machine: %v\n", err)
		os.Exit(1)
	}
	defer machine.Stop()

	cli, err := interactive.New(machine, adapter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start interactive session: %v\n", err)
		os.Exit(1)
	}
	cli.Run()
}
