// Package interactive provides the interactive command-line interface
// for the connection simulator.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/blelink-protocol/blelink-go/internal/sim"
	"github.com/blelink-protocol/blelink-go/pkg/conn"
	"github.com/blelink-protocol/blelink-go/pkg/link"
)

// CLI handles the interactive session against the simulated adapter.
type CLI struct {
	machine *conn.Machine
	adapter *sim.Adapter
	rl      *readline.Instance

	observer conn.ObserverFunc
}

// New creates the interactive handler and registers a transition
// observer that echoes every state change to the prompt.
func New(machine *conn.Machine, adapter *sim.Adapter) (*CLI, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "blelink> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	c := &CLI{
		machine: machine,
		adapter: adapter,
		rl:      rl,
	}
	c.observer = func(t conn.Transition) {
		if t.ErrorMessage != "" {
			fmt.Fprintf(rl.Stdout(), "[%s -> %s] %s: %s\n", t.Old, t.New, t.ErrorCode, t.ErrorMessage)
			return
		}
		fmt.Fprintf(rl.Stdout(), "[%s -> %s]\n", t.Old, t.New)
	}
	machine.RegisterObserver(&c.observer)
	return c, nil
}

// Stdout returns a writer coordinated with the prompt.
func (c *CLI) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Run starts the interactive command loop. It returns on exit or EOF.
func (c *CLI) Run() {
	defer c.rl.Close()
	defer c.machine.UnregisterObserver(&c.observer)

	c.printHelp()

	for {
		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		if cmd == "exit" || cmd == "quit" {
			return
		}
		c.dispatch(cmd, args)
	}
}

func (c *CLI) dispatch(cmd string, args []string) {
	out := c.rl.Stdout()

	switch cmd {
	case "help":
		c.printHelp()

	case "scan":
		c.runScan()

	case "connect":
		if len(args) < 1 {
			fmt.Fprintln(out, "usage: connect <device-id>")
			return
		}
		err := c.machine.Connect(args[0], func(session *link.Session, err error) {
			if err != nil {
				fmt.Fprintf(out, "connect failed: %v\n", err)
				return
			}
			fmt.Fprintf(out, "connected: session %s mtu %d\n", session.ID, session.MTU())
		})
		if err != nil {
			fmt.Fprintf(out, "connect rejected: %v\n", err)
		}

	case "disconnect":
		if err := c.machine.Disconnect(); err != nil {
			fmt.Fprintf(out, "disconnect rejected: %v\n", err)
		}

	case "state":
		fmt.Fprintln(out, c.machine.State())

	case "status":
		c.printStatus()

	case "ack":
		if !c.machine.AcknowledgeError() {
			fmt.Fprintln(out, "no error to acknowledge")
		}

	case "auto":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			fmt.Fprintln(out, "usage: auto on|off")
			return
		}
		if args[0] == "on" {
			c.machine.EnableAutoReconnect()
		} else {
			c.machine.DisableAutoReconnect()
		}

	case "radio":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			fmt.Fprintln(out, "usage: radio on|off")
			return
		}
		c.adapter.SetRadio(args[0] == "on")

	case "powersave":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			fmt.Fprintln(out, "usage: powersave on|off")
			return
		}
		c.adapter.SetPowerSave(args[0] == "on")

	case "permission":
		if len(args) != 1 || (args[0] != "grant" && args[0] != "revoke") {
			fmt.Fprintln(out, "usage: permission grant|revoke")
			return
		}
		c.adapter.SetPermission(args[0] == "grant")

	case "drop":
		session := c.machine.Session()
		if session == nil {
			fmt.Fprintln(out, "not connected")
			return
		}
		c.adapter.DropLink(session.DeviceID)

	default:
		fmt.Fprintf(out, "unknown command %q, try help\n", cmd)
	}
}

func (c *CLI) runScan() {
	out := c.rl.Stdout()

	if !c.machine.NoteScanStarted() {
		fmt.Fprintln(out, "scan not allowed in state", c.machine.State())
		return
	}
	defer c.machine.NoteScanStopped()

	ads, err := c.adapter.Scan(context.Background(), time.Second)
	if err != nil {
		fmt.Fprintf(out, "scan failed: %v\n", err)
		return
	}
	for _, ad := range ads {
		fmt.Fprintf(out, "  %s  %-16s  %d dBm\n", ad.DeviceID, ad.Name, ad.RSSI)
	}
}

func (c *CLI) printStatus() {
	out := c.rl.Stdout()

	fmt.Fprintf(out, "state:          %s\n", c.machine.State())
	fmt.Fprintf(out, "auto-reconnect: %v\n", c.machine.AutoReconnectEnabled())
	fmt.Fprintf(out, "radio:          %v\n", c.adapter.RadioEnabled())

	if session := c.machine.Session(); session != nil {
		fmt.Fprintf(out, "session:        %s\n", session.ID)
		fmt.Fprintf(out, "device:         %s\n", session.DeviceID)
		fmt.Fprintf(out, "mtu:            %d\n", session.MTU())
	}
	if detail := c.machine.ErrorDetail(); detail != nil {
		fmt.Fprintf(out, "error:          %s: %s\n", detail.Code, detail.Message)
	}
	if attempts := c.machine.ReconnectAttempts(); attempts > 0 {
		fmt.Fprintf(out, "attempts:       %d\n", attempts)
	}
	if ref := c.machine.LastKnownDevice(); ref != nil {
		fmt.Fprintf(out, "persisted:      %s (%s)\n", ref.DeviceID, ref.DisplayName)
	}
}

func (c *CLI) printHelp() {
	fmt.Fprint(c.rl.Stdout(), `Commands:
  scan                    list simulated peripherals
  connect <device-id>     connect to a peripheral
  disconnect              tear down the connection
  state                   print the current state
  status                  print state, session, and error details
  ack                     acknowledge an error and return to IDLE
  auto on|off             toggle auto-reconnect
  radio on|off            toggle the simulated radio
  powersave on|off        toggle the simulated low-power mode
  permission grant|revoke toggle the connect permission
  drop                    drop the active link unexpectedly
  exit                    quit
`)
}
