package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"lcd-panel-ctrl/protocol"

	"github.com/dikkadev/prettyslog"
)

const version = "v0.4.0"

const usage = `usage: lcdctl [flags] <command> [args]

commands:
  run                 keep the panel in sync with the configured endpoints
  screen N            show screen N
  value SLOT V        set value slot SLOT to V (0-100)
  refresh             redraw the current screen
  ports               list serial ports (* marks the configured board)
  devices             list USB devices
  preview DIR         render every screen, OLED screens as PNG into DIR

flags:
`

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the YAML configuration")
	portName := flag.String("port", "", "Serial port name (e.g., COM3); overrides the config")
	debug := flag.Bool("debug", false, "Enable debug logging")
	timeout := flag.Duration("timeout", 5*time.Second, "How long one-shot commands wait for the device")
	scale := flag.Int("scale", 4, "Preview scale factor")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(prettyslog.NewPrettyslogHandler("lcdctl",
		prettyslog.WithLevel(level),
	))
	slog.SetDefault(logger)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	store := newConfigStore(*configFile, func(c *Config) {
		if *portName != "" {
			c.PortName = *portName
		}
	})
	cfg := store.get()

	args := flag.Args()[1:]
	var err error
	switch cmd := flag.Arg(0); cmd {
	case "run":
		err = runDaemon(store)
	case "screen":
		var n uint8
		if n, err = parseArg(args, 0, "screen"); err == nil {
			err = selectScreen(cfg, *timeout, n)
		}
	case "value":
		var slot, v uint8
		if slot, err = parseArg(args, 0, "slot"); err == nil {
			if v, err = parseArg(args, 1, "value"); err == nil {
				err = sendEvent(cfg, *timeout, protocol.Event{Type: protocol.EVENT_TYPE_VALUE, Screen: slot, Value: v})
			}
		}
	case "refresh":
		err = sendEvent(cfg, *timeout, protocol.Event{Type: protocol.EVENT_TYPE_REFRESH})
	case "ports":
		err = listPorts(os.Stdout, cfg)
	case "devices":
		err = listUSB(os.Stdout, cfg)
	case "preview":
		if len(args) != 1 {
			err = fmt.Errorf("preview needs an output directory")
		} else {
			err = writePreviews(os.Stdout, args[0], cfg, *scale)
		}
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}

	if err != nil {
		slog.Error("command failed", "command", flag.Arg(0), "err", err)
		os.Exit(1)
	}
}

func parseArg(args []string, i int, name string) (uint8, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing %s", name)
	}
	v, err := strconv.ParseUint(args[i], 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, args[i], err)
	}
	return uint8(v), nil
}
