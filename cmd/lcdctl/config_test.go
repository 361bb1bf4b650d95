package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleConfig = `
portName: COM5
baudRate: 9600
configReloadPeriod: 10s
slots:
  - slot: 0
    name: Game
    deviceID: "{0.0.0.00000000}.{game}"
  - slot: 2
    name: Media
`

func TestParseConfig(t *testing.T) {
	cfg, err := parseConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if cfg.PortName != "COM5" || cfg.BaudRate != 9600 {
		t.Fatalf("serial settings %+v", cfg)
	}
	if cfg.ConfigReloadPeriod != 10*time.Second {
		t.Fatalf("reload period %v", cfg.ConfigReloadPeriod)
	}
	if cfg.PushPeriod != time.Second {
		t.Fatalf("push period default %v", cfg.PushPeriod)
	}
	if len(cfg.Slots) != 2 || cfg.Slots[0].DeviceID == "" {
		t.Fatalf("slots %+v", cfg.Slots)
	}

	names := cfg.names()
	if names[0] != "Game" || names[1] != "Slot 2" || names[2] != "Media" {
		t.Fatalf("names %v", names)
	}
}

func TestParseConfigRejectsUnknownSlot(t *testing.T) {
	if _, err := parseConfig([]byte("slots:\n  - slot: 9\n")); err == nil {
		t.Fatal("expected error for slot 9")
	}
}

func TestParseConfigSyntaxError(t *testing.T) {
	if _, err := parseConfig([]byte("slots: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConfigStoreKeepsLastGoodConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	store := newConfigStore(path, func(c *Config) { c.PortName = "COM9" })
	if store.get().PortName != "COM9" {
		t.Fatalf("override not applied: %q", store.get().PortName)
	}

	if err := os.WriteFile(path, []byte("baudRate: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	store.reload()
	if store.get().BaudRate != 9600 {
		t.Fatalf("broken reload replaced config: %+v", store.get())
	}
}

func TestConfigStoreMissingFile(t *testing.T) {
	store := newConfigStore(filepath.Join(t.TempDir(), "missing.yaml"), func(c *Config) { c.PortName = "COM1" })
	cfg := store.get()
	if cfg.PortName != "COM1" || cfg.BaudRate != defaultConfig().BaudRate {
		t.Fatalf("defaults %+v", cfg)
	}
}

func TestParseArg(t *testing.T) {
	if v, err := parseArg([]string{"3"}, 0, "screen"); err != nil || v != 3 {
		t.Fatalf("parseArg = %d, %v", v, err)
	}
	if _, err := parseArg([]string{"300"}, 0, "screen"); err == nil {
		t.Fatal("expected range error")
	}
	if _, err := parseArg(nil, 0, "screen"); err == nil {
		t.Fatal("expected missing argument error")
	}
}
