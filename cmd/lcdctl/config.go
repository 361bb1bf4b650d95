package main

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"lcd-panel-ctrl/screens"
	"lcd-panel-ctrl/serialport"

	"gopkg.in/yaml.v2"
)

type SlotConfig struct {
	Slot     uint8  `yaml:"slot"`
	Name     string `yaml:"name"`
	DeviceID string `yaml:"deviceID"`
}

type Config struct {
	PortName           string        `yaml:"portName"`
	BaudRate           int           `yaml:"baudRate"`
	VendorID           string        `yaml:"vendorID"`
	ProductID          string        `yaml:"productID"`
	Slots              []SlotConfig  `yaml:"slots"`
	ConfigReloadPeriod time.Duration `yaml:"configReloadPeriod"`
	PushPeriod         time.Duration `yaml:"pushPeriod"`
	RetryDelay         time.Duration `yaml:"retryDelay"`
}

func defaultConfig() Config {
	return Config{
		BaudRate:           115200,
		VendorID:           "2e8a",
		ConfigReloadPeriod: 30 * time.Second,
		PushPeriod:         time.Second,
		RetryDelay:         serialport.DefaultRetryDelay,
	}
}

func parseConfig(data []byte) (Config, error) {
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	for _, s := range cfg.Slots {
		if int(s.Slot) >= screens.Slots {
			return Config{}, fmt.Errorf("parse config: slot %d out of range (0-%d)", s.Slot, screens.Slots-1)
		}
	}
	if cfg.ConfigReloadPeriod <= 0 {
		cfg.ConfigReloadPeriod = defaultConfig().ConfigReloadPeriod
	}
	if cfg.PushPeriod <= 0 {
		cfg.PushPeriod = defaultConfig().PushPeriod
	}
	return cfg, nil
}

func loadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return parseConfig(data)
}

func (c Config) serial() serialport.Config {
	return serialport.Config{
		PortName:   c.PortName,
		BaudRate:   c.BaudRate,
		VendorID:   c.VendorID,
		ProductID:  c.ProductID,
		RetryDelay: c.RetryDelay,
	}
}

// names returns the slot labels in slot order.
func (c Config) names() []string {
	names := make([]string, screens.Slots)
	for i := range names {
		names[i] = fmt.Sprintf("Slot %d", i+1)
	}
	for _, s := range c.Slots {
		if s.Name != "" {
			names[s.Slot] = s.Name
		}
	}
	return names
}

// configStore holds the live configuration. A reload that fails keeps the
// previous configuration.
type configStore struct {
	mu       sync.RWMutex
	path     string
	config   Config
	override func(*Config)
}

func newConfigStore(path string, override func(*Config)) *configStore {
	cfg := defaultConfig()
	if override != nil {
		override(&cfg)
	}
	s := &configStore{path: path, config: cfg, override: override}
	s.reload()
	return s
}

func (s *configStore) reload() {
	cfg, err := loadConfig(s.path)
	if err != nil {
		slog.Warn("error loading config file", "path", s.path, "err", err)
		return
	}
	if s.override != nil {
		s.override(&cfg)
	}

	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
	slog.Info("configuration reloaded", "path", s.path)
}

func (s *configStore) get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *configStore) reloader(shutdownChan <-chan struct{}) {
	ticker := time.NewTicker(s.get().ConfigReloadPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.reload()
		case <-shutdownChan:
			slog.Info("configuration reloader shutting down")
			return
		}
	}
}
