// Package serialport keeps a serial connection to the panel firmware open,
// reconnecting whenever the device goes away.
package serialport

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"lcd-panel-ctrl/protocol"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

var (
	ErrNotConnected = errors.New("serialport: not connected")
	ErrNoPort       = errors.New("serialport: no matching port")
	ErrClosed       = errors.New("serialport: link closed")
)

const DefaultRetryDelay = 2 * time.Second

type Config struct {
	PortName string
	BaudRate int

	// VendorID and ProductID select a USB serial port when PortName is empty.
	VendorID  string
	ProductID string

	RetryDelay time.Duration
}

type opener func(name string, mode *serial.Mode) (io.ReadWriteCloser, error)

func openSerial(name string, mode *serial.Mode) (io.ReadWriteCloser, error) {
	return serial.Open(name, mode)
}

type Link struct {
	cfg    Config
	logger *slog.Logger
	open   opener
	find   func(Config) (string, error)

	mu   sync.Mutex
	port io.ReadWriteCloser

	decoder protocol.Decoder

	events    chan protocol.Event
	shutdown  chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New starts connecting in the background and returns immediately.
func New(cfg Config, logger *slog.Logger) *Link {
	return newLink(cfg, logger, openSerial, FindPort)
}

func newLink(cfg Config, logger *slog.Logger, open opener, find func(Config) (string, error)) *Link {
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	l := &Link{
		cfg:      cfg,
		logger:   logger,
		open:     open,
		find:     find,
		events:   make(chan protocol.Event, 100),
		shutdown: make(chan struct{}),
	}
	l.wg.Add(1)
	go l.run()
	return l
}

// Events delivers the frames received from the device. It is closed by Close.
func (l *Link) Events() <-chan protocol.Event {
	return l.events
}

func (l *Link) Connected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.port != nil
}

// Send writes one frame. It fails fast while the device is disconnected.
func (l *Link) Send(e protocol.Event) error {
	select {
	case <-l.shutdown:
		return ErrClosed
	default:
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.port == nil {
		return ErrNotConnected
	}
	if _, err := l.port.Write(protocol.Marshal(e)); err != nil {
		return fmt.Errorf("write %s: %w", e.String(), err)
	}
	return nil
}

func (l *Link) Close() error {
	l.closeOnce.Do(func() {
		close(l.shutdown)
		l.mu.Lock()
		if l.port != nil {
			l.port.Close()
		}
		l.mu.Unlock()
		l.wg.Wait()
		close(l.events)
	})
	return nil
}

func (l *Link) run() {
	defer l.wg.Done()

	for {
		port, name, err := l.connect()
		if err != nil {
			l.logger.Warn("serial connect failed", "err", err)
		} else {
			l.logger.Info("serial connected", "port", name)
			l.read(port)
			if l.decoder.Partial() {
				l.logger.Debug("discarding partial frame", "port", name)
			}
			l.decoder.Reset()
			l.mu.Lock()
			l.port = nil
			l.mu.Unlock()
			port.Close()
			l.logger.Warn("serial disconnected", "port", name)
		}

		select {
		case <-l.shutdown:
			return
		case <-time.After(l.cfg.RetryDelay):
		}
	}
}

func (l *Link) connect() (io.ReadWriteCloser, string, error) {
	name := l.cfg.PortName
	if name == "" {
		var err error
		name, err = l.find(l.cfg)
		if err != nil {
			return nil, "", err
		}
	}

	port, err := l.open(name, &serial.Mode{BaudRate: l.cfg.BaudRate})
	if err != nil {
		return nil, name, fmt.Errorf("open %s: %w", name, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	select {
	case <-l.shutdown:
		port.Close()
		return nil, name, ErrClosed
	default:
	}
	l.port = port
	return port, name, nil
}

func (l *Link) read(port io.Reader) {
	buf := make([]byte, 64)
	for {
		n, err := port.Read(buf)
		for _, b := range buf[:n] {
			e, ok := l.decoder.Feed(b)
			if !ok {
				continue
			}
			select {
			case l.events <- e:
			case <-l.shutdown:
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				l.logger.Debug("serial read failed", "err", err)
			}
			return
		}
	}
}

// FindPort returns the first USB serial port matching the configured vendor
// and product IDs.
func FindPort(cfg Config) (string, error) {
	if cfg.VendorID == "" && cfg.ProductID == "" {
		return "", ErrNoPort
	}
	ports, err := Ports()
	if err != nil {
		return "", err
	}
	for _, p := range ports {
		if Matches(p, cfg) {
			return p.Name, nil
		}
	}
	return "", ErrNoPort
}

// Matches reports whether p is a USB port with the IDs from cfg. Empty IDs
// match anything.
func Matches(p *enumerator.PortDetails, cfg Config) bool {
	if !p.IsUSB {
		return false
	}
	if cfg.VendorID != "" && !strings.EqualFold(p.VID, cfg.VendorID) {
		return false
	}
	if cfg.ProductID != "" && !strings.EqualFold(p.PID, cfg.ProductID) {
		return false
	}
	return true
}

// Ports lists the serial ports with their USB details.
func Ports() ([]*enumerator.PortDetails, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}
	return ports, nil
}
