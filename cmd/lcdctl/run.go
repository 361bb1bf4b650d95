package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lcd-panel-ctrl/protocol"
	"lcd-panel-ctrl/screens"
	"lcd-panel-ctrl/serialport"
)

// sender is the part of serialport.Link the pusher needs.
type sender interface {
	Send(e protocol.Event) error
}

// valuePusher sends the volume of every configured endpoint to its slot.
// Unchanged values are not resent.
type valuePusher struct {
	store  *configStore
	link   sender
	volume func(deviceID string) (int, error)
	last   map[uint8]uint8
}

func newValuePusher(store *configStore, link sender) *valuePusher {
	return &valuePusher{
		store:  store,
		link:   link,
		volume: currentVolume,
		last:   make(map[uint8]uint8),
	}
}

func (p *valuePusher) push() {
	for _, slot := range p.store.get().Slots {
		if slot.DeviceID == "" {
			continue
		}
		vol, err := p.volume(slot.DeviceID)
		if err != nil {
			slog.Error("error getting current volume", "deviceID", slot.DeviceID, "err", err)
			continue
		}
		if vol < 0 {
			vol = 0
		} else if vol > screens.MaxValue {
			vol = screens.MaxValue
		}

		value := uint8(vol)
		if last, ok := p.last[slot.Slot]; ok && last == value {
			continue
		}
		err = p.link.Send(protocol.Event{Type: protocol.EVENT_TYPE_VALUE, Screen: slot.Slot, Value: value})
		if err != nil {
			slog.Warn("error sending value", "slot", slot.Slot, "err", err)
			continue
		}
		p.last[slot.Slot] = value
		slog.Debug("sent value", "slot", slot.Slot, "value", value)
	}
}

// forget makes the next push resend every value, used after a reconnect.
func (p *valuePusher) forget() {
	clear(p.last)
}

func (p *valuePusher) loop(shutdownChan <-chan struct{}) {
	release, err := startVolumeThread()
	if err != nil {
		slog.Error("value pusher disabled", "err", err)
		return
	}
	defer release()

	ticker := time.NewTicker(p.store.get().PushPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.push()
		case <-shutdownChan:
			slog.Info("value pusher shutting down")
			return
		}
	}
}

func runDaemon(store *configStore) error {
	shutdownChan := make(chan struct{})

	link := serialport.New(store.get().serial(), slog.Default())
	defer link.Close()

	pusher := newValuePusher(store, link)

	go store.reloader(shutdownChan)
	go pusher.loop(shutdownChan)

	go func() {
		for e := range link.Events() {
			slog.Info("device event", "event", e.String())
			if e.Type == protocol.EVENT_TYPE_SCREEN {
				pusher.forget()
			}
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	slog.Info("application is running. press Ctrl+C to exit")
	<-sigs
	slog.Info("interrupt signal received. initiating shutdown")

	close(shutdownChan)
	return nil
}

var errTimeout = errors.New("timed out waiting for device")

// withLink connects, runs fn and closes the link again.
func withLink(cfg Config, timeout time.Duration, fn func(*serialport.Link) error) error {
	link := serialport.New(cfg.serial(), slog.Default())
	defer link.Close()

	deadline := time.Now().Add(timeout)
	for !link.Connected() {
		if time.Now().After(deadline) {
			return errTimeout
		}
		time.Sleep(20 * time.Millisecond)
	}
	return fn(link)
}

func selectScreen(cfg Config, timeout time.Duration, screen uint8) error {
	return withLink(cfg, timeout, func(link *serialport.Link) error {
		if err := link.Send(protocol.Event{Type: protocol.EVENT_TYPE_SET, Screen: screen}); err != nil {
			return err
		}
		reply, err := awaitEvent(link.Events(), protocol.EVENT_TYPE_SCREEN, timeout)
		if err != nil {
			return err
		}
		if reply.Screen != screen {
			return fmt.Errorf("device stayed on screen %d", reply.Screen)
		}
		fmt.Println("screen", reply.Screen)
		return nil
	})
}

func sendEvent(cfg Config, timeout time.Duration, e protocol.Event) error {
	return withLink(cfg, timeout, func(link *serialport.Link) error {
		return link.Send(e)
	})
}

func awaitEvent(events <-chan protocol.Event, t protocol.EventType, timeout time.Duration) (protocol.Event, error) {
	deadline := time.After(timeout)
	for {
		select {
		case e, ok := <-events:
			if !ok {
				return protocol.Event{}, serialport.ErrClosed
			}
			if e.Type == t {
				return e, nil
			}
		case <-deadline:
			return protocol.Event{}, errTimeout
		}
	}
}
