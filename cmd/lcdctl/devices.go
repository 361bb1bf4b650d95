package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"lcd-panel-ctrl/serialport"

	"github.com/karalabe/usb"
)

func listPorts(w io.Writer, cfg Config) error {
	ports, err := serialport.Ports()
	if err != nil {
		return err
	}
	for _, p := range ports {
		mark := " "
		if serialport.Matches(p, cfg.serial()) && (cfg.VendorID != "" || cfg.ProductID != "") {
			mark = "*"
		}
		if p.IsUSB {
			fmt.Fprintf(w, "%s %-16s %s:%s %s %s\n", mark, p.Name, p.VID, p.PID, p.SerialNumber, p.Product)
		} else {
			fmt.Fprintf(w, "%s %s\n", mark, p.Name)
		}
	}
	return nil
}

// listUSB prints the raw USB devices, optionally filtered by the configured
// vendor ID. Useful when the board does not show up as a serial port at all.
func listUSB(w io.Writer, cfg Config) error {
	if !usb.Supported() {
		return errors.New("usb enumeration is not supported on this platform")
	}

	var vendor uint16
	if cfg.VendorID != "" {
		v, err := strconv.ParseUint(cfg.VendorID, 16, 16)
		if err != nil {
			return fmt.Errorf("invalid vendorID %q: %w", cfg.VendorID, err)
		}
		vendor = uint16(v)
	}

	devices, err := usb.Enumerate(vendor, 0)
	if err != nil {
		return fmt.Errorf("enumerate usb: %w", err)
	}
	for _, d := range devices {
		fmt.Fprintf(w, "%04x:%04x if=%d %s %s %s\n", d.VendorID, d.ProductID, d.Interface, d.Manufacturer, d.Product, d.Path)
	}
	return nil
}
