//go:build !windows

package main

import "errors"

var errVolumeUnsupported = errors.New("endpoint volume is only available on windows")

func startVolumeThread() (func(), error) {
	return func() {}, nil
}

func currentVolume(deviceID string) (int, error) {
	return 0, errVolumeUnsupported
}
