//go:build windows

package main

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/go-ole/go-ole"
	"github.com/moutend/go-wca/pkg/wca"
)

var (
	oleLock sync.Mutex

	mmde     *wca.IMMDeviceEnumerator
	mmdeOnce sync.Once
	mmdeErr  error
)

// startVolumeThread pins the calling goroutine to its OS thread and
// initialises COM on it. The returned func undoes both.
func startVolumeThread() (func(), error) {
	runtime.LockOSThread()
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("initialize COM: %w", err)
	}
	return func() {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
	}, nil
}

func getDeviceEnumerator() (*wca.IMMDeviceEnumerator, error) {
	mmdeOnce.Do(func() {
		mmdeErr = wca.CoCreateInstance(wca.CLSID_MMDeviceEnumerator, 0, wca.CLSCTX_ALL, wca.IID_IMMDeviceEnumerator, &mmde)
		if mmdeErr != nil {
			slog.Error("failed to create IMMDeviceEnumerator", "err", mmdeErr)
		}
	})
	return mmde, mmdeErr
}

// currentVolume returns the master volume of the endpoint in percent.
func currentVolume(deviceID string) (int, error) {
	oleLock.Lock()
	defer oleLock.Unlock()

	mmde, err := getDeviceEnumerator()
	if err != nil {
		return 0, err
	}

	var mmd *wca.IMMDevice
	if err = mmde.GetDevice(deviceID, &mmd); err != nil {
		return 0, fmt.Errorf("GetDevice failed: %w", err)
	}
	defer mmd.Release()

	var aev *wca.IAudioEndpointVolume
	if err = mmd.Activate(wca.IID_IAudioEndpointVolume, wca.CLSCTX_ALL, nil, &aev); err != nil {
		return 0, fmt.Errorf("Activate IAudioEndpointVolume failed: %w", err)
	}
	defer aev.Release()

	var level float32
	if err = aev.GetMasterVolumeLevelScalar(&level); err != nil {
		return 0, fmt.Errorf("GetMasterVolumeLevelScalar failed: %w", err)
	}
	return int(level*100.0 + 0.5), nil
}
