package probe

import (
	"context"
	"fmt"

	"github.com/rahulnandan-cmyk/brightnessandtimeout/constants"
	"github.com/rahulnandan-cmyk/brightnessandtimeout/probe/android"
	"github.com/rahulnandan-cmyk/brightnessandtimeout/probe/definitions"
)

// Shell is the single capability the probe needs from a device: run a
// shell command, get the trimmed text response back. Byte/string
// normalization happens behind this boundary, once.
type Shell interface {
	Execute(ctx context.Context, command string) (string, error)
}

// DeviceManager manages device connections.
type DeviceManager interface {
	Connect(ctx context.Context, address string) (string, error)
	Disconnect(ctx context.Context, address string) (string, error)
	ListDevices(ctx context.Context) ([]definitions.DeviceInfo, error)
}

type Device interface {
	Shell
	DeviceManager
}

func CreateDevice(deviceType, deviceID string) (Device, error) {
	switch deviceType {
	case constants.ADB:
		return android.NewADBShell(deviceID), nil
	default:
		return nil, fmt.Errorf("unknown device type: %v", deviceType)
	}
}
