package android

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rahulnandan-cmyk/brightnessandtimeout/probe/definitions"
)

func (r *ADBShell) Connect(ctx context.Context, address string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmdArgs := []string{"connect", address}

	log.Debug().Str("cmd", fmt.Sprintf("[Connect] run cmd: %s %s", adbPath, strings.Join(cmdArgs, " "))).Msg("")

	rawOutput, err := exec.CommandContext(ctx, adbPath, cmdArgs...).CombinedOutput()
	if err != nil {
		log.Error().Err(err).Msg("[Connect] run cmd failed")
		return fmt.Sprintf("Connect error: %v", err), err
	}

	log.Debug().Str("output", string(rawOutput)).Msg("[Connect] raw output")

	output := string(rawOutput)
	lowerOutput := strings.ToLower(output)

	if strings.Contains(lowerOutput, "already connected") {
		return fmt.Sprintf("Already connected to %s", address), nil
	}
	if strings.Contains(lowerOutput, " connected") {
		return fmt.Sprintf("Connected to %s", address), nil
	}

	return fmt.Sprintf("Connection error: %s", strings.TrimSpace(output)), nil
}

func (r *ADBShell) Disconnect(ctx context.Context, address string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmdArgs := []string{"disconnect"}
	if len(address) > 0 && address != "all" {
		cmdArgs = append(cmdArgs, address)
	}
	log.Debug().Str("cmd", fmt.Sprintf("[Disconnect] run cmd: %s %s", adbPath, strings.Join(cmdArgs, " "))).Msg("")

	rawOutput, err := exec.CommandContext(ctx, adbPath, cmdArgs...).CombinedOutput()
	if err != nil {
		log.Error().Err(err).Msg("[Disconnect] run cmd failed")
		return fmt.Sprintf("Disconnect error: %v", err), err
	}

	log.Debug().Str("output", string(rawOutput)).Msg("[Disconnect] raw output")

	return string(rawOutput), nil
}

func (r *ADBShell) ListDevices(ctx context.Context) ([]definitions.DeviceInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	cmdArgs := []string{"devices", "-l"}

	log.Debug().Str("cmd", fmt.Sprintf("[ListDevices] run cmd: %s %s", adbPath, strings.Join(cmdArgs, " "))).Msg("")

	rawOutput, err := exec.CommandContext(ctx, adbPath, cmdArgs...).CombinedOutput()
	if err != nil {
		log.Error().Err(err).Msg("[ListDevices] run cmd failed")
		return nil, err
	}
	output := string(rawOutput)

	var devices []definitions.DeviceInfo
	scanner := bufio.NewScanner(strings.NewReader(output))

	// Skip the first line (header)
	scanner.Scan()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		deviceID := parts[0]
		status := parts[1]

		connType := definitions.USB
		if strings.Contains(deviceID, ":") {
			connType = definitions.Remote
		}

		var model string
		for _, part := range parts[2:] {
			if strings.HasPrefix(part, "model:") {
				model = strings.SplitN(part, ":", 2)[1]
				break
			}
		}

		devices = append(devices, definitions.DeviceInfo{
			DeviceID:       deviceID,
			Status:         status,
			ConnectionType: connType,
			Model:          model,
		})
	}

	return devices, nil
}
