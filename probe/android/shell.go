package android

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	adbPath = "adb"

	// Upper bound for a single shell command. A hung device command
	// otherwise blocks the whole run.
	commandTimeout = 30 * time.Second
)

// ADBShell runs shell commands on an Android device through the adb
// binary. A non-empty DeviceID pins the target with `-s`.
type ADBShell struct {
	DeviceID string
}

func NewADBShell(deviceID string) *ADBShell {
	return &ADBShell{DeviceID: deviceID}
}

// Execute runs `adb [-s id] shell <command>` and returns the trimmed
// combined output.
func (r *ADBShell) Execute(ctx context.Context, command string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	var cmdArgs []string
	if len(r.DeviceID) > 0 {
		cmdArgs = append(cmdArgs, "-s", r.DeviceID)
	}
	cmdArgs = append(cmdArgs, "shell", command)

	log.Debug().Str("cmd", fmt.Sprintf("[Execute] run cmd: %s %s", adbPath, strings.Join(cmdArgs, " "))).Msg("")

	rawOutput, err := exec.CommandContext(ctx, adbPath, cmdArgs...).CombinedOutput()
	output := strings.TrimSpace(string(rawOutput))
	if err != nil {
		log.Error().Err(err).Str("output", output).Msg("[Execute] run cmd failed")
		return output, fmt.Errorf("adb shell %q: %w", command, err)
	}

	log.Debug().Str("output", output).Msg("[Execute] raw output")
	return output, nil
}
