package suite

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rahulnandan-cmyk/brightnessandtimeout/constants"
	"github.com/rahulnandan-cmyk/brightnessandtimeout/probe"
	"github.com/rahulnandan-cmyk/brightnessandtimeout/probe/definitions"
)

// simDevice models just enough of a device for the suite tests: a
// brightness slider driven by DPAD presses, a screen timeout set by
// option taps, and a wakefulness state.
type simDevice struct {
	commands []string

	brightness int
	rightDelta int
	leftDelta  int

	timeoutMs  int
	selections map[string]int

	asleep bool
	errOn  map[string]error
}

func newSimDevice(cfg *definitions.Config) *simDevice {
	sim := &simDevice{
		brightness: 100,
		rightDelta: 20,
		leftDelta:  10,
		selections: map[string]int{},
		errOn:      map[string]error{},
	}
	for _, tc := range cfg.TimeoutCases {
		if coord, ok := cfg.Coordinates[tc.Option]; ok {
			sim.selections[probe.TapCommand(coord)] = tc.ExpectedMs
		}
	}
	return sim
}

func (d *simDevice) Execute(_ context.Context, cmd string) (string, error) {
	d.commands = append(d.commands, cmd)
	if err, ok := d.errOn[cmd]; ok {
		return "", err
	}

	switch {
	case cmd == probe.GetSettingCommand(constants.SettingScreenTimeout):
		return strconv.Itoa(d.timeoutMs), nil
	case cmd == probe.GetSettingCommand(constants.SettingBrightness):
		return strconv.Itoa(d.brightness), nil
	case cmd == probe.KeyEventCommand(constants.KeycodeDpadRight):
		d.brightness = min(255, d.brightness+d.rightDelta)
	case cmd == probe.KeyEventCommand(constants.KeycodeDpadLeft):
		d.brightness = max(0, d.brightness-d.leftDelta)
	case cmd == probe.KeyEventCommand(constants.KeycodeWakeup):
		d.asleep = false
	case strings.Contains(cmd, "Display Power"):
		return "Display Power: state=ON", nil
	case strings.Contains(cmd, "mWakefulness"):
		if d.asleep {
			return "mWakefulness=Asleep", nil
		}
		return "mWakefulness=Awake", nil
	case strings.HasPrefix(cmd, "input tap"):
		if ms, ok := d.selections[cmd]; ok {
			d.timeoutMs = ms
		}
	}
	return "", nil
}

func newTestProbe(shell probe.Shell, cfg *definitions.Config) *probe.SettingsProbe {
	return probe.NewSettingsProbe(shell, cfg, zerolog.Nop(),
		probe.WithRetryDelay(0),
		probe.WithSettleFunc(func(time.Duration) {}))
}
