package probe

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/rahulnandan-cmyk/brightnessandtimeout/constants"
	"github.com/rahulnandan-cmyk/brightnessandtimeout/probe/definitions"
)

const (
	wakeAttempts   = 3
	wakeRetryDelay = 2 * time.Second
	readbackDelay  = time.Second
)

// SettingsProbe drives display settings on a device through blind
// coordinate taps and shell readbacks. All state lives in the immutable
// session config; the probe itself only holds collaborators.
type SettingsProbe struct {
	shell Shell
	cfg   *definitions.Config
	log   zerolog.Logger

	retryDelay time.Duration
	settle     func(time.Duration)
}

// Option customizes a SettingsProbe.
type Option func(*SettingsProbe)

// WithRetryDelay overrides the backoff between readback attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(p *SettingsProbe) { p.retryDelay = d }
}

// WithSettleFunc overrides the blocking wait used after taps and key
// presses.
func WithSettleFunc(fn func(time.Duration)) Option {
	return func(p *SettingsProbe) { p.settle = fn }
}

func NewSettingsProbe(shell Shell, cfg *definitions.Config, logger zerolog.Logger, opts ...Option) *SettingsProbe {
	p := &SettingsProbe{
		shell:      shell,
		cfg:        cfg,
		log:        logger,
		retryDelay: readbackDelay,
		settle:     time.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WakeUp wakes the device and waits for the screen to report ON. The
// final screen state line is returned; "Unknown" when the device never
// confirmed ON but the channel stayed healthy.
func (p *SettingsProbe) WakeUp(ctx context.Context) (string, error) {
	var state string
	attempt := 0

	op := func() error {
		attempt++
		p.log.Info().Msgf("Waking up device (attempt %d/%d)...", attempt, wakeAttempts)

		if _, err := p.shell.Execute(ctx, KeyEventCommand(constants.KeycodeWakeup)); err != nil {
			return err
		}
		p.settle(time.Second)

		if _, err := p.shell.Execute(ctx, cmdDismissKeyguard); err != nil {
			return err
		}
		p.settle(2 * time.Second)

		raw, err := p.shell.Execute(ctx, cmdDisplayPowerQuery)
		if err != nil {
			return err
		}
		state = strings.TrimSpace(raw)
		p.log.Debug().Str("state", state).Msg("Screen state")

		if !strings.Contains(strings.ToUpper(state), "ON") {
			return definitions.ErrScreenNotOn
		}

		p.log.Info().Msg("Device successfully awakened")
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(wakeRetryDelay), wakeAttempts-1), ctx)
	if err := backoff.Retry(op, b); err != nil {
		if definitions.IsTransient(err) {
			p.log.Warn().Int("attempts", attempt).Msg("Device never reported screen ON")
			return "Unknown", nil
		}
		p.log.Error().Err(err).Int("attempt", attempt).Msg("Wake-up failed")
		return state, err
	}
	return state, nil
}

// ReadSetting queries a named integer system setting with bounded retry.
// Empty, "null" and non-numeric responses are transient and retried after
// a fixed backoff; a channel fault is retried too, but propagates when it
// lands on the final attempt. When every attempt produced only transient
// garbage the result carries Found=false instead of an error.
func (p *SettingsProbe) ReadSetting(ctx context.Context, key string) (definitions.Readback, error) {
	command := GetSettingCommand(key)
	maxAttempts := p.cfg.ReadbackRetries
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var rb definitions.Readback

	op := func() error {
		rb.Attempts++
		raw, err := p.shell.Execute(ctx, command)
		if err != nil {
			p.log.Error().Err(err).Int("attempt", rb.Attempts).Str("key", key).Msg("Failed to read setting")
			return err
		}

		value := strings.TrimSpace(raw)
		rb.Raw = value
		p.log.Debug().Str("key", key).Str("raw", value).Msg("Raw setting readback")

		if value == "" || value == "null" {
			p.log.Warn().Int("attempt", rb.Attempts).Str("key", key).Msg("Empty setting value")
			return definitions.ErrEmptyReadback
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			p.log.Warn().Int("attempt", rb.Attempts).Str("key", key).Str("value", value).Msg("Non-numeric setting value")
			return definitions.ErrNonNumericReadback
		}

		rb.Value = n
		rb.Found = true
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(p.retryDelay), uint64(maxAttempts-1)), ctx)
	if err := backoff.Retry(op, b); err != nil {
		if definitions.IsTransient(err) {
			p.log.Error().Str("key", key).Int("attempts", rb.Attempts).Msg("Failed to retrieve setting, degrading to not-found")
			return definitions.Readback{Raw: rb.Raw, Attempts: rb.Attempts}, nil
		}
		return definitions.Readback{Attempts: rb.Attempts}, err
	}
	return rb, nil
}

// Tap looks up the step's coordinate, taps it and blocks for the step's
// wait. An unknown coordinate name is fatal.
func (p *SettingsProbe) Tap(ctx context.Context, step definitions.NavStep) error {
	coord, ok := p.cfg.Coordinates[step.Coord]
	if !ok {
		return definitions.ErrUnknownCoordinate.WithMessage("unknown coordinate " + strconv.Quote(step.Coord))
	}

	if step.Message != "" {
		p.log.Info().Msg(step.Message)
	}

	if _, err := p.shell.Execute(ctx, TapCommand(coord)); err != nil {
		return err
	}
	p.settle(step.Wait)
	return nil
}

// Navigate replays a navigation script in order. The first failing step
// aborts the remaining ones.
func (p *SettingsProbe) Navigate(ctx context.Context, script []definitions.NavStep) error {
	for _, step := range script {
		if err := p.Tap(ctx, step); err != nil {
			p.log.Error().Err(err).Str("coord", step.Coord).Msg("Navigation step failed")
			return err
		}
	}
	return nil
}

// PressKey injects a single key event.
func (p *SettingsProbe) PressKey(ctx context.Context, code string) error {
	_, err := p.shell.Execute(ctx, KeyEventCommand(code))
	return err
}

// AdjustBrightness sweeps the brightness slider with DPAD presses,
// sampling the setting after every press (RIGHT -> LEFT pattern).
func (p *SettingsProbe) AdjustBrightness(ctx context.Context) (definitions.RampResult, error) {
	params := p.cfg.Brightness
	delay := params.PressDelay()

	p.log.Info().Msgf("Starting brightness adjustment: %d RIGHT -> %d LEFT", params.RightPresses, params.LeftPresses)

	initial, err := p.ReadSetting(ctx, constants.SettingBrightness)
	if err != nil {
		return definitions.RampResult{}, err
	}
	p.log.Info().Msgf("Initial brightness: %d", initial.Value)

	result := definitions.RampResult{Initial: initial.Value}
	changed := false

	p.log.Info().Msg("Increasing brightness...")
	for i := 1; i <= params.RightPresses; i++ {
		sample, ok := p.pressAndSample(ctx, constants.KeycodeDpadRight, definitions.DirectionRight, i, params.RightPresses, delay)
		if !ok {
			continue
		}
		result.Trace = append(result.Trace, sample)
		if sample.Value != initial.Value {
			changed = true
		}
	}

	if params.SkipDecreaseIfUnchanged && !changed {
		p.log.Warn().Msg("No brightness change observed, skipping decrease phase")
	} else {
		p.settle(2 * time.Second)
		p.log.Info().Msg("Maximum brightness reached, pausing...")

		p.log.Info().Msg("Decreasing brightness...")
		for i := 1; i <= params.LeftPresses; i++ {
			sample, ok := p.pressAndSample(ctx, constants.KeycodeDpadLeft, definitions.DirectionLeft, i, params.LeftPresses, delay)
			if !ok {
				continue
			}
			result.Trace = append(result.Trace, sample)
		}
	}

	// Confirm selection
	if err := p.PressKey(ctx, constants.KeycodeEnter); err != nil {
		return result, err
	}
	p.settle(3 * time.Second)

	final, err := p.ReadSetting(ctx, constants.SettingBrightness)
	if err != nil {
		return result, err
	}
	result.Final = final.Value

	p.log.Info().Msgf("Brightness change summary: %d -> %d (delta %+d)", result.Initial, result.Final, result.Final-result.Initial)
	return result, nil
}

// pressAndSample issues one directional press and reads the value back.
// Faults on an individual press are logged and the sample dropped, the
// sweep keeps going.
func (p *SettingsProbe) pressAndSample(ctx context.Context, code string, dir definitions.Direction, step, total int, delay time.Duration) (definitions.BrightnessSample, bool) {
	if err := p.PressKey(ctx, code); err != nil {
		p.log.Error().Err(err).Msgf("Error during %s press %d", dir, step)
		return definitions.BrightnessSample{}, false
	}
	p.settle(delay)

	rb, err := p.ReadSetting(ctx, constants.SettingBrightness)
	if err != nil {
		p.log.Error().Err(err).Msgf("Error during %s press %d", dir, step)
		return definitions.BrightnessSample{}, false
	}

	p.log.Debug().Msgf("%s %d/%d -> Brightness: %d", dir, step, total, rb.Value)
	return definitions.BrightnessSample{Direction: dir, Step: step, Value: rb.Value}, true
}

// IsScreenOff reports whether the device is asleep.
func (p *SettingsProbe) IsScreenOff(ctx context.Context) (bool, error) {
	state, err := p.shell.Execute(ctx, cmdWakefulnessQuery)
	if err != nil {
		return false, err
	}
	return strings.Contains(state, "Asleep"), nil
}

// DisableStayAwake turns off the developer "Stay Awake" option so the
// screen can actually time out.
func (p *SettingsProbe) DisableStayAwake(ctx context.Context) error {
	p.log.Info().Msg("Disabling developer 'Stay Awake' option...")
	_, err := p.shell.Execute(ctx, PutGlobalCommand(constants.SettingStayOnWhilePluggedIn, 0))
	return err
}

// GoHome presses the home key.
func (p *SettingsProbe) GoHome(ctx context.Context) error {
	return p.PressKey(ctx, constants.KeycodeHome)
}
