package suite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rahulnandan-cmyk/brightnessandtimeout/probe"
	"github.com/rahulnandan-cmyk/brightnessandtimeout/probe/definitions"
)

const navTapWait = 3 * time.Second

func settingsNavScript(target, targetMessage string) []definitions.NavStep {
	return []definitions.NavStep{
		{Coord: "win_button", Wait: navTapWait, Message: "Opening Launcher"},
		{Coord: "settings", Wait: navTapWait, Message: "Opening Settings"},
		{Coord: "display", Wait: navTapWait, Message: "Opening Display settings"},
		{Coord: target, Wait: navTapWait, Message: targetMessage},
	}
}

// BrightnessTest validates that the brightness slider actually moves
// under a RIGHT->LEFT key sweep.
type BrightnessTest struct {
	probe *probe.SettingsProbe
	cfg   *definitions.Config
	log   zerolog.Logger
}

func NewBrightnessTest(p *probe.SettingsProbe, cfg *definitions.Config, logger zerolog.Logger) *BrightnessTest {
	return &BrightnessTest{probe: p, cfg: cfg, log: logger}
}

// Run executes the full brightness workflow and returns its case result.
func (t *BrightnessTest) Run(ctx context.Context) (res definitions.CaseResult) {
	res = definitions.CaseResult{
		Name:      "display_brightness",
		Status:    definitions.StatusRunning,
		StartTime: time.Now(),
	}
	defer func() { res.Duration = time.Since(res.StartTime) }()

	t.log.Info().Msg(strings.Repeat("=", 60))
	t.log.Info().Msg("Starting Display Settings Test")
	t.log.Info().Msg(strings.Repeat("=", 60))

	if _, err := t.probe.WakeUp(ctx); err != nil {
		return errored(res, "Test setup failed", err)
	}
	if err := t.probe.Navigate(ctx, settingsNavScript("brightness", "Opening Brightness slider")); err != nil {
		return errored(res, "Test setup failed", err)
	}

	ramp, err := t.probe.AdjustBrightness(ctx)
	if err != nil {
		return errored(res, "Brightness adjustment failed", err)
	}
	res.Expected = ramp.Initial
	res.Actual = ramp.Final

	if ramp.Initial == ramp.Final {
		res.Status = definitions.StatusFailed
		res.Message = fmt.Sprintf("Brightness should change. Initial: %d, Final: %d", ramp.Initial, ramp.Final)
		res.Error = definitions.ErrNoObservedChange.Error()
		t.log.Error().Msg(res.Message)
		return res
	}

	if t.cfg.Brightness.RequireMonotonicTrend && !monotonicTrend(ramp.Trace) {
		res.Status = definitions.StatusFailed
		res.Message = "Brightness trace is not monotonic across the sweep"
		t.log.Error().Msg(res.Message)
		return res
	}

	res.Status = definitions.StatusPassed
	res.Message = "Brightness successfully adjusted"
	t.log.Info().Msg("TEST PASSED: Brightness successfully adjusted")
	return res
}

// monotonicTrend checks that samples never decrease while ramping up and
// never increase while ramping down. Plateaus at the range limits are
// fine.
func monotonicTrend(trace []definitions.BrightnessSample) bool {
	for i := 1; i < len(trace); i++ {
		prev, curr := trace[i-1], trace[i]
		switch curr.Direction {
		case definitions.DirectionRight:
			if curr.Value < prev.Value {
				return false
			}
		case definitions.DirectionLeft:
			if curr.Value > prev.Value {
				return false
			}
		}
	}
	return true
}

func errored(res definitions.CaseResult, msg string, err error) definitions.CaseResult {
	res.Status = definitions.StatusErrored
	res.Message = msg
	res.Error = err.Error()
	return res
}
