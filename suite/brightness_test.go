package suite

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rahulnandan-cmyk/brightnessandtimeout/probe/definitions"
)

func TestMonotonicTrend(t *testing.T) {
	r := definitions.DirectionRight
	l := definitions.DirectionLeft

	tests := []struct {
		name  string
		trace []definitions.BrightnessSample
		want  bool
	}{
		{"empty", nil, true},
		{
			"increasing then decreasing",
			[]definitions.BrightnessSample{
				{Direction: r, Step: 1, Value: 110},
				{Direction: r, Step: 2, Value: 130},
				{Direction: l, Step: 1, Value: 120},
				{Direction: l, Step: 2, Value: 100},
			},
			true,
		},
		{
			"plateau at ceiling",
			[]definitions.BrightnessSample{
				{Direction: r, Step: 1, Value: 255},
				{Direction: r, Step: 2, Value: 255},
				{Direction: l, Step: 1, Value: 245},
			},
			true,
		},
		{
			"dip during increase",
			[]definitions.BrightnessSample{
				{Direction: r, Step: 1, Value: 120},
				{Direction: r, Step: 2, Value: 110},
			},
			false,
		},
		{
			"rise during decrease",
			[]definitions.BrightnessSample{
				{Direction: r, Step: 1, Value: 120},
				{Direction: l, Step: 1, Value: 110},
				{Direction: l, Step: 2, Value: 130},
			},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := monotonicTrend(tt.trace); got != tt.want {
				t.Errorf("monotonicTrend() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBrightnessTestPasses(t *testing.T) {
	cfg := definitions.DefaultConfig()
	sim := newSimDevice(cfg)
	p := newTestProbe(sim, cfg)

	res := NewBrightnessTest(p, cfg, zerolog.Nop()).Run(context.Background())

	if res.Status != definitions.StatusPassed {
		t.Fatalf("status = %s (%s), want passed", res.Status, res.Message)
	}
	if res.Expected != 100 || res.Actual != 155 {
		t.Errorf("initial/final = %d/%d, want 100/155", res.Expected, res.Actual)
	}
}

func TestBrightnessTestFailsWhenUnchanged(t *testing.T) {
	cfg := definitions.DefaultConfig()
	sim := newSimDevice(cfg)
	// Dead slider: presses never move the value.
	sim.rightDelta = 0
	sim.leftDelta = 0
	p := newTestProbe(sim, cfg)

	res := NewBrightnessTest(p, cfg, zerolog.Nop()).Run(context.Background())

	if res.Status != definitions.StatusFailed {
		t.Fatalf("status = %s, want failed", res.Status)
	}
	if !strings.Contains(res.Message, "Brightness should change") {
		t.Errorf("message = %q, want change assertion", res.Message)
	}
}
