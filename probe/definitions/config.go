package definitions

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// BrightnessParams controls the ramp-and-sample sweep.
type BrightnessParams struct {
	RightPresses int     `yaml:"right_presses" json:"right_presses"`
	LeftPresses  int     `yaml:"left_presses" json:"left_presses"`
	Delay        float64 `yaml:"delay" json:"delay"` // seconds between presses

	// SkipDecreaseIfUnchanged skips the decrease phase when no increase
	// press changed the observed value. Off by default: the decrease
	// phase runs unconditionally.
	SkipDecreaseIfUnchanged bool `yaml:"skip_decrease_if_unchanged" json:"skip_decrease_if_unchanged"`

	// RequireMonotonicTrend additionally requires the sampled trace to be
	// non-decreasing during the increase phase and non-increasing during
	// the decrease phase, instead of only initial != final.
	RequireMonotonicTrend bool `yaml:"require_monotonic_trend" json:"require_monotonic_trend"`
}

// PressDelay returns Delay as a duration.
func (p BrightnessParams) PressDelay() time.Duration {
	return time.Duration(p.Delay * float64(time.Second))
}

// TimeoutCase is one screen-timeout option to select and verify.
type TimeoutCase struct {
	Option        string `yaml:"option" json:"option"`
	ExpectedMs    int    `yaml:"expected_ms" json:"expected_ms"`
	VerifyWaitSec int    `yaml:"verify_wait_sec" json:"verify_wait_sec"`
}

// Config is the per-session configuration (brightnessandtimeout.yaml).
type Config struct {
	DeviceID        string           `yaml:"device_id" json:"device_id"`
	LogDir          string           `yaml:"log_dir" json:"log_dir"`
	ReadbackRetries int              `yaml:"readback_retries" json:"readback_retries"`
	Coordinates     CoordinateMap    `yaml:"coordinates" json:"coordinates"`
	Brightness      BrightnessParams `yaml:"brightness" json:"brightness"`
	TimeoutCases    []TimeoutCase    `yaml:"timeout_cases" json:"timeout_cases"`
}

// Coordinate names every session must resolve, beyond the timeout options.
var requiredCoordinates = []string{
	"win_button",
	"settings",
	"display",
	"brightness",
	"screen_timeout",
}

// DefaultConfig returns the built-in session configuration.
func DefaultConfig() *Config {
	return &Config{
		LogDir:          ".",
		ReadbackRetries: 3,
		Coordinates: CoordinateMap{
			"win_button":     {X: 20, Y: 1055},
			"settings":       {X: 296, Y: 577},
			"display":        {X: 242, Y: 955},
			"brightness":     {X: 178, Y: 321},
			"screen_timeout": {X: 56, Y: 520},
			"15_seconds":     {X: 83, Y: 252.8},
			"30_seconds":     {X: 83, Y: 312},
			"1_minute":       {X: 83, Y: 371.2},
			"2_minutes":      {X: 83, Y: 430.4},
			"5_minutes":      {X: 83, Y: 489.6},
			"10_minutes":     {X: 83, Y: 548.8},
			"30_minutes":     {X: 83, Y: 616},
		},
		Brightness: BrightnessParams{
			RightPresses:          10,
			LeftPresses:           10,
			Delay:                 1.0,
			RequireMonotonicTrend: true,
		},
		TimeoutCases: []TimeoutCase{
			{Option: "15_seconds", ExpectedMs: 15000, VerifyWaitSec: 20},
			{Option: "30_seconds", ExpectedMs: 30000, VerifyWaitSec: 35},
			{Option: "1_minute", ExpectedMs: 60000},
			{Option: "2_minutes", ExpectedMs: 120000},
			{Option: "5_minutes", ExpectedMs: 300000},
			{Option: "10_minutes", ExpectedMs: 600000},
			{Option: "30_minutes", ExpectedMs: 1800000},
		},
	}
}

// LoadConfig loads a session configuration from a YAML file, layered over
// the defaults. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrInvalidConfig.WithMessage(fmt.Sprintf("reading config %s", path)).WithCause(err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, ErrInvalidConfig.WithMessage(fmt.Sprintf("parsing config %s", path)).WithCause(err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.LogDir == "" {
		c.LogDir = def.LogDir
	}
	if c.ReadbackRetries <= 0 {
		c.ReadbackRetries = def.ReadbackRetries
	}
	if len(c.Coordinates) == 0 {
		c.Coordinates = def.Coordinates
	}
	if c.Brightness.RightPresses <= 0 {
		c.Brightness.RightPresses = def.Brightness.RightPresses
	}
	if c.Brightness.LeftPresses <= 0 {
		c.Brightness.LeftPresses = def.Brightness.LeftPresses
	}
	if c.Brightness.Delay <= 0 {
		c.Brightness.Delay = def.Brightness.Delay
	}
	if len(c.TimeoutCases) == 0 {
		c.TimeoutCases = def.TimeoutCases
	}
}

// Validate checks that every coordinate the session will tap resolves.
func (c *Config) Validate() error {
	for _, name := range requiredCoordinates {
		if _, ok := c.Coordinates[name]; !ok {
			return ErrInvalidConfig.WithMessage(fmt.Sprintf("missing required coordinate %q", name))
		}
	}
	for _, tc := range c.TimeoutCases {
		if tc.Option == "" {
			return ErrInvalidConfig.WithMessage("timeout case with empty option name")
		}
		if _, ok := c.Coordinates[tc.Option]; !ok {
			return ErrInvalidConfig.WithMessage(fmt.Sprintf("timeout option %q has no coordinate", tc.Option))
		}
		if tc.ExpectedMs <= 0 {
			return ErrInvalidConfig.WithMessage(fmt.Sprintf("timeout option %q has non-positive expected_ms", tc.Option))
		}
	}
	return nil
}
