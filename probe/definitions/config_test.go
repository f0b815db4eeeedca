package definitions

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ReadbackRetries != 3 {
		t.Errorf("ReadbackRetries = %d, want 3", cfg.ReadbackRetries)
	}
	if cfg.Brightness.RightPresses != 10 || cfg.Brightness.LeftPresses != 10 {
		t.Errorf("press counts = %d/%d, want 10/10", cfg.Brightness.RightPresses, cfg.Brightness.LeftPresses)
	}
	if cfg.Brightness.Delay != 1.0 {
		t.Errorf("Delay = %g, want 1.0", cfg.Brightness.Delay)
	}
	if cfg.Brightness.SkipDecreaseIfUnchanged {
		t.Error("SkipDecreaseIfUnchanged should default to false")
	}
	if len(cfg.TimeoutCases) != 7 {
		t.Errorf("timeout cases = %d, want 7", len(cfg.TimeoutCases))
	}
	if got := cfg.Coordinates["win_button"]; got.X != 20 || got.Y != 1055 {
		t.Errorf("win_button = %+v, want (20, 1055)", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadConfigEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	if cfg.ReadbackRetries != 3 {
		t.Errorf("ReadbackRetries = %d, want default 3", cfg.ReadbackRetries)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("LoadConfig() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadConfigLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brightnessandtimeout.yaml")
	data := `
device_id: emulator-5554
brightness:
  right_presses: 5
  skip_decrease_if_unchanged: true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.DeviceID != "emulator-5554" {
		t.Errorf("DeviceID = %q", cfg.DeviceID)
	}
	if cfg.Brightness.RightPresses != 5 {
		t.Errorf("RightPresses = %d, want 5", cfg.Brightness.RightPresses)
	}
	if !cfg.Brightness.SkipDecreaseIfUnchanged {
		t.Error("SkipDecreaseIfUnchanged should be true")
	}
	// Untouched fields keep their defaults.
	if cfg.Brightness.LeftPresses != 10 {
		t.Errorf("LeftPresses = %d, want default 10", cfg.Brightness.LeftPresses)
	}
	if len(cfg.Coordinates) == 0 {
		t.Error("Coordinates should fall back to defaults")
	}
	if len(cfg.TimeoutCases) != 7 {
		t.Errorf("TimeoutCases = %d, want default 7", len(cfg.TimeoutCases))
	}
}

func TestValidateMissingCoordinate(t *testing.T) {
	cfg := DefaultConfig()
	delete(cfg.Coordinates, "display")

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Validate() error = %v, want ErrInvalidConfig", err)
	}
}

func TestValidateTimeoutOptionWithoutCoordinate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeoutCases = append(cfg.TimeoutCases, TimeoutCase{Option: "45_seconds", ExpectedMs: 45000})

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Validate() error = %v, want ErrInvalidConfig", err)
	}
}

func TestPressDelay(t *testing.T) {
	p := BrightnessParams{Delay: 1.5}
	if got := p.PressDelay(); got != 1500*time.Millisecond {
		t.Errorf("PressDelay() = %v, want 1.5s", got)
	}
}
