package suite

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rahulnandan-cmyk/brightnessandtimeout/probe"
	"github.com/rahulnandan-cmyk/brightnessandtimeout/probe/definitions"
)

func TestMergeSessionLogs(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2026, 8, 23, 12, 30, 0, 0, time.UTC)

	existing := filepath.Join(dir, "screen_timeout_test_20260823_123000.log")
	if err := os.WriteFile(existing, []byte("timeout suite narrative\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "display_brightness_test_20260823_123001.log")

	mergedPath, err := MergeSessionLogs(dir, start, []string{existing, missing})
	if err != nil {
		t.Fatalf("MergeSessionLogs() error = %v", err)
	}
	if filepath.Base(mergedPath) != "merged_log_20260823_123000.log" {
		t.Errorf("merged file = %s", filepath.Base(mergedPath))
	}

	data, err := os.ReadFile(mergedPath)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	if !strings.Contains(content, "TEST SESSION LOG - 2026-08-23 12:30:00") {
		t.Error("missing session header")
	}
	if !strings.Contains(content, "FILE: "+existing) {
		t.Error("missing file banner for existing log")
	}
	if !strings.Contains(content, "timeout suite narrative") {
		t.Error("missing log contents")
	}
	if !strings.Contains(content, "Log file not found: "+missing) {
		t.Error("missing placeholder for absent log")
	}
	if !strings.Contains(content, strings.Repeat("=", 60)) {
		t.Error("missing banner rule")
	}
}

func TestSessionRunEndToEnd(t *testing.T) {
	cfg := definitions.DefaultConfig()
	cfg.LogDir = t.TempDir()
	// Only zero-verify cases so the suite never sleeps.
	cfg.TimeoutCases = []definitions.TimeoutCase{
		{Option: "1_minute", ExpectedMs: 60000},
	}
	sim := newSimDevice(cfg)

	session := NewSession(sim, cfg, Options{},
		probe.WithRetryDelay(0),
		probe.WithSettleFunc(func(time.Duration) {}))

	result, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.Success() {
		t.Fatalf("suite failed: %+v", result.Cases)
	}
	if result.TotalCases != 2 {
		t.Errorf("TotalCases = %d, want 2 (timeout case + brightness)", result.TotalCases)
	}
	if result.RunID == "" {
		t.Error("RunID is empty")
	}

	for _, pattern := range []string{
		"screen_timeout_test_*.log",
		"display_brightness_test_*.log",
		"merged_log_*.log",
		"display_settings_summary_*.json",
	} {
		matches, err := filepath.Glob(filepath.Join(cfg.LogDir, pattern))
		if err != nil {
			t.Fatal(err)
		}
		if len(matches) != 1 {
			t.Errorf("artifacts matching %s = %d, want 1", pattern, len(matches))
		}
	}
}

func TestSessionRunTimeoutOnly(t *testing.T) {
	cfg := definitions.DefaultConfig()
	cfg.LogDir = t.TempDir()
	cfg.TimeoutCases = []definitions.TimeoutCase{
		{Option: "1_minute", ExpectedMs: 60000},
	}
	sim := newSimDevice(cfg)

	session := NewSession(sim, cfg, Options{TimeoutOnly: true, NoMerge: true},
		probe.WithRetryDelay(0),
		probe.WithSettleFunc(func(time.Duration) {}))

	result, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.TotalCases != 1 {
		t.Errorf("TotalCases = %d, want 1", result.TotalCases)
	}

	brightnessLogs, _ := filepath.Glob(filepath.Join(cfg.LogDir, "display_brightness_test_*.log"))
	if len(brightnessLogs) != 0 {
		t.Errorf("brightness log written in timeout-only run: %v", brightnessLogs)
	}
	merged, _ := filepath.Glob(filepath.Join(cfg.LogDir, "merged_log_*.log"))
	if len(merged) != 0 {
		t.Errorf("merged log written with NoMerge: %v", merged)
	}
}
