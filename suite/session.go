package suite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rahulnandan-cmyk/brightnessandtimeout/probe"
	"github.com/rahulnandan-cmyk/brightnessandtimeout/probe/definitions"
	"github.com/rahulnandan-cmyk/brightnessandtimeout/utils"
)

const (
	timestampLayout = "20060102_150405"
	logTimeFormat   = "2006-01-02 15:04:05"
)

// Options select which tests a session runs and how it reports.
type Options struct {
	BrightnessOnly bool
	TimeoutOnly    bool
	NoMerge        bool
}

// Session runs the display test suite: screen timeout first, then
// brightness, each with its own timestamped log file, then merges the
// session logs into one report.
type Session struct {
	shell probe.Shell
	cfg   *definitions.Config
	opts  Options

	probeOpts []probe.Option
}

func NewSession(shell probe.Shell, cfg *definitions.Config, opts Options, probeOpts ...probe.Option) *Session {
	return &Session{shell: shell, cfg: cfg, opts: opts, probeOpts: probeOpts}
}

// Run executes the session and returns the aggregated result.
func (s *Session) Run(ctx context.Context) (*definitions.SuiteResult, error) {
	start := time.Now()
	result := &definitions.SuiteResult{
		Name:      "display_settings",
		RunID:     uuid.New().String(),
		StartTime: start,
	}

	log.Info().Str("run_id", result.RunID).Msgf("Starting Display Settings Test Suite at %s", start.Format("15:04:05"))

	var sessionLogs []string

	if !s.opts.BrightnessOnly {
		logPath := filepath.Join(s.cfg.LogDir, fmt.Sprintf("screen_timeout_test_%s.log", time.Now().Format(timestampLayout)))
		cases, err := s.runWithLog(ctx, logPath, func(ctx context.Context, logger zerolog.Logger) []definitions.CaseResult {
			p := probe.NewSettingsProbe(s.shell, s.cfg, logger, s.probeOpts...)
			return NewTimeoutSuite(p, s.cfg, logger).Run(ctx)
		})
		if err != nil {
			return nil, err
		}
		result.Cases = append(result.Cases, cases...)
		sessionLogs = append(sessionLogs, logPath)
	}

	if !s.opts.TimeoutOnly {
		logPath := filepath.Join(s.cfg.LogDir, fmt.Sprintf("display_brightness_test_%s.log", time.Now().Format(timestampLayout)))
		cases, err := s.runWithLog(ctx, logPath, func(ctx context.Context, logger zerolog.Logger) []definitions.CaseResult {
			p := probe.NewSettingsProbe(s.shell, s.cfg, logger, s.probeOpts...)
			return []definitions.CaseResult{NewBrightnessTest(p, s.cfg, logger).Run(ctx)}
		})
		if err != nil {
			return nil, err
		}
		result.Cases = append(result.Cases, cases...)
		sessionLogs = append(sessionLogs, logPath)
	}

	result.Duration = time.Since(start)
	result.ComputeSummary()

	for _, c := range result.Cases {
		log.Info().Str("case", c.Name).Str("status", c.Status.String()).Msg(c.Message)
	}
	log.Info().Msgf("Suite summary: %d total, %d passed, %d failed, %d skipped",
		result.TotalCases, result.PassedCases, result.FailedCases, result.SkippedCases)

	if err := s.writeSummary(result); err != nil {
		log.Warn().Err(err).Msg("Failed to write summary file")
	}

	if !s.opts.NoMerge {
		mergedPath, err := MergeSessionLogs(s.cfg.LogDir, start, sessionLogs)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to merge session logs")
		} else {
			log.Info().Str("file", mergedPath).Msg("Merged log created")
		}
	}

	log.Info().Msgf("Test suite completed at %s", time.Now().Format("15:04:05"))
	return result, nil
}

// runWithLog runs fn with a logger writing to both stderr and the named
// session log file.
func (s *Session) runWithLog(ctx context.Context, logPath string, fn func(context.Context, zerolog.Logger) []definitions.CaseResult) ([]definitions.CaseResult, error) {
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating session log %s: %w", logPath, err)
	}
	defer f.Close()

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: logTimeFormat}
	fileWriter := zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: logTimeFormat}
	logger := zerolog.New(zerolog.MultiLevelWriter(console, fileWriter)).With().Timestamp().Logger()

	logger.Info().Msgf("Logging initialized. Log file: %s", logPath)
	return fn(ctx, logger), nil
}

// writeSummary dumps the aggregated result as JSON next to the logs.
func (s *Session) writeSummary(result *definitions.SuiteResult) error {
	path := filepath.Join(s.cfg.LogDir, fmt.Sprintf("display_settings_summary_%s.json", result.StartTime.Format(timestampLayout)))
	return os.WriteFile(path, []byte(utils.JsonIndent(result)), 0o644)
}

// MergeSessionLogs concatenates the session's log files into one
// merged_log_<timestamp>.log with file-boundary banners. A missing log
// file is tolerated and recorded as a placeholder line.
func MergeSessionLogs(dir string, start time.Time, files []string) (string, error) {
	mergedPath := filepath.Join(dir, fmt.Sprintf("merged_log_%s.log", start.Format(timestampLayout)))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("TEST SESSION LOG - %s\n", start.Format(logTimeFormat)))
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Tests run: %s\n", strings.Join(files, ", ")))
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")

	for _, file := range files {
		sb.WriteString(fmt.Sprintf("FILE: %s\n", file))
		sb.WriteString(strings.Repeat("-", 60) + "\n")

		data, err := os.ReadFile(file)
		if err != nil {
			sb.WriteString(fmt.Sprintf("Log file not found: %s\n", file))
		} else {
			sb.Write(data)
		}

		sb.WriteString("\n" + strings.Repeat("=", 60) + "\n\n")
	}

	if err := os.WriteFile(mergedPath, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing merged log: %w", err)
	}
	return mergedPath, nil
}
