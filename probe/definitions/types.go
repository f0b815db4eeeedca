package definitions

import (
	"time"

	"github.com/samber/lo"
)

type ConnectionType string

const (
	USB    ConnectionType = "usb"
	Remote ConnectionType = "remote"
)

type DeviceInfo struct {
	DeviceID       string         `json:"device_id"`
	Status         string         `json:"status"`
	ConnectionType ConnectionType `json:"connection_type"`
	Model          string         `json:"model,omitempty"`
}

// Coordinate is a named screen position. Fractional positions are allowed,
// `input tap` accepts them.
type Coordinate struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

type CoordinateMap map[string]Coordinate

// NavStep is one entry of a navigation script: tap the named coordinate,
// then block for Wait before the next step.
type NavStep struct {
	Coord   string
	Wait    time.Duration
	Message string
}

// Readback is the result of querying an integer system setting. Found is
// false when every attempt produced only empty or non-numeric responses,
// in which case Value holds the legacy sentinel 0.
type Readback struct {
	Raw      string `json:"raw"`
	Value    int    `json:"value"`
	Found    bool   `json:"found"`
	Attempts int    `json:"attempts"`
}

type Direction string

const (
	DirectionRight Direction = "RIGHT"
	DirectionLeft  Direction = "LEFT"
)

// BrightnessSample is one readback taken after a directional key press.
// Step is 1-based within its phase.
type BrightnessSample struct {
	Direction Direction `json:"direction"`
	Step      int       `json:"step"`
	Value     int       `json:"value"`
}

// RampResult captures a full increase-then-decrease brightness sweep.
type RampResult struct {
	Initial int                `json:"initial"`
	Final   int                `json:"final"`
	Trace   []BrightnessSample `json:"trace"`
}

// CaseStatus represents the execution status of a test case.
type CaseStatus int

const (
	StatusPending CaseStatus = iota
	StatusRunning
	StatusPassed
	StatusFailed
	StatusErrored
	StatusSkipped
	StatusWarned
)

func (s CaseStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusErrored:
		return "errored"
	case StatusSkipped:
		return "skipped"
	case StatusWarned:
		return "warned"
	default:
		return "unknown"
	}
}

func (s CaseStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsSuccess returns true if the status indicates success (passed or warned).
func (s CaseStatus) IsSuccess() bool {
	return s == StatusPassed || s == StatusWarned
}

// CaseResult captures the outcome of a single test case.
type CaseResult struct {
	Name      string        `json:"name"`
	Status    CaseStatus    `json:"status"`
	Message   string        `json:"message,omitempty"`
	Error     string        `json:"error,omitempty"`
	Expected  int           `json:"expected,omitempty"`
	Actual    int           `json:"actual,omitempty"`
	Verified  bool          `json:"verified,omitempty"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// SuiteResult captures the outcome of one probe session across all cases.
type SuiteResult struct {
	Name      string        `json:"name"`
	RunID     string        `json:"run_id"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`

	Cases []CaseResult `json:"cases"`

	TotalCases   int `json:"total_cases"`
	PassedCases  int `json:"passed_cases"`
	FailedCases  int `json:"failed_cases"`
	WarnedCases  int `json:"warned_cases"`
	SkippedCases int `json:"skipped_cases"`
}

// ComputeSummary calculates case counts from the Cases slice.
func (s *SuiteResult) ComputeSummary() {
	s.TotalCases = len(s.Cases)
	s.PassedCases = lo.CountBy(s.Cases, func(c CaseResult) bool { return c.Status == StatusPassed })
	s.FailedCases = lo.CountBy(s.Cases, func(c CaseResult) bool { return c.Status == StatusFailed || c.Status == StatusErrored })
	s.WarnedCases = lo.CountBy(s.Cases, func(c CaseResult) bool { return c.Status == StatusWarned })
	s.SkippedCases = lo.CountBy(s.Cases, func(c CaseResult) bool { return c.Status == StatusSkipped })
}

// Success returns true if every case passed (warned counts as success).
func (s *SuiteResult) Success() bool {
	if len(s.Cases) == 0 {
		return false
	}
	return lo.EveryBy(s.Cases, func(c CaseResult) bool { return c.Status.IsSuccess() })
}
