package domain

import (
	"context"
	"io"
	"strings"
)

// Severity represents the severity level of a finding
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Rank returns a numeric rank for ordering (higher = more severe)
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

func (s Severity) String() string {
	return string(s)
}

// ParseSeverity converts a flag or config value into a Severity
func ParseSeverity(value string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "critical":
		return SeverityCritical, nil
	case "high":
		return SeverityHigh, nil
	case "medium":
		return SeverityMedium, nil
	case "low":
		return SeverityLow, nil
	default:
		return "", NewInvalidInputError("invalid severity: "+value, nil)
	}
}

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatConsole  OutputFormat = "console"
	OutputFormatJSON     OutputFormat = "json"
	OutputFormatMarkdown OutputFormat = "markdown"
)

// ParseOutputFormat converts a flag or config value into an OutputFormat.
// Unknown values are rejected before any scanning begins.
func ParseOutputFormat(value string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "console":
		return OutputFormatConsole, nil
	case "json":
		return OutputFormatJSON, nil
	case "markdown", "md":
		return OutputFormatMarkdown, nil
	default:
		return "", NewUnsupportedFormatError(value)
	}
}

// Finding represents one detected rule violation. Findings are created
// only by rule evaluation and are never mutated afterwards.
type Finding struct {
	// FilePath is the path of the source file where the issue was found
	FilePath string `json:"file"`

	// Line is the 1-based line number. Rules that do no line-level
	// tracking report line 1.
	Line int `json:"line"`

	// RuleID is the stable short identifier of the rule, e.g. "ASP001"
	RuleID string `json:"rule_id"`

	// RuleName is the human-readable rule name
	RuleName string `json:"rule_name,omitempty"`

	// Message describes the issue
	Message string `json:"message"`

	// Severity is one of critical, high, medium, low
	Severity Severity `json:"severity"`
}

// ScanSummary provides aggregate counts per severity
type ScanSummary struct {
	Critical     int `json:"critical"`
	High         int `json:"high"`
	Medium       int `json:"medium"`
	Low          int `json:"low"`
	Total        int `json:"total"`
	FilesScanned int `json:"files_scanned"`
	FilesSkipped int `json:"files_skipped,omitempty"`
}

// Add records one finding in the summary counts
func (s *ScanSummary) Add(f Finding) {
	switch f.Severity {
	case SeverityCritical:
		s.Critical++
	case SeverityHigh:
		s.High++
	case SeverityMedium:
		s.Medium++
	case SeverityLow:
		s.Low++
	}
	s.Total++
}

// ScanResult is the complete outcome of one scan invocation. It is owned
// by the invocation and passed explicitly from the scan phase into the
// formatter; there is no shared accumulator.
type ScanResult struct {
	Findings    []Finding   `json:"issues"`
	Summary     ScanSummary `json:"summary"`
	Root        string      `json:"root"`
	Duration    int64       `json:"duration_ms"`
	GeneratedAt string      `json:"generated_at"`
	Version     string      `json:"version"`
}

// HasFindingsAtOrAbove reports whether any finding meets the threshold.
// Used for the exit-code decision.
func (r *ScanResult) HasFindingsAtOrAbove(threshold Severity) bool {
	for _, f := range r.Findings {
		if f.Severity.Rank() >= threshold.Rank() {
			return true
		}
	}
	return false
}

// ScanRequest carries all parameters for one scan invocation
type ScanRequest struct {
	// Path is the root of the file tree to scan (must exist)
	Path string

	// Extensions are the file extensions to include, e.g. [".cs"]
	Extensions []string

	// ExcludeDirs are directory names excluded at any depth
	ExcludeDirs []string

	// RespectGitignore enables .gitignore handling at the scan root
	RespectGitignore bool

	// DisabledRules lists rule IDs that must not run
	DisabledRules []string

	// MinSeverity filters findings below the threshold from the result
	MinSeverity Severity

	// FailOn is the severity at or above which the process exits non-zero
	FailOn Severity

	// Concurrency is the number of files scanned in parallel (0 = NumCPU)
	Concurrency int

	// TimeoutSeconds bounds one full scan invocation (0 = no deadline)
	TimeoutSeconds int
}

// ScanService defines the interface for the enumerate-evaluate pipeline
type ScanService interface {
	// Scan enumerates eligible files under the request path and runs
	// every registered rule against each of them
	Scan(ctx context.Context, req ScanRequest) (*ScanResult, error)
}

// OutputFormatter defines the interface for rendering scan results
type OutputFormatter interface {
	// Write writes the result in the specified format to the writer
	Write(result *ScanResult, format OutputFormat, writer io.Writer) error
}

// ProgressManager handles progress tracking for long-running operations
type ProgressManager interface {
	// StartTask creates a new progress task with a description and total count
	StartTask(description string, total int) TaskProgress

	// IsInteractive returns true if progress can be displayed
	IsInteractive() bool

	// Close cleans up all progress tracking
	Close()
}

// TaskProgress tracks progress of a single task
type TaskProgress interface {
	// Increment adds n to the current progress
	Increment(n int)

	// Describe updates the current task description
	Describe(description string)

	// Complete marks the task as finished
	Complete()
}
