package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/aspscan/domain"
)

// OutputFormatterImpl implements the domain.OutputFormatter interface
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ScanResultJSON is the machine-readable report document
type ScanResultJSON struct {
	Version     string             `json:"version"`
	GeneratedAt string             `json:"generated_at"`
	DurationMs  int64              `json:"duration_ms"`
	Root        string             `json:"root"`
	Summary     domain.ScanSummary `json:"summary"`
	Issues      []domain.Finding   `json:"issues"`
}

// Write renders the scan result in the specified format
func (f *OutputFormatterImpl) Write(result *domain.ScanResult, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return f.writeJSON(result, writer)
	case domain.OutputFormatConsole:
		return f.writeConsole(result, writer)
	case domain.OutputFormatMarkdown:
		return f.writeMarkdown(result, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *OutputFormatterImpl) writeJSON(result *domain.ScanResult, writer io.Writer) error {
	issues := result.Findings
	if issues == nil {
		issues = []domain.Finding{}
	}
	doc := ScanResultJSON{
		Version:     result.Version,
		GeneratedAt: result.GeneratedAt,
		DurationMs:  result.Duration,
		Root:        result.Root,
		Summary:     result.Summary,
		Issues:      issues,
	}
	return WriteJSON(writer, doc)
}

func (f *OutputFormatterImpl) writeConsole(result *domain.ScanResult, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== aspscan Report ===\n\n")
	fmt.Fprintf(writer, "Root: %s\n", result.Root)
	fmt.Fprintf(writer, "Generated: %s\n", result.GeneratedAt)
	fmt.Fprintf(writer, "Duration: %dms\n\n", result.Duration)

	fmt.Fprintf(writer, "Summary:\n")
	fmt.Fprintf(writer, "  Files scanned: %d\n", result.Summary.FilesScanned)
	if result.Summary.FilesSkipped > 0 {
		fmt.Fprintf(writer, "  Files skipped: %d\n", result.Summary.FilesSkipped)
	}
	fmt.Fprintf(writer, "  Critical: %d\n", result.Summary.Critical)
	fmt.Fprintf(writer, "  High: %d\n", result.Summary.High)
	fmt.Fprintf(writer, "  Medium: %d\n", result.Summary.Medium)
	fmt.Fprintf(writer, "  Low: %d\n", result.Summary.Low)
	fmt.Fprintf(writer, "  Total: %d\n", result.Summary.Total)

	if len(result.Findings) == 0 {
		fmt.Fprintf(writer, "\nNo issues found.\n")
		return nil
	}

	fmt.Fprintf(writer, "\nIssues:\n")
	for _, finding := range result.Findings {
		fmt.Fprintf(writer, "  %s:%d [%s] %s: %s\n",
			finding.FilePath, finding.Line,
			strings.ToUpper(string(finding.Severity)),
			finding.RuleID, finding.Message)
	}

	return nil
}

func (f *OutputFormatterImpl) writeMarkdown(result *domain.ScanResult, writer io.Writer) error {
	fmt.Fprintf(writer, "# aspscan Report\n\n")
	fmt.Fprintf(writer, "Root: `%s`  \n", result.Root)
	fmt.Fprintf(writer, "Generated: %s\n\n", result.GeneratedAt)

	fmt.Fprintf(writer, "## Summary\n\n")
	fmt.Fprintf(writer, "| Severity | Count |\n")
	fmt.Fprintf(writer, "|----------|-------|\n")
	fmt.Fprintf(writer, "| Critical | %d |\n", result.Summary.Critical)
	fmt.Fprintf(writer, "| High | %d |\n", result.Summary.High)
	fmt.Fprintf(writer, "| Medium | %d |\n", result.Summary.Medium)
	fmt.Fprintf(writer, "| Low | %d |\n", result.Summary.Low)
	fmt.Fprintf(writer, "| **Total** | **%d** |\n\n", result.Summary.Total)

	if len(result.Findings) == 0 {
		fmt.Fprintf(writer, "No issues found.\n")
		return nil
	}

	fmt.Fprintf(writer, "## Issues\n")
	for _, finding := range result.Findings {
		fmt.Fprintf(writer, "\n### %s `%s:%d`\n\n", finding.RuleID, finding.FilePath, finding.Line)
		fmt.Fprintf(writer, "- Severity: %s\n", finding.Severity)
		if finding.RuleName != "" {
			fmt.Fprintf(writer, "- Rule: %s\n", finding.RuleName)
		}
		fmt.Fprintf(writer, "- %s\n", finding.Message)
	}

	return nil
}
