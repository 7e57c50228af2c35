package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ludo-technologies/aspscan/domain"
	"github.com/ludo-technologies/aspscan/service"
	"github.com/spf13/cobra"
)

// ScanExitError is a custom error type for scan command exit codes
type ScanExitError struct {
	Code    int
	Message string
}

func (e *ScanExitError) Error() string {
	return e.Message
}

var (
	scanFormat      string
	scanOutputPath  string
	scanConfigPath  string
	scanFailOn      string
	scanMinSeverity string
	scanDisabled    []string
	scanJobs        int
	scanNoProgress  bool
	scanQuiet       bool
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan an ASP.NET Core source tree for rule violations",
		Long: `Scan a directory (or a single file) for ASP.NET Core best-practice
violations and print a report.

Exit codes:
  0 - Scan completed, no finding at or above the fail-on severity
  1 - Findings at or above the fail-on severity, or a fatal error

Examples:
  # Scan the current project
  aspscan scan .

  # JSON output for machine parsing
  aspscan scan --format json src/

  # Fail the CI job on any high or critical finding
  aspscan scan --fail-on high src/

  # Hide findings below medium severity
  aspscan scan --min-severity medium src/

  # Write a markdown report to a file
  aspscan scan -f markdown -o report.md src/`,
		RunE:          runScan,
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
	}

	cmd.Flags().StringVarP(&scanFormat, "format", "f", "console",
		"Output format: console, json, markdown")
	cmd.Flags().StringVarP(&scanOutputPath, "output", "o", "",
		"Write the report to a file instead of stdout")
	cmd.Flags().StringVarP(&scanConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringVar(&scanFailOn, "fail-on", "",
		"Severity that causes a non-zero exit: critical, high, medium, low")
	cmd.Flags().StringVar(&scanMinSeverity, "min-severity", "",
		"Lowest severity included in the report")
	cmd.Flags().StringSliceVar(&scanDisabled, "disable", nil,
		"Rule IDs to disable, e.g. --disable ASP004,ASP006")
	cmd.Flags().IntVarP(&scanJobs, "jobs", "j", 0,
		"Number of files scanned in parallel (0 = one per CPU)")
	cmd.Flags().BoolVar(&scanNoProgress, "no-progress", false,
		"Disable the progress bar")
	cmd.Flags().BoolVarP(&scanQuiet, "quiet", "q", false,
		"Suppress the progress bar and status messages")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &ScanExitError{Code: 1, Message: "expected exactly one path to scan"}
	}

	format, err := domain.ParseOutputFormat(scanFormat)
	if err != nil {
		return &ScanExitError{Code: 1, Message: err.Error()}
	}

	// Load configuration, then apply flags that were explicitly set
	loader := service.NewConfigurationLoader()
	req, err := loader.LoadScanRequest(scanConfigPath, args[0])
	if err != nil {
		return &ScanExitError{Code: 1, Message: err.Error()}
	}

	if cmd.Flags().Changed("fail-on") {
		failOn, err := domain.ParseSeverity(scanFailOn)
		if err != nil {
			return &ScanExitError{Code: 1, Message: err.Error()}
		}
		req.FailOn = failOn
	}
	if cmd.Flags().Changed("min-severity") {
		minSeverity, err := domain.ParseSeverity(scanMinSeverity)
		if err != nil {
			return &ScanExitError{Code: 1, Message: err.Error()}
		}
		req.MinSeverity = minSeverity
	}
	if cmd.Flags().Changed("disable") {
		req.DisabledRules = append(req.DisabledRules, scanDisabled...)
	}
	if cmd.Flags().Changed("jobs") {
		req.Concurrency = scanJobs
	}

	// Progress bars would corrupt machine-readable output on stdout
	showProgress := !scanNoProgress && !scanQuiet &&
		format == domain.OutputFormatConsole && scanOutputPath == ""
	pm := service.NewProgressManager(showProgress)
	defer pm.Close()

	ctx, cancel := scanContext(req)
	defer cancel()

	svc := service.NewScanServiceWithProgress(pm)
	result, err := svc.Scan(ctx, req)
	if err != nil {
		return &ScanExitError{Code: 1, Message: err.Error()}
	}

	if err := writeReport(result, format); err != nil {
		return &ScanExitError{Code: 1, Message: err.Error()}
	}

	if result.HasFindingsAtOrAbove(req.FailOn) {
		// Report already printed; exit non-zero without extra noise
		return &ScanExitError{Code: 1, Message: ""}
	}
	return nil
}

// scanContext derives the scan context, applying the configured
// timeout when one is set
func scanContext(req domain.ScanRequest) (context.Context, context.CancelFunc) {
	if req.TimeoutSeconds > 0 {
		return context.WithTimeout(context.Background(), time.Duration(req.TimeoutSeconds)*time.Second)
	}
	return context.WithCancel(context.Background())
}

func writeReport(result *domain.ScanResult, format domain.OutputFormat) error {
	formatter := service.NewOutputFormatter()

	if scanOutputPath == "" {
		return formatter.Write(result, format, os.Stdout)
	}

	file, err := os.Create(scanOutputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := formatter.Write(result, format, file); err != nil {
		return err
	}
	if !scanQuiet {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", scanOutputPath)
	}
	return nil
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if strings.EqualFold(item, target) {
			return true
		}
	}
	return false
}
