package service

import (
	"context"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/aspscan/domain"
	"github.com/ludo-technologies/aspscan/internal/rules"
	"github.com/ludo-technologies/aspscan/internal/version"
	"github.com/ludo-technologies/aspscan/internal/walker"
)

// DiagnosticRuleID identifies the synthetic finding emitted when a file
// cannot be read. An unreadable file never aborts the scan.
const DiagnosticRuleID = "ASP000"

// ScanServiceImpl implements the domain.ScanService interface
type ScanServiceImpl struct {
	progress domain.ProgressManager
}

// NewScanService creates a new scan service
func NewScanService() *ScanServiceImpl {
	return &ScanServiceImpl{}
}

// NewScanServiceWithProgress creates a scan service with progress tracking
func NewScanServiceWithProgress(pm domain.ProgressManager) *ScanServiceImpl {
	return &ScanServiceImpl{progress: pm}
}

// Scan enumerates eligible files under the request path and runs every
// enabled rule once against each file. Files are processed in parallel;
// the result is sorted before it is returned so output ordering never
// depends on worker completion order.
func (s *ScanServiceImpl) Scan(ctx context.Context, req domain.ScanRequest) (*domain.ScanResult, error) {
	startTime := time.Now()

	w := walker.New(req.Extensions, req.ExcludeDirs)
	if req.RespectGitignore {
		w.LoadGitignore(req.Path)
	}

	files, err := w.Collect(req.Path)
	if err != nil {
		return nil, err
	}

	active := rules.Enabled(req.DisabledRules)

	concurrency := req.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	var task domain.TaskProgress = &NoOpTaskProgress{}
	if s.progress != nil {
		task = s.progress.StartTask("Scanning files", len(files))
	}
	defer task.Complete()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	// Append-only collector shared across workers
	var mu sync.Mutex
	var findings []domain.Finding
	skipped := 0

	for _, file := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			content, readErr := os.ReadFile(file)
			if readErr != nil {
				mu.Lock()
				skipped++
				findings = append(findings, unreadableFileFinding(file, readErr))
				mu.Unlock()
				task.Increment(1)
				return nil
			}

			fs := rules.EvaluateFile(file, content, active)

			mu.Lock()
			findings = append(findings, fs...)
			mu.Unlock()
			task.Increment(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	findings = filterBySeverity(findings, req.MinSeverity)
	sortFindings(findings)

	summary := domain.ScanSummary{
		FilesScanned: len(files) - skipped,
		FilesSkipped: skipped,
	}
	for _, f := range findings {
		summary.Add(f)
	}

	return &domain.ScanResult{
		Findings:    findings,
		Summary:     summary,
		Root:        req.Path,
		Duration:    time.Since(startTime).Milliseconds(),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}, nil
}

func unreadableFileFinding(path string, err error) domain.Finding {
	return domain.Finding{
		FilePath: path,
		Line:     1,
		RuleID:   DiagnosticRuleID,
		RuleName: "unreadable-file",
		Message:  "File skipped, could not be read: " + err.Error(),
		Severity: domain.SeverityLow,
	}
}

// filterBySeverity drops findings below the threshold. An empty
// threshold keeps everything.
func filterBySeverity(findings []domain.Finding, min domain.Severity) []domain.Finding {
	if min == "" || min == domain.SeverityLow {
		return findings
	}
	kept := findings[:0]
	for _, f := range findings {
		if f.Severity.Rank() >= min.Rank() {
			kept = append(kept, f)
		}
	}
	return kept
}

// sortFindings orders findings by file path, then line, then rule ID
func sortFindings(findings []domain.Finding) {
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].FilePath != findings[j].FilePath {
			return findings[i].FilePath < findings[j].FilePath
		}
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].RuleID < findings[j].RuleID
	})
}
