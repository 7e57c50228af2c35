package rules

import (
	"regexp"

	"github.com/ludo-technologies/aspscan/domain"
)

func init() {
	Register(Rule{
		ID:       "ASP003",
		Name:     "sync-over-async",
		Severity: domain.SeverityHigh,
		Check:    checkSyncOverAsync,
	})
}

// Blocking on tasks (.Result, .Wait(), GetAwaiter().GetResult()) can
// deadlock under the ASP.NET Core request context and starves the
// thread pool under load.
var syncOverAsync = regexp.MustCompile(`\.Result\b|\.Wait\s*\(\s*\)|\.GetAwaiter\s*\(\s*\)\s*\.GetResult\s*\(\s*\)`)

func checkSyncOverAsync(path string, content []byte) []domain.Finding {
	var out []domain.Finding
	for _, m := range matchLines(content, syncOverAsync) {
		if isCommentLine(m.text) {
			continue
		}
		out = append(out, domain.Finding{
			FilePath: path,
			Line:     m.line,
			Message:  "Blocking on an async operation; use await instead: " + trimEvidence(m.text),
		})
	}
	return out
}
