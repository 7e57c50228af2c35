package rules

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/ludo-technologies/aspscan/domain"
)

func init() {
	Register(Rule{
		ID:       "ASP006",
		Name:     "unguarded-developer-exception-page",
		Severity: domain.SeverityLow,
		Check:    checkDeveloperExceptionPage,
	})
}

var devExceptionPage = regexp.MustCompile(`UseDeveloperExceptionPage\s*\(\s*\)`)

// guardWindow is how many preceding lines are searched for an
// IsDevelopment() guard before the call is flagged
const guardWindow = 4

func checkDeveloperExceptionPage(path string, content []byte) []domain.Finding {
	lines := bytes.Split(content, []byte("\n"))

	var out []domain.Finding
	for i, line := range lines {
		if !devExceptionPage.Match(line) || isCommentLine(string(line)) {
			continue
		}
		if guardedByIsDevelopment(lines, i) {
			continue
		}
		out = append(out, domain.Finding{
			FilePath: path,
			Line:     i + 1,
			Message:  "UseDeveloperExceptionPage() without an IsDevelopment() guard leaks stack traces in production.",
		})
	}
	return out
}

func guardedByIsDevelopment(lines [][]byte, idx int) bool {
	start := idx - guardWindow
	if start < 0 {
		start = 0
	}
	for i := start; i <= idx; i++ {
		if strings.Contains(string(lines[i]), "IsDevelopment()") {
			return true
		}
	}
	return false
}
