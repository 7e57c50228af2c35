package rules

import (
	"regexp"

	"github.com/ludo-technologies/aspscan/domain"
)

func init() {
	Register(Rule{
		ID:       "ASP002",
		Name:     "cors-allow-any-origin",
		Severity: domain.SeverityHigh,
		Check:    checkCorsAnyOrigin,
	})
}

var corsAnyOrigin = regexp.MustCompile(`\.(AllowAnyOrigin|SetIsOriginAllowed\s*\(\s*_?\s*=>\s*true)\s*\(?`)

func checkCorsAnyOrigin(path string, content []byte) []domain.Finding {
	var out []domain.Finding
	for _, m := range matchLines(content, corsAnyOrigin) {
		if isCommentLine(m.text) {
			continue
		}
		out = append(out, domain.Finding{
			FilePath: path,
			Line:     m.line,
			Message:  "CORS policy allows any origin; restrict origins with WithOrigins for non-public APIs.",
		})
	}
	return out
}
