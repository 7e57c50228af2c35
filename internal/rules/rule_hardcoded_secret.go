package rules

import (
	"regexp"

	"github.com/ludo-technologies/aspscan/domain"
)

func init() {
	Register(Rule{
		ID:       "ASP001",
		Name:     "hardcoded-secret",
		Severity: domain.SeverityCritical,
		Check:    checkHardcodedSecret,
	})
}

// Matches assignments like Password = "...", "ApiKey": "...", or
// connection strings with an inline password. Empty string values are
// not flagged; they are usually placeholders bound at runtime.
var secretAssignment = regexp.MustCompile(
	`(?i)(password|pwd|secret|apikey|api_key|accesskey|access_key|connectionstring)\s*("\s*:|=)\s*"[^"]+"`)

// Configuration lookups read the value at runtime, they don't embed it
var secretLookup = regexp.MustCompile(`(?i)(Configuration|GetSection|GetValue|Environment\.GetEnvironmentVariable|GetConnectionString)`)

func checkHardcodedSecret(path string, content []byte) []domain.Finding {
	var out []domain.Finding
	for _, m := range matchLines(content, secretAssignment) {
		if isCommentLine(m.text) || secretLookup.MatchString(m.text) {
			continue
		}
		out = append(out, domain.Finding{
			FilePath: path,
			Line:     m.line,
			Message:  "Credential appears to be hardcoded in source; move it to configuration or a secret store: " + trimEvidence(m.text),
		})
	}
	return out
}
