package rules

import (
	"regexp"

	"github.com/ludo-technologies/aspscan/domain"
)

func init() {
	Register(Rule{
		ID:       "ASP004",
		Name:     "cleartext-http-url",
		Severity: domain.SeverityMedium,
		Check:    checkHTTPURL,
	})
}

var httpURL = regexp.MustCompile(`"http://[^"]+"`)

// Loopback addresses and XML namespace URIs are not transport endpoints
var httpURLAllowed = regexp.MustCompile(`http://(localhost|127\.0\.0\.1|\[::1\]|schemas\.|www\.w3\.org)`)

func checkHTTPURL(path string, content []byte) []domain.Finding {
	var out []domain.Finding
	for _, m := range matchLines(content, httpURL) {
		if isCommentLine(m.text) || httpURLAllowed.MatchString(m.text) {
			continue
		}
		out = append(out, domain.Finding{
			FilePath: path,
			Line:     m.line,
			Message:  "Cleartext http:// URL; use https:// for external endpoints: " + trimEvidence(m.text),
		})
	}
	return out
}
