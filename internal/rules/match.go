package rules

import (
	"bytes"
	"regexp"
	"strings"
)

// lineMatch is one regex hit with its 1-based line number
type lineMatch struct {
	line int
	text string
}

// matchLines scans content line by line and returns every line matching
// the pattern. Keeps line numbers 1-based for findings.
func matchLines(content []byte, re *regexp.Regexp) []lineMatch {
	var out []lineMatch
	for i, line := range bytes.Split(content, []byte("\n")) {
		if re.Match(line) {
			out = append(out, lineMatch{line: i + 1, text: string(line)})
		}
	}
	return out
}

// isCommentLine reports whether a C# source line is a line comment.
// Block comments are not tracked; a rule hit inside /* */ is accepted
// as a best-effort false positive.
func isCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "//")
}

// trimEvidence shortens a matched line for use in a finding message
func trimEvidence(line string) string {
	trimmed := strings.TrimSpace(line)
	const max = 80
	if len(trimmed) > max {
		return trimmed[:max] + "..."
	}
	return trimmed
}
