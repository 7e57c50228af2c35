package rules

import "github.com/ludo-technologies/aspscan/domain"

// Rule represents a single registered check executed against each
// scanned file. Rules are stateless: Check must not depend on execution
// order or on the results of other rules.
type Rule struct {
	// ID is the stable short identifier, e.g. "ASP001"
	ID string

	// Name is the human-readable rule name
	Name string

	// Severity is the severity assigned to findings of this rule
	Severity domain.Severity

	// Check inspects one file's content and returns zero or more findings.
	// It must be pure: no side effects beyond the returned slice.
	Check func(path string, content []byte) []domain.Finding
}
