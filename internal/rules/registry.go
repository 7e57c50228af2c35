package rules

import (
	"sort"
	"strings"

	"github.com/ludo-technologies/aspscan/domain"
)

var (
	registry  []Rule
	ruleIndex = map[string]int{} // UPPER(ruleID) -> index
)

// Register adds a rule to the registry. Rules register themselves from
// init() in their own file; a duplicate or empty ID is a programming
// error and panics at startup.
func Register(r Rule) {
	id := strings.ToUpper(strings.TrimSpace(r.ID))
	if id == "" {
		panic("rules: cannot register rule with empty ID")
	}
	if _, exists := ruleIndex[id]; exists {
		panic("rules: duplicate rule ID: " + r.ID)
	}
	if r.Check == nil {
		panic("rules: rule " + r.ID + " has no Check function")
	}
	registry = append(registry, r)
	ruleIndex[id] = len(registry) - 1
}

// All returns every registered rule sorted by ID
func All() []Rule {
	out := make([]Rule, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Enabled returns registered rules sorted by ID, excluding disabled IDs
func Enabled(disabled []string) []Rule {
	off := make(map[string]bool, len(disabled))
	for _, id := range disabled {
		off[strings.ToUpper(strings.TrimSpace(id))] = true
	}

	out := make([]Rule, 0, len(registry))
	for _, r := range registry {
		if off[strings.ToUpper(r.ID)] {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns a rule by ID if registered
func Get(id string) (Rule, bool) {
	idx, ok := ruleIndex[strings.ToUpper(strings.TrimSpace(id))]
	if !ok || idx < 0 || idx >= len(registry) {
		return Rule{}, false
	}
	return registry[idx], true
}

// EvaluateFile runs every rule in the given set once against one file's
// content, stamping rule metadata onto findings the check left blank.
func EvaluateFile(path string, content []byte, active []Rule) []domain.Finding {
	var all []domain.Finding
	for _, rule := range active {
		fs := rule.Check(path, content)
		for i := range fs {
			if fs[i].RuleID == "" {
				fs[i].RuleID = rule.ID
			}
			if fs[i].RuleName == "" {
				fs[i].RuleName = rule.Name
			}
			if fs[i].Severity == "" {
				fs[i].Severity = rule.Severity
			}
			if fs[i].FilePath == "" {
				fs[i].FilePath = path
			}
			if fs[i].Line < 1 {
				fs[i].Line = 1
			}
		}
		all = append(all, fs...)
	}
	return all
}
