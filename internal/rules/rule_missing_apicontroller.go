package rules

import (
	"bytes"
	"regexp"

	"github.com/ludo-technologies/aspscan/domain"
)

func init() {
	Register(Rule{
		ID:       "ASP005",
		Name:     "missing-apicontroller-attribute",
		Severity: domain.SeverityMedium,
		Check:    checkMissingAPIController,
	})
}

var controllerDecl = regexp.MustCompile(`class\s+\w+\s*:\s*ControllerBase\b`)
var apiControllerAttr = regexp.MustCompile(`\[ApiController\]`)

// Controllers deriving from ControllerBase without [ApiController] lose
// automatic model validation and binding-source inference. The attribute
// may sit on the class or be applied assembly-wide in the same file, so
// the check is per file rather than per declaration line.
func checkMissingAPIController(path string, content []byte) []domain.Finding {
	if apiControllerAttr.Match(content) {
		return nil
	}

	var out []domain.Finding
	for i, line := range bytes.Split(content, []byte("\n")) {
		if controllerDecl.Match(line) {
			out = append(out, domain.Finding{
				FilePath: path,
				Line:     i + 1,
				Message:  "API controller is missing the [ApiController] attribute; automatic 400 responses and binding inference are disabled.",
			})
		}
	}
	return out
}
