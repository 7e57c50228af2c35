package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "aspscan"

	// DefaultConfigFileName is the default config file name
	DefaultConfigFileName = "aspscan.yaml"

	// EnvVarConfig names the environment variable pointing at a config file
	EnvVarConfig = "ASPSCAN_CONFIG"
)

// ConfigFileCandidates lists the config file names recognized during
// discovery, in precedence order.
var ConfigFileCandidates = []string{
	"aspscan.yaml",
	"aspscan.yml",
	".aspscan.yaml",
	".aspscan.yml",
	"aspscan.json",
	".aspscan.json",
}
