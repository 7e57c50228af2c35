package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProjectType represents the type of ASP.NET Core project
type ProjectType string

const (
	ProjectTypeGeneric    ProjectType = "generic"
	ProjectTypeWebAPI     ProjectType = "webapi"
	ProjectTypeMVC        ProjectType = "mvc"
	ProjectTypeMinimalAPI ProjectType = "minimal"
)

// Strictness represents the scan strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// PresetConfig builds a configuration for a project type and strictness level
func PresetConfig(projectType ProjectType, strictness Strictness) *Config {
	cfg := DefaultConfig()

	switch projectType {
	case ProjectTypeMVC:
		// Razor views carry enough inline C# to be worth scanning
		cfg.Scan.Extensions = []string{".cs", ".cshtml"}
	case ProjectTypeWebAPI, ProjectTypeMinimalAPI, ProjectTypeGeneric:
		cfg.Scan.Extensions = []string{".cs"}
	}

	switch strictness {
	case StrictnessRelaxed:
		cfg.Rules.MinSeverity = "medium"
		cfg.Output.FailOn = "critical"
	case StrictnessStrict:
		cfg.Rules.MinSeverity = "low"
		cfg.Output.FailOn = "high"
	default:
		cfg.Rules.MinSeverity = DefaultMinSeverity
		cfg.Output.FailOn = DefaultFailOn
	}

	return cfg
}

// GetFullConfigTemplate returns a documented YAML config for the given presets
func GetFullConfigTemplate(projectType ProjectType, strictness Strictness) string {
	cfg := PresetConfig(projectType, strictness)

	var sb strings.Builder
	sb.WriteString("# aspscan configuration\n")
	sb.WriteString(fmt.Sprintf("# Generated for project type %q with %q strictness.\n", projectType, strictness))
	sb.WriteString("#\n")
	sb.WriteString("# scan.extensions        file extensions to scan\n")
	sb.WriteString("# scan.exclude_dirs      directory names skipped at any depth\n")
	sb.WriteString("# scan.respect_gitignore honor .gitignore at the scan root\n")
	sb.WriteString("# rules.disabled         rule IDs that must not run, e.g. [ASP004]\n")
	sb.WriteString("# rules.min_severity     lowest severity included in the report\n")
	sb.WriteString("# output.format          console, json or markdown\n")
	sb.WriteString("# output.fail_on         severity that causes a non-zero exit\n")
	sb.WriteString("# performance.max_goroutines  0 means one worker per CPU\n")
	sb.WriteString("\n")
	sb.WriteString(marshalConfig(cfg))
	return sb.String()
}

// GetMinimalConfigTemplate returns a short config with essential options only
func GetMinimalConfigTemplate() string {
	cfg := DefaultConfig()
	minimal := struct {
		Scan struct {
			Extensions  []string `yaml:"extensions"`
			ExcludeDirs []string `yaml:"exclude_dirs"`
		} `yaml:"scan"`
		Output struct {
			Format string `yaml:"format"`
			FailOn string `yaml:"fail_on"`
		} `yaml:"output"`
	}{}
	minimal.Scan.Extensions = cfg.Scan.Extensions
	minimal.Scan.ExcludeDirs = cfg.Scan.ExcludeDirs
	minimal.Output.Format = cfg.Output.Format
	minimal.Output.FailOn = cfg.Output.FailOn

	out, err := yaml.Marshal(minimal)
	if err != nil {
		// Marshalling a plain struct cannot fail at runtime
		panic(err)
	}
	return "# aspscan configuration\n" + string(out)
}

func marshalConfig(cfg *Config) string {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		panic(err)
	}
	return string(out)
}
