package service

import (
	"github.com/ludo-technologies/aspscan/domain"
	"github.com/ludo-technologies/aspscan/internal/config"
)

// ConfigurationLoaderImpl translates file configuration into scan requests
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadScanRequest loads configuration for the given target path and
// converts it into a scan request rooted at that path.
func (c *ConfigurationLoaderImpl) LoadScanRequest(configPath, targetPath string) (domain.ScanRequest, error) {
	cfg, err := config.LoadConfigWithTarget(configPath, targetPath)
	if err != nil {
		return domain.ScanRequest{}, domain.NewConfigError("failed to load configuration file", err)
	}
	return c.convertToScanRequest(cfg, targetPath)
}

// DefaultScanRequest returns a scan request built from the default configuration
func (c *ConfigurationLoaderImpl) DefaultScanRequest(targetPath string) domain.ScanRequest {
	req, err := c.convertToScanRequest(config.DefaultConfig(), targetPath)
	if err != nil {
		// The default config always carries valid enum values
		panic(err)
	}
	return req
}

func (c *ConfigurationLoaderImpl) convertToScanRequest(cfg *config.Config, targetPath string) (domain.ScanRequest, error) {
	minSeverity, err := domain.ParseSeverity(cfg.Rules.MinSeverity)
	if err != nil {
		return domain.ScanRequest{}, err
	}
	failOn, err := domain.ParseSeverity(cfg.Output.FailOn)
	if err != nil {
		return domain.ScanRequest{}, err
	}

	return domain.ScanRequest{
		Path:             targetPath,
		Extensions:       cfg.Scan.Extensions,
		ExcludeDirs:      cfg.Scan.ExcludeDirs,
		RespectGitignore: cfg.Scan.RespectGitignore,
		DisabledRules:    cfg.Rules.Disabled,
		MinSeverity:      minSeverity,
		FailOn:           failOn,
		Concurrency:      cfg.Performance.MaxGoroutines,
		TimeoutSeconds:   cfg.Performance.TimeoutSeconds,
	}, nil
}
