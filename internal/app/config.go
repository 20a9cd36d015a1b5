package app

import (
	"fmt"
	"strings"

	"reliefctl/internal/config"
)

// DashboardChoice selects which dashboard the interactive mode opens.
type DashboardChoice string

const (
	// DashboardAuto logs in and follows the user type the backend returns.
	DashboardAuto       DashboardChoice = "auto"
	DashboardGovernment DashboardChoice = "gov"
	DashboardPublic     DashboardChoice = "public"
)

// Config holds the application configuration
type Config struct {
	// Explicit config file merged after the user and project layers
	ConfigPath string

	// Flag overrides, applied after environment variables
	BaseURL  string
	Name     string
	Password string

	// Debug settings
	Debug bool

	// Interactive mode
	Dashboard DashboardChoice

	// Reported by the MCP server and used as the HTTP User-Agent suffix
	Version string

	// Loaded configuration
	ReliefConfig *config.ReliefConfig
}

// NewConfig creates a new application configuration
func NewConfig(configPath string, debug bool) *Config {
	return &Config{
		ConfigPath: configPath,
		Debug:      debug,
		Dashboard:  DashboardAuto,
	}
}

// ParseDashboardChoice validates a dashboard selector.
func ParseDashboardChoice(s string) (DashboardChoice, error) {
	switch c := DashboardChoice(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return DashboardAuto, nil
	case DashboardAuto, DashboardGovernment, DashboardPublic:
		return c, nil
	default:
		return "", fmt.Errorf("unknown dashboard %q (use auto, gov or public)", s)
	}
}

// applyOverrides layers flag values onto the loaded configuration.
func applyOverrides(cfg *Config, rc config.ReliefConfig) (config.ReliefConfig, error) {
	if v := strings.TrimSpace(cfg.BaseURL); v != "" {
		rc.Backend.BaseURL = v
	}
	if v := strings.TrimSpace(cfg.Name); v != "" {
		rc.Session.Name = v
	}
	if cfg.Password != "" {
		rc.Session.Password = cfg.Password
	}
	if cfg.Debug {
		rc.Logging.Level = "debug"
	}
	if cfg.Version != "" && rc.Backend.UserAgent == config.DefaultUserAgent {
		rc.Backend.UserAgent = config.DefaultUserAgent + "/" + cfg.Version
	}
	if err := config.Validate(rc); err != nil {
		return config.ReliefConfig{}, err
	}
	return rc, nil
}
