package config

import (
	"time"
)

// ReliefConfig is the top-level configuration structure for reliefctl.
type ReliefConfig struct {
	Backend BackendConfig `yaml:"backend"`
	Session SessionConfig `yaml:"session"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
	Update  UpdateConfig  `yaml:"update"`
}

// BackendConfig points the client at the relief REST service.
type BackendConfig struct {
	BaseURL   string        `yaml:"baseURL,omitempty"`   // e.g. "http://localhost:5000"
	Timeout   time.Duration `yaml:"timeout,omitempty"`   // Per-request timeout
	UserAgent string        `yaml:"userAgent,omitempty"` // Sent with every request
}

// SessionConfig holds login defaults. The password is never read from YAML;
// it comes from the environment or a flag.
type SessionConfig struct {
	Name     string `yaml:"name,omitempty"`
	Password string `yaml:"-"`
}

// ColorMode selects the dashboard palette.
type ColorMode string

const (
	ColorModeAuto  ColorMode = "auto"
	ColorModeDark  ColorMode = "dark"
	ColorModeLight ColorMode = "light"
	ColorModeNone  ColorMode = "none"
)

// UIConfig tunes the interactive dashboards.
type UIConfig struct {
	ColorMode      ColorMode     `yaml:"colorMode,omitempty"`
	NoticeTimeout  time.Duration `yaml:"noticeTimeout,omitempty"`  // How long status-bar messages stay up
	ConfirmDeletes *bool         `yaml:"confirmDeletes,omitempty"` // nil means true
}

// ShouldConfirmDeletes reports whether deletes need an interactive confirmation.
func (u UIConfig) ShouldConfirmDeletes() bool {
	return u.ConfirmDeletes == nil || *u.ConfirmDeletes
}

// LoggingConfig selects the minimum log level.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn, error
}

// UpdateConfig configures self-update.
type UpdateConfig struct {
	Repository string `yaml:"repository,omitempty"` // GitHub "owner/repo" slug
}
