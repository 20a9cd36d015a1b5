package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd
var osGetenv = os.Getenv

const (
	userConfigDir    = ".config/reliefctl"
	projectConfigDir = ".reliefctl"
	configFileName   = "config.yaml"

	EnvBaseURL  = "RELIEFCTL_BASE_URL"
	EnvName     = "RELIEFCTL_NAME"
	EnvPassword = "RELIEFCTL_PASSWORD"
	EnvLogLevel = "RELIEFCTL_LOG_LEVEL"
)

// LoadConfig layers default, user, project and environment settings.
func LoadConfig() (ReliefConfig, error) {
	return LoadConfigWithOverride("")
}

// LoadConfigWithOverride behaves like LoadConfig and additionally merges
// the file at overridePath (when non-empty) after the project layer.
func LoadConfigWithOverride(overridePath string) (ReliefConfig, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional.
		fmt.Fprintf(os.Stderr, "Warning: could not determine user config path: %v\n", err)
	} else if config, err = mergeFileIfExists(config, userConfigPath); err != nil {
		return ReliefConfig{}, err
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not determine project config path: %v\n", err)
	} else if config, err = mergeFileIfExists(config, projectConfigPath); err != nil {
		return ReliefConfig{}, err
	}

	if overridePath != "" {
		overlay, err := loadConfigFromFile(overridePath)
		if err != nil {
			return ReliefConfig{}, fmt.Errorf("error loading config from %s: %w", overridePath, err)
		}
		config = mergeConfigs(config, overlay)
	}

	config = applyEnv(config)

	if err := Validate(config); err != nil {
		return ReliefConfig{}, err
	}
	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

func mergeFileIfExists(base ReliefConfig, path string) (ReliefConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return base, nil
	}
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return ReliefConfig{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	return mergeConfigs(base, overlay), nil
}

// loadConfigFromFile loads a ReliefConfig from a YAML file.
func loadConfigFromFile(filePath string) (ReliefConfig, error) {
	var config ReliefConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return ReliefConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return ReliefConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges non-zero fields of overlay into base.
func mergeConfigs(base, overlay ReliefConfig) ReliefConfig {
	merged := base

	if overlay.Backend.BaseURL != "" {
		merged.Backend.BaseURL = overlay.Backend.BaseURL
	}
	if overlay.Backend.Timeout != 0 {
		merged.Backend.Timeout = overlay.Backend.Timeout
	}
	if overlay.Backend.UserAgent != "" {
		merged.Backend.UserAgent = overlay.Backend.UserAgent
	}

	if overlay.Session.Name != "" {
		merged.Session.Name = overlay.Session.Name
	}

	if overlay.UI.ColorMode != "" {
		merged.UI.ColorMode = overlay.UI.ColorMode
	}
	if overlay.UI.NoticeTimeout != 0 {
		merged.UI.NoticeTimeout = overlay.UI.NoticeTimeout
	}
	if overlay.UI.ConfirmDeletes != nil {
		v := *overlay.UI.ConfirmDeletes
		merged.UI.ConfirmDeletes = &v
	}

	if overlay.Logging.Level != "" {
		merged.Logging.Level = overlay.Logging.Level
	}
	if overlay.Update.Repository != "" {
		merged.Update.Repository = overlay.Update.Repository
	}

	return merged
}

func applyEnv(config ReliefConfig) ReliefConfig {
	if v := strings.TrimSpace(osGetenv(EnvBaseURL)); v != "" {
		config.Backend.BaseURL = v
	}
	if v := strings.TrimSpace(osGetenv(EnvName)); v != "" {
		config.Session.Name = v
	}
	if v := osGetenv(EnvPassword); v != "" {
		config.Session.Password = v
	}
	if v := strings.TrimSpace(osGetenv(EnvLogLevel)); v != "" {
		config.Logging.Level = v
	}
	return config
}

// Validate checks values that would otherwise fail late, at first request.
func Validate(config ReliefConfig) error {
	u, err := url.Parse(config.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid backend.baseURL %q: %w", config.Backend.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid backend.baseURL %q: scheme must be http or https", config.Backend.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid backend.baseURL %q: missing host", config.Backend.BaseURL)
	}
	if config.Backend.Timeout < 0 || config.Backend.Timeout > 5*time.Minute {
		return fmt.Errorf("backend.timeout %s out of range", config.Backend.Timeout)
	}
	switch config.UI.ColorMode {
	case ColorModeAuto, ColorModeDark, ColorModeLight, ColorModeNone:
	default:
		return fmt.Errorf("unknown ui.colorMode %q", config.UI.ColorMode)
	}
	return nil
}

// GetUserConfigDir returns the user configuration directory path.
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
