package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPaths points the user and project layers at dir and clears the environment.
func mockPaths(t *testing.T, dir string, env map[string]string) {
	t.Helper()
	originalUser := getUserConfigPath
	originalProject := getProjectConfigPath
	originalGetenv := osGetenv
	t.Cleanup(func() {
		getUserConfigPath = originalUser
		getProjectConfigPath = originalProject
		osGetenv = originalGetenv
	})

	getUserConfigPath = func() (string, error) {
		return filepath.Join(dir, "user", configFileName), nil
	}
	getProjectConfigPath = func() (string, error) {
		return filepath.Join(dir, "project", configFileName), nil
	}
	osGetenv = func(key string) string { return env[key] }
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	mockPaths(t, t.TempDir(), nil)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), cfg)
	assert.True(t, cfg.UI.ShouldConfirmDeletes())
}

func TestLoadConfig_ProjectOverridesUser(t *testing.T) {
	dir := t.TempDir()
	mockPaths(t, dir, nil)

	writeFile(t, filepath.Join(dir, "user", configFileName), `
backend:
  baseURL: "http://user.example:5000"
  timeout: 3s
session:
  name: "Field Team"
logging:
  level: debug
`)
	writeFile(t, filepath.Join(dir, "project", configFileName), `
backend:
  baseURL: "https://relief.example.org"
ui:
  colorMode: none
  confirmDeletes: false
`)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://relief.example.org", cfg.Backend.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "Field Team", cfg.Session.Name)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ColorModeNone, cfg.UI.ColorMode)
	assert.False(t, cfg.UI.ShouldConfirmDeletes())
	assert.Equal(t, DefaultUserAgent, cfg.Backend.UserAgent)
}

func TestLoadConfig_OverrideFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	mockPaths(t, dir, map[string]string{
		EnvBaseURL:  "http://env.example:8080",
		EnvPassword: "gov",
		EnvName:     "Ops",
	})

	override := filepath.Join(dir, "custom.yaml")
	writeFile(t, override, `
backend:
  baseURL: "http://override.example"
  userAgent: "relief-test"
`)

	cfg, err := LoadConfigWithOverride(override)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example:8080", cfg.Backend.BaseURL, "environment wins over files")
	assert.Equal(t, "relief-test", cfg.Backend.UserAgent)
	assert.Equal(t, "gov", cfg.Session.Password)
	assert.Equal(t, "Ops", cfg.Session.Name)
}

func TestLoadConfig_PasswordNotReadFromYAML(t *testing.T) {
	dir := t.TempDir()
	mockPaths(t, dir, nil)
	writeFile(t, filepath.Join(dir, "user", configFileName), `
session:
  name: "A"
  password: "leaked"
`)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.Session.Password)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	mockPaths(t, dir, nil)
	writeFile(t, filepath.Join(dir, "project", configFileName), "backend: [unclosed")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_MissingOverrideFile(t *testing.T) {
	dir := t.TempDir()
	mockPaths(t, dir, nil)

	_, err := LoadConfigWithOverride(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ReliefConfig)
		wantErr bool
	}{
		{"defaults", func(*ReliefConfig) {}, false},
		{"ftp scheme", func(c *ReliefConfig) { c.Backend.BaseURL = "ftp://x" }, true},
		{"no host", func(c *ReliefConfig) { c.Backend.BaseURL = "http://" }, true},
		{"negative timeout", func(c *ReliefConfig) { c.Backend.Timeout = -time.Second }, true},
		{"bad color mode", func(c *ReliefConfig) { c.UI.ColorMode = "sepia" }, true},
		{"light mode", func(c *ReliefConfig) { c.UI.ColorMode = ColorModeLight }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetUserConfigDir(t *testing.T) {
	original := osUserHomeDir
	defer func() { osUserHomeDir = original }()
	osUserHomeDir = func() (string, error) { return "/home/relief", nil }

	dir, err := GetUserConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/relief", ".config/reliefctl"), dir)
}
