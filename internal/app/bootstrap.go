package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"reliefctl/internal/config"
	"reliefctl/pkg/logging"
)

// Application is the main application structure that bootstraps and runs reliefctl
type Application struct {
	config   *Config
	services *Services
}

// NewApplication loads configuration and builds the backend client. Logs go
// to logOut until a dashboard takes over.
func NewApplication(cfg *Config, logOut io.Writer) (*Application, error) {
	if logOut == nil {
		logOut = os.Stderr
	}

	appLogLevel := logging.LevelWarn
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}
	logging.InitForCLI(appLogLevel, logOut)

	reliefCfg, err := config.LoadConfigWithOverride(cfg.ConfigPath)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load reliefctl configuration")
		return nil, fmt.Errorf("failed to load reliefctl configuration: %w", err)
	}
	reliefCfg, err = applyOverrides(cfg, reliefCfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Invalid configuration")
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.ReliefConfig = &reliefCfg

	if !cfg.Debug {
		if level, err := logging.ParseLevel(reliefCfg.Logging.Level); err == nil {
			appLogLevel = level
			logging.InitForCLI(appLogLevel, logOut)
		} else {
			logging.Warn("Bootstrap", "Ignoring logging.level: %v", err)
		}
	}
	logging.Debug("Bootstrap", "Using backend %s", reliefCfg.Backend.BaseURL)

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// Config returns the resolved application configuration.
func (a *Application) Config() *Config {
	return a.config
}

// Services returns the initialized services.
func (a *Application) Services() *Services {
	return a.services
}

// Run opens the interactive dashboard
func (a *Application) Run(ctx context.Context) error {
	return runTUIMode(ctx, a.config, a.services)
}
